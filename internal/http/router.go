package http

import (
	"net/url"

	"fundboard/internal/session"
	"fundboard/internal/views"
)

// Page identifies a top-level screen.
type Page string

const (
	PageLogin     Page = "Login"
	PageRegister  Page = "Register"
	PageDashboard Page = "Dashboard"
	PageFunds     Page = "Funds"
	PageProfile   Page = "Profile"
	PageReports   Page = "Reports"
	// PageFund shows one fund. It is linked from the Funds list and never
	// appears in the menu.
	PageFund Page = "Fund"
)

// NavPages are the destinations offered to the signed-in user, in menu
// order. Reports is listed only for roles allowed to read them.
func NavPages(snap session.Snapshot) []Page {
	pages := []Page{PageDashboard, PageFunds}
	if views.CanViewReports(snap) {
		pages = append(pages, PageReports)
	}
	return append(pages, PageProfile)
}

// Route decides which page to show. Without a credential only the login and
// registration pages are reachable; with one, the requested navigation page
// or the fund page is shown, defaulting to the Dashboard.
func Route(snap session.Snapshot, requested string) Page {
	if !snap.Authenticated() {
		if Page(requested) == PageRegister {
			return PageRegister
		}
		return PageLogin
	}
	if Page(requested) == PageFund {
		return PageFund
	}
	for _, p := range NavPages(snap) {
		if Page(requested) == p {
			return p
		}
	}
	return PageDashboard
}

// Template returns the template that renders the page.
func (p Page) Template() string {
	switch p {
	case PageRegister:
		return "register_page"
	case PageDashboard:
		return "dashboard_page"
	case PageFunds:
		return "funds_page"
	case PageProfile:
		return "profile_page"
	case PageReports:
		return "reports_page"
	case PageFund:
		return "fund_page"
	default:
		return "login_page"
	}
}

// Href is the URL that navigates to the page.
func (p Page) Href() string {
	switch p {
	case PageLogin:
		return "/"
	case PageRegister:
		return "/register"
	default:
		return "/?page=" + url.QueryEscape(string(p))
	}
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

func navItems(snap session.Snapshot, current Page) []navItem {
	if current == PageFund {
		current = PageFunds
	}
	pages := NavPages(snap)
	items := make([]navItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, navItem{Label: string(p), Href: p.Href(), Active: p == current})
	}
	return items
}
