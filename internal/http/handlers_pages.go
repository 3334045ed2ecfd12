package http

import (
	"net/http"

	"fundboard/internal/auth"
	"fundboard/internal/core"
	"fundboard/internal/log"
	"fundboard/internal/notice"
	"fundboard/internal/session"
	"fundboard/internal/views"
)

// formValues echoes submitted fields back into a re-rendered form. Passwords
// are never echoed.
type formValues struct {
	Name          string
	Email         string
	Role          string
	Organization  string
	WalletAddress string
}

type pageData struct {
	Page    Page
	Title   string
	User    *core.UserProfile
	Nav     []navItem
	Notices []notice.Notice

	Form  formValues
	Roles []string

	Dashboard *views.DashboardView
	Funds     *views.FundsView
	Profile   *views.ProfileView
	Fund      *views.FundView
	Reports   *views.ReportsView
}

// handleIndex renders whichever page the router selects for the session.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		Problem(http.StatusNotFound, "Page not found").Send(w)
		return
	}
	if resp := allowMethods(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Send(w)
		return
	}

	snap := sessionFrom(r.Context()).Get()
	requested := r.URL.Query().Get("page")
	page := Route(snap, requested)
	if Page(requested) == PageReports && page != PageReports && snap.Authenticated() {
		notice.FromContext(r.Context()).Add(notice.Warning, "Reports are available to admins and auditors only")
	}
	s.renderPage(w, r, page, snap, http.StatusOK, formValues{})
}

// renderPage gathers the page's data and renders it. Notices are collected
// last so that anything posted while fetching shows up.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page Page, snap session.Snapshot, status int, form formValues) {
	ctx := r.Context()
	data := pageData{Page: page, Title: string(page), User: snap.User, Form: form}

	switch page {
	case PageDashboard:
		v := s.views.Dashboard(ctx, snap)
		data.Dashboard = &v
	case PageFunds:
		v := s.views.Funds(ctx, snap, ParseFundFilter(r.URL.Query()))
		data.Funds = &v
	case PageProfile:
		v := views.Profile(snap)
		data.Profile = &v
	case PageFund:
		v := s.views.Fund(ctx, snap, sanitizeInput(r.URL.Query().Get("id")))
		data.Fund = &v
		data.Title = v.Title
	case PageReports:
		v := s.views.Reports(ctx, snap)
		data.Reports = &v
	case PageRegister:
		data.Roles = auth.Roles
		if data.Form.Role == "" {
			data.Form.Role = auth.Roles[0]
		}
	}
	if snap.Authenticated() {
		data.Nav = navItems(snap, page)
	}
	board := notice.FromContext(ctx)
	if board.HasErrors() {
		log.FromContext(ctx).WarnContext(ctx, "Rendering page with errors", log.FieldPage, string(page))
	}
	data.Notices = board.Items()

	s.render(w, r, status, data)
}
