package views

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"fundboard/internal/core"
	"fundboard/internal/session"
)

// palette colors chart series in order, wrapping around.
var palette = []string{"#4c78a8", "#f58518", "#54a24b", "#e45756", "#72b7b2", "#eeca3b", "#b279a2"}

type Metric struct {
	Label string
	Value string
}

type StatusSlice struct {
	Label   string
	Count   string
	Percent string
	Color   string
}

type CategoryBar struct {
	Label   string
	Total   string
	Percent int
	Color   string
}

// DashboardView is the model of the Dashboard page.
type DashboardView struct {
	Section
	Greeting   string
	Caption    string
	Metrics    []Metric
	Statuses   []StatusSlice
	Pie        template.CSS
	Categories []CategoryBar
}

// Dashboard fetches the statistics overview and shapes it for display.
func (v *Views) Dashboard(ctx context.Context, snap session.Snapshot) DashboardView {
	view := DashboardView{}
	if u := snap.User; u != nil {
		view.Greeting = "Welcome, " + u.Name
		view.Caption = fmt.Sprintf("Role: %s | Organization: %s", strings.ToUpper(u.Role), u.Organization)
	}

	stats, section := get[core.StatsOverview](ctx, v, snap, "/funds/stats/overview")
	view.Section = section
	if !section.Available() {
		return view
	}

	view.Metrics = []Metric{
		{Label: "Total Funds", Value: core.FormatCount(stats.TotalFunds)},
		{Label: "Total Allocated", Value: core.FormatCurrency(stats.TotalAllocated)},
		{Label: "Total Released", Value: core.FormatCurrency(stats.TotalReleased)},
	}
	view.Statuses, view.Pie = statusSlices(stats.ByStatus)
	view.Categories = categoryBars(stats.ByCategory)
	return view
}

// statusSlices converts counts to pie slices and the matching conic-gradient.
// Percentages are computed with decimal arithmetic so the slices always close
// at exactly 100%.
func statusSlices(counts []core.StatusCount) ([]StatusSlice, template.CSS) {
	if len(counts) == 0 {
		return nil, ""
	}
	var total int64
	for _, c := range counts {
		if c.Count > 0 {
			total += c.Count
		}
	}

	slices := make([]StatusSlice, 0, len(counts))
	stops := make([]string, 0, len(counts))
	hundred := decimal.NewFromInt(100)
	start := decimal.Zero
	for i, c := range counts {
		share := decimal.Zero
		if total > 0 && c.Count > 0 {
			share = decimal.NewFromInt(c.Count).Mul(hundred).Div(decimal.NewFromInt(total))
		}
		end := start.Add(share)
		if i == len(counts)-1 && total > 0 {
			end = hundred
		}
		color := palette[i%len(palette)]
		slices = append(slices, StatusSlice{
			Label:   c.Label,
			Count:   core.FormatCount(c.Count),
			Percent: share.StringFixed(1) + "%",
			Color:   color,
		})
		stops = append(stops, fmt.Sprintf("%s %s%% %s%%", color, start.StringFixed(2), end.StringFixed(2)))
		start = end
	}
	if total == 0 {
		return slices, template.CSS("background: #e5e7eb")
	}
	return slices, template.CSS("background: conic-gradient(" + strings.Join(stops, ", ") + ")")
}

// categoryBars sizes each bar as a rounded percentage of the largest total.
// Non-zero totals stay visible at 2% or more.
func categoryBars(totals []core.CategoryTotal) []CategoryBar {
	if len(totals) == 0 {
		return nil
	}
	peak := decimal.Zero
	for _, t := range totals {
		if t.Total.GreaterThan(peak) {
			peak = t.Total
		}
	}

	bars := make([]CategoryBar, 0, len(totals))
	for i, t := range totals {
		percent := 0
		if peak.IsPositive() && t.Total.IsPositive() {
			percent = int(t.Total.Mul(decimal.NewFromInt(100)).Div(peak).Round(0).IntPart())
			if percent < 2 {
				percent = 2
			}
		}
		bars = append(bars, CategoryBar{
			Label:   t.Label,
			Total:   core.FormatCurrency(t.Total),
			Percent: percent,
			Color:   palette[i%len(palette)],
		})
	}
	return bars
}
