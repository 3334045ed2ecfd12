package views

import (
	"context"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"fundboard/internal/core"
	"fundboard/internal/session"
)

// ReportRoles may open the Reports page; the backend enforces the same set.
var ReportRoles = []string{"admin", "auditor"}

// CanViewReports reports whether the signed-in user may see reports.
func CanViewReports(snap session.Snapshot) bool {
	return snap.User != nil && slices.Contains(ReportRoles, snap.User.Role)
}

type CountRow struct {
	Label string
	Count string
}

type UtilizationRow struct {
	Category  string
	Count     string
	Allocated string
	Released  string
}

type TypeRow struct {
	Type   string
	Count  string
	Amount string
}

type TransactionRow struct {
	Date   string
	Fund   string
	Type   string
	Amount string
	Status string
	Hash   string
}

// UtilizationView summarizes allocations and releases across funds.
type UtilizationView struct {
	Section
	Metrics    []Metric
	Categories []UtilizationRow
	Statuses   []CountRow
}

// AuditView summarizes on-chain transactions.
type AuditView struct {
	Section
	Metrics      []Metric
	Types        []TypeRow
	Statuses     []CountRow
	Transactions []TransactionRow
}

// ReportsView is the model of the Reports page. Each report resolves
// independently.
type ReportsView struct {
	Utilization UtilizationView
	Audit       AuditView
}

// Reports fetches the utilization and audit reports concurrently.
func (v *Views) Reports(ctx context.Context, snap session.Snapshot) ReportsView {
	var view ReportsView
	var g errgroup.Group
	g.Go(func() error {
		u, section := get[core.UtilizationReport](ctx, v, snap, "/reports/utilization")
		view.Utilization = utilizationView(u, section)
		return nil
	})
	g.Go(func() error {
		a, section := get[core.AuditReport](ctx, v, snap, "/reports/audit")
		view.Audit = auditView(a, section)
		return nil
	})
	_ = g.Wait()
	return view
}

func utilizationView(u core.UtilizationReport, section Section) UtilizationView {
	view := UtilizationView{Section: section}
	if !section.Available() {
		return view
	}
	view.Metrics = []Metric{
		{Label: "Total Funds", Value: core.FormatCount(u.TotalFunds)},
		{Label: "Total Allocated", Value: core.FormatCurrency(u.TotalAllocated)},
		{Label: "Total Released", Value: core.FormatCurrency(u.TotalReleased)},
		{Label: "Total Pending", Value: core.FormatCurrency(u.TotalPending)},
	}
	for _, cat := range slices.Sorted(maps.Keys(u.ByCategory)) {
		c := u.ByCategory[cat]
		view.Categories = append(view.Categories, UtilizationRow{
			Category:  cat,
			Count:     core.FormatCount(c.Count),
			Allocated: core.FormatCurrency(c.Allocated),
			Released:  core.FormatCurrency(c.Released),
		})
	}
	view.Statuses = countRows(u.ByStatus)
	return view
}

func auditView(a core.AuditReport, section Section) AuditView {
	view := AuditView{Section: section}
	if !section.Available() {
		return view
	}
	view.Metrics = []Metric{
		{Label: "Total Transactions", Value: core.FormatCount(a.TotalTransactions)},
		{Label: "Total Amount", Value: core.FormatCurrency(a.TotalAmount)},
	}
	for _, typ := range slices.Sorted(maps.Keys(a.ByType)) {
		t := a.ByType[typ]
		view.Types = append(view.Types, TypeRow{
			Type:   typ,
			Count:  core.FormatCount(t.Count),
			Amount: core.FormatCurrency(t.Amount),
		})
	}
	view.Statuses = countRows(a.ByStatus)
	for _, tx := range a.Transactions {
		view.Transactions = append(view.Transactions, TransactionRow{
			Date:   core.DatePart(tx.Timestamp),
			Fund:   tx.Fund.Label(),
			Type:   tx.Type,
			Amount: core.FormatCurrency(tx.Amount),
			Status: tx.Status,
			Hash:   tx.TransactionHash,
		})
	}
	return view
}

func countRows(counts map[string]int64) []CountRow {
	rows := make([]CountRow, 0, len(counts))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		rows = append(rows, CountRow{Label: k, Count: core.FormatCount(counts[k])})
	}
	return rows
}
