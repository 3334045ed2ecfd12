package views

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"fundboard/internal/core"
	"fundboard/internal/gateway"
	"fundboard/internal/notice"
	"fundboard/internal/session"
)

// fundIDPattern matches the identifiers the backend issues.
var fundIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type ApprovalItem struct {
	Authority string
	Date      string
	Remarks   string
}

type MilestoneItem struct {
	Description string
	Amount      string
	Deadline    string
	Status      string
}

// FundView is the model of the single fund page.
type FundView struct {
	Section
	ID         string
	Title      string
	Facts      []Metric
	Approvals  []ApprovalItem
	Milestones []MilestoneItem
}

// Fund fetches one fund with its populated users. A missing or malformed id
// never reaches the backend.
func (v *Views) Fund(ctx context.Context, snap session.Snapshot, id string) FundView {
	view := FundView{ID: id, Title: "Fund Details"}
	if !fundIDPattern.MatchString(id) {
		notice.FromContext(ctx).Add(notice.Warning, "Select a fund from the Funds page to see its details")
		view.Section = Section{State: gateway.Failed, Message: "Fund not found"}
		return view
	}

	f, section := get[core.FundDetail](ctx, v, snap, "/funds/"+url.PathEscape(id))
	view.Section = section
	if !section.Available() {
		return view
	}

	view.Title = fmt.Sprintf("%s (%s)", f.ProjectName, f.Status)
	view.Facts = []Metric{
		{Label: "Description", Value: f.Description},
		{Label: "Category", Value: string(f.Category)},
		{Label: "Total Amount", Value: core.FormatCurrency(f.TotalAmount)},
		{Label: "Released", Value: core.FormatCurrency(f.ReleasedAmount)},
		{Label: "Remaining", Value: core.FormatCurrency(f.Remaining())},
		{Label: "Beneficiary", Value: f.Beneficiary.Label()},
	}
	optional := []Metric{
		{Label: "Beneficiary Email", Value: f.Beneficiary.Email},
		{Label: "Beneficiary Wallet", Value: f.Beneficiary.WalletAddress},
		{Label: "Allocated By", Value: f.AllocatedBy.Label()},
		{Label: "Allocated Date", Value: core.DatePart(f.CreatedAt)},
		{Label: "Transaction Hash", Value: f.TransactionHash},
		{Label: "Blockchain Status", Value: f.BlockchainStatus},
		{Label: "Remarks", Value: f.Remarks},
	}
	for _, m := range optional {
		if m.Value != "" {
			view.Facts = append(view.Facts, m)
		}
	}

	for _, a := range f.Approvals {
		view.Approvals = append(view.Approvals, ApprovalItem{
			Authority: a.Authority.Label(),
			Date:      core.DatePart(a.ApprovedAt),
			Remarks:   a.Remarks,
		})
	}
	for _, m := range f.Milestones {
		view.Milestones = append(view.Milestones, MilestoneItem{
			Description: m.Description,
			Amount:      core.FormatCurrency(m.Amount),
			Deadline:    core.DatePart(m.Deadline),
			Status:      m.Status,
		})
	}
	return view
}
