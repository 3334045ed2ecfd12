package views

import (
	"context"
	"fmt"

	"fundboard/internal/core"
	"fundboard/internal/session"
)

type FundItem struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Beneficiary   string
	AllocatedDate string
	Approvals     int
}

// FundsView is the model of the Funds page.
type FundsView struct {
	Section
	Filter          core.FundFilter
	StatusOptions   []string
	CategoryOptions []string
	Items           []FundItem
}

// Empty reports a successful fetch that matched nothing.
func (f FundsView) Empty() bool { return f.Available() && len(f.Items) == 0 }

// Funds lists the funds matching filter.
func (v *Views) Funds(ctx context.Context, snap session.Snapshot, filter core.FundFilter) FundsView {
	view := FundsView{
		Filter:          filter,
		StatusOptions:   core.StatusOptions(),
		CategoryOptions: core.CategoryOptions(),
	}

	records, section := get[[]core.FundRecord](ctx, v, snap, filter.Path())
	view.Section = section
	if !section.Available() {
		return view
	}
	for _, r := range records {
		view.Items = append(view.Items, fundItem(r))
	}
	return view
}

func fundItem(r core.FundRecord) FundItem {
	return FundItem{
		ID:            r.ID,
		Title:         fmt.Sprintf("%s (%s) - %s", r.ProjectName, r.Status, core.FormatWholeCurrency(r.TotalAmount)),
		Description:   r.Description,
		Category:      string(r.Category),
		Beneficiary:   r.Beneficiary.Label(),
		AllocatedDate: r.AllocatedDate(),
		Approvals:     r.ApprovalCount(),
	}
}
