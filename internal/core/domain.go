package core

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  FundStatus = "Pending"
	StatusApproved FundStatus = "Approved"
	StatusReleased FundStatus = "Released"
	StatusRejected FundStatus = "Rejected"
)

const (
	CategoryEducation      FundCategory = "Education"
	CategoryHealthcare     FundCategory = "Healthcare"
	CategoryInfrastructure FundCategory = "Infrastructure"
	CategorySocialWelfare  FundCategory = "SocialWelfare"
	CategoryAgriculture    FundCategory = "Agriculture"
)

type (
	FundStatus   string
	FundCategory string

	// UserProfile is the user record returned by the login endpoint. Role is
	// kept free-form: the backend owns the set of valid roles.
	UserProfile struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Role          string `json:"role"`
		Organization  string `json:"organization,omitempty"`
		WalletAddress string `json:"walletAddress,omitempty"`
	}

	// Party is a user referenced from a fund. The backend sends either the
	// populated object or just its ID.
	Party struct {
		Name          string `json:"name"`
		Email         string `json:"email,omitempty"`
		Organization  string `json:"organization"`
		WalletAddress string `json:"walletAddress,omitempty"`
	}

	FundRecord struct {
		ID          string            `json:"_id"`
		ProjectName string            `json:"projectName"`
		Description string            `json:"description"`
		Category    FundCategory      `json:"category"`
		Status      FundStatus        `json:"status"`
		TotalAmount decimal.Decimal   `json:"totalAmount"`
		Beneficiary Party             `json:"beneficiary"`
		CreatedAt   string            `json:"createdAt"`
		Approvals   []json.RawMessage `json:"approvals,omitempty"` // contents are opaque
	}

	StatusCount struct {
		Label string `json:"_id"`
		Count int64  `json:"count"`
	}

	CategoryTotal struct {
		Label string          `json:"_id"`
		Total decimal.Decimal `json:"total"`
	}

	StatsOverview struct {
		TotalFunds     int64           `json:"totalFunds"`
		TotalAllocated decimal.Decimal `json:"totalAllocated"`
		TotalReleased  decimal.Decimal `json:"totalReleased"`
		ByStatus       []StatusCount   `json:"byStatus"`
		ByCategory     []CategoryTotal `json:"byCategory"`
	}
)

// FundStatuses lists the statuses a fund can be filtered by, in display order.
func FundStatuses() []FundStatus {
	return []FundStatus{StatusPending, StatusApproved, StatusReleased, StatusRejected}
}

// FundCategories lists the categories a fund can be filtered by, in display order.
func FundCategories() []FundCategory {
	return []FundCategory{
		CategoryEducation,
		CategoryHealthcare,
		CategoryInfrastructure,
		CategorySocialWelfare,
		CategoryAgriculture,
	}
}

// UnmarshalJSON accepts either a populated user object or a bare reference
// string, which the backend returns when it does not populate.
func (p *Party) UnmarshalJSON(data []byte) error {
	if ref, ok, err := reference(data); ok || err != nil {
		*p = Party{Name: ref}
		return err
	}
	type plain Party
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Party(v)
	return nil
}

// Label is the name followed by the organization in parentheses, if any.
func (p Party) Label() string {
	if p.Organization == "" {
		return p.Name
	}
	return p.Name + " (" + p.Organization + ")"
}

// reference decodes data as a JSON string. ok is false when data holds
// something else.
func reference(data []byte) (ref string, ok bool, err error) {
	if !strings.HasPrefix(strings.TrimSpace(string(data)), `"`) {
		return "", false, nil
	}
	err = json.Unmarshal(data, &ref)
	return ref, true, err
}

// AllocatedDate returns the date portion of CreatedAt.
func (f FundRecord) AllocatedDate() string {
	return DatePart(f.CreatedAt)
}

// DatePart returns the YYYY-MM-DD prefix of an ISO-8601 timestamp.
func DatePart(ts string) string {
	if len(ts) <= 10 {
		return ts
	}
	return ts[:10]
}

// ApprovalCount returns the number of approvals recorded on the fund.
func (f FundRecord) ApprovalCount() int {
	return len(f.Approvals)
}
