package core

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type (
	Approval struct {
		Authority  Party  `json:"authority"`
		ApprovedAt string `json:"approvedAt"`
		Remarks    string `json:"remarks"`
	}

	Milestone struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Deadline    string          `json:"deadline"`
		Status      string          `json:"status"`
	}

	// FundDetail is a single fund as returned by /funds/{id}, with its
	// users populated.
	FundDetail struct {
		ID               string          `json:"_id"`
		ProjectName      string          `json:"projectName"`
		Description      string          `json:"description"`
		Category         FundCategory    `json:"category"`
		Status           FundStatus      `json:"status"`
		TotalAmount      decimal.Decimal `json:"totalAmount"`
		ReleasedAmount   decimal.Decimal `json:"releasedAmount"`
		Beneficiary      Party           `json:"beneficiary"`
		AllocatedBy      Party           `json:"allocatedBy"`
		Approvals        []Approval      `json:"approvals"`
		Milestones       []Milestone     `json:"milestones"`
		TransactionHash  string          `json:"transactionHash"`
		BlockchainStatus string          `json:"blockchainStatus"`
		Remarks          string          `json:"remarks"`
		CreatedAt        string          `json:"createdAt"`
	}

	CategoryUtilization struct {
		Count     int64           `json:"count"`
		Allocated decimal.Decimal `json:"allocated"`
		Released  decimal.Decimal `json:"released"`
	}

	// UtilizationReport is the /reports/utilization payload. The fund list
	// it also carries is not decoded.
	UtilizationReport struct {
		TotalFunds     int64                          `json:"totalFunds"`
		TotalAllocated decimal.Decimal                `json:"totalAllocated"`
		TotalReleased  decimal.Decimal                `json:"totalReleased"`
		TotalPending   decimal.Decimal                `json:"totalPending"`
		ByCategory     map[string]CategoryUtilization `json:"byCategory"`
		ByStatus       map[string]int64               `json:"byStatus"`
	}

	TypeTotal struct {
		Count  int64           `json:"count"`
		Amount decimal.Decimal `json:"amount"`
	}

	// FundRef is the fund a transaction belongs to, populated or not.
	FundRef struct {
		ID          string       `json:"_id"`
		ProjectName string       `json:"projectName"`
		Category    FundCategory `json:"category"`
	}

	Transaction struct {
		FundID          int64           `json:"fundId"`
		Fund            FundRef         `json:"fund"`
		TransactionHash string          `json:"transactionHash"`
		From            string          `json:"from"`
		To              string          `json:"to"`
		Amount          decimal.Decimal `json:"amount"`
		Type            string          `json:"type"`
		Status          string          `json:"status"`
		Timestamp       string          `json:"timestamp"`
	}

	// AuditReport is the /reports/audit payload, newest transaction first.
	AuditReport struct {
		TotalTransactions int64                `json:"totalTransactions"`
		TotalAmount       decimal.Decimal      `json:"totalAmount"`
		ByType            map[string]TypeTotal `json:"byType"`
		ByStatus          map[string]int64     `json:"byStatus"`
		Transactions      []Transaction        `json:"transactions"`
	}
)

// ApprovalCount returns the number of approvals recorded on the fund.
func (f FundDetail) ApprovalCount() int { return len(f.Approvals) }

// Remaining is the part of the total not yet released.
func (f FundDetail) Remaining() decimal.Decimal {
	return f.TotalAmount.Sub(f.ReleasedAmount)
}

// UnmarshalJSON accepts a populated fund or a bare fund ID.
func (r *FundRef) UnmarshalJSON(data []byte) error {
	if ref, ok, err := reference(data); ok || err != nil {
		*r = FundRef{ID: ref}
		return err
	}
	type plain FundRef
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = FundRef(v)
	return nil
}

// Label is the project name, or the ID when the fund was not populated.
func (r FundRef) Label() string {
	if r.ProjectName != "" {
		return r.ProjectName
	}
	return r.ID
}
