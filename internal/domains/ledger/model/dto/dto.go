package dto

import (
	"stayledger/internal/domains/ledger/model"
	"stayledger/shared"
	"stayledger/shared/constant"

	"github.com/shopspring/decimal"
)

type EntryResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	ReferenceID    string          `json:"reference_id"`
	TotalEarned    decimal.Decimal `json:"total_earned"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	PaidBalance    decimal.Decimal `json:"paid_balance"`
	CreatedAt      string          `json:"created_at"`
}

func (r *EntryResponse) FromModel(entry model.Entry) {
	r.ID = entry.ID
	r.Kind = string(entry.Kind)
	r.Amount = entry.Amount
	r.ReferenceID = entry.ReferenceID
	r.TotalEarned = entry.TotalEarned
	r.PendingBalance = entry.PendingBalance
	r.PaidBalance = entry.PaidBalance
	r.CreatedAt = entry.CreatedAt.Format(constant.DateFormat)
}

type GetEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEntriesResponse) FromModels(entries []model.Entry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Entries = make([]EntryResponse, len(entries))
	for i, entry := range entries {
		r.Entries[i].FromModel(entry)
	}
}

type ExportStatementResponse struct {
	URL      string `json:"url"`
	Entries  int    `json:"entries"`
	Checksum string `json:"checksum"`
}

type ViolationResponse struct {
	AffiliateID    string          `json:"affiliate_id"`
	ReferralCode   string          `json:"referral_code"`
	TotalEarned    decimal.Decimal `json:"total_earned"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	PaidBalance    decimal.Decimal `json:"paid_balance"`
	Reserved       decimal.Decimal `json:"reserved"`
	Drift          decimal.Decimal `json:"drift"`
}

type ReconcileResponse struct {
	Balanced   bool                `json:"balanced"`
	Violations []ViolationResponse `json:"violations"`
	CheckedAt  string              `json:"checked_at"`
}

func (r *ReconcileResponse) FromModels(violations []model.Violation) {
	r.Balanced = len(violations) == 0

	r.Violations = make([]ViolationResponse, len(violations))
	for i, v := range violations {
		r.Violations[i] = ViolationResponse{
			AffiliateID:    v.AffiliateID,
			ReferralCode:   v.ReferralCode,
			TotalEarned:    v.TotalEarned,
			PendingBalance: v.PendingBalance,
			PaidBalance:    v.PaidBalance,
			Reserved:       v.Reserved,
			Drift:          v.Drift(),
		}
	}
}
