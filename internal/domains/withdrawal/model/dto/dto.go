package dto

import (
	"stayledger/internal/domains/withdrawal/model"
	"stayledger/shared"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"time"

	"github.com/shopspring/decimal"
)

type CreateWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"money"`
	Notes  string          `json:"notes"  validate:"omitempty,max=500"`
}

type DecideWithdrawalRequest struct {
	Decision    string `json:"decision"     validate:"required,oneof=approve reject"`
	TransferRef string `json:"transfer_ref" validate:"omitempty,max=100"`
	Notes       string `json:"notes"        validate:"omitempty,max=500"`
}

// UpdateDecisionRequest is the set of columns written by a decision.
type UpdateDecisionRequest struct {
	Status      model.Status `db:"status"`
	ProcessedAt time.Time    `db:"processed_at"`
	ProcessedBy string       `db:"processed_by"`
	TransferRef string       `db:"transfer_ref"`
	Notes       string       `db:"notes"`
}

type WithdrawalResponse struct {
	ID              string          `json:"id"`
	AffiliateID     string          `json:"affiliate_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	BankName        string          `json:"bank_name"`
	BankAccount     string          `json:"bank_account"`
	BankAccountName string          `json:"bank_account_name"`
	ProcessedAt     string          `json:"processed_at,omitempty"`
	ProcessedBy     string          `json:"processed_by,omitempty"`
	TransferRef     string          `json:"transfer_ref,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *WithdrawalResponse) FromModel(mod model.Withdrawal) {
	r.ID = mod.ID
	r.AffiliateID = mod.AffiliateID
	r.Amount = mod.Amount
	r.Status = string(mod.Status)
	r.BankName = mod.BankName
	r.BankAccount = mod.BankAccount
	r.BankAccountName = mod.BankAccountName
	r.ProcessedBy = mod.ProcessedBy
	r.TransferRef = mod.TransferRef
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)

	if mod.ProcessedAt.Valid {
		r.ProcessedAt = mod.ProcessedAt.Time.Format(constant.DateFormat)
	}
}

type GetWithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetWithdrawalsResponse) FromModels(models []model.Withdrawal, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Withdrawals = make([]WithdrawalResponse, len(models))
	for i, mod := range models {
		r.Withdrawals[i].FromModel(mod)
	}
}
