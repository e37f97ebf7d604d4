package dto

import (
	"stayledger/internal/domains/affiliate/model"
	bookingDto "stayledger/internal/domains/booking/model/dto"
	withdrawalDto "stayledger/internal/domains/withdrawal/model/dto"
	"stayledger/shared"
	gDto "stayledger/shared/dto"

	"github.com/shopspring/decimal"
)

type UpdateBankRequest struct {
	BankName        string `db:"bank_name"         json:"bank_name"         validate:"required,max=100"`
	BankAccount     string `db:"bank_account"      json:"bank_account"      validate:"required,max=50"`
	BankAccountName string `db:"bank_account_name" json:"bank_account_name" validate:"required,max=255"`
}

// UpdateAffiliateRequest is the admin view of an affiliate. Rate changes only apply to
// bookings created afterwards.
type UpdateAffiliateRequest struct {
	Active         *bool            `db:"active"          json:"active,omitempty"`
	CommissionRate *decimal.Decimal `db:"commission_rate" json:"commission_rate,omitempty"`
}

type AffiliateResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ReferralCode    string          `json:"referral_code"`
	CommissionRate  decimal.Decimal `json:"commission_rate"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
	PendingBalance  decimal.Decimal `json:"pending_balance"`
	PaidBalance     decimal.Decimal `json:"paid_balance"`
	TotalClicks     int             `json:"total_clicks"`
	TotalBookings   int             `json:"total_bookings"`
	Active          bool            `json:"active"`
	BankName        string          `json:"bank_name,omitempty"`
	BankAccount     string          `json:"bank_account,omitempty"`
	BankAccountName string          `json:"bank_account_name,omitempty"`
	gDto.Metadata
}

func (r *AffiliateResponse) FromModel(mod model.Affiliate) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.ReferralCode = mod.ReferralCode
	r.CommissionRate = mod.CommissionRate
	r.TotalEarned = mod.TotalEarned
	r.PendingBalance = mod.PendingBalance
	r.PaidBalance = mod.PaidBalance
	r.TotalClicks = mod.TotalClicks
	r.TotalBookings = mod.TotalBookings
	r.Active = mod.Active
	r.BankName = mod.BankName
	r.BankAccount = mod.BankAccount
	r.BankAccountName = mod.BankAccountName
	r.Metadata.FromModel(mod.Metadata)
}

type GetAffiliatesResponse struct {
	Affiliates []AffiliateResponse `json:"affiliates"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetAffiliatesResponse) FromModels(models []model.Affiliate, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Affiliates = make([]AffiliateResponse, len(models))
	for i, mod := range models {
		r.Affiliates[i].FromModel(mod)
	}
}

type DashboardResponse struct {
	Affiliate         AffiliateResponse                  `json:"affiliate"`
	RecentBookings    []bookingDto.BookingResponse       `json:"recent_bookings"`
	RecentWithdrawals []withdrawalDto.WithdrawalResponse `json:"recent_withdrawals"`
}

// TrackResponse carries the signed attribution record the client keeps for later bookings.
type TrackResponse struct {
	ReferralCode string `json:"referral_code"`
	Token        string `json:"token"`
	ExpiresAt    string `json:"expires_at"`
	Captured     bool   `json:"captured"`
}
