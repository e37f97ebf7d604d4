package model

import (
	"crypto/rand"
	"fmt"
	"stayledger/shared/model"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "affiliates"
	EntityName = "affiliate"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldReferralCode    = "referral_code"
	FieldCommissionRate  = "commission_rate"
	FieldActive          = "active"
	FieldBankName        = "bank_name"
	FieldBankAccount     = "bank_account"
	FieldBankAccountName = "bank_account_name"
)

const (
	ReferralCodePrefix = "REF"
	ReferralCodeLength = 6
)

type Affiliate struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	ReferralCode    string          `db:"referral_code"`
	CommissionRate  decimal.Decimal `db:"commission_rate"`
	TotalEarned     decimal.Decimal `db:"total_earned"`
	PendingBalance  decimal.Decimal `db:"pending_balance"`
	PaidBalance     decimal.Decimal `db:"paid_balance"`
	TotalClicks     int             `db:"total_clicks"`
	TotalBookings   int             `db:"total_bookings"`
	Active          bool            `db:"active"`
	BankName        string          `db:"bank_name"`
	BankAccount     string          `db:"bank_account"`
	BankAccountName string          `db:"bank_account_name"`
	model.Metadata
}

func (a Affiliate) HasBankDetails() bool {
	return a.BankName != "" && a.BankAccount != "" && a.BankAccountName != ""
}

// CanEarn reports whether bookings may be attributed to the affiliate.
func (a Affiliate) CanEarn() bool {
	return a.ID != "" && a.Active
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReferralCode returns ReferralCodePrefix followed by ReferralCodeLength random characters.
// Uniqueness is enforced by the store; callers retry on collision.
func NewReferralCode() (string, error) {
	buf := make([]byte, ReferralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, ReferralCodeLength)
	for i, b := range buf {
		code[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}

	return ReferralCodePrefix + string(code), nil
}

// NormalizeReferralCode makes codes typed by hand comparable with stored ones.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
