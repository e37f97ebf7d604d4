package model

import (
	"stayledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "ledger_entries"
	EntityName = "ledger_entry"

	FieldID          = "id"
	FieldAffiliateID = "affiliate_id"
	FieldKind        = "kind"
	FieldReferenceID = "reference_id"
)

type Kind string

const (
	KindBookingCommission  Kind = "BOOKING_COMMISSION"
	KindWithdrawalReserved Kind = "WITHDRAWAL_RESERVED"
	KindWithdrawalPaid     Kind = "WITHDRAWAL_PAID"
	KindWithdrawalReleased Kind = "WITHDRAWAL_RELEASED"
)

// Entry is one append-only record of a balance mutation, carrying the balances as they stood
// right after it was applied.
type Entry struct {
	ID             string          `db:"id"`
	AffiliateID    string          `db:"affiliate_id"`
	Kind           Kind            `db:"kind"`
	Amount         decimal.Decimal `db:"amount"`
	ReferenceID    string          `db:"reference_id"`
	TotalEarned    decimal.Decimal `db:"total_earned"`
	PendingBalance decimal.Decimal `db:"pending_balance"`
	PaidBalance    decimal.Decimal `db:"paid_balance"`
	model.Metadata
}

// Balance is the affiliate's stored balance triple returned by every atomic mutation.
type Balance struct {
	AffiliateID    string          `db:"id"`
	TotalEarned    decimal.Decimal `db:"total_earned"`
	PendingBalance decimal.Decimal `db:"pending_balance"`
	PaidBalance    decimal.Decimal `db:"paid_balance"`
	TotalBookings  int             `db:"total_bookings"`
}

func (b Balance) Found() bool {
	return b.AffiliateID != ""
}

// Violation is an affiliate whose stored balances break
// total_earned = pending_balance + paid_balance + reserved.
type Violation struct {
	AffiliateID    string          `db:"id"`
	ReferralCode   string          `db:"referral_code"`
	TotalEarned    decimal.Decimal `db:"total_earned"`
	PendingBalance decimal.Decimal `db:"pending_balance"`
	PaidBalance    decimal.Decimal `db:"paid_balance"`
	Reserved       decimal.Decimal `db:"reserved"`
}

func (v Violation) Drift() decimal.Decimal {
	return v.TotalEarned.Sub(v.PendingBalance).Sub(v.PaidBalance).Sub(v.Reserved)
}
