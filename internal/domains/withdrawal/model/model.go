package model

import (
	"database/sql"
	"stayledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "withdrawals"
	EntityName = "withdrawal"

	FieldID          = "id"
	FieldAffiliateID = "affiliate_id"
	FieldStatus      = "status"
	FieldProcessedAt = "processed_at"
	FieldProcessedBy = "processed_by"
	FieldTransferRef = "transfer_ref"
	FieldNotes       = "notes"

	// ArgCurrentStatus names the filter argument of the conditional transition so it does not
	// collide with the status being written.
	ArgCurrentStatus = "current_status"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status returns the terminal state a decision moves a pending withdrawal into.
func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusCompleted
	}

	return StatusRejected
}

type Withdrawal struct {
	ID              string          `db:"id"`
	AffiliateID     string          `db:"affiliate_id"`
	Amount          decimal.Decimal `db:"amount"`
	Status          Status          `db:"status"`
	BankName        string          `db:"bank_name"`
	BankAccount     string          `db:"bank_account"`
	BankAccountName string          `db:"bank_account_name"`
	ProcessedAt     sql.NullTime    `db:"processed_at"`
	ProcessedBy     string          `db:"processed_by"`
	TransferRef     string          `db:"transfer_ref"`
	Notes           string          `db:"notes"`
	model.Metadata
}
