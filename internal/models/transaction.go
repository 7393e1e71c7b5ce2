package models

import "time"

// Transaction types
const (
	TransactionTypeCredit  = "credit"
	TransactionTypeDebit   = "debit"
	TransactionTypeDeposit = "deposit"
)

// Transaction statuses
const (
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
	TransactionStatusPending = "pending"
)

// Transaction is an append-only ledger entry. Rows are never mutated or
// deleted; BalanceAfter snapshots the wallet balance once the entry applied.
type Transaction struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Type          string    `gorm:"column:transaction_type;not null" json:"transaction_type"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `gorm:"default:'success'" json:"status"`
	BalanceAfter  float64   `gorm:"type:decimal(10,2)" json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`
}
