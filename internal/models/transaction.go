package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTransferIn  = "transfer_in"
	TransactionTransferOut = "transfer_out"
)

// Transaction represents a ledger entry for a user account
type Transaction struct {
	gorm.Model

	TransactionID string    `json:"id" gorm:"uniqueIndex"`
	UserID        string    `json:"user_id" gorm:"index"`
	Type          string    `json:"type"` // "transfer_in" or "transfer_out"
	Amount        int64     `json:"amount"`
	Description   string    `json:"description"`
	BalanceAfter  int64     `json:"balance_after"`
	Timestamp     time.Time `json:"timestamp" gorm:"index"`
}

// BeforeCreate hook to auto-generate TransactionID and timestamp
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == "" {
		t.TransactionID = uuid.NewString()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	return nil
}

// SignedAmount returns the amount with sign derived from the type
func (t *Transaction) SignedAmount() int64 {
	if t.Type == TransactionTransferOut {
		return -t.Amount
	}
	return t.Amount
}
