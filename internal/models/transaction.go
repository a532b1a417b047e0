package models

import "time"

// DefaultUserID tags every record in single-user mode.
const DefaultUserID = "default_user"

// TransactionType is the closed set of ledger record kinds.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the recognized kinds.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one income or expense record. Records are immutable once
// created; the only lifecycle operation after creation is deletion.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      string          `gorm:"index;size:64;not null" json:"user_id"`
	Type        TransactionType `gorm:"size:16;not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    string          `gorm:"size:64" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
}
