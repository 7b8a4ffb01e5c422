package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the kind of balance movement.
type EntryKind string

// Entry kinds.
const (
	EntryCharge  EntryKind = "charge"
	EntryPayment EntryKind = "payment"
)

// Entry holds balance change data for an account.
type Entry struct {
	ID        int64     `json:"id"`
	AccountID string    `json:"account_id"`
	Kind      EntryKind `json:"kind"`
	// Amount is the requested amount, always positive.
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateEntryParams is the input data to append an entry.
type CreateEntryParams struct {
	AccountID    string
	Kind         EntryKind
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}
