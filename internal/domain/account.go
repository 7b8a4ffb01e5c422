package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = newError(ErrNotFound, "account not found")
	// ErrNoActiveAccount indicates that the client has no active account.
	ErrNoActiveAccount = newError(ErrNotFound, "client has no active account")
	// ErrActiveAccountExists indicates that the client already has an active account.
	ErrActiveAccountExists = newError(ErrConflict, "client already has an active account")
	// ErrAccountNotActive indicates that the account is already closed.
	ErrAccountNotActive = newError(ErrState, "account is not active")
	// ErrOutstandingBalance indicates that the account can't be closed with a nonzero balance.
	ErrOutstandingBalance = newError(ErrState, "account has an outstanding balance")
	// ErrInvalidAmount indicates that the amount is not positive or exceeds the accepted maximum.
	ErrInvalidAmount = newError(ErrValidation, "amount must be positive and within the accepted maximum")
	// ErrMultipleActiveAccounts indicates that storage holds more than one active account for a client.
	ErrMultipleActiveAccounts = newError(ErrInvariantViolation, "client has more than one active account")
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// Account statuses. Closed is terminal.
const (
	AccountActive AccountStatus = "active"
	AccountClosed AccountStatus = "closed"
)

// Account holds a debt-tracking period of a client.
type Account struct {
	ID       string          `json:"id"`
	ClientID string          `json:"client_id"`
	Status   AccountStatus   `json:"status"`
	Balance  decimal.Decimal `json:"balance"`
	OpenedAt time.Time       `json:"opened_at"`
	// ClosedAt is set iff Status is AccountClosed.
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsActive reports whether the account still accrues charges and payments.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// CreateAccountParams is the input data to store a new active account.
type CreateAccountParams struct {
	ClientID string
	OpenedAt time.Time
}

// ClosePolicy decides whether an account with outstanding balance may be closed.
type ClosePolicy string

// Supported close policies.
const (
	// RequireZeroBalance rejects closing an account with a nonzero balance.
	RequireZeroBalance ClosePolicy = "require-zero"
	// AllowWriteOff closes accounts with a nonzero balance when the request confirms a write-off.
	AllowWriteOff ClosePolicy = "allow-write-off"
)

// ChargeRequest is the input data to increase the account debt.
type ChargeRequest struct {
	AccountID string
	Amount    decimal.Decimal
}

// PaymentRequest is the input data to decrease the account debt.
type PaymentRequest struct {
	AccountID string
	Amount    decimal.Decimal
}

// CloseRequest is the input data to close an account.
type CloseRequest struct {
	AccountID string
	// WriteOff confirms closing with an outstanding balance.
	WriteOff bool
}
