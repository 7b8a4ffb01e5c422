package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownFilter indicates an unsupported client filter.
	ErrUnknownFilter = newError(ErrValidation, "unknown client filter")
	// ErrUnknownSort indicates an unsupported client sort key.
	ErrUnknownSort = newError(ErrValidation, "unknown client sort key")
)

// ClientWithBalance is a client joined with its current active account.
type ClientWithBalance struct {
	Client
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	HasActiveAccount bool            `json:"has_active_account"`
	ActiveAccountID  string          `json:"active_account_id,omitempty"`
	// LastActivityAt is nil when the client never had an account.
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

// ClosedAccountGroup holds the closed accounts of a single client, most recent first.
type ClosedAccountGroup struct {
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Accounts   []Account `json:"accounts"`
}

// ClientFilter selects clients by their debt status.
type ClientFilter string

// Supported client filters.
const (
	FilterAll      ClientFilter = "all"
	FilterPending  ClientFilter = "pending"
	FilterInactive ClientFilter = "inactive"
)

// ClientSort orders the client listing.
type ClientSort string

// Supported client sort keys.
const (
	SortNameAsc     ClientSort = "name-asc"
	SortNameDesc    ClientSort = "name-desc"
	SortRecent      ClientSort = "recent"
	SortOldest      ClientSort = "oldest"
	SortBalanceDesc ClientSort = "balance-desc"
	SortBalanceAsc  ClientSort = "balance-asc"
)

// ClientQuery holds the search, filter and sort criteria of a client listing.
type ClientQuery struct {
	SearchText string       `json:"search_text"`
	Filter     ClientFilter `json:"filter"`
	Sort       ClientSort   `json:"sort"`
}

// Validate fills defaults and rejects unknown filter or sort values.
func (q ClientQuery) Validate() (ClientQuery, error) {
	if q.Filter == "" {
		q.Filter = FilterAll
	}

	if q.Sort == "" {
		q.Sort = SortNameAsc
	}

	switch q.Filter {
	case FilterAll, FilterPending, FilterInactive:
	default:
		return q, ErrUnknownFilter
	}

	switch q.Sort {
	case SortNameAsc, SortNameDesc, SortRecent, SortOldest, SortBalanceDesc, SortBalanceAsc:
	default:
		return q, ErrUnknownSort
	}

	return q, nil
}

// SummaryTotals holds the aggregated debt figures over all clients.
type SummaryTotals struct {
	TotalClients          int             `json:"total_clients"`
	ClientsWithDebt       int             `json:"clients_with_debt"`
	ClientsSettled        int             `json:"clients_settled"`
	ClientsWithoutAccount int             `json:"clients_without_account"`
	TotalOutstanding      decimal.Decimal `json:"total_outstanding"`
}
