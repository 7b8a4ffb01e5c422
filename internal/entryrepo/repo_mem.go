package entryrepo

import (
	"context"
	"sync"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// RepoMem is an in-memory entry journal. It is safe for concurrent use.
type RepoMem struct {
	mu        sync.RWMutex
	lastID    int64
	byAccount map[string][]domain.Entry
}

// NewRepoMem returns an empty in-memory entry journal.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		byAccount: make(map[string][]domain.Entry),
	}
}

// Create appends the entry and then returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	if !arg.Amount.IsPositive() {
		return domain.Entry{}, domain.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++

	e := domain.Entry{
		ID:           r.lastID,
		AccountID:    arg.AccountID,
		Kind:         arg.Kind,
		Amount:       arg.Amount,
		BalanceAfter: arg.BalanceAfter,
		CreatedAt:    arg.CreatedAt,
	}

	r.byAccount[arg.AccountID] = append(r.byAccount[arg.AccountID], e)

	return e, nil
}

// List returns the entries of the given account, oldest first.
func (r *RepoMem) List(ctx context.Context, accountID string) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.byAccount[accountID]
	items := make([]domain.Entry, len(entries))
	copy(items, entries)

	return items, nil
}
