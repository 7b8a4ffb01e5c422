package accountrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/entryrepo"
)

// RepoMem is an in-memory account repository. It is safe for concurrent use.
//
// Accounts are stored and returned by value, so readers always observe a
// whole (balance, status) pair.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []string
	entries  *entryrepo.RepoMem
}

// NewRepoMem returns an empty in-memory account repository that appends
// posted entries to the given journal.
func NewRepoMem(entries *entryrepo.RepoMem) *RepoMem {
	return &RepoMem{
		accounts: make(map[string]domain.Account),
		entries:  entries,
	}
}

func clone(a domain.Account) domain.Account {
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		a.ClosedAt = &t
	}

	return a
}

// Create creates an active account with zero balance and then returns it.
//
// Unlike the PostgreSQL repository it does not check that the client exists.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	a := domain.Account{
		ID:        uuid.NewString(),
		ClientID:  arg.ClientID,
		Status:    domain.AccountActive,
		Balance:   decimal.Zero,
		OpenedAt:  arg.OpenedAt,
		UpdatedAt: arg.OpenedAt,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if other := r.accounts[id]; other.ClientID == arg.ClientID && other.IsActive() {
			return domain.Account{}, domain.ErrActiveAccountExists
		}
	}

	r.accounts[a.ID] = a
	r.order = append(r.order, a.ID)

	return clone(a), nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return clone(a), nil
}

// GetActiveForClient returns the unique active account of the client.
func (r *RepoMem) GetActiveForClient(ctx context.Context, clientID string) (domain.Account, error) {
	active := r.filter(func(a domain.Account) bool {
		return a.ClientID == clientID && a.IsActive()
	})

	switch len(active) {
	case 0:
		return domain.Account{}, domain.ErrNoActiveAccount
	case 1:
		return active[0], nil
	}

	return domain.Account{}, domain.ErrMultipleActiveAccounts
}

// GetLatestForClient returns the most recently updated account of the client.
func (r *RepoMem) GetLatestForClient(ctx context.Context, clientID string) (domain.Account, error) {
	accounts := r.filter(func(a domain.Account) bool {
		return a.ClientID == clientID
	})

	if len(accounts) == 0 {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	latest := accounts[0]
	for _, a := range accounts[1:] {
		if a.UpdatedAt.After(latest.UpdatedAt) {
			latest = a
		}
	}

	return latest, nil
}

// ListForClient returns all accounts of the client, newest first.
func (r *RepoMem) ListForClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	accounts := r.filter(func(a domain.Account) bool {
		return a.ClientID == clientID
	})

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].OpenedAt.After(accounts[j].OpenedAt)
	})

	return accounts, nil
}

// ListClosed returns all closed accounts.
func (r *RepoMem) ListClosed(ctx context.Context) ([]domain.Account, error) {
	return r.filter(func(a domain.Account) bool {
		return a.Status == domain.AccountClosed
	}), nil
}

// ListCurrent returns one account per client that has any: the active one,
// or else the most recently updated.
func (r *RepoMem) ListCurrent(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current := make(map[string]domain.Account)
	clientOrder := []string{}

	for _, id := range r.order {
		a := r.accounts[id]

		cur, ok := current[a.ClientID]
		switch {
		case !ok:
			clientOrder = append(clientOrder, a.ClientID)
		case cur.IsActive() && a.IsActive():
			return nil, domain.ErrMultipleActiveAccounts
		case cur.IsActive():
			continue
		case !a.IsActive() && !a.UpdatedAt.After(cur.UpdatedAt):
			continue
		}

		current[a.ClientID] = a
	}

	items := make([]domain.Account, 0, len(clientOrder))
	for _, clientID := range clientOrder {
		items = append(items, clone(current[clientID]))
	}

	return items, nil
}

func (r *RepoMem) filter(keep func(domain.Account) bool) []domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []domain.Account{}

	for _, id := range r.order {
		if a := r.accounts[id]; keep(a) {
			items = append(items, clone(a))
		}
	}

	return items
}

// Save persists the full account record. Closed accounts are never overwritten.
func (r *RepoMem) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkWritable(a); err != nil {
		return domain.Account{}, err
	}

	r.accounts[a.ID] = clone(a)

	return clone(a), nil
}

// Post saves the account and appends the entry as one operation.
func (r *RepoMem) Post(ctx context.Context, a domain.Account, arg domain.CreateEntryParams) (domain.Account, domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkWritable(a); err != nil {
		return domain.Account{}, domain.Entry{}, err
	}

	entry, err := r.entries.Create(ctx, arg)
	if err != nil {
		return domain.Account{}, domain.Entry{}, err
	}

	r.accounts[a.ID] = clone(a)

	return clone(a), entry, nil
}

func (r *RepoMem) checkWritable(a domain.Account) error {
	stored, ok := r.accounts[a.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	if !stored.IsActive() {
		return domain.ErrAccountNotActive
	}

	if a.Balance.IsNegative() {
		return domain.ErrInvalidAmount
	}

	return nil
}
