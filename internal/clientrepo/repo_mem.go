package clientrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// RepoMem is an in-memory client repository. It is safe for concurrent use.
type RepoMem struct {
	mu      sync.RWMutex
	clients map[string]domain.Client
	order   []string
}

// NewRepoMem returns an empty in-memory client repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		clients: make(map[string]domain.Client),
	}
}

// Create creates the client with a generated id and then returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateClientParams) (domain.Client, error) {
	if strings.TrimSpace(arg.Name) == "" {
		return domain.Client{}, domain.ErrEmptyName
	}

	c := domain.Client{
		ID:           uuid.NewString(),
		Name:         arg.Name,
		Reference:    arg.Reference,
		RegisteredAt: arg.RegisteredAt,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[c.ID] = c
	r.order = append(r.order, c.ID)

	return c, nil
}

// Get returns the client with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}

	return c, nil
}

// List returns all clients in registration order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Client, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.clients[id])
	}

	return items, nil
}

// Update changes the client name and reference and returns the changed client.
func (r *RepoMem) Update(ctx context.Context, arg domain.UpdateClientParams) (domain.Client, error) {
	if strings.TrimSpace(arg.Name) == "" {
		return domain.Client{}, domain.ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[arg.ID]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}

	c.Name = arg.Name
	c.Reference = arg.Reference
	r.clients[c.ID] = c

	return c, nil
}
