// Package reportservice manages read-side listings and reports over the ledger.
package reportservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Ledger provides the ledger reads needed by report service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package reportservice
type Ledger interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListClientsWithBalance(ctx context.Context) ([]domain.ClientWithBalance, error)
	ListClosedAccounts(ctx context.Context) ([]domain.Account, error)
}

// Service facilitates report service layer logic.
type Service struct {
	ledger Ledger
	engine *Engine
}

// New returns report service struct to manage listings and reports.
func New(l Ledger, e *Engine) *Service {
	return &Service{
		ledger: l,
		engine: e,
	}
}

// Clients returns the clients with their balance matching the query.
func (s *Service) Clients(ctx context.Context, q domain.ClientQuery) ([]domain.ClientWithBalance, error) {
	l := zerolog.Ctx(ctx)

	if _, err := q.Validate(); err != nil {
		l.Info().Err(err).Send()
		return nil, err
	}

	clients, err := s.ledger.ListClientsWithBalance(ctx)
	if err != nil {
		return nil, err
	}

	return s.engine.FilterAndSort(clients, q)
}

// ClosedAccounts returns the closed accounts grouped by client.
func (s *Service) ClosedAccounts(ctx context.Context) ([]domain.ClosedAccountGroup, error) {
	accounts, err := s.ledger.ListClosedAccounts(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.ledger.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	groups := s.engine.GroupClosedAccountsByClient(accounts, clients)

	if skipped := len(accounts) - countAccounts(groups); skipped > 0 {
		zerolog.Ctx(ctx).Warn().Int("skipped", skipped).Msg("closed accounts without a known client")
	}

	return groups, nil
}

func countAccounts(groups []domain.ClosedAccountGroup) int {
	var n int
	for _, g := range groups {
		n += len(g.Accounts)
	}

	return n
}

// Summary returns the debt totals over all clients.
func (s *Service) Summary(ctx context.Context) (domain.SummaryTotals, error) {
	clients, err := s.ledger.ListClientsWithBalance(ctx)
	if err != nil {
		return domain.SummaryTotals{}, err
	}

	return s.engine.ComputeSummaryTotals(clients), nil
}
