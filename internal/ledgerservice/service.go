// Package ledgerservice manages business logic layer of clients and their accounts.
package ledgerservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// ClientRepo provides client data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type ClientRepo interface {
	Create(ctx context.Context, arg domain.CreateClientParams) (domain.Client, error)
	Get(ctx context.Context, id string) (domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, arg domain.UpdateClientParams) (domain.Client, error)
}

// AccountRepo provides account data access layer interface needed by ledger service layer.
type AccountRepo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	GetActiveForClient(ctx context.Context, clientID string) (domain.Account, error)
	GetLatestForClient(ctx context.Context, clientID string) (domain.Account, error)
	ListForClient(ctx context.Context, clientID string) ([]domain.Account, error)
	ListClosed(ctx context.Context) ([]domain.Account, error)
	ListCurrent(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, a domain.Account) (domain.Account, error)
	Post(ctx context.Context, a domain.Account, arg domain.CreateEntryParams) (domain.Account, domain.Entry, error)
}

// EntryRepo provides entry data access layer interface needed by ledger service layer.
type EntryRepo interface {
	List(ctx context.Context, accountID string) ([]domain.Entry, error)
}

// Service facilitates ledger service layer logic.
//
// It is the only mutator of clients and accounts. Mutations are serialized
// per client, which keeps the one-active-account and non-negative balance
// rules intact under concurrent requests.
type Service struct {
	clients     ClientRepo
	accounts    AccountRepo
	entries     EntryRepo
	closePolicy domain.ClosePolicy
	locks       *keyedMutex
	now         func() time.Time
}

// New returns ledger service struct to manage ledger bussines logic.
func New(cr ClientRepo, ar AccountRepo, er EntryRepo, policy domain.ClosePolicy) *Service {
	if policy != domain.AllowWriteOff {
		policy = domain.RequireZeroBalance
	}

	return &Service{
		clients:     cr,
		accounts:    ar,
		entries:     er,
		closePolicy: policy,
		locks:       newKeyedMutex(),
		now:         now,
	}
}

// now is the wall clock. Microsecond precision round-trips through PostgreSQL.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// RegisterClient validates the draft and creates a client.
func (s *Service) RegisterClient(ctx context.Context, draft domain.ClientDraft) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	draft, err := draft.Normalize()
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Client{}, err
	}

	arg := domain.CreateClientParams{
		Name:         draft.Name,
		Reference:    draft.Reference,
		RegisteredAt: s.now(),
	}

	return s.clients.Create(ctx, arg)
}

// UpdateClient validates the draft and changes the client name and reference.
func (s *Service) UpdateClient(ctx context.Context, clientID string, draft domain.ClientDraft) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	draft, err := draft.Normalize()
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Client{}, err
	}

	unlock := s.locks.Lock(clientID)
	defer unlock()

	arg := domain.UpdateClientParams{
		ID:        clientID,
		Name:      draft.Name,
		Reference: draft.Reference,
	}

	return s.clients.Update(ctx, arg)
}

// GetClient returns the client with the given id.
func (s *Service) GetClient(ctx context.Context, clientID string) (domain.Client, error) {
	return s.clients.Get(ctx, clientID)
}

// ListClients returns all clients.
func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

// GetClientWithBalance returns the client joined with its active account.
func (s *Service) GetClientWithBalance(ctx context.Context, clientID string) (domain.ClientWithBalance, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return domain.ClientWithBalance{}, err
	}

	return s.withBalance(ctx, client)
}

// ListClientsWithBalance returns every client joined with its active account.
//
// Accounts are read in one pass and matched to clients by id.
func (s *Service) ListClientsWithBalance(ctx context.Context) ([]domain.ClientWithBalance, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.accounts.ListCurrent(ctx)
	if err != nil {
		return nil, err
	}

	byClient := make(map[string]domain.Account, len(current))
	for _, a := range current {
		byClient[a.ClientID] = a
	}

	result := make([]domain.ClientWithBalance, 0, len(clients))

	for _, c := range clients {
		a, ok := byClient[c.ID]
		result = append(result, compose(c, a, ok))
	}

	return result, nil
}

func (s *Service) withBalance(ctx context.Context, client domain.Client) (domain.ClientWithBalance, error) {
	active, err := s.accounts.GetActiveForClient(ctx, client.ID)

	switch {
	case err == nil:
		return compose(client, active, true), nil
	case !errors.Is(err, domain.ErrNoActiveAccount):
		return domain.ClientWithBalance{}, err
	}

	latest, err := s.accounts.GetLatestForClient(ctx, client.ID)

	switch {
	case err == nil:
		return compose(client, latest, true), nil
	case !errors.Is(err, domain.ErrAccountNotFound):
		return domain.ClientWithBalance{}, err
	}

	return compose(client, domain.Account{}, false), nil
}

// compose joins the client with its current account, if it has any.
// Only an active account contributes a balance.
func compose(client domain.Client, current domain.Account, found bool) domain.ClientWithBalance {
	result := domain.ClientWithBalance{
		Client:         client,
		CurrentBalance: decimal.Zero,
	}

	if !found {
		return result
	}

	updatedAt := current.UpdatedAt
	result.LastActivityAt = &updatedAt

	if current.IsActive() {
		result.CurrentBalance = current.Balance
		result.HasActiveAccount = true
		result.ActiveAccountID = current.ID
	}

	return result
}

// OpenAccount creates an active account with zero balance for the client.
//
// It fails with domain.ErrActiveAccountExists if the client already has one.
func (s *Service) OpenAccount(ctx context.Context, clientID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return domain.Account{}, err
	}

	unlock := s.locks.Lock(clientID)
	defer unlock()

	_, err := s.accounts.GetActiveForClient(ctx, clientID)
	if err == nil {
		l.Info().Str("client_id", clientID).Err(domain.ErrActiveAccountExists).Send()
		return domain.Account{}, domain.ErrActiveAccountExists
	}

	if !errors.Is(err, domain.ErrNoActiveAccount) {
		return domain.Account{}, err
	}

	arg := domain.CreateAccountParams{
		ClientID: clientID,
		OpenedAt: s.now(),
	}

	return s.accounts.Create(ctx, arg)
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, accountID string) (domain.Account, error) {
	return s.accounts.Get(ctx, accountID)
}

// ListClientAccounts returns all accounts of the client, newest first.
func (s *Service) ListClientAccounts(ctx context.Context, clientID string) ([]domain.Account, error) {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}

	return s.accounts.ListForClient(ctx, clientID)
}

// ListClosedAccounts returns all closed accounts.
func (s *Service) ListClosedAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.ListClosed(ctx)
}

// ListEntries returns the balance movements of the account, oldest first.
func (s *Service) ListEntries(ctx context.Context, accountID string) ([]domain.Entry, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}

	return s.entries.List(ctx, accountID)
}

// ApplyCharge increases the debt of an active account.
func (s *Service) ApplyCharge(ctx context.Context, req domain.ChargeRequest) (domain.Account, error) {
	return s.post(ctx, req.AccountID, domain.EntryCharge, req.Amount, func(balance decimal.Decimal) decimal.Decimal {
		return balance.Add(req.Amount)
	})
}

// ApplyPayment decreases the debt of an active account.
//
// A payment exceeding the outstanding balance is accepted and the balance becomes zero.
func (s *Service) ApplyPayment(ctx context.Context, req domain.PaymentRequest) (domain.Account, error) {
	return s.post(ctx, req.AccountID, domain.EntryPayment, req.Amount, func(balance decimal.Decimal) decimal.Decimal {
		return decimal.Max(decimal.Zero, balance.Sub(req.Amount))
	})
}

func (s *Service) post(ctx context.Context, accountID string, kind domain.EntryKind, amount decimal.Decimal,
	apply func(decimal.Decimal) decimal.Decimal,
) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !moneypkg.ValidRange(amount) {
		l.Info().Str("amount", amount.String()).Err(domain.ErrInvalidAmount).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	account, unlock, err := s.lockAccount(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}
	defer unlock()

	if !account.IsActive() {
		l.Info().Str("account_id", accountID).Err(domain.ErrAccountNotActive).Send()
		return domain.Account{}, domain.ErrAccountNotActive
	}

	at := s.now()
	account.Balance = apply(account.Balance)
	account.UpdatedAt = at

	arg := domain.CreateEntryParams{
		AccountID:    account.ID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: account.Balance,
		CreatedAt:    at,
	}

	saved, _, err := s.accounts.Post(ctx, account, arg)
	if err != nil {
		return domain.Account{}, err
	}

	return saved, nil
}

// CloseAccount closes an active account and freezes its balance.
//
// With the require-zero policy the balance must be zero. With the
// allow-write-off policy a nonzero balance is closed only if the request
// confirms the write-off.
func (s *Service) CloseAccount(ctx context.Context, req domain.CloseRequest) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, unlock, err := s.lockAccount(ctx, req.AccountID)
	if err != nil {
		return domain.Account{}, err
	}
	defer unlock()

	if !account.IsActive() {
		l.Info().Str("account_id", req.AccountID).Err(domain.ErrAccountNotActive).Send()
		return domain.Account{}, domain.ErrAccountNotActive
	}

	if !account.Balance.IsZero() && (s.closePolicy == domain.RequireZeroBalance || !req.WriteOff) {
		l.Info().Str("account_id", req.AccountID).Err(domain.ErrOutstandingBalance).Send()
		return domain.Account{}, domain.ErrOutstandingBalance
	}

	closedAt := s.now()
	account.Status = domain.AccountClosed
	account.ClosedAt = &closedAt
	account.UpdatedAt = closedAt

	if !account.Balance.IsZero() {
		l.Warn().
			Str("account_id", account.ID).
			Str("balance", account.Balance.String()).
			Msg("closing account with outstanding balance as write-off")
	}

	return s.accounts.Save(ctx, account)
}

// lockAccount locks the owner of the account and returns a fresh copy of it.
func (s *Service) lockAccount(ctx context.Context, accountID string) (domain.Account, func(), error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, nil, err
	}

	unlock := s.locks.Lock(account.ClientID)

	// Re-read under the lock; the account may have changed while waiting.
	account, err = s.accounts.Get(ctx, accountID)
	if err != nil {
		unlock()
		return domain.Account{}, nil, err
	}

	return account, unlock, nil
}
