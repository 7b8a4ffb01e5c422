// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/entryrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const columns = `id, client_id, status, balance, opened_at, closed_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a        domain.Account
		closedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.Status,
		&a.Balance,
		&a.OpenedAt,
		&closedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	if closedAt.Valid {
		t := closedAt.Time
		a.ClosedAt = &t
	}

	return a, nil
}

const createQuery = `
INSERT INTO
    accounts (id, client_id, status, balance, opened_at, updated_at)
VALUES
    ($1, $2, 'active', 0, $3, $3)
RETURNING ` + columns

// Create creates an active account with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := uuid.Parse(arg.ClientID); err != nil {
		return domain.Account{}, domain.ErrClientNotFound
	}

	a, err := scanAccount(r.db.QueryRowContext(ctx, createQuery, uuid.NewString(), arg.ClientID, arg.OpenedAt))
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_client_id_fkey":
				return domain.Account{}, domain.ErrClientNotFound
			case "accounts_one_active_per_client_idx":
				return domain.Account{}, domain.ErrActiveAccountExists
			}
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT ` + columns + `
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const activeForClientQuery = `
SELECT ` + columns + `
FROM accounts
WHERE client_id = $1 AND status = 'active'
LIMIT 2
`

// GetActiveForClient returns the unique active account of the client.
//
// It returns domain.ErrNoActiveAccount if there is none and
// domain.ErrMultipleActiveAccounts if storage holds more than one.
func (r *RepoPGS) GetActiveForClient(ctx context.Context, clientID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := uuid.Parse(clientID); err != nil {
		return domain.Account{}, domain.ErrNoActiveAccount
	}

	accounts, err := r.list(ctx, activeForClientQuery, clientID)
	if err != nil {
		return domain.Account{}, err
	}

	switch len(accounts) {
	case 0:
		return domain.Account{}, domain.ErrNoActiveAccount
	case 1:
		return accounts[0], nil
	}

	l.Error().Str("client_id", clientID).Err(domain.ErrMultipleActiveAccounts).Send()

	return domain.Account{}, domain.ErrMultipleActiveAccounts
}

const latestForClientQuery = `
SELECT ` + columns + `
FROM accounts
WHERE client_id = $1
ORDER BY updated_at DESC, opened_at DESC
LIMIT 1
`

// GetLatestForClient returns the most recently updated account of the client.
func (r *RepoPGS) GetLatestForClient(ctx context.Context, clientID string) (domain.Account, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	accounts, err := r.list(ctx, latestForClientQuery, clientID)
	if err != nil {
		return domain.Account{}, err
	}

	if len(accounts) == 0 {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return accounts[0], nil
}

const listForClientQuery = `
SELECT ` + columns + `
FROM accounts
WHERE client_id = $1
ORDER BY opened_at DESC, id
`

// ListForClient returns all accounts of the client, newest first.
func (r *RepoPGS) ListForClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return []domain.Account{}, nil
	}

	return r.list(ctx, listForClientQuery, clientID)
}

const listClosedQuery = `
SELECT ` + columns + `
FROM accounts
WHERE status = 'closed'
ORDER BY closed_at DESC, id
`

// ListClosed returns all closed accounts.
func (r *RepoPGS) ListClosed(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, listClosedQuery)
}

const listCurrentQuery = `
SELECT DISTINCT ON (client_id) ` + columns + `
FROM accounts
ORDER BY client_id, (status = 'active') DESC, updated_at DESC, opened_at DESC
`

// ListCurrent returns one account per client that has any: the active one,
// or else the most recently updated.
func (r *RepoPGS) ListCurrent(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, listCurrentQuery)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const saveQuery = `
UPDATE accounts
SET status = $2, balance = $3, closed_at = $4, updated_at = $5
WHERE id = $1 AND status = 'active'
RETURNING ` + columns

// Save persists the full account record. Closed accounts are never overwritten.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := uuid.Parse(a.ID); err != nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	var closedAt sql.NullTime
	if a.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *a.ClosedAt, Valid: true}
	}

	saved, err := scanAccount(r.db.QueryRowContext(ctx, saveQuery, a.ID, a.Status, a.Balance, closedAt, a.UpdatedAt))
	if err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, a.ID); getErr != nil {
				return domain.Account{}, getErr
			}

			return domain.Account{}, domain.ErrAccountNotActive
		}

		l.Error().Err(err).Msgf("Save(ctx context.Context, %+v)", a)

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "accounts_balance_check" {
			return domain.Account{}, domain.ErrInvalidAmount
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return saved, nil
}

// Post saves the account and appends the entry within a single transaction.
func (r *RepoPGS) Post(ctx context.Context, a domain.Account, arg domain.CreateEntryParams) (domain.Account, domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	var (
		account domain.Account
		entry   domain.Entry
	)

	err := dbpkg.WithTx(ctx, r.db, func(tx dbpkg.SQLInterface) error {
		var err error

		account, err = NewRepoPGS(tx).Save(ctx, a)
		if err != nil {
			return err
		}

		entry, err = entryrepo.NewRepoPGS(tx).Create(ctx, arg)

		return err
	})
	if err != nil {
		if domain.Kind(err) != nil || err == errorspkg.ErrInternal {
			return domain.Account{}, domain.Entry{}, err
		}

		l.Error().Err(err).Send()

		return domain.Account{}, domain.Entry{}, errorspkg.ErrInternal
	}

	return account, entry, nil
}
