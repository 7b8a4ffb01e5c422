// Package clientrepo manages repository layer of clients.
package clientrepo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// RepoPGS facilitates client repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns client RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row scanner) (domain.Client, error) {
	var c domain.Client

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Reference,
		&c.RegisteredAt,
	)

	return c, err
}

const createQuery = `
INSERT INTO
    clients (id, name, reference, registered_at)
VALUES
    ($1, $2, $3, $4)
RETURNING id, name, reference, registered_at
`

// Create creates the client with a generated id and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateClientParams) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	if strings.TrimSpace(arg.Name) == "" {
		return domain.Client{}, domain.ErrEmptyName
	}

	row := r.db.QueryRowContext(ctx, createQuery, uuid.NewString(), arg.Name, arg.Reference, arg.RegisteredAt)

	c, err := scanClient(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "clients_name_check" {
			return domain.Client{}, domain.ErrEmptyName
		}

		return domain.Client{}, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT
	id, name, reference, registered_at
FROM clients
WHERE id = $1
`

// Get returns the client with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return domain.Client{}, domain.ErrClientNotFound
	}

	c, err := scanClient(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Client{}, domain.ErrClientNotFound
		}

		l.Error().Err(err).Send()

		return domain.Client{}, errorspkg.ErrInternal
	}

	return c, nil
}

const listQuery = `
SELECT
	id, name, reference, registered_at
FROM clients
ORDER BY registered_at, id
`

// List returns all clients.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Client, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Client{}

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
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

const updateQuery = `
UPDATE clients
SET name = $2, reference = $3
WHERE id = $1
RETURNING id, name, reference, registered_at
`

// Update changes the client name and reference and returns the changed client.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateClientParams) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	if strings.TrimSpace(arg.Name) == "" {
		return domain.Client{}, domain.ErrEmptyName
	}

	if _, err := uuid.Parse(arg.ID); err != nil {
		return domain.Client{}, domain.ErrClientNotFound
	}

	c, err := scanClient(r.db.QueryRowContext(ctx, updateQuery, arg.ID, arg.Name, arg.Reference))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Client{}, domain.ErrClientNotFound
		}

		l.Error().Err(err).Msgf("Update(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "clients_name_check" {
			return domain.Client{}, domain.ErrEmptyName
		}

		return domain.Client{}, errorspkg.ErrInternal
	}

	return c, nil
}
