// Package helpers provides seeding and fixture helpers shared by tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/clientrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

// Now returns the current time as it round-trips through storage.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// RandomClient returns a random client that is not stored anywhere.
func RandomClient() domain.Client {
	return domain.Client{
		ID:           uuid.NewString(),
		Name:         randompkg.Name(),
		Reference:    randompkg.String(5),
		RegisteredAt: Now().Truncate(time.Second),
	}
}

// RandomAccount returns a random active account of the client that is not stored anywhere.
func RandomAccount(clientID string) domain.Account {
	openedAt := Now().Truncate(time.Second)

	return domain.Account{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Status:    domain.AccountActive,
		Balance:   randompkg.AmountBetween(100, 1000),
		OpenedAt:  openedAt,
		UpdatedAt: openedAt,
	}
}

// SeedClient creates a random Client inside a test transaction.
func SeedClient(t *testing.T, tx dbpkg.SQLInterface) domain.Client {
	t.Helper()

	arg := domain.CreateClientParams{
		Name:         randompkg.Name(),
		Reference:    randompkg.String(5),
		RegisteredAt: Now(),
	}

	client, err := clientrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("clientRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return client
}

// SeedAccount creates an active Account with zero balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, clientID string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{ClientID: clientID, OpenedAt: Now()}

	account, err := accountrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWithBalance creates an active Account with the given balance inside a test transaction.
func SeedAccountWithBalance(t *testing.T, tx dbpkg.SQLInterface, clientID string, balance decimal.Decimal) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx, clientID)
	account.Balance = balance

	saved, err := accountrepo.NewRepoPGS(tx).Save(context.Background(), account)
	if err != nil {
		t.Fatalf("accountRepo.Save(context.Background(), %+v) returned error: %v", account, err)
	}

	return saved
}

// SeedClosedAccount creates a closed Account with zero balance inside a test transaction.
func SeedClosedAccount(t *testing.T, tx dbpkg.SQLInterface, clientID string, closedAt time.Time) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx, clientID)
	account.Status = domain.AccountClosed
	account.ClosedAt = &closedAt
	account.UpdatedAt = closedAt

	saved, err := accountrepo.NewRepoPGS(tx).Save(context.Background(), account)
	if err != nil {
		t.Fatalf("accountRepo.Save(context.Background(), %+v) returned error: %v", account, err)
	}

	return saved
}
