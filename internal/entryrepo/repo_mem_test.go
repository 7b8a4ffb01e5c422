package entryrepo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

func TestRepoMem(t *testing.T) {
	r := NewRepoMem()
	accountID := randompkg.String(8)
	now := time.Now().UTC()

	for i := 1; i <= 3; i++ {
		arg := domain.CreateEntryParams{
			AccountID:    accountID,
			Kind:         domain.EntryCharge,
			Amount:       decimal.NewFromInt(int64(i)),
			BalanceAfter: decimal.NewFromInt(int64(i)),
			CreatedAt:    now,
		}

		e, err := r.Create(context.Background(), arg)
		require.NoError(t, err)
		require.Equal(t, int64(i), e.ID)
	}

	_, err := r.Create(context.Background(), domain.CreateEntryParams{AccountID: accountID, Amount: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := r.List(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, e := range got {
		require.True(t, e.Amount.Equal(decimal.NewFromInt(int64(i+1))))
	}

	empty, err := r.List(context.Background(), "other")
	require.NoError(t, err)
	require.Empty(t, empty)
}
