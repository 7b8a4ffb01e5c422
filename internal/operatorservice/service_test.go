package operatorservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
)

func TestLogin(t *testing.T) {
	password := randompkg.String(12)

	hash, err := passpkg.Hash(password)
	require.NoError(t, err)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	s := New("admin", hash, tokenMaker, time.Minute)

	testCases := []struct {
		name     string
		service  *Service
		username string
		password string
		wantErr  error
	}{
		{name: "OK", service: s, username: "admin", password: password},
		{name: "WrongPassword", service: s, username: "admin", password: password + "x", wantErr: domain.ErrWrongCredentials},
		{name: "WrongUsername", service: s, username: "root", password: password, wantErr: domain.ErrWrongCredentials},
		{
			name:     "NoHashConfigured",
			service:  New("admin", "", tokenMaker, time.Minute),
			username: "admin",
			password: password,
			wantErr:  domain.ErrWrongCredentials,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			token, expiresAt, err := tc.service.Login(context.Background(), tc.username, tc.password)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, token)

				return
			}

			require.NoError(t, err)
			require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Second)

			payload, err := tokenMaker.VerifyToken(token)
			require.NoError(t, err)
			require.Equal(t, "admin", payload.Username)
		})
	}
}
