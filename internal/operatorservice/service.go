// Package operatorservice manages authentication of the shop operator.
package operatorservice

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/passpkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
)

// Service facilitates operator service layer logic.
//
// There is a single operator whose credentials come from configuration.
type Service struct {
	username     string
	passwordHash string
	tokenMaker   tokenpkg.Maker
	duration     time.Duration
}

// New returns operator service struct to authenticate the operator.
func New(username, passwordHash string, tm tokenpkg.Maker, duration time.Duration) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		tokenMaker:   tm,
		duration:     duration,
	}
}

// Login checks the operator credentials and returns an access token and its expiration time.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	if s.passwordHash == "" {
		l.Warn().Msg("operator password hash is not configured")
		return "", time.Time{}, domain.ErrWrongCredentials
	}

	sameUser := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	if err := passpkg.Check(password, s.passwordHash); err != nil || !sameUser {
		l.Info().Str("username", username).Err(domain.ErrWrongCredentials).Send()
		return "", time.Time{}, domain.ErrWrongCredentials
	}

	token, payload, err := s.tokenMaker.CreateToken(username, s.duration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return token, payload.ExpiredAt, nil
}
