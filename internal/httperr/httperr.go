// Package httperr maps ledger errors to HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Status returns the HTTP status code for the kind of err.
func Status(err error) int {
	switch domain.Kind(err) {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrState:
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// Write responds with the status code for err.
// Errors without a client facing kind are hidden behind errorspkg.ErrInternal.
func Write(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	status := Status(err)
	if status == http.StatusInternalServerError {
		if errors.Is(err, domain.ErrInvariantViolation) {
			l.Error().Err(err).Msg("ledger invariant violated")
		} else {
			l.Error().Err(err).Send()
		}

		gctx.JSON(status, web.Error(errorspkg.ErrInternal))

		return
	}

	l.Info().Err(err).Int("status_code", status).Send()
	gctx.JSON(status, web.Error(err))
}

// WriteBinding responds with 400 to a request that failed to bind.
func WriteBinding(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}
