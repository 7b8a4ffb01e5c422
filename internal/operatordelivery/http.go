// Package operatordelivery manages delivery layer of operator authentication.
package operatordelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/httperr"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by operator delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package operatordelivery
type Service interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}

// Handler facilitates operator delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns operator handler.
func NewHandler(ops Service) *Handler {
	return &Handler{service: ops}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login handles http login request and returns an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	accessToken, expiresAt, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if err == domain.ErrWrongCredentials {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		httperr.Write(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
