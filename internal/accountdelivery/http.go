// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/httperr"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	OpenAccount(ctx context.Context, clientID string) (domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (domain.Account, error)
	ListClientAccounts(ctx context.Context, clientID string) ([]domain.Account, error)
	ApplyCharge(ctx context.Context, req domain.ChargeRequest) (domain.Account, error)
	ApplyPayment(ctx context.Context, req domain.PaymentRequest) (domain.Account, error)
	CloseAccount(ctx context.Context, req domain.CloseRequest) (domain.Account, error)
	ListEntries(ctx context.Context, accountID string) ([]domain.Entry, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type data struct {
	Account domain.Account `json:"account"`
}

type response struct {
	Data data `json:"data"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}

type responseAccounts struct {
	Data dataAccounts `json:"data"`
}

// Open handles http request to open an account for the client in the path.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	account, err := h.service.OpenAccount(ctx, uri.ID)
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

// ListForClient handles http request to list all accounts of the client in the path.
func (h *Handler) ListForClient(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	accounts, err := h.service.ListClientAccounts(ctx, uri.ID)
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{accounts}})
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	account, err := h.service.GetAccount(ctx, uri.ID)
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

func (h *Handler) bindAmount(gctx *gin.Context) (string, amountRequest, bool) {
	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return "", amountRequest{}, false
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		httperr.WriteBinding(gctx, err)
		return "", amountRequest{}, false
	}

	return uri.ID, req, true
}

// Charge handles http request to add a charge to the account.
func (h *Handler) Charge(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	id, req, ok := h.bindAmount(gctx)
	if !ok {
		return
	}

	amount, ok := moneypkg.ParseAmount(req.Amount)
	if !ok {
		httperr.Write(gctx, domain.ErrInvalidAmount)
		return
	}

	account, err := h.service.ApplyCharge(ctx, domain.ChargeRequest{AccountID: id, Amount: amount})
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

// Pay handles http request to register a payment on the account.
func (h *Handler) Pay(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	id, req, ok := h.bindAmount(gctx)
	if !ok {
		return
	}

	amount, ok := moneypkg.ParseAmount(req.Amount)
	if !ok {
		httperr.Write(gctx, domain.ErrInvalidAmount)
		return
	}

	account, err := h.service.ApplyPayment(ctx, domain.PaymentRequest{AccountID: id, Amount: amount})
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type closeRequest struct {
	WriteOff bool `json:"write_off"`
}

// Close handles http request to close the account. The body is optional.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	var req closeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.WriteBinding(gctx, err)
		return
	}

	if req.WriteOff {
		l.Info().Str("account_id", uri.ID).Msg("write-off requested")
	}

	account, err := h.service.CloseAccount(ctx, domain.CloseRequest{AccountID: uri.ID, WriteOff: req.WriteOff})
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type dataEntries struct {
	Entries []domain.Entry `json:"entries"`
}

type responseEntries struct {
	Data dataEntries `json:"data"`
}

// ListEntries handles http request to list the balance movements of the account.
func (h *Handler) ListEntries(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	entries, err := h.service.ListEntries(ctx, uri.ID)
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseEntries{Data: dataEntries{entries}})
}
