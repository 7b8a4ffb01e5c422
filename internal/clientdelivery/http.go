// Package clientdelivery manages delivery layer of clients.
package clientdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/httperr"
)

// Service provides service layer interface needed by client delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package clientdelivery
type Service interface {
	RegisterClient(ctx context.Context, draft domain.ClientDraft) (domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, draft domain.ClientDraft) (domain.Client, error)
	GetClientWithBalance(ctx context.Context, clientID string) (domain.ClientWithBalance, error)
}

// Reporter provides the client listing needed by client delivery layer.
type Reporter interface {
	Clients(ctx context.Context, q domain.ClientQuery) ([]domain.ClientWithBalance, error)
}

// Handler facilitates client delivery layer logic.
type Handler struct {
	service  Service
	reporter Reporter
}

// NewHandler returns client handler.
func NewHandler(cs Service, r Reporter) *Handler {
	return &Handler{
		service:  cs,
		reporter: r,
	}
}

type clientRequest struct {
	Name      string `json:"name" binding:"required,max=1000"`
	Reference string `json:"reference" binding:"max=2000"`
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type data struct {
	Client any `json:"client"`
}

type response struct {
	Data data `json:"data"`
}

// Create handles http request to register a client.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req clientRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	client, err := h.service.RegisterClient(ctx, domain.ClientDraft{Name: req.Name, Reference: req.Reference})
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{client}})
}

// Get handles http request to get a client with its current balance.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	client, err := h.service.GetClientWithBalance(ctx, uri.ID)
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{client}})
}

// Update handles http request to change the client name and reference.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	var req clientRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	client, err := h.service.UpdateClient(ctx, uri.ID, domain.ClientDraft{Name: req.Name, Reference: req.Reference})
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{client}})
}

type listRequest struct {
	Search string `form:"search" binding:"max=120"`
	Filter string `form:"filter" binding:"omitempty,oneof=all pending inactive"`
	Sort   string `form:"sort" binding:"omitempty,oneof=name-asc name-desc recent oldest balance-desc balance-asc"`
}

type dataClients struct {
	Clients []domain.ClientWithBalance `json:"clients"`
}

type responseClients struct {
	Data dataClients `json:"data"`
}

// List handles http request to search, filter and sort clients.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		httperr.WriteBinding(gctx, err)
		return
	}

	q := domain.ClientQuery{
		SearchText: req.Search,
		Filter:     domain.ClientFilter(req.Filter),
		Sort:       domain.ClientSort(req.Sort),
	}

	clients, err := h.reporter.Clients(ctx, q)
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseClients{Data: dataClients{clients}})
}
