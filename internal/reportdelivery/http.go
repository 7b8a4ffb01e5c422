// Package reportdelivery manages delivery layer of reports.
package reportdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/httperr"
)

// Service provides service layer interface needed by report delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package reportdelivery
type Service interface {
	Summary(ctx context.Context) (domain.SummaryTotals, error)
	ClosedAccounts(ctx context.Context) ([]domain.ClosedAccountGroup, error)
}

// Handler facilitates report delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns report handler.
func NewHandler(rs Service) *Handler {
	return &Handler{service: rs}
}

type dataSummary struct {
	Summary domain.SummaryTotals `json:"summary"`
}

type responseSummary struct {
	Data dataSummary `json:"data"`
}

// Summary handles http request to get the debt totals.
func (h *Handler) Summary(gctx *gin.Context) {
	totals, err := h.service.Summary(gctx.Request.Context())
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseSummary{Data: dataSummary{totals}})
}

type dataGroups struct {
	Groups []domain.ClosedAccountGroup `json:"groups"`
}

type responseGroups struct {
	Data dataGroups `json:"data"`
}

// ClosedAccounts handles http request to get the closed accounts grouped by client.
func (h *Handler) ClosedAccounts(gctx *gin.Context) {
	groups, err := h.service.ClosedAccounts(gctx.Request.Context())
	if err != nil {
		httperr.Write(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseGroups{Data: dataGroups{groups}})
}
