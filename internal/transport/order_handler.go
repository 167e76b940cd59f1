package transport

import (
	"fmt"
	"net/http"

	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler serves the admin orders table and sales overview
type OrderHandler struct {
	overviewService service.OverviewService
	logger          *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(overviewService service.OverviewService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		overviewService: overviewService,
		logger:          logger,
	}
}

// RegisterRoutes registers the owner-only order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.With(requireUser).Get("/api/{storeId}/orders", h.List)
	r.With(requireUser).Get("/api/{storeId}/overview", h.Overview)
}

// List returns every order of the store, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "orders.list", err)
		return
	}

	store, orders, err := h.overviewService.Orders(r.Context(), caller(r), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "orders.list", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Orders for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":  store,
		"orders": orders,
	})
}

// Overview returns revenue, sales and stock figures for the dashboard
func (h *OrderHandler) Overview(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "orders.overview", err)
		return
	}

	store, overview, err := h.overviewService.Overview(r.Context(), caller(r), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "orders.overview", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Overview for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":    store,
		"overview": overview,
	})
}
