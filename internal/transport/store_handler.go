package transport

import (
	"fmt"
	"net/http"

	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateStoreRequest represents the store creation payload
type CreateStoreRequest struct {
	Name *string `json:"name" validate:"required,min=1"`
}

// UpdateStoreRequest represents the store rename payload
type UpdateStoreRequest struct {
	Name *string `json:"name" validate:"required,min=1"`
}

// StoreHandler handles HTTP requests for the caller's stores
type StoreHandler struct {
	storeService service.StoreService
	logger       *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService service.StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		logger:       logger,
	}
}

// RegisterRoutes registers all store routes. Every store route is owner-only.
func (h *StoreHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/stores", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{storeId}", h.Get)
		r.Patch("/{storeId}", h.Update)
		r.Delete("/{storeId}", h.Delete)
	})
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.storeService.List(r.Context(), caller(r))
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.list", err)
		return
	}

	middleware.RespondWithSuccess(w, "Stores retrieved successfully.", middleware.Payload{
		"stores": stores,
	})
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, err := h.storeService.Create(r.Context(), caller(r), *req.Name)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.create", err)
		return
	}

	h.logger.Info("Store created",
		zap.String("store_id", store.ID.String()),
		zap.String("user_id", store.UserID),
	)
	middleware.RespondWithSuccess(w, "New store created successfully.", middleware.Payload{
		"store": store,
	})
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.get", err)
		return
	}

	store, err := h.storeService.Get(r.Context(), caller(r), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.get", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s store retrieved successfully.", store.Name), middleware.Payload{
		"store": store,
	})
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.update", err)
		return
	}

	var req UpdateStoreRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, err := h.storeService.Rename(r.Context(), caller(r), storeID, req.Name)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.update", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s store updated successfully.", store.Name), middleware.Payload{
		"store": store,
	})
}

// Delete removes the store together with everything it owns
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.delete", err)
		return
	}

	store, err := h.storeService.Delete(r.Context(), caller(r), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "stores.delete", err)
		return
	}

	h.logger.Info("Store deleted", zap.String("store_id", store.ID.String()))
	middleware.RespondWithSuccess(w, fmt.Sprintf("%s store deleted successfully.", store.Name), middleware.Payload{
		"store": store,
	})
}
