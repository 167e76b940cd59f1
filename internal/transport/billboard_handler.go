package transport

import (
	"fmt"
	"net/http"

	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateBillboardRequest represents the billboard creation payload
type CreateBillboardRequest struct {
	Label         *string `json:"label" validate:"required,min=1"`
	ImagePublicID *string `json:"imagePublicId" validate:"required,min=1"`
}

// UpdateBillboardRequest carries the billboard fields to replace
type UpdateBillboardRequest struct {
	Label         *string `json:"label" validate:"omitnil,min=1"`
	ImagePublicID *string `json:"imagePublicId" validate:"omitnil,min=1"`
}

// BillboardHandler handles HTTP requests for billboards
type BillboardHandler struct {
	billboardService service.BillboardService
	logger           *zap.Logger
}

// NewBillboardHandler creates a new BillboardHandler
func NewBillboardHandler(billboardService service.BillboardService, logger *zap.Logger) *BillboardHandler {
	return &BillboardHandler{
		billboardService: billboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers all billboard routes
func (h *BillboardHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/billboards", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{billboardId}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.Create)
			r.Patch("/{billboardId}", h.Update)
			r.Delete("/{billboardId}", h.Delete)
		})
	})
}

// List returns every billboard of the store
func (h *BillboardHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.list", err)
		return
	}

	store, billboards, err := h.billboardService.List(r.Context(), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.list", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Billboards for %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":      store,
		"billboards": billboards,
	})
}

// Get returns a single billboard
func (h *BillboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "billboardId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.get", err)
		return
	}

	store, billboard, err := h.billboardService.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.get", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Billboard for %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":     store,
		"billboard": billboard,
	})
}

// Create adds a billboard to a store the caller owns
func (h *BillboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.create", err)
		return
	}

	var req CreateBillboardRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, billboard, err := h.billboardService.Create(r.Context(), caller(r), storeID, service.BillboardInput{
		Label:         req.Label,
		ImagePublicID: req.ImagePublicID,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.create", err)
		return
	}

	h.logger.Info("Billboard created",
		zap.String("store_id", store.ID.String()),
		zap.String("billboard_id", billboard.ID.String()),
	)
	middleware.RespondWithSuccess(w, "New billboard created successfully.", middleware.Payload{
		"store":     store,
		"billboard": billboard,
	})
}

// Update replaces the fields present in the body
func (h *BillboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "billboardId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.update", err)
		return
	}

	var req UpdateBillboardRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, billboard, err := h.billboardService.Update(r.Context(), caller(r), ids[0], ids[1], service.BillboardInput{
		Label:         req.Label,
		ImagePublicID: req.ImagePublicID,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.update", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Billboard for %s store updated successfully.", store.Name), middleware.Payload{
		"store":     store,
		"billboard": billboard,
	})
}

// Delete removes a billboard
func (h *BillboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "billboardId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.delete", err)
		return
	}

	store, billboard, err := h.billboardService.Delete(r.Context(), caller(r), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "billboards.delete", err)
		return
	}

	h.logger.Info("Billboard deleted",
		zap.String("store_id", store.ID.String()),
		zap.String("billboard_id", billboard.ID.String()),
	)
	middleware.RespondWithSuccess(w, fmt.Sprintf("Billboard for %s store deleted successfully.", store.Name), middleware.Payload{
		"store":     store,
		"billboard": billboard,
	})
}
