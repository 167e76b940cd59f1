package transport

import (
	"fmt"
	"net/http"

	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateAttributeRequest is the creation payload shared by sizes and colors
type CreateAttributeRequest struct {
	Name  *string `json:"name" validate:"required,min=1"`
	Value *string `json:"value" validate:"required,min=1"`
}

// UpdateAttributeRequest carries the size or color fields to replace
type UpdateAttributeRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Value *string `json:"value" validate:"omitnil,min=1"`
}

func (req CreateAttributeRequest) input() service.AttributeInput {
	return service.AttributeInput{Name: req.Name, Value: req.Value}
}

func (req UpdateAttributeRequest) input() service.AttributeInput {
	return service.AttributeInput{Name: req.Name, Value: req.Value}
}

// SizeHandler handles HTTP requests for sizes
type SizeHandler struct {
	sizeService service.SizeService
	logger      *zap.Logger
}

// NewSizeHandler creates a new SizeHandler
func NewSizeHandler(sizeService service.SizeService, logger *zap.Logger) *SizeHandler {
	return &SizeHandler{
		sizeService: sizeService,
		logger:      logger,
	}
}

// RegisterRoutes registers all size routes
func (h *SizeHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/sizes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{sizeId}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.Create)
			r.Patch("/{sizeId}", h.Update)
			r.Delete("/{sizeId}", h.Delete)
		})
	})
}

func (h *SizeHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.list", err)
		return
	}

	store, sizes, err := h.sizeService.List(r.Context(), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.list", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Sizes for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store": store,
		"sizes": sizes,
	})
}

func (h *SizeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "sizeId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.get", err)
		return
	}

	store, size, err := h.sizeService.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.get", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s size for the %s store retrieved successfully.", size.Name, store.Name), middleware.Payload{
		"store": store,
		"size":  size,
	})
}

func (h *SizeHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.create", err)
		return
	}

	var req CreateAttributeRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, size, err := h.sizeService.Create(r.Context(), caller(r), storeID, req.input())
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.create", err)
		return
	}

	h.logger.Info("Size created",
		zap.String("store_id", store.ID.String()),
		zap.String("size_id", size.ID.String()),
	)
	middleware.RespondWithSuccess(w, "New size created successfully.", middleware.Payload{
		"store": store,
		"size":  size,
	})
}

func (h *SizeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "sizeId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.update", err)
		return
	}

	var req UpdateAttributeRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, size, err := h.sizeService.Update(r.Context(), caller(r), ids[0], ids[1], req.input())
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.update", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s size for the %s store updated successfully.", size.Name, store.Name), middleware.Payload{
		"store": store,
		"size":  size,
	})
}

func (h *SizeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "sizeId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.delete", err)
		return
	}

	store, size, err := h.sizeService.Delete(r.Context(), caller(r), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "sizes.delete", err)
		return
	}

	h.logger.Info("Size deleted",
		zap.String("store_id", store.ID.String()),
		zap.String("size_id", size.ID.String()),
	)
	middleware.RespondWithSuccess(w, fmt.Sprintf("%s size for the %s store deleted successfully.", size.Name, store.Name), middleware.Payload{
		"store": store,
		"size":  size,
	})
}
