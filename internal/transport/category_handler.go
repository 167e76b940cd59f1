package transport

import (
	"fmt"
	"net/http"

	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name        *string    `json:"name" validate:"required,min=1"`
	BillboardID *uuid.UUID `json:"billboardId" validate:"required"`
}

// UpdateCategoryRequest carries the category fields to replace
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" validate:"omitnil,min=1"`
	BillboardID *uuid.UUID `json:"billboardId"`
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{categoryId}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.Create)
			r.Patch("/{categoryId}", h.Update)
			r.Delete("/{categoryId}", h.Delete)
		})
	})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.list", err)
		return
	}

	store, categories, err := h.categoryService.List(r.Context(), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.list", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Categories for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":      store,
		"categories": categories,
	})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "categoryId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.get", err)
		return
	}

	store, category, err := h.categoryService.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.get", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s category for the %s store retrieved successfully.", category.Name, store.Name), middleware.Payload{
		"store":    store,
		"category": category,
	})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.create", err)
		return
	}

	var req CreateCategoryRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, category, err := h.categoryService.Create(r.Context(), caller(r), storeID, service.CategoryInput{
		Name:        req.Name,
		BillboardID: req.BillboardID,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.create", err)
		return
	}

	h.logger.Info("Category created",
		zap.String("store_id", store.ID.String()),
		zap.String("category_id", category.ID.String()),
	)
	middleware.RespondWithSuccess(w, "New category created successfully.", middleware.Payload{
		"store":    store,
		"category": category,
	})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "categoryId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.update", err)
		return
	}

	var req UpdateCategoryRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, category, err := h.categoryService.Update(r.Context(), caller(r), ids[0], ids[1], service.CategoryInput{
		Name:        req.Name,
		BillboardID: req.BillboardID,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.update", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s category for the %s store updated successfully.", category.Name, store.Name), middleware.Payload{
		"store":    store,
		"category": category,
	})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "categoryId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.delete", err)
		return
	}

	store, category, err := h.categoryService.Delete(r.Context(), caller(r), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "categories.delete", err)
		return
	}

	h.logger.Info("Category deleted",
		zap.String("store_id", store.ID.String()),
		zap.String("category_id", category.ID.String()),
	)
	middleware.RespondWithSuccess(w, fmt.Sprintf("%s category for the %s store deleted successfully.", category.Name, store.Name), middleware.Payload{
		"store":    store,
		"category": category,
	})
}
