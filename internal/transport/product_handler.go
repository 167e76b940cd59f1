package transport

import (
	"fmt"
	"net/http"
	"net/url"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Images are
// asset host public ids.
type CreateProductRequest struct {
	Name       *string          `json:"name" validate:"required,min=1"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	CategoryID *uuid.UUID       `json:"categoryId" validate:"required"`
	SizeID     *uuid.UUID       `json:"sizeId" validate:"required"`
	ColorID    *uuid.UUID       `json:"colorId" validate:"required"`
	Images     []string         `json:"imagesPublicIds" validate:"required,min=1,dive,min=1"`
	IsFeatured *bool            `json:"isFeatured"`
	IsArchived *bool            `json:"isArchived"`
}

// UpdateProductRequest carries the product fields to replace. A present
// images list replaces every image of the product.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitnil,min=1"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *uuid.UUID       `json:"categoryId"`
	SizeID     *uuid.UUID       `json:"sizeId"`
	ColorID    *uuid.UUID       `json:"colorId"`
	Images     []string         `json:"images" validate:"omitnil,min=1,dive,min=1"`
	IsFeatured *bool            `json:"isFeatured"`
	IsArchived *bool            `json:"isArchived"`
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{productId}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.Create)
			r.Patch("/{productId}", h.Update)
			r.Delete("/{productId}", h.Delete)
		})
	})
}

// List returns the store's non-archived products, newest first. The
// categoryId, sizeId, colorId and isFeatured query params narrow it.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.list", err)
		return
	}

	filter, err := parseProductFilter(r.URL.Query())
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.list", err)
		return
	}

	store, products, err := h.productService.List(r.Context(), storeID, filter)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.list", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Products for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":    store,
		"products": products,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "productId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.get", err)
		return
	}

	store, product, err := h.productService.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.get", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Product for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":   store,
		"product": product,
	})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.create", err)
		return
	}

	var req CreateProductRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, product, err := h.productService.Create(r.Context(), caller(r), storeID, service.ProductInput{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		SizeID:     req.SizeID,
		ColorID:    req.ColorID,
		Images:     req.Images,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.create", err)
		return
	}

	h.logger.Info("Product created",
		zap.String("store_id", store.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("images", len(product.Images)),
	)
	middleware.RespondWithSuccess(w, "New product created successfully.", middleware.Payload{
		"store":   store,
		"product": product,
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "productId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.update", err)
		return
	}

	var req UpdateProductRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, product, err := h.productService.Update(r.Context(), caller(r), ids[0], ids[1], service.ProductInput{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		SizeID:     req.SizeID,
		ColorID:    req.ColorID,
		Images:     req.Images,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.update", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Product for the %s store updated successfully.", store.Name), middleware.Payload{
		"store":   store,
		"product": product,
	})
}

// Delete removes a product. Products that appear on orders cannot be
// deleted; archive them instead.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "productId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.delete", err)
		return
	}

	store, product, err := h.productService.Delete(r.Context(), caller(r), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "products.delete", err)
		return
	}

	h.logger.Info("Product deleted",
		zap.String("store_id", store.ID.String()),
		zap.String("product_id", product.ID.String()),
	)
	middleware.RespondWithSuccess(w, fmt.Sprintf("Product for the %s store deleted successfully.", store.Name), middleware.Payload{
		"store":   store,
		"product": product,
	})
}

func parseProductFilter(query url.Values) (domain.ProductFilter, error) {
	var filter domain.ProductFilter

	for name, dst := range map[string]**uuid.UUID{
		"categoryId": &filter.CategoryID,
		"sizeId":     &filter.SizeID,
		"colorId":    &filter.ColorID,
	} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errMalformedID
		}
		*dst = &id
	}

	// Any non-empty flag selects featured products, "false" included
	filter.FeaturedOnly = query.Get("isFeatured") != ""

	return filter, nil
}
