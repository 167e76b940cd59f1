package transport

import (
	"fmt"
	"net/http"

	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ColorHandler handles HTTP requests for colors
type ColorHandler struct {
	colorService service.ColorService
	logger       *zap.Logger
}

// NewColorHandler creates a new ColorHandler
func NewColorHandler(colorService service.ColorService, logger *zap.Logger) *ColorHandler {
	return &ColorHandler{
		colorService: colorService,
		logger:       logger,
	}
}

// RegisterRoutes registers all color routes
func (h *ColorHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/colors", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{colorId}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.Create)
			r.Patch("/{colorId}", h.Update)
			r.Delete("/{colorId}", h.Delete)
		})
	})
}

func (h *ColorHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.list", err)
		return
	}

	store, colors, err := h.colorService.List(r.Context(), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.list", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("Colors for the %s store retrieved successfully.", store.Name), middleware.Payload{
		"store":  store,
		"colors": colors,
	})
}

func (h *ColorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "colorId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.get", err)
		return
	}

	store, color, err := h.colorService.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.get", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s color for the %s store retrieved successfully.", color.Name, store.Name), middleware.Payload{
		"store": store,
		"color": color,
	})
}

func (h *ColorHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.create", err)
		return
	}

	var req CreateAttributeRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, color, err := h.colorService.Create(r.Context(), caller(r), storeID, req.input())
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.create", err)
		return
	}

	h.logger.Info("Color created",
		zap.String("store_id", store.ID.String()),
		zap.String("color_id", color.ID.String()),
	)
	middleware.RespondWithSuccess(w, "New color created successfully.", middleware.Payload{
		"store": store,
		"color": color,
	})
}

func (h *ColorHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "colorId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.update", err)
		return
	}

	var req UpdateAttributeRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	store, color, err := h.colorService.Update(r.Context(), caller(r), ids[0], ids[1], req.input())
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.update", err)
		return
	}

	middleware.RespondWithSuccess(w, fmt.Sprintf("%s color for the %s store updated successfully.", color.Name, store.Name), middleware.Payload{
		"store": store,
		"color": color,
	})
}

func (h *ColorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "storeId", "colorId")
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.delete", err)
		return
	}

	store, color, err := h.colorService.Delete(r.Context(), caller(r), ids[0], ids[1])
	if err != nil {
		respondWithServiceError(w, r, h.logger, "colors.delete", err)
		return
	}

	h.logger.Info("Color deleted",
		zap.String("store_id", store.ID.String()),
		zap.String("color_id", color.ID.String()),
	)
	middleware.RespondWithSuccess(w, fmt.Sprintf("%s color for the %s store deleted successfully.", color.Name, store.Name), middleware.Payload{
		"store": store,
		"color": color,
	})
}
