package transport

import (
	"context"
	"io"
	"net/http"
	"strings"

	"storefront-cms/internal/assets"
	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxUploadBytes = 10 << 20
	assetFolder    = "storefront"
)

// ImageHost stores uploaded images outside the database
type ImageHost interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*assets.Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

// ImageHandler proxies image uploads to the asset host
type ImageHandler struct {
	storeService service.StoreService
	host         ImageHost
	logger       *zap.Logger
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(storeService service.StoreService, host ImageHost, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		storeService: storeService,
		host:         host,
		logger:       logger,
	}
}

// RegisterRoutes registers the owner-only image routes. Public ids contain
// slashes, so deletion takes the rest of the path.
func (h *ImageHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/images", func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/", h.Upload)
		r.Delete("/*", h.Delete)
	})
}

// Upload stores the multipart "file" field in the store's asset folder
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "images.upload", err)
		return
	}

	store, err := h.storeService.Authorize(r.Context(), caller(r), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "images.upload", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.logger.Debug("Missing upload file", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	defer file.Close()

	asset, err := h.host.Upload(r.Context(), file, storeFolder(storeID))
	if err != nil {
		respondWithServiceError(w, r, h.logger, "images.upload", err)
		return
	}

	h.logger.Info("Image uploaded",
		zap.String("store_id", store.ID.String()),
		zap.String("public_id", asset.PublicID),
	)
	middleware.RespondWithSuccess(w, "Image uploaded successfully.", middleware.Payload{
		"store":    store,
		"publicId": asset.PublicID,
		"url":      asset.URL,
	})
}

// Delete destroys an asset from the store's folder
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "images.delete", err)
		return
	}

	store, err := h.storeService.Authorize(r.Context(), caller(r), storeID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "images.delete", err)
		return
	}

	publicID := chi.URLParam(r, "*")
	if !strings.HasPrefix(publicID, storeFolder(storeID)+"/") {
		middleware.RespondWithError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.host.Destroy(r.Context(), publicID); err != nil {
		respondWithServiceError(w, r, h.logger, "images.delete", err)
		return
	}

	middleware.RespondWithSuccess(w, "Image deleted successfully.", middleware.Payload{
		"store":    store,
		"publicId": publicID,
	})
}

func storeFolder(storeID uuid.UUID) string {
	return assetFolder + "/" + storeID.String()
}
