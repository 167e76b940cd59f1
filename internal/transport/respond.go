package transport

import (
	"errors"
	"net/http"

	"storefront-cms/internal/assets"
	"storefront-cms/internal/logger"
	"storefront-cms/internal/middleware"
	"storefront-cms/internal/repository"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgBadRequest   = "Bad Request"
	msgUnauthorized = "Unauthorized"
	msgNotFound     = "Not Found"
)

var errMalformedID = errors.New("malformed id")

// notFoundErrors are the lookups that surface as 404
var notFoundErrors = []error{
	repository.ErrBillboardNotFound,
	repository.ErrCategoryNotFound,
	repository.ErrSizeNotFound,
	repository.ErrColorNotFound,
	repository.ErrProductNotFound,
	repository.ErrOrderNotFound,
	assets.ErrAssetNotFound,
}

// respondWithServiceError maps service and repository errors onto the
// API's error envelope. Anything unrecognized is logged and returned as 500.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, route string, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		middleware.RespondWithError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	case errors.Is(err, repository.ErrStoreNotFound),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrNothingToCheckout),
		errors.Is(err, errMalformedID):
		middleware.RespondWithError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			middleware.RespondWithError(w, http.StatusNotFound, msgNotFound)
			return
		}
	}

	logger.FromContext(r.Context(), log).Error("Request failed",
		zap.String("route", route),
		zap.Error(err),
	)
	middleware.RespondWithInternalError(w, err)
}

// pathIDs parses the named chi URL params as UUIDs
func pathIDs(r *http.Request, names ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, err := uuid.Parse(chi.URLParam(r, name))
		if err != nil {
			return nil, errMalformedID
		}
		ids[i] = id
	}
	return ids, nil
}

// parseStoreID parses the {storeId} URL param
func parseStoreID(r *http.Request) (uuid.UUID, error) {
	ids, err := pathIDs(r, "storeId")
	if err != nil {
		return uuid.Nil, err
	}
	return ids[0], nil
}

// caller returns the authenticated user id, or "" for anonymous requests
func caller(r *http.Request) string {
	userID, _ := middleware.GetUserID(r.Context())
	return userID
}

// decode reads and validates the JSON body. On failure it answers 400 and
// returns false.
func decode(w http.ResponseWriter, r *http.Request, log *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.FromContext(r.Context(), log).Debug("Request validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return false
	}
	return true
}
