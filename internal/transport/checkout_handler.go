package transport

import (
	"errors"
	"io"
	"net/http"

	"storefront-cms/internal/logger"
	"storefront-cms/internal/middleware"
	"storefront-cms/internal/payment"
	"storefront-cms/internal/repository"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBytes = int64(65536)
)

// CheckoutRequest represents the storefront checkout payload
type CheckoutRequest struct {
	ProductIDs []uuid.UUID `json:"productIds" validate:"required,min=1"`
}

// CheckoutResponse carries the hosted payment page URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// CheckoutHandler handles storefront checkout and the payment webhook
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout and webhook routes. Checkout is
// open to any origin; rateLimit guards it per client.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/{storeId}/checkout", func(r chi.Router) {
		r.Use(middleware.CheckoutCORS())
		r.Options("/", h.Preflight)
		r.With(rateLimit).Post("/", h.Checkout)
	})

	r.Post("/api/webhook", h.Webhook)
}

// Preflight answers OPTIONS once the CORS layer has set its headers
func (h *CheckoutHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, struct{}{})
}

// Checkout creates a pending order and returns the payment page URL
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondWithServiceError(w, r, h.logger, "checkout.create", err)
		return
	}

	var req CheckoutRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	url, err := h.checkoutService.Checkout(r.Context(), storeID, req.ProductIDs, r.Header.Get("Origin"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, "checkout.create", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, CheckoutResponse{URL: url})
}

// Webhook applies signed payment notifications. Replays of an already
// paid order are acknowledged without changes.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		log.Warn("Failed to read webhook body", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	err = h.checkoutService.CompletePayment(r.Context(), payload, r.Header.Get(signatureHeader))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, payment.ErrInvalidSignature), errors.Is(err, payment.ErrMalformedEvent):
		log.Warn("Rejected webhook", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgBadRequest)
	case errors.Is(err, repository.ErrOrderAlreadyPaid):
		log.Info("Ignoring replayed payment notification", zap.Error(err))
		w.WriteHeader(http.StatusOK)
	default:
		log.Error("Request failed", zap.String("route", "webhook"), zap.Error(err))
		middleware.RespondWithInternalError(w, err)
	}
}
