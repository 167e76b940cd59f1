package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Payload holds the resource fields merged into a success envelope
type Payload map[string]interface{}

// ErrorResponse is the failure envelope. Message is set for client errors,
// Error carries the raw cause for internal failures.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// RespondWithError sends a {success:false, message} response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Message: message})
}

// RespondWithInternalError sends a 500 carrying the raw error text
func RespondWithInternalError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// RespondWithValidationErrors sends a 400 listing the offending fields
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "Bad Request",
		Details: map[string]interface{}{"validation_errors": errors},
	})
}

// RespondWithSuccess sends {success:true, message, ...payload} with status 201.
// Every successful API call, reads included, answers 201.
func RespondWithSuccess(w http.ResponseWriter, message string, payload Payload) {
	body := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message

	RespondWithJSON(w, http.StatusCreated, body)
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
