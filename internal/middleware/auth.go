package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// AuthMiddleware resolves the caller identity from a session token issued by
// the external identity provider. The token is read from the Authorization
// header (Bearer) or, failing that, from the session cookie. A missing or
// unusable token leaves the request anonymous; RequireUser rejects anonymous
// callers on the routes that need an identity.
func AuthMiddleware(jwtSecret, sessionCookie string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := verifySession(r, jwtSecret, sessionCookie)
			if err != nil {
				logger.Debug("Ignoring unusable session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			logger.Debug("User authenticated", zap.String("user_id", userID))
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

var errMissingSubject = errors.New("session token has no subject")

// verifySession returns the token subject, or "" when no token was sent
func verifySession(r *http.Request, jwtSecret, sessionCookie string) (string, error) {
	tokenString, err := extractToken(r, sessionCookie)
	if err != nil || tokenString == "" {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return "", errMissingSubject
	}

	return claims.Subject, nil
}

var errMalformedAuthorization = errors.New("malformed authorization header")

func extractToken(r *http.Request, sessionCookie string) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", errMalformedAuthorization
		}
		return parts[1], nil
	}

	if sessionCookie != "" {
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			return cookie.Value, nil
		}
	}

	return "", nil
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying userID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
