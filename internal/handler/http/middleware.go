package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/cgdmohamed/drznmobile-sub000/pkg/httputil"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/middleware"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// cartIDKey is the context key for the cart identity of the request.
const cartIDKey contextKey = "cart_id"

// CartIdentity resolves the cart identity for the request: a valid bearer
// token binds the cart to the authenticated user, otherwise the X-Cart-ID
// header identifies a guest cart. Requests with neither are rejected.
func CartIdentity(validate middleware.TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cartID string

			if authHeader := r.Header.Get("Authorization"); authHeader != "" && validate != nil {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
						Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid authorization header format"},
					})
					return
				}
				claims, err := validate(parts[1])
				if err != nil {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
						Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
					})
					return
				}
				cartID = "user:" + claims.UserID
			} else if guestID := r.Header.Get("X-Cart-ID"); guestID != "" {
				cartID = "guest:" + guestID
			}

			if cartID == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "a bearer token or X-Cart-ID header is required"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), cartIDKey, cartID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// cartIDFromContext extracts the cart identity from the request context.
func cartIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cartIDKey).(string)
	return id, ok && id != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
