package server

import (
	"context"
	"net/http"
	"strings"

	"resumelens/internal/observability"
)

type contextKey string

const userIDKey contextKey = "userID"

// anonymousUser is the history scope used when authentication is disabled
// and the client sent no identity header.
const anonymousUser = "anonymous"

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)
	mux.HandleFunc("POST /v1/analyze",
		rateLimitHandler(
			s.authMiddleware(requestLimitHandler(s.createAnalyzeHandler(om))),
		),
	)
	mux.HandleFunc("GET /v1/analyses",
		rateLimitHandler(
			s.authMiddleware(s.createListAnalysesHandler(om)),
		),
	)
	mux.HandleFunc("GET /v1/analyses/{id}",
		rateLimitHandler(
			s.authMiddleware(s.createGetAnalysisHandler(om)),
		),
	)
	mux.HandleFunc("DELETE /v1/analyses/{id}",
		rateLimitHandler(
			s.authMiddleware(s.createDeleteAnalysisHandler(om)),
		),
	)

	return mux
}

// authMiddleware provides API key authentication and attaches the caller's
// history scope to the request context.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := extractAPIKey(r)

		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r.WithContext(withUserID(r.Context(), s.resolveUserID(r, ""))))
			return
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r.WithContext(withUserID(r.Context(), s.resolveUserID(r, apiKey))))
	}
}

// resolveUserID determines the history scope for a request. Authenticated
// requests are scoped by their API key so one client can never read
// another's records. Unauthenticated deployments fall back to the
// X-User-ID header, then to a shared anonymous scope.
func (s *Server) resolveUserID(r *http.Request, apiKey string) string {
	if apiKey != "" {
		return "key:" + apiKey
	}
	if uid := strings.TrimSpace(r.Header.Get("X-User-ID")); uid != "" {
		return uid
	}
	return anonymousUser
}

// extractAPIKey reads the API key from the X-API-Key header or the
// Authorization Bearer token.
func extractAPIKey(r *http.Request) string {
	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return apiKey
	}
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return ""
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// userIDFromContext returns the history scope set by authMiddleware.
func userIDFromContext(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok && uid != "" {
		return uid
	}
	return anonymousUser
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
