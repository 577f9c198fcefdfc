package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	apperrors "resumelens/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	if s.AppConfig.Observability.HealthCheck.Timeout > 0 {
		return s.AppConfig.Observability.HealthCheck.Timeout
	}
	return 10 * time.Second
}

// healthHandler provides a comprehensive health check endpoint including
// storage and AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	response := map[string]any{
		"status":  "healthy",
		"service": "resumelens",
		"version": s.Version,
	}

	overallHealthy := true

	// Check history store reachability
	storageStatus := s.checkStorageHealth(ctx)
	response["storage"] = storageStatus
	if healthy, ok := storageStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}

	// Check AI enrichment availability when enabled
	aiStatus := s.checkAIHealth(ctx)
	response["ai"] = aiStatus
	if available, ok := aiStatus["available"].(bool); ok && !available && s.AppConfig.AI.Enabled {
		overallHealthy = false
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkStorageHealth pings the history store
func (s *Server) checkStorageHealth(ctx context.Context) map[string]any {
	status := map[string]any{
		"backend": s.AppConfig.Storage.Backend,
	}

	if s.Store == nil {
		status["healthy"] = false
		status["error"] = "store not initialized"
		return status
	}

	if err := s.Store.Ping(ctx); err != nil {
		status["healthy"] = false
		status["error"] = err.Error()
		return status
	}

	status["healthy"] = true
	return status
}

// checkAIHealth reports the enrichment model's availability and circuit
// breaker state
func (s *Server) checkAIHealth(ctx context.Context) map[string]any {
	if !s.AppConfig.AI.Enabled {
		return map[string]any{
			"enabled": false,
			"mode":    "deterministic",
		}
	}

	status := map[string]any{
		"enabled": true,
		"model":   s.AppConfig.AI.Model,
	}

	if s.AIService == nil {
		status["available"] = false
		status["error"] = "AI service not initialized"
		return status
	}

	modelInfo := s.AIService.GetModelInfo(ctx)
	status["available"] = modelInfo.Available
	if modelInfo.Error != "" {
		status["error"] = modelInfo.Error
	}
	if modelInfo.Version != "" {
		status["model_version"] = modelInfo.Version
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"storage": map[string]any{
			"backend":       s.AppConfig.Storage.Backend,
			"history_limit": s.AppConfig.Storage.HistoryLimit,
		},
		"enrichment": map[string]any{
			"enabled": s.AppConfig.AI.Enabled,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeAppError maps an application error onto an HTTP status and writes
// the standardized error body
func writeAppError(w http.ResponseWriter, logger *apperrors.Logger, err error) {
	status := http.StatusInternalServerError
	code := ""
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
		status = statusForAppError(appErr)
	}

	if logger != nil && status >= http.StatusInternalServerError {
		logger.LogError(err, "Request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
	}

	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Printf("Failed to encode error response: %v", encodeErr)
	}
}

// statusForAppError maps error codes and types onto HTTP statuses
func statusForAppError(appErr *apperrors.AppError) int {
	switch appErr.Code {
	case apperrors.ErrCodeRecordNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeAccessDenied:
		return http.StatusForbidden
	case apperrors.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
