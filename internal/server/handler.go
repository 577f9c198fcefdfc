package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"resumelens/internal/analysis"
	"resumelens/internal/observability"
	"resumelens/internal/storage"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// minResumeChars is the minimum resume length accepted over the API.
const minResumeChars = 50

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if req.ResumeText == nil {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if len(strings.TrimSpace(*req.ResumeText)) < minResumeChars {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too short", "resumeText must be at least 50 characters", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(*req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		userID := userIDFromContext(ctx)
		metrics := om.GetMetrics()

		start := time.Now()
		result, err := s.Analyzer.Analyze(ctx, analysis.Request{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
		})
		duration := time.Since(start)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordAnalysis(ctx, duration, string(types.SourceFallback), false)
			writeAppError(w, s.Logger, err)
			return
		}

		metrics.RecordAnalysis(ctx, duration, string(result.Enrichment), true)
		if s.AppConfig.AI.Enabled && result.Enrichment == types.SourceFallback {
			metrics.RecordEnrichmentFallback(ctx, "analyze")
		}

		record := storage.NewRecord(userID, req.FileName, result)
		if err := s.Store.Save(ctx, record); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "storage"))
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("analysis.id", record.ID),
			attribute.Int("overall.score", result.OverallScore),
			attribute.Int("ats.score", result.ATSScore),
			attribute.Int("match.score", result.JobMatchScore),
			attribute.String("enrichment.source", string(result.Enrichment)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(record); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to encode analyze response")
		}
	}
}

// createGetAnalysisHandler returns a single stored analysis by ID
func (s *Server) createGetAnalysisHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.get_analysis")
		defer span.End()

		analysisID := r.PathValue("id")
		if analysisID == "" {
			writeErrorResponse(w, "Missing analysis ID", "path must include an analysis ID", http.StatusBadRequest)
			return
		}

		userID := userIDFromContext(ctx)
		span.SetAttributes(attribute.String("analysis.id", analysisID))

		record, err := s.Store.Get(ctx, userID, analysisID)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to encode analysis response")
		}
	}
}

// createListAnalysesHandler returns the caller's analysis history, newest first
func (s *Server) createListAnalysesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.list_analyses")
		defer span.End()

		userID := userIDFromContext(ctx)

		summaries, err := s.Store.List(ctx, userID)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		span.SetAttributes(attribute.Int("analyses.count", len(summaries)))

		response := map[string]any{
			"analyses": summaries,
			"count":    len(summaries),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to encode history response")
		}
	}
}

// createDeleteAnalysisHandler removes a stored analysis by ID
func (s *Server) createDeleteAnalysisHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.delete_analysis")
		defer span.End()

		analysisID := r.PathValue("id")
		if analysisID == "" {
			writeErrorResponse(w, "Missing analysis ID", "path must include an analysis ID", http.StatusBadRequest)
			return
		}

		userID := userIDFromContext(ctx)
		span.SetAttributes(attribute.String("analysis.id", analysisID))

		if err := s.Store.Delete(ctx, userID, analysisID); err != nil {
			span.RecordError(err)
			writeAppError(w, s.Logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(), r.URL.Path)
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
