package ai

import (
	"context"
	"fmt"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// UsageRecorder receives token usage for completed AI operations
type UsageRecorder interface {
	RecordTokenUsage(ctx context.Context, operation string, inputTokens, outputTokens int64)
}

// Service handles AI enrichment operations. It satisfies the analyzer's
// Enricher interface, hiding token accounting from the caller.
type Service struct {
	Provider Provider // Exported for access from server package
	config   *config.AIConfig
	logger   *errors.Logger
	usage    UsageRecorder
}

// NewService creates a new AI service instance
func NewService(cfg *config.AIConfig, logger *errors.Logger, usage UsageRecorder) (*Service, error) {
	var provider Provider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
		usage:    usage,
	}, nil
}

// MatchJobDescription scores a resume against a job description
func (s *Service) MatchJobDescription(ctx context.Context, resumeText, jobDescription string) (types.JobMatch, error) {
	match, tokenUsage, err := s.Provider.MatchJobDescription(ctx, resumeText, jobDescription)
	if err != nil {
		return types.JobMatch{}, err
	}
	s.recordUsage(ctx, "match_job", tokenUsage)
	return match, nil
}

// ExtractSkills extracts categorized skills from resume text
func (s *Service) ExtractSkills(ctx context.Context, text string) (types.SkillSet, error) {
	skills, tokenUsage, err := s.Provider.ExtractSkills(ctx, text)
	if err != nil {
		return nil, err
	}
	s.recordUsage(ctx, "extract_skills", tokenUsage)
	return skills, nil
}

// GenerateSuggestions produces improvement suggestions for a resume
func (s *Service) GenerateSuggestions(ctx context.Context, resumeText, jobDescription string) ([]types.Suggestion, error) {
	suggestions, tokenUsage, err := s.Provider.GenerateSuggestions(ctx, resumeText, jobDescription)
	if err != nil {
		return nil, err
	}
	s.recordUsage(ctx, "generate_suggestions", tokenUsage)
	return suggestions, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

func (s *Service) recordUsage(ctx context.Context, operation string, tokenUsage *TokenUsage) {
	if tokenUsage == nil {
		return
	}

	s.logger.Debug("AI operation token usage",
		"operation", operation,
		"input_tokens", tokenUsage.InputTokens,
		"output_tokens", tokenUsage.OutputTokens,
		"total_tokens", tokenUsage.TotalTokens)

	if s.usage != nil {
		s.usage.RecordTokenUsage(ctx, operation, tokenUsage.InputTokens, tokenUsage.OutputTokens)
	}
}
