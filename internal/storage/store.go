package storage

import (
	"context"
	"fmt"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"

	"github.com/google/uuid"
)

// StatusCompleted is the status of a successfully stored analysis.
const StatusCompleted = "completed"

// AnalysisRecord is a stored analysis with its ownership metadata
type AnalysisRecord struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	FileName  string               `json:"fileName,omitempty"`
	Result    types.AnalysisResult `json:"result"`
	CreatedAt time.Time            `json:"createdAt"`
	Status    string               `json:"status"`
}

// Store persists analysis results per user. Records are always scoped by
// user: a record saved for one user is invisible to every other user.
type Store interface {
	// Save persists a record and trims the user's history to the
	// configured limit, dropping the oldest entries first.
	Save(ctx context.Context, record *AnalysisRecord) error

	// Get returns the record, or a RECORD_NOT_FOUND error when the user
	// has no record with that ID.
	Get(ctx context.Context, userID, analysisID string) (*AnalysisRecord, error)

	// List returns the user's history summaries, newest first.
	List(ctx context.Context, userID string) ([]types.AnalysisSummary, error)

	// Delete removes the record, or returns a RECORD_NOT_FOUND error when
	// the user has no record with that ID.
	Delete(ctx context.Context, userID, analysisID string) error

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error

	Close() error
}

// NewStore creates the store selected by the configuration
func NewStore(cfg config.StorageConfig, logger *errors.Logger) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(cfg.HistoryLimit), nil
	case "redis":
		return NewRedisStore(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported storage backend: %s", cfg.Backend), nil)
	}
}

// NewRecord builds a record for a completed analysis with a fresh ID
func NewRecord(userID, fileName string, result types.AnalysisResult) *AnalysisRecord {
	return &AnalysisRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  fileName,
		Result:    result,
		CreatedAt: result.AnalysisDate,
		Status:    StatusCompleted,
	}
}

// Summary reduces a record to its history listing shape
func (r *AnalysisRecord) Summary() types.AnalysisSummary {
	return types.AnalysisSummary{
		ID:            r.ID,
		FileName:      r.FileName,
		OverallScore:  r.Result.OverallScore,
		ATSScore:      r.Result.ATSScore,
		JobMatchScore: r.Result.JobMatchScore,
		CreatedAt:     r.CreatedAt,
		Status:        r.Status,
	}
}

func notFoundError(analysisID string) *errors.AppError {
	return errors.NewStorageError(errors.ErrCodeRecordNotFound,
		"analysis not found", nil).WithContext("analysis_id", analysisID)
}
