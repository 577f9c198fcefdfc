package storage

import (
	"context"
	"sync"

	"resumelens/internal/types"
)

// MemoryStore keeps analysis records in process memory. It is the default
// backend for single-instance deployments and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	records      map[string]map[string]*AnalysisRecord // userID -> analysisID -> record
	order        map[string][]string                   // userID -> analysisIDs, oldest first
	historyLimit int
}

// NewMemoryStore creates an in-memory store keeping at most historyLimit
// records per user.
func NewMemoryStore(historyLimit int) *MemoryStore {
	return &MemoryStore{
		records:      make(map[string]map[string]*AnalysisRecord),
		order:        make(map[string][]string),
		historyLimit: historyLimit,
	}
}

// Save stores a copy of the record and trims the user's history
func (s *MemoryStore) Save(ctx context.Context, record *AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRecords, ok := s.records[record.UserID]
	if !ok {
		userRecords = make(map[string]*AnalysisRecord)
		s.records[record.UserID] = userRecords
	}

	// Re-saving an existing ID must not duplicate its order entry
	if _, exists := userRecords[record.ID]; !exists {
		s.order[record.UserID] = append(s.order[record.UserID], record.ID)
	}

	stored := *record
	userRecords[record.ID] = &stored

	// Trim oldest entries beyond the history limit
	if s.historyLimit > 0 {
		for len(s.order[record.UserID]) > s.historyLimit {
			oldest := s.order[record.UserID][0]
			s.order[record.UserID] = s.order[record.UserID][1:]
			delete(userRecords, oldest)
		}
	}

	return nil
}

// Get returns a copy of the user's record
func (s *MemoryStore) Get(ctx context.Context, userID, analysisID string) (*AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID][analysisID]
	if !ok {
		return nil, notFoundError(analysisID)
	}

	copied := *record
	return &copied, nil
}

// List returns the user's history summaries, newest first
func (s *MemoryStore) List(ctx context.Context, userID string) ([]types.AnalysisSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[userID]
	summaries := make([]types.AnalysisSummary, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if record, ok := s.records[userID][ids[i]]; ok {
			summaries = append(summaries, record.Summary())
		}
	}

	return summaries, nil
}

// Delete removes the user's record
func (s *MemoryStore) Delete(ctx context.Context, userID, analysisID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID][analysisID]; !ok {
		return notFoundError(analysisID)
	}

	delete(s.records[userID], analysisID)
	for i, id := range s.order[userID] {
		if id == analysisID {
			s.order[userID] = append(s.order[userID][:i], s.order[userID][i+1:]...)
			break
		}
	}

	return nil
}

// Ping always succeeds for the in-memory backend
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases nothing for the in-memory backend
func (s *MemoryStore) Close() error {
	return nil
}
