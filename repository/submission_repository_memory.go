package repository

import (
	"context"
	"sync"

	"health-advisor/domain"
)

// SubmissionRepositoryMemory is an in-memory implementation of SubmissionRepository.
type SubmissionRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.SubmissionRecord
}

// NewSubmissionRepositoryMemory creates a new in-memory submission repository.
func NewSubmissionRepositoryMemory() *SubmissionRepositoryMemory {
	return &SubmissionRepositoryMemory{
		data: []domain.SubmissionRecord{},
	}
}

// Save stores the submission in memory.
func (r *SubmissionRepositoryMemory) Save(
	_ context.Context,
	record domain.SubmissionRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

func (r *SubmissionRepositoryMemory) ListByUser(
	_ context.Context,
	userID int64,
) ([]domain.SubmissionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []domain.SubmissionRecord{}
	for i := len(r.data) - 1; i >= 0; i-- {
		if r.data[i].UserID == userID {
			records = append(records, r.data[i])
		}
	}
	return records, nil
}
