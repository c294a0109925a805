package repository

import (
	"context"

	"health-advisor/domain"
)

type SubmissionRepository interface {
	Save(ctx context.Context, record domain.SubmissionRecord) error
	// ListByUser returns the user's submissions, newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.SubmissionRecord, error)
}
