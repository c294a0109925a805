// Package messaging publishes accepted health submissions to a message broker
// so downstream consumers can react to new measurements.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"health-advisor/domain"
)

const EventSubmissionAccepted = "submission.accepted"

// Envelope is the JSON body of every published message.
type Envelope struct {
	Type       string                  `json:"type"`
	OccurredAt time.Time               `json:"occurred_at"`
	Submission domain.SubmissionRecord `json:"submission"`
}

func encode(record domain.SubmissionRecord) ([]byte, error) {
	body, err := json.Marshal(Envelope{
		Type:       EventSubmissionAccepted,
		OccurredAt: record.CreatedAt,
		Submission: record,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", EventSubmissionAccepted, err)
	}
	return body, nil
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.SubmissionRecord) error { return nil }

func (NopPublisher) Close() error { return nil }
