package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"health-advisor/domain"
)

// Fixed width so created_at sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

const submissionSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id           TEXT PRIMARY KEY,
	user_id      INTEGER NOT NULL,
	metrics_json TEXT NOT NULL,
	result_json  TEXT NOT NULL,
	bmi          REAL NOT NULL,
	risk_score   TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(user_id, created_at);
`

// SubmissionRepositorySQLite keeps submission history in a SQLite file.
type SubmissionRepositorySQLite struct {
	db *sql.DB
}

// NewSubmissionRepositorySQLite opens a SQLite database and runs migrations.
func NewSubmissionRepositorySQLite(dbPath string) (*SubmissionRepositorySQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(submissionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SubmissionRepositorySQLite{db: db}, nil
}

func (r *SubmissionRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *SubmissionRepositorySQLite) Save(ctx context.Context, record domain.SubmissionRecord) error {
	metricsJSON, err := json.Marshal(record.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO submissions (id, user_id, metrics_json, result_json, bmi, risk_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, string(metricsJSON), string(resultJSON),
		record.Result.BMI, string(record.Result.RiskScore),
		record.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepositorySQLite) ListByUser(ctx context.Context, userID int64) ([]domain.SubmissionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, metrics_json, result_json, created_at
		 FROM submissions WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	records := []domain.SubmissionRecord{}
	for rows.Next() {
		var (
			rec                     domain.SubmissionRecord
			metricsJSON, resultJSON string
			createdAt               string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &metricsJSON, &resultJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal([]byte(metricsJSON), &rec.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result %s: %w", rec.ID, err)
		}
		if rec.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
