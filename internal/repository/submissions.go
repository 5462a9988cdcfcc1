package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Submission is one row of submission history: the document, its verified
// payload and where it stands with the broker.
type Submission struct {
	ID             uuid.UUID
	DocumentID     uuid.UUID
	Filename       string
	ContentSHA     string
	Status         constants.SubmissionStatus
	Payload        entity.BrokerPayload
	CompletionDate time.Time
	CreatedAt      time.Time
}

// SubmissionRepository is the persistence port for submission history.
type SubmissionRepository interface {
	Record(ctx context.Context, sub Submission) (uuid.UUID, error)
	FindByHash(ctx context.Context, contentSHA string) (*Submission, error)
	List(ctx context.Context, limit int) ([]Submission, error)
	SetStatus(ctx context.Context, id uuid.UUID, status constants.SubmissionStatus) error
}

type submissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepo{pool: pool}
}

func (r *submissionRepo) Record(ctx context.Context, sub Submission) (uuid.UUID, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	payload, err := json.Marshal(sub.Payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal payload: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO submissions (id, document_id, filename, content_sha, status, payload, completion_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		sub.ID, sub.DocumentID, sub.Filename, sub.ContentSHA, string(sub.Status), payload, sub.CompletionDate,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert submission: %w", err)
	}
	return sub.ID, nil
}

func (r *submissionRepo) FindByHash(ctx context.Context, contentSHA string) (*Submission, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, document_id, filename, content_sha, status, payload, completion_date, created_at
		FROM submissions
		WHERE content_sha = $1
		ORDER BY created_at DESC
		LIMIT 1`, contentSHA)
	sub, err := scanSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission by hash: %w", err)
	}
	return sub, nil
}

func (r *submissionRepo) List(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, document_id, filename, content_sha, status, payload, completion_date, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

func (r *submissionRepo) SetStatus(ctx context.Context, id uuid.UUID, status constants.SubmissionStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE submissions SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	var sub Submission
	var status string
	var payload []byte
	if err := row.Scan(&sub.ID, &sub.DocumentID, &sub.Filename, &sub.ContentSHA, &status, &payload, &sub.CompletionDate, &sub.CreatedAt); err != nil {
		return nil, err
	}
	sub.Status = constants.SubmissionStatus(status)
	if err := json.Unmarshal(payload, &sub.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &sub, nil
}
