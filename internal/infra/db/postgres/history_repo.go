package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	domain "github.com/credifyai/credify-api/internal/domain/analysis"
)

type HistoryRepository struct{ db *sql.DB }

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

// Save appends one analysis record (append-only, no upsert)
func (r *HistoryRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO analysis_history
 (id, user_id, text, summary, analysis, score, verdict, category, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	category := a.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, a.Text, a.Summary, a.Reasoning,
		a.Score, a.Verdict, category, created,
	)
	return err
}

// Get by ID + user
func (r *HistoryRepository) Get(ctx context.Context, user string, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, user_id, text, summary, analysis, score, verdict, category, created_at
FROM analysis_history
WHERE user_id=$1 AND id=$2 LIMIT 1;`

	var a domain.Analysis
	if err := r.db.QueryRowContext(ctx, q, user, id).Scan(
		&a.ID, &a.UserID, &a.Text, &a.Summary, &a.Reasoning,
		&a.Score, &a.Verdict, &a.Category, &a.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Latest records per user
func (r *HistoryRepository) Latest(ctx context.Context, user string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, user_id, text, summary, analysis, score, verdict, category, created_at
FROM analysis_history
WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2;`

	rows, err := r.db.QueryContext(ctx, q, user, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Text, &a.Summary, &a.Reasoning,
			&a.Score, &a.Verdict, &a.Category, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Paginate with offset + limit
func (r *HistoryRepository) Paginate(ctx context.Context, user string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, user_id, text, summary, analysis, score, verdict, category, created_at
FROM analysis_history
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;`

	rows, err := r.db.QueryContext(ctx, q, user, pageSize, offset)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Text, &a.Summary, &a.Reasoning,
			&a.Score, &a.Verdict, &a.Category, &a.CreatedAt,
		); err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, &a)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM analysis_history WHERE user_id = $1", user,
	).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       records,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
