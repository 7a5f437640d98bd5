// Package jobs provides the PostgreSQL-backed job repository. Every statement
// carries both the job id and the owner id in one predicate.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/lib/pq"
)

const columns = `id, user_id, title, company, link, status, date_applied, notes, tags, created_at`

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		job         models.Job
		link, notes sql.NullString
		dateApplied sql.NullTime
		status      string
	)
	if err := row.Scan(
		&job.ID, &job.UserID, &job.Title, &job.Company, &link, &status,
		&dateApplied, &notes, pq.Array(&job.Tags), &job.CreatedAt,
	); err != nil {
		return nil, err
	}

	job.Link = link.String
	job.Notes = notes.String
	job.Status = models.JobStatus(status)
	if dateApplied.Valid {
		d := dateApplied.Time.UTC()
		job.DateApplied = &d
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	return &job, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func tagArray(tags []string) any {
	if tags == nil {
		tags = []string{}
	}
	return pq.Array(tags)
}

// ListByUser returns every job owned by userID in insertion order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs
		WHERE user_id = $1
		ORDER BY created_at, id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs
		WHERE id = $1 AND user_id = $2
		`
	job, err := scanJob(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return job, nil
}

// Create inserts job for job.UserID and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `INSERT INTO jobs (user_id, title, company, link, status, date_applied, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	created, err := scanJob(r.db.QueryRowContext(ctx, query,
		job.UserID, job.Title, job.Company, nullString(job.Link), string(job.Status),
		nullDate(job.DateApplied), nullString(job.Notes), tagArray(job.Tags)))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of the row matching job.ID and
// job.UserID. No matching row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `UPDATE jobs
		SET title = $1, company = $2, link = $3, status = $4, date_applied = $5, notes = $6, tags = $7
		WHERE id = $8 AND user_id = $9
		RETURNING ` + columns

	updated, err := scanJob(r.db.QueryRowContext(ctx, query,
		job.Title, job.Company, nullString(job.Link), string(job.Status),
		nullDate(job.DateApplied), nullString(job.Notes), tagArray(job.Tags),
		job.ID, job.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM jobs WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
