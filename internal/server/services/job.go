package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of date_applied.
const DateLayout = "2006-01-02"

// JobInput carries the editable fields of a job as received from a client.
// DateApplied is a pointer so that "absent" and "blank" can both be sent.
type JobInput struct {
	Title       string
	Company     string
	Link        string
	Status      string
	DateApplied *string
	Notes       string
	Tags        []string
}

// Normalize validates the input and returns the job it describes, with
// defaults applied. Text fields and tags are kept exactly as sent. It never
// touches storage.
func (in JobInput) Normalize() (*models.Job, error) {
	job := &models.Job{
		Title:   in.Title,
		Company: in.Company,
		Link:    in.Link,
		Notes:   in.Notes,
		Status:  models.JobStatus(in.Status),
		Tags:    in.Tags,
	}

	if strings.TrimSpace(job.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(job.Company) == "" {
		return nil, fmt.Errorf("%w: company is required", common.ErrorValidation)
	}

	if job.Status == "" {
		job.Status = models.StatusApplied
	}
	if !job.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, in.Status)
	}

	if in.DateApplied != nil {
		d, err := parseDate(*in.DateApplied)
		if err != nil {
			return nil, err
		}
		job.DateApplied = d
	}

	if job.Tags == nil {
		job.Tags = []string{}
	}

	return job, nil
}

// parseDate turns a blank string into nil and anything else into a UTC
// midnight date. RFC 3339 timestamps are accepted and cut to their date.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, fmt.Errorf("%w: date_applied must be YYYY-MM-DD", common.ErrorValidation)
}

// JobService implements per-user job CRUD. Every call runs on a single pooled
// connection that is released before returning.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewJobService constructs a JobService.
func NewJobService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *JobService {
	return &JobService{db: db, repomanager: m, log: log}
}

// List returns every job owned by userID.
func (s *JobService) List(ctx context.Context, userID string) ([]*models.Job, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	var result []*models.Job
	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Jobs(conn).ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, s.storageError(ctx, "list", userID, err)
	}
	return result, nil
}

// Get returns job id if userID owns it, common.ErrorNotFound otherwise.
func (s *JobService) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	var job *models.Job
	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		job, err = s.repomanager.Jobs(conn).GetByID(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, s.storageError(ctx, "get", userID, err)
	}
	return job, nil
}

// Create validates in and stores it as a new job owned by userID.
func (s *JobService) Create(ctx context.Context, userID string, in JobInput) (*models.Job, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}
	job, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	job.UserID = userID

	var created *models.Job
	err = dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Jobs(conn).Create(ctx, job)
		return err
	})
	if err != nil {
		return nil, s.storageError(ctx, "create", userID, err)
	}
	return created, nil
}

// Update replaces the editable fields of job id. A foreign or missing id
// yields common.ErrorNotFound.
func (s *JobService) Update(ctx context.Context, userID, id string, in JobInput) (*models.Job, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}
	job, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	job.ID = id
	job.UserID = userID

	var updated *models.Job
	err = dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		updated, err = s.repomanager.Jobs(conn).Update(ctx, job)
		return err
	})
	if err != nil {
		return nil, s.storageError(ctx, "update", userID, err)
	}
	return updated, nil
}

// Delete removes job id. A foreign or missing id yields common.ErrorNotFound.
func (s *JobService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return common.ErrorUnauthenticated
	}
	if !validID(id) {
		return common.ErrorNotFound
	}

	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		return s.repomanager.Jobs(conn).Delete(ctx, userID, id)
	})
	if err != nil {
		return s.storageError(ctx, "delete", userID, err)
	}
	return nil
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// storageError passes common.ErrorNotFound through and hides everything else
// behind common.ErrorInternal after logging it.
func (s *JobService) storageError(ctx context.Context, op, userID string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.log.Error(ctx, "job storage failure", "op", op, "user_id", userID, "error", err)
	return common.ErrorInternal
}
