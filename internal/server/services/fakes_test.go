package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	jobsrepo "github.com/dmitrijs2005/jobtracker/internal/server/repositories/jobs"
	usersrepo "github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func discardLogger() logging.Logger {
	return logging.New(logging.FormatJSON, io.Discard)
}

type fakeUsersRepo struct {
	mu     sync.Mutex
	byMail map[string]*models.User
	err    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byMail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	f.byMail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// fakeJobsRepo mimics the ownership predicate of the SQL repository.
type fakeJobsRepo struct {
	mu    sync.Mutex
	rows  map[string]models.Job
	order []string
	err   error
	calls int
}

func newFakeJobsRepo() *fakeJobsRepo {
	return &fakeJobsRepo{rows: map[string]models.Job{}}
}

func (f *fakeJobsRepo) ListByUser(_ context.Context, userID string) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Job{}
	for _, id := range f.order {
		if j, ok := f.rows[id]; ok && j.UserID == userID {
			out = append(out, &j)
		}
	}
	return out, nil
}

func (f *fakeJobsRepo) GetByID(_ context.Context, userID, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.rows[id]
	if !ok || j.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &j, nil
}

func (f *fakeJobsRepo) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	j := *job
	j.ID = uuid.NewString()
	j.CreatedAt = time.Now().UTC()
	f.rows[j.ID] = j
	f.order = append(f.order, j.ID)
	return &j, nil
}

func (f *fakeJobsRepo) Update(_ context.Context, job *models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	old, ok := f.rows[job.ID]
	if !ok || old.UserID != job.UserID {
		return nil, common.ErrorNotFound
	}
	j := *job
	j.CreatedAt = old.CreatedAt
	f.rows[j.ID] = j
	return &j, nil
}

func (f *fakeJobsRepo) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	j, ok := f.rows[id]
	if !ok || j.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	j *fakeJobsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *fakeRepoManager) Jobs(dbx.DBTX) jobsrepo.Repository            { return m.j }

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-for-%s", userID), nil
}

var errBoom = errors.New("db error: boom")
