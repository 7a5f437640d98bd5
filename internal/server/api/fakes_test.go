package api

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/auth"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	mu     sync.Mutex
	tokens *auth.TokenService
	users  map[string]*models.User
	pw     map[string]string
	err    error
}

func newFakeUsers(tokens *auth.TokenService) *fakeUsers {
	return &fakeUsers{tokens: tokens, users: map[string]*models.User{}, pw: map[string]string{}}
}

func (f *fakeUsers) Register(_ context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if email == "" || password == "" {
		return nil, errors.Join(common.ErrorValidation, errors.New("email and password are required"))
	}
	if _, ok := f.users[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: uuid.NewString(), Email: email, CreatedAt: time.Now().UTC()}
	f.users[email] = u
	f.pw[email] = password
	return u, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	u, ok := f.users[email]
	if !ok || f.pw[email] != password {
		return "", common.ErrorInvalidCredentials
	}
	return f.tokens.Issue(u.ID)
}

// fakeJobs validates like the real service and scopes rows by owner.
type fakeJobs struct {
	mu    sync.Mutex
	rows  map[string]models.Job
	order []string
	err   error
	calls int
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{rows: map[string]models.Job{}}
}

func (f *fakeJobs) List(_ context.Context, userID string) ([]*models.Job, error) {
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

func (f *fakeJobs) Get(_ context.Context, userID, id string) (*models.Job, error) {
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

func (f *fakeJobs) Create(_ context.Context, userID string, in services.JobInput) (*models.Job, error) {
	job, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	job.ID = uuid.NewString()
	job.UserID = userID
	job.CreatedAt = time.Now().UTC()
	f.rows[job.ID] = *job
	f.order = append(f.order, job.ID)
	return job, nil
}

func (f *fakeJobs) Update(_ context.Context, userID, id string, in services.JobInput) (*models.Job, error) {
	job, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	old, ok := f.rows[id]
	if !ok || old.UserID != userID {
		return nil, common.ErrorNotFound
	}
	job.ID, job.UserID, job.CreatedAt = id, userID, old.CreatedAt
	f.rows[id] = *job
	return job, nil
}

func (f *fakeJobs) Delete(_ context.Context, userID, id string) error {
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

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error { return p.err }

func discardLogger() logging.Logger {
	return logging.New(logging.FormatJSON, io.Discard)
}
