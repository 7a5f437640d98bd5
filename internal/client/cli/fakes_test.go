package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobtracker/internal/client/config"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/scrape"
)

type fakeAuth struct {
	regEmail string
	regPass  string
	regErr   error

	loginEmail string
	loginPass  string
	loginErr   error

	restoreEmail string
	restoreErr   error

	logoutCalls int
	pingErr     error
	closed      bool
}

func (f *fakeAuth) Register(_ context.Context, email string, pw []byte) (*models.User, error) {
	f.regEmail, f.regPass = email, string(pw)
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, pw []byte) error {
	f.loginEmail, f.loginPass = email, string(pw)
	return f.loginErr
}

func (f *fakeAuth) Restore(context.Context) (string, error) { return f.restoreEmail, f.restoreErr }
func (f *fakeAuth) Logout(context.Context) error           { f.logoutCalls++; return nil }
func (f *fakeAuth) Ping(context.Context) error             { return f.pingErr }
func (f *fakeAuth) Close() error                           { f.closed = true; return nil }

type fakeJobs struct {
	jobs    []models.Job
	job     *models.Job
	err     error
	created []models.JobInput
	updated []models.JobInput
	deleted []string
	lastID  string

	posting   scrape.Posting
	importErr error
}

func (f *fakeJobs) List(context.Context) ([]models.Job, error) { return f.jobs, f.err }

func (f *fakeJobs) Get(_ context.Context, id string) (*models.Job, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.job, nil
}

func (f *fakeJobs) Create(_ context.Context, in models.JobInput) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &models.Job{ID: "new-id"}, nil
}

func (f *fakeJobs) Update(_ context.Context, id string, in models.JobInput) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, in)
	return &models.Job{ID: id}, nil
}

func (f *fakeJobs) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeJobs) Import(context.Context, string) (scrape.Posting, error) {
	return f.posting, f.importErr
}

// newTestApp builds an App reading the given lines from its input.
func newTestApp(t *testing.T, as *fakeAuth, js *fakeJobs, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	origToday := today
	today = func() string { return "2024-05-17" }
	t.Cleanup(func() {
		isTerminal = origTerm
		today = origToday
	})

	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	cfg := &config.Config{ServerURL: "http://test"}
	return newApp(cfg, as, js, in, out), out
}
