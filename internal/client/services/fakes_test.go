package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/scrape"
)

var errBoom = errors.New("boom")

type fakeClient struct {
	client.Client

	token string

	regEmail, regPass string
	regErr            error

	loginEmail, loginPass string
	loginToken            string
	loginErr              error

	pingErr error

	lastID    string
	lastInput models.JobInput
	jobs      []models.Job
	jobErr    error
}

func (f *fakeClient) SetToken(t string) { f.token = t }

func (f *fakeClient) Register(_ context.Context, email, password string) (*models.User, error) {
	f.regEmail, f.regPass = email, password
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.token = f.loginToken
	return f.loginToken, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) ListJobs(context.Context) ([]models.Job, error) { return f.jobs, f.jobErr }

func (f *fakeClient) GetJob(_ context.Context, id string) (*models.Job, error) {
	f.lastID = id
	if f.jobErr != nil {
		return nil, f.jobErr
	}
	return &models.Job{ID: id}, nil
}

func (f *fakeClient) CreateJob(_ context.Context, in models.JobInput) (*models.Job, error) {
	f.lastInput = in
	if f.jobErr != nil {
		return nil, f.jobErr
	}
	return &models.Job{ID: "new", Title: in.Title}, nil
}

func (f *fakeClient) UpdateJob(_ context.Context, id string, in models.JobInput) (*models.Job, error) {
	f.lastID, f.lastInput = id, in
	if f.jobErr != nil {
		return nil, f.jobErr
	}
	return &models.Job{ID: id, Title: in.Title}, nil
}

func (f *fakeClient) DeleteJob(_ context.Context, id string) error {
	f.lastID = id
	return f.jobErr
}

type fakeStore struct {
	email, token string
	saveErr      error
	getErr       error
	closed       bool
}

func (s *fakeStore) Token(context.Context) (string, error) { return s.token, s.getErr }
func (s *fakeStore) Email(context.Context) (string, error) { return s.email, s.getErr }
func (s *fakeStore) Save(_ context.Context, email, token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.email, s.token = email, token
	return nil
}
func (s *fakeStore) Clear(context.Context) error { s.email, s.token = "", ""; return nil }
func (s *fakeStore) Close() error                { s.closed = true; return nil }

type fakeScraper struct {
	url     string
	posting scrape.Posting
	isJob   bool
	err     error
}

func (f *fakeScraper) Scrape(_ context.Context, pageURL string) (scrape.Posting, bool, error) {
	f.url = pageURL
	return f.posting, f.isJob, f.err
}
