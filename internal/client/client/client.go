package client

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Ping(ctx context.Context) error
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	CreateJob(ctx context.Context, in models.JobInput) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, in models.JobInput) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}
