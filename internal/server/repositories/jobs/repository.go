package jobs

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

// Repository stores job records. Every method is scoped to a user id; a row
// owned by somebody else is reported as common.ErrorNotFound.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Job, error)
	GetByID(ctx context.Context, userID, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) error
}
