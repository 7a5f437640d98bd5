package users

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
