// Package services contains the CLI application services: authentication
// backed by the API and the local session store, and job operations.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

// SessionStore persists the current login between runs.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Email(ctx context.Context) (string, error)
	Save(ctx context.Context, email, token string) error
	Clear(ctx context.Context) error
	Close() error
}

type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	// Login authenticates and persists the token.
	Login(ctx context.Context, email string, password []byte) error
	// Restore loads a saved token into the client and returns its email,
	// or "" when there is no saved login.
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client
	store  SessionStore
}

func NewAuthService(c client.Client, store SessionStore) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	return a.client.Register(ctx, strings.TrimSpace(email), string(password))
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	if err := a.store.Save(ctx, email, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) Restore(ctx context.Context) (string, error) {
	token, err := a.store.Token(ctx)
	if err != nil || token == "" {
		return "", err
	}

	email, err := a.store.Email(ctx)
	if err != nil {
		return "", err
	}

	a.client.SetToken(token)
	return email, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.store.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.store.Close()
}
