// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/auth"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	log         logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		log:         log,
	}
}

const dummyPassword = "jobtracker-dummy-password"

// dummyHash is compared against when the email is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash = newDummyHash(auth.HashPassword)

// newDummyHash hashes dummyPassword once on first use. The input is constant,
// so a hashing failure is a programming error and panics.
func newDummyHash(hash func(string) (string, error)) func() string {
	return sync.OnceValue(func() string {
		h, err := hash(dummyPassword)
		if err != nil {
			panic(fmt.Sprintf("dummy password hash: %v", err))
		}
		return h
	})
}

// Register creates a user. The email is trimmed but otherwise stored as given.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, auth.MaxPasswordBytes)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.log.Error(ctx, "user create failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the password for email and returns a signed token. Unknown
// emails and wrong passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(dummyHash(), password)
			return "", common.ErrorInvalidCredentials
		}
		s.log.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}
