// Package services contains server-side business logic. This file implements
// UserService: credential verification, login, registration and the user
// reads and writes behind the protected endpoints.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/dmitrijs2005/placeholder/internal/cryptox"
	"github.com/dmitrijs2005/placeholder/internal/dbx"
	"github.com/dmitrijs2005/placeholder/internal/logging"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
	"github.com/dmitrijs2005/placeholder/internal/server/models"
	"github.com/dmitrijs2005/placeholder/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/placeholder/internal/server/repositories/users"
	"github.com/google/uuid"
)

var (
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already in use")
)

// TokenIssuer mints a token for an authenticated principal.
type TokenIssuer interface {
	Issue(p auth.Principal, now time.Time) (string, error)
}

// Registration is the input of Register. Password is plaintext and is
// hashed before anything is stored.
type Registration struct {
	Name     string
	UserName string
	Email    string
	Phone    string
	Website  string
	Address  models.Address
	Company  models.Company
	Password string
}

// UserUpdate replaces the profile of an existing user. An empty Password
// keeps the stored hash.
type UserUpdate struct {
	Name     string
	UserName string
	Email    string
	Phone    string
	Website  string
	Address  models.Address
	Company  models.Company
	Password string
}

// UserService provides the account operations:
//   - Verify: check a username/password pair against the directory
//   - Login: Verify, then issue a token
//   - Register: hash the password and create the user
//   - Get/List: reads for authenticated callers
//   - Update/Delete: profile changes for authenticated callers
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
	now         func() time.Time

	decoyOnce sync.Once
	decoy     []byte
}

// NewUserService wires a UserService.
func NewUserService(m repomanager.RepositoryManager, h cryptox.PasswordHasher, t TokenIssuer, l logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      h,
		tokens:      t,
		logger:      l.With("module", "user_service"),
		now:         time.Now,
	}
}

func (s *UserService) users() users.Repository {
	return s.repomanager.Users(s.repomanager.DB())
}

// Verify returns the principal for username when password matches its
// stored hash. Every failure, including an empty field, an unknown user and
// a failed lookup, is reported as common.ErrInvalidCredentials.
func (s *UserService) Verify(ctx context.Context, username, password string) (auth.Principal, error) {
	if username == "" || password == "" {
		return auth.Principal{}, common.ErrInvalidCredentials
	}

	user, err := s.users().GetUserByLogin(ctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "user lookup failed", "error", err)
		}
		// Same hashing work as a wrong password for an existing user.
		_ = s.hasher.Compare(s.decoyHash(), []byte(password))
		return auth.Principal{}, common.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return auth.Principal{}, common.ErrInvalidCredentials
	}

	return auth.Principal{Username: user.UserName}, nil
}

// decoyHash is a hash of a random secret at the hasher's cost, compared
// against when the username does not resolve.
func (s *UserService) decoyHash() []byte {
	s.decoyOnce.Do(func() {
		h, err := s.hasher.Hash([]byte(uuid.NewString()))
		if err != nil {
			s.logger.Error(context.Background(), "decoy hash failed", "error", err)
			return
		}
		s.decoy = h
	})
	return s.decoy
}

// Login verifies the credentials and returns a freshly issued token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	p, err := s.Verify(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(p, s.now())
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "username", p.Username)
	return token, nil
}

// Register creates a user. Username and email must both be unused.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	if r.UserName == "" || r.Email == "" || r.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash([]byte(r.Password))
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         r.Name,
		UserName:     r.UserName,
		Email:        r.Email,
		Phone:        r.Phone,
		Website:      r.Website,
		Address:      r.Address,
		Company:      r.Company,
		PasswordHash: hash,
	}

	var created *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.ExistsByUsername(ctx, r.UserName)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = repo.ExistsByEmail(ctx, r.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		created, err = repo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "username", created.UserName, "id", created.ID)
	return created, nil
}

// GetByUsername returns the user with the given login.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users().GetUserByLogin(ctx, username)
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users().GetUserByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users().List(ctx)
}

// Update overwrites the user with the given id. A new username or email
// must not belong to another user.
func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) (*models.User, error) {
	if in.UserName == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", common.ErrorValidation)
	}

	var hash []byte
	if in.Password != "" {
		var err error
		if hash, err = s.hasher.Hash([]byte(in.Password)); err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	var updated *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		current, err := repo.GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if in.UserName != current.UserName {
			taken, err := repo.ExistsByUsername(ctx, in.UserName)
			if err != nil {
				return err
			}
			if taken {
				return ErrUsernameTaken
			}
		}

		if in.Email != current.Email {
			taken, err := repo.ExistsByEmail(ctx, in.Email)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
		}

		if hash == nil {
			hash = current.PasswordHash
		}

		updated, err = repo.Update(ctx, &models.User{
			ID:           current.ID,
			Name:         in.Name,
			UserName:     in.UserName,
			Email:        in.Email,
			Address:      in.Address,
			Phone:        in.Phone,
			Website:      in.Website,
			Company:      in.Company,
			PasswordHash: hash,
		})
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error updating user: %w", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "username", updated.UserName, "id", updated.ID)
	return updated, nil
}

// Delete removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted", "id", id)
	return nil
}
