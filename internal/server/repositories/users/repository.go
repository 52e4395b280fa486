// Package users is the user directory: lookups by login for the credential
// verifier and the CRUD operations behind the user endpoints.
package users

import (
	"context"

	"github.com/dmitrijs2005/placeholder/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update overwrites every field of the user with user.ID except
	// CreatedAt, which is filled in from the stored row.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
