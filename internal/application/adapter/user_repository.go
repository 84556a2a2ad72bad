// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/domain/entity"
)

// UserRepository stores registered accounts. Lookups return
// domainerror.ErrUserNotFound when nothing matches.
type UserRepository interface {
	// Create stores a new user. A taken email yields domainerror.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail expects an already normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePassword persists the user's password hash and change timestamps only.
	UpdatePassword(ctx context.Context, user *entity.User) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
