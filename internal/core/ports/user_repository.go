package ports

import (
	"context"

	"github.com/memberhub/community-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user records.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListMembers returns all non-admin accounts.
	ListMembers(ctx context.Context) ([]domain.User, error)
	// SetBanned updates the ban flag. Returns domain.ErrNotFound when the
	// user does not exist; setting an already-set flag is a no-op success.
	SetBanned(ctx context.Context, id string, banned bool) error
}
