package ports

import (
	"context"

	"github.com/memberhub/community-api/internal/core/domain"
)

// KeyRepository defines the persistence interface for acceptance keys.
type KeyRepository interface {
	Create(ctx context.Context, key *domain.AcceptanceKey) error
	// ListWithRedeemer returns all keys newest-first, each joined with the
	// user who redeemed it when one exists.
	ListWithRedeemer(ctx context.Context) ([]domain.RedeemedKey, error)
	// RedeemAndCreateUser atomically marks the key with the given value as
	// used and inserts the user referencing it. The whole unit rolls back on
	// failure: a username collision leaves the key unused and returns
	// domain.ErrUsernameTaken; an unknown or already-used key value returns
	// domain.ErrInvalidKey.
	RedeemAndCreateUser(ctx context.Context, keyValue string, user *domain.User) (*domain.User, error)
}
