package ports

import (
	"context"

	"github.com/memberhub/community-api/internal/core/domain"
)

// MemberService groups the admin-only user and key operations.
type MemberService interface {
	ListKeys(ctx context.Context) ([]domain.RedeemedKey, error)
	ListMembers(ctx context.Context) ([]domain.User, error)
	SetBanned(ctx context.Context, userID string, banned bool) error
}
