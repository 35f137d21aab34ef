package ports

import (
	"context"

	"github.com/memberhub/community-api/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and returns a signed bearer token plus the
	// authenticated user. Banned accounts are rejected before the password
	// is checked.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
