package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/internal/core/ports"
)

// MemberService implements the admin-only user and key operations.
type MemberService struct {
	users ports.UserRepository
	keys  ports.KeyRepository
	log   zerolog.Logger
}

func NewMemberService(users ports.UserRepository, keys ports.KeyRepository, log zerolog.Logger) *MemberService {
	return &MemberService{users: users, keys: keys, log: log}
}

func (s *MemberService) ListKeys(ctx context.Context) ([]domain.RedeemedKey, error) {
	return s.keys.ListWithRedeemer(ctx)
}

func (s *MemberService) ListMembers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListMembers(ctx)
}

func (s *MemberService) SetBanned(ctx context.Context, userID string, banned bool) error {
	if err := s.users.SetBanned(ctx, userID, banned); err != nil {
		return err
	}

	action := "unbanned"
	if banned {
		action = "banned"
	}
	s.log.Info().Str("user_id", userID).Msgf("user %s", action)
	return nil
}
