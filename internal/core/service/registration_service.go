package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/internal/core/ports"
)

// keyValueBytes is the raw entropy per acceptance key: 5 bytes encode to
// 8 base32 characters (40 bits).
const keyValueBytes = 5

// RegistrationService implements signup and key issuance.
type RegistrationService struct {
	keys ports.KeyRepository
	log  zerolog.Logger
}

func NewRegistrationService(keys ports.KeyRepository, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{keys: keys, log: log}
}

func (s *RegistrationService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.AcceptanceKey == "" {
		return domain.ErrMissingKey
	}
	if in.Username == "" || in.Password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Email:        in.Email,
		Mobile:       in.Mobile,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.keys.RedeemAndCreateUser(ctx, in.AcceptanceKey, user)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("user_id", created.ID).
		Str("username", created.Username).
		Msg("user registered")

	return nil
}

func (s *RegistrationService) RequestKey(ctx context.Context) (string, error) {
	value, err := generateKeyValue()
	if err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}

	key := &domain.AcceptanceKey{
		ID:        uuid.NewString(),
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.keys.Create(ctx, key); err != nil {
		return "", err
	}

	s.log.Info().Str("key_id", key.ID).Msg("acceptance key issued")
	return value, nil
}

// generateKeyValue returns an uppercase base32 token from crypto/rand.
func generateKeyValue() (string, error) {
	b := make([]byte, keyValueBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base32.StdEncoding.EncodeToString(b), nil
}
