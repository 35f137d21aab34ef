package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/internal/core/ports"
)

// FeedCache abstracts the optional read-through cache on the public feed
// (Redis). A nil cache disables caching entirely.
type FeedCache interface {
	Get(ctx context.Context) ([]domain.Announcement, bool, error)
	Set(ctx context.Context, feed []domain.Announcement) error
	Invalidate(ctx context.Context) error
}

// AnnouncementService implements posting and reading the feed.
type AnnouncementService struct {
	repo  ports.AnnouncementRepository
	cache FeedCache
	log   zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, cache FeedCache, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, cache: cache, log: log}
}

func (s *AnnouncementService) Post(ctx context.Context, content string) (*domain.Announcement, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	a := &domain.Announcement{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}

	// Cache failures never fail the write; storage is the source of truth.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("feed cache invalidation failed")
		}
	}

	s.log.Info().Str("announcement_id", a.ID).Msg("announcement posted")
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	if s.cache != nil {
		feed, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("feed cache read failed, falling back to store")
		} else if ok {
			return feed, nil
		}
	}

	feed, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, feed); err != nil {
			s.log.Warn().Err(err).Msg("feed cache write failed")
		}
	}
	return feed, nil
}
