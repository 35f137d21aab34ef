package ports

import (
	"context"

	"github.com/memberhub/community-api/internal/core/domain"
)

// AnnouncementRepository defines the persistence interface for the feed.
type AnnouncementRepository interface {
	Insert(ctx context.Context, a *domain.Announcement) error
	ListNewestFirst(ctx context.Context) ([]domain.Announcement, error)
}
