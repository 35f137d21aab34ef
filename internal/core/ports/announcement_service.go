package ports

import (
	"context"

	"github.com/memberhub/community-api/internal/core/domain"
)

type AnnouncementService interface {
	Post(ctx context.Context, content string) (*domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
}
