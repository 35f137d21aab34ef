package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/memberhub/community-api/internal/core/domain"
)

type AnnouncementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Insert(ctx context.Context, a *domain.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, content, created_at) VALUES (?, ?, ?)`,
		a.ID, a.Content, a.CreatedAt.UnixNano(),
	)
	if err != nil {
		return storageErr("insert announcement", err)
	}
	return nil
}

func (r *AnnouncementRepository) ListNewestFirst(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, created_at FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, storageErr("list announcements", err)
	}
	defer rows.Close()

	var out []domain.Announcement
	for rows.Next() {
		var (
			a         domain.Announcement
			createdAt int64
		)
		if err := rows.Scan(&a.ID, &a.Content, &createdAt); err != nil {
			return nil, storageErr("scan announcement", err)
		}
		a.CreatedAt = nanosToTime(createdAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list announcements", err)
	}
	return out, nil
}
