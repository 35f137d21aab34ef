package domain

import "time"

// Announcement is an admin-authored feed entry. Immutable once created,
// read newest-first.
type Announcement struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
