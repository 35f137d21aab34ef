package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/memberhub/community-api/internal/core/domain"
)

const userColumns = `id, username, password_hash, role, is_banned, email, mobile, used_key_id, created_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) ListMembers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role != ? ORDER BY created_at DESC`,
		domain.RoleAdmin)
	if err != nil {
		return nil, storageErr("list members", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list members", err)
	}
	return users, nil
}

func (r *UserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	flag := 0
	if banned {
		flag = 1
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_banned = ? WHERE id = ?`, flag, id)
	if err != nil {
		return storageErr("set banned", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("set banned", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		banned    int
		email     sql.NullString
		mobile    sql.NullString
		usedKeyID sql.NullString
		createdAt int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &banned,
		&email, &mobile, &usedKeyID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("scan user", err)
	}

	u.Banned = banned != 0
	u.Email = email.String
	u.Mobile = mobile.String
	u.UsedKeyID = usedKeyID.String
	u.CreatedAt = nanosToTime(createdAt)
	return &u, nil
}
