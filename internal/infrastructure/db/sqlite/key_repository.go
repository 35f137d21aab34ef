package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/memberhub/community-api/internal/core/domain"
)

type KeyRepository struct {
	db *sql.DB
}

func NewKeyRepository(db *sql.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

func (r *KeyRepository) Create(ctx context.Context, key *domain.AcceptanceKey) error {
	if key.ID == "" {
		key.ID = uuid.NewString()
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO acceptance_keys (id, key_value, is_used, created_at)
		 VALUES (?, ?, 0, ?)`,
		key.ID, key.Value, key.CreatedAt.UnixNano(),
	)
	if err != nil {
		return storageErr("insert key", err)
	}
	return nil
}

func (r *KeyRepository) ListWithRedeemer(ctx context.Context) ([]domain.RedeemedKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			ak.id, ak.key_value, ak.is_used, ak.created_at,
			u.username, u.email, u.mobile
		 FROM acceptance_keys ak
		 LEFT JOIN users u ON u.used_key_id = ak.id
		 ORDER BY ak.created_at DESC`)
	if err != nil {
		return nil, storageErr("list keys", err)
	}
	defer rows.Close()

	var keys []domain.RedeemedKey
	for rows.Next() {
		var (
			k         domain.RedeemedKey
			used      int
			createdAt int64
			username  sql.NullString
			email     sql.NullString
			mobile    sql.NullString
		)
		if err := rows.Scan(&k.ID, &k.Value, &used, &createdAt, &username, &email, &mobile); err != nil {
			return nil, storageErr("scan key", err)
		}
		k.Used = used != 0
		k.CreatedAt = nanosToTime(createdAt)
		k.UsedByUsername = username.String
		k.UsedByEmail = email.String
		k.UsedByMobile = mobile.String
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list keys", err)
	}
	return keys, nil
}

// RedeemAndCreateUser marks the key used and inserts the user in one
// transaction. The guarded UPDATE is the first statement so the transaction
// starts as a writer: concurrent redeemers of the same key queue on the
// write lock instead of upgrading a stale read snapshot, and every loser
// sees zero rows affected. Any failure rolls the whole unit back, so a
// username collision leaves the key unused and available for retry.
func (r *KeyRepository) RedeemAndCreateUser(ctx context.Context, keyValue string, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin redeem", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE acceptance_keys SET is_used = 1 WHERE key_value = ? AND is_used = 0`, keyValue)
	if err != nil {
		return nil, storageErr("mark key used", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, storageErr("mark key used", err)
	} else if n == 0 {
		// Nonexistent, already used, or lost to a concurrent redemption.
		return nil, domain.ErrInvalidKey
	}

	var keyID string
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM acceptance_keys WHERE key_value = ?`, keyValue).Scan(&keyID); err != nil {
		return nil, storageErr("find key", err)
	}

	created := *user
	created.ID = uuid.NewString()
	created.UsedKeyID = keyID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, is_banned, email, mobile, used_key_id, created_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		created.ID, created.Username, created.PasswordHash, created.Role,
		nullable(created.Email), nullable(created.Mobile), keyID, created.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, storageErr("insert user", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit redeem", err)
	}
	return &created, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
