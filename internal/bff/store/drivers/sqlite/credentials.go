package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
)

type credentialsRepo struct {
	q querier
}

func (r *credentialsRepo) GetCredential(ctx context.Context, userID string) (domain.Credential, error) {
	const query = `SELECT user_id, password_hash, created_at, updated_at FROM credentials WHERE user_id = ?`

	var (
		c                    domain.Credential
		createdAt, updatedAt int64
	)
	err := r.q.QueryRowContext(ctx, query, userID).Scan(&c.UserID, &c.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func (r *credentialsRepo) UpsertCredential(ctx context.Context, c domain.Credential) error {
	const query = `
		INSERT INTO credentials (user_id, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			password_hash = excluded.password_hash,
			updated_at    = excluded.updated_at`

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	_, err := r.q.ExecContext(ctx, query, c.UserID, c.PasswordHash, toMillis(c.CreatedAt), toMillis(now))
	return err
}

func (r *credentialsRepo) DeleteCredential(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM credentials WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
