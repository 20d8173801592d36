package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
)

type sessionsRepo struct {
	q querier
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	const query = `
		INSERT INTO sessions (id, user_id, username, token_fingerprint, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.UserID, s.Username, s.TokenFingerprint,
		toMillis(s.ExpiresAt), toMillis(s.CreatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	const query = `
		SELECT id, user_id, username, token_fingerprint, expires_at, revoked_at, created_at
		FROM sessions WHERE id = ?`

	var (
		s                    domain.Session
		expiresAt, createdAt int64
		revokedAt            sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Username, &s.TokenFingerprint, &expiresAt, &revokedAt, &createdAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.ExpiresAt = fromMillis(expiresAt)
	s.CreatedAt = fromMillis(createdAt)
	s.Revoked = revokedAt.Valid
	return s, nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string) error {
	const query = `UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	res, err := r.q.ExecContext(ctx, query, toMillis(time.Now()), id)
	if err != nil {
		return err
	}
	if err := checkAffected(res); err != nil {
		// Already revoked is fine; only a missing row is an error.
		if _, getErr := r.GetSession(ctx, id); getErr == nil {
			return nil
		}
		return err
	}
	return nil
}

func (r *sessionsRepo) RevokeUserSessions(ctx context.Context, userID string) (int64, error) {
	const query = `UPDATE sessions SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL`

	res, err := r.q.ExecContext(ctx, query, toMillis(time.Now()), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionsRepo) DeleteStaleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < ? OR revoked_at < ?`

	ms := toMillis(cutoff)
	res, err := r.q.ExecContext(ctx, query, ms, ms)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
