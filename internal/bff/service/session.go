package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/pkg/cryptox"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/idx"
	"github.com/aussiebroadwan/taxrefund/pkg/jwtx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

// SessionService issues and checks login sessions. A session is a signed
// token plus a stored row, so logout takes effect before the token expires.
type SessionService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

var _ httpx.SessionResolver = (*SessionService)(nil)

// IssuedSession is a freshly created session and its bearer token.
type IssuedSession struct {
	Token   string
	Session domain.Session
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue starts a session for user.
func (s *SessionService) Issue(ctx context.Context, user *taxsdk.User) (IssuedSession, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := s.now()
	sid := idx.NewAt(now).String()
	claims := jwtx.NewSessionClaims(user.UserID, sid, user.DisplayName(), s.Issuer, ttl, now)
	claims.ID = sid

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return IssuedSession{}, fmt.Errorf("sign session token: %w", err)
	}

	sess := domain.Session{
		ID:               sid,
		UserID:           user.UserID,
		Username:         user.DisplayName(),
		TokenFingerprint: cryptox.FingerprintToken(token),
		ExpiresAt:        claims.ExpiresAtTime(),
		CreatedAt:        now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return IssuedSession{}, fmt.Errorf("store session: %w", err)
	}

	return IssuedSession{Token: token, Session: sess}, nil
}

// ResolveSession verifies a bearer token against its stored session.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (httpx.Principal, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return httpx.Principal{}, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Principal{}, fmt.Errorf("%w: unknown session", ErrSessionInvalid)
		}
		return httpx.Principal{}, fmt.Errorf("load session: %w", err)
	}

	fingerprint := cryptox.FingerprintToken(token)
	switch {
	case !sess.Active(s.now()):
		return httpx.Principal{}, fmt.Errorf("%w: session ended", ErrSessionInvalid)
	case sess.UserID != claims.Subject:
		return httpx.Principal{}, fmt.Errorf("%w: subject mismatch", ErrSessionInvalid)
	case subtle.ConstantTimeCompare([]byte(fingerprint), []byte(sess.TokenFingerprint)) != 1:
		return httpx.Principal{}, fmt.Errorf("%w: token mismatch", ErrSessionInvalid)
	}

	return httpx.Principal{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// Revoke ends a session. Revoking an already revoked session succeeds.
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	if err := s.Store.Sessions().RevokeSession(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: unknown session", ErrSessionInvalid)
		}
		return err
	}
	return nil
}

// Prune deletes sessions that expired or were revoked before now.
func (s *SessionService) Prune(ctx context.Context) (int64, error) {
	return s.Store.Sessions().DeleteStaleSessions(ctx, s.now())
}
