package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/pkg/cryptox"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

const MsgCredentialsRequired = "User ID and password are required"

// AuthService is the single credential boundary: it maps an identifier and
// secret to a record-service user.
type AuthService struct {
	Users  UserResolver
	Store  store.Store
	Hasher *cryptox.PasswordHasher

	// DefaultPassword is accepted for users with no stored credential.
	// Empty disables the fallback.
	DefaultPassword string
}

// Authenticate checks secret for the user identified by identifier.
// Validation failures happen before any upstream call. A user unknown to
// the record service is ErrUserNotFound; a wrong secret, or a user with
// nothing to check against, is ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, secret string) (*taxsdk.User, error) {
	log := slogx.FromContext(ctx)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return nil, invalid(MsgCredentialsRequired)
	}

	user, err := s.Users.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	cred, err := s.Store.Credentials().GetCredential(ctx, user.UserID)
	switch {
	case err == nil:
		if err := s.Hasher.Verify(secret, cred.PasswordHash); err != nil {
			if !errors.Is(err, cryptox.ErrPasswordMismatch) {
				log.Error("stored credential unreadable", "user_id", user.UserID, "error", err)
			}
			return nil, ErrInvalidCredentials
		}
	case errors.Is(err, store.ErrNotFound):
		if !s.matchesDefault(secret) {
			return nil, ErrInvalidCredentials
		}
	default:
		return nil, fmt.Errorf("load credential: %w", err)
	}

	return user, nil
}

func (s *AuthService) matchesDefault(secret string) bool {
	if s.DefaultPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.DefaultPassword)) == 1
}

// SetPassword stores a new password for userID and revokes the user's
// existing sessions in the same transaction.
func (s *AuthService) SetPassword(ctx context.Context, userID, password string) (revoked int64, err error) {
	if strings.TrimSpace(userID) == "" || password == "" {
		return 0, invalid(MsgCredentialsRequired)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Credentials().UpsertCredential(ctx, domain.Credential{UserID: userID, PasswordHash: hash}); err != nil {
			return err
		}
		revoked, err = tx.Sessions().RevokeUserSessions(ctx, userID)
		return err
	})
	return revoked, err
}

// DeletePassword removes a user's stored credential and revokes their
// sessions. Missing credentials are store.ErrNotFound.
func (s *AuthService) DeletePassword(ctx context.Context, userID string) (revoked int64, err error) {
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Credentials().DeleteCredential(ctx, userID); err != nil {
			return err
		}
		revoked, err = tx.Sessions().RevokeUserSessions(ctx, userID)
		return err
	})
	return revoked, err
}
