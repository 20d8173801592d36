package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/pkg/cryptox"
	"github.com/aussiebroadwan/taxrefund/pkg/idx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

const (
	MsgUserIDRequired = "userId is required"
	MsgNamesRequired  = "First name and last name are required"
)

// UserResolver resolves a user id to the record service's canonical user.
type UserResolver interface {
	Resolve(ctx context.Context, userID string) (*taxsdk.User, error)
}

// UserService resolves, lists and registers record-service users.
type UserService struct {
	Upstream RecordService
	Store    store.Store
	Hasher   *cryptox.PasswordHasher

	// NewUserID generates ids for new users. Defaults to "user-<ulid>".
	NewUserID func() string
}

// Resolve fetches the user behind userID. Any 4xx from the record service
// is ErrUserNotFound, 5xx is ErrUpstream and transport failures are
// ErrUpstreamUnavailable.
func (s *UserService) Resolve(ctx context.Context, userID string) (*taxsdk.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalid(MsgUserIDRequired)
	}

	user, err := s.Upstream.GetUser(ctx, userID)
	if err != nil {
		if apiErr, ok := taxsdk.AsAPIError(err); ok && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}
		return nil, upstreamError(err)
	}
	return user, nil
}

// List returns every user known to the record service.
func (s *UserService) List(ctx context.Context) (*taxsdk.UserList, error) {
	list, err := s.Upstream.ListUsers(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	return list, nil
}

// CreateUserInput is a registration request. Password is optional.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Password  string
}

// Create registers a user upstream under a freshly generated id. When a
// password is supplied it is stored as the user's local credential.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*taxsdk.User, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, invalid(MsgNamesRequired)
	}

	newID := s.NewUserID
	if newID == nil {
		newID = func() string { return idx.Prefixed("user") }
	}

	user, err := s.Upstream.CreateUser(ctx, taxsdk.CreateUserRequest{
		UserID:    newID(),
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	if in.Password != "" {
		hash, err := s.Hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.Store.Credentials().UpsertCredential(ctx, domain.Credential{
			UserID:       user.UserID,
			PasswordHash: hash,
		}); err != nil {
			return nil, fmt.Errorf("store credential for %s: %w", user.UserID, err)
		}
	}

	slogx.FromContext(ctx).Info("user created", "user_id", user.UserID, "with_password", in.Password != "")
	return user, nil
}
