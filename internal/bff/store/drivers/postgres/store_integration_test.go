package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store/drivers/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway Postgres and returns a migrated store.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()

	if os.Getenv("RUN_POSTGRES_INTEGRATION") != "true" {
		t.Skip("set RUN_POSTGRES_INTEGRATION=true to run this integration test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "bff",
			"POSTGRES_PASSWORD": "bff",
			"POSTGRES_DB":       "bff",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://bff:bff@%s:%s/bff?sslmode=disable", host, port.Port())
	s, err := postgres.NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "migrations must be re-runnable")
	return s
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("credentials", func(t *testing.T) {
		repo := s.Credentials()
		_, err := repo.GetCredential(ctx, "user-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, repo.UpsertCredential(ctx, domain.Credential{UserID: "user-1", PasswordHash: "h1"}))
		require.NoError(t, repo.UpsertCredential(ctx, domain.Credential{UserID: "user-1", PasswordHash: "h2"}))

		c, err := repo.GetCredential(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, "h2", c.PasswordHash)

		require.NoError(t, repo.DeleteCredential(ctx, "user-1"))
		require.ErrorIs(t, repo.DeleteCredential(ctx, "user-1"), store.ErrNotFound)
	})

	t.Run("sessions", func(t *testing.T) {
		repo := s.Sessions()
		now := time.Now()

		sess := domain.Session{ID: "sess-1", UserID: "user-1", Username: "Ada", ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, repo.CreateSession(ctx, sess))
		require.ErrorIs(t, repo.CreateSession(ctx, sess), store.ErrAlreadyExists)
		require.NoError(t, repo.CreateSession(ctx, domain.Session{ID: "old", UserID: "user-1", ExpiresAt: now.Add(-time.Hour)}))

		require.NoError(t, repo.RevokeSession(ctx, "sess-1"))
		got, err := repo.GetSession(ctx, "sess-1")
		require.NoError(t, err)
		require.True(t, got.Revoked)

		n, err := repo.DeleteStaleSessions(ctx, time.Now().Add(time.Second))
		require.NoError(t, err)
		require.EqualValues(t, 2, n)
	})

	t.Run("transactions", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Credentials().UpsertCredential(ctx, domain.Credential{UserID: "tx-user", PasswordHash: "h"}); err != nil {
				return err
			}
			return fmt.Errorf("abort")
		})
		require.Error(t, err)

		_, err = s.Credentials().GetCredential(ctx, "tx-user")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
