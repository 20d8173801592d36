package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/app"
	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/stretchr/testify/require"
)

// setupEnv points the config at a temp sqlite file and a record service that
// knows only user-1. Tests using it cannot run in parallel.
func setupEnv(t *testing.T) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/user/user-1" {
			_, _ = w.Write([]byte(`{"userId":"user-1","firstName":"Jane","lastName":"Citizen"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"error":"Not Found","message":"User not found","path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(upstream.Close)

	dir := t.TempDir()
	for k, v := range map[string]string{
		"BFF_CONFIG_FILE":         "",
		"BADHTAXFILESERV_BASEURL": upstream.URL,
		"STORE_DRIVER":            "sqlite",
		"DATABASE_URL":            "",
		"BFF_DATABASE_FILE":       filepath.Join(dir, "bff.db"),
		"BFF_PEPPER_FILE":         filepath.Join(dir, "pepper"),
		"SESSION_SECRET":          "",
		"TAX_YEARS":               "",
	} {
		t.Setenv(k, v)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func openStore(t *testing.T) store.Store {
	t.Helper()

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	st, err := app.OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMigrate(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "migrations applied (sqlite store)")

	_, err = run(t, "migrate")
	require.NoError(t, err)
}

func TestCredentials(t *testing.T) {
	setupEnv(t)

	t.Run("set with explicit password", func(t *testing.T) {
		out, err := run(t, "credentials", "set", "user-1", "--password", "s3cret-pass")
		require.NoError(t, err)
		require.Contains(t, out, "password set for user-1 (0 sessions revoked)")
		require.NotContains(t, out, "generated password")

		cfg, err := app.LoadConfig()
		require.NoError(t, err)
		hasher, err := app.NewHasher(cfg)
		require.NoError(t, err)

		cred, err := openStore(t).Credentials().GetCredential(context.Background(), "user-1")
		require.NoError(t, err)
		require.NoError(t, hasher.Verify("s3cret-pass", cred.PasswordHash))
	})

	t.Run("set generates a password", func(t *testing.T) {
		out, err := run(t, "credentials", "set", "user-1")
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`generated password: \S+`), out)
	})

	t.Run("set ends active sessions", func(t *testing.T) {
		st := openStore(t)
		now := time.Now()
		require.NoError(t, st.Sessions().CreateSession(context.Background(), domain.Session{
			ID:               "sess-1",
			UserID:           "user-1",
			TokenFingerprint: "fp",
			CreatedAt:        now,
			ExpiresAt:        now.Add(time.Hour),
		}))

		out, err := run(t, "credentials", "set", "user-1", "--password", "another-pass")
		require.NoError(t, err)
		require.Contains(t, out, "(1 sessions revoked)")
	})

	t.Run("set rejects unknown upstream user", func(t *testing.T) {
		_, err := run(t, "credentials", "set", "user-9", "--password", "pw")
		require.Error(t, err)
		require.Contains(t, err.Error(), "check user user-9")
	})

	t.Run("set can skip the upstream check", func(t *testing.T) {
		_, err := run(t, "credentials", "set", "user-9", "--password", "pw", "--skip-upstream-check")
		require.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		out, err := run(t, "credentials", "delete", "user-9")
		require.NoError(t, err)
		require.Contains(t, out, "password removed for user-9")

		_, err = run(t, "credentials", "delete", "user-9")
		require.EqualError(t, err, "no stored password for user-9")
	})

	t.Run("set requires a user id", func(t *testing.T) {
		_, err := run(t, "credentials", "set")
		require.Error(t, err)
	})
}

func TestSessions(t *testing.T) {
	setupEnv(t)

	st := openStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, s := range []domain.Session{
		{ID: "live", UserID: "user-1", TokenFingerprint: "a", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: "other", UserID: "user-1", TokenFingerprint: "b", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: "expired", UserID: "user-2", TokenFingerprint: "c", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
	} {
		require.NoError(t, st.Sessions().CreateSession(ctx, s))
	}

	out, err := run(t, "sessions", "prune")
	require.NoError(t, err)
	require.Contains(t, out, "1 sessions deleted")

	out, err = run(t, "sessions", "revoke", "user-1")
	require.NoError(t, err)
	require.Contains(t, out, "2 sessions revoked for user-1")

	// revoked_at has millisecond resolution.
	time.Sleep(5 * time.Millisecond)

	out, err = run(t, "sessions", "prune")
	require.NoError(t, err)
	require.Contains(t, out, "2 sessions deleted")
}
