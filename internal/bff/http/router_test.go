package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bffhttp "github.com/aussiebroadwan/taxrefund/internal/bff/http"
	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store/drivers/sqlite"
	"github.com/aussiebroadwan/taxrefund/pkg/cryptox"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/jwtx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/stretchr/testify/require"
)

const defaultPassword = "password"

var relaxed = httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}

type harness struct {
	t        *testing.T
	upstream *recordService
	router   *bffhttp.Router
	store    *sqlite.Store
	hasher   *cryptox.PasswordHasher
}

func newHarness(t *testing.T, rs *recordService) *harness {
	return newHarnessWithLimits(t, rs, bffhttp.RateLimits{Login: relaxed, API: relaxed, Public: relaxed})
}

func newHarnessWithLimits(t *testing.T, rs *recordService, limits bffhttp.RateLimits) *harness {
	t.Helper()

	srv := rs.start(t)
	client := taxsdk.NewClient(srv.URL, taxsdk.WithCallTimeout(2*time.Second))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("0123456789abcdef0123456789abcdef")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: "taxrefund-bff"})
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("test-pepper")
	users := &service.UserService{Upstream: client, Store: st, Hasher: hasher}
	sessions := &service.SessionService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "taxrefund-bff",
		TTL:      time.Hour,
	}

	router := bffhttp.NewRouter("test", st, sessions, []string{"http://localhost:5173"}, limits, slogx.Discard())
	router.AuthService = &service.AuthService{Users: users, Store: st, Hasher: hasher, DefaultPassword: defaultPassword}
	router.UserService = users
	router.DashboardService = &service.DashboardService{
		Users:        users,
		Upstream:     client,
		DefaultYears: func() []int { return []int{2024, 2023, 2022} },
	}
	router.TaxFileService = &service.TaxFileService{Upstream: client}
	router.RefundService = &service.RefundService{Upstream: client}
	router.RefundStatusService = &service.RefundStatusService{Upstream: client, Limit: 4}
	router.ApplyRoutes()

	return &harness{t: t, upstream: rs, router: router, store: st, hasher: hasher}
}

type response struct {
	Code   int
	Header http.Header
	Body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

func (r response) errorMessage(t *testing.T) string {
	t.Helper()
	var body httpx.ErrorBody
	r.decode(t, &body)
	return body.Error
}

func (h *harness) do(method, target, token string, body any) response {
	h.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(h.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return response{Code: rec.Code, Header: rec.Header(), Body: rec.Body.Bytes()}
}

func (h *harness) login(userID, password string) bffhttp.LoginResponse {
	h.t.Helper()

	res := h.do(http.MethodPost, "/api/login", "", map[string]string{"userId": userID, "password": password})
	require.Equal(h.t, http.StatusOK, res.Code, string(res.Body))

	var out bffhttp.LoginResponse
	res.decode(h.t, &out)
	return out
}

func (h *harness) setPassword(userID, password string) {
	h.t.Helper()

	auth := h.router.AuthService
	_, err := auth.SetPassword(context.Background(), userID, password)
	require.NoError(h.t, err)
}
