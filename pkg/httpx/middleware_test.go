package httpx_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), tag("a"), tag("b"), tag("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

type stubResolver struct {
	principal httpx.Principal
	err       error
	gotToken  string
}

func (s *stubResolver) ResolveSession(_ context.Context, token string) (httpx.Principal, error) {
	s.gotToken = token
	return s.principal, s.err
}

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	protected := func(resolver httpx.SessionResolver) http.Handler {
		return httpx.Chain(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p, _ := httpx.PrincipalFromContext(r.Context())
				httpx.WriteJSON(w, http.StatusOK, p)
			}),
			httpx.SessionMiddleware(resolver),
			httpx.RequireSession,
		)
	}

	t.Run("valid token reaches handler", func(t *testing.T) {
		resolver := &stubResolver{principal: httpx.Principal{SessionID: "s1", UserID: "user-1", Username: "Ada Lovelace"}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def")
		rec := httptest.NewRecorder()

		protected(resolver).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "abc.def", resolver.gotToken)
		require.Contains(t, rec.Body.String(), `"userId":"user-1"`)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(&stubResolver{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"Authentication required"}`, rec.Body.String())
		require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()

		protected(&stubResolver{err: errors.New("expired")}).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	h := httpx.CORS([]string{"http://localhost:3000"})(okHandler())

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, httpx.DecodeJSON(req, &dst))
	require.Equal(t, "x", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.ErrorIs(t, httpx.DecodeJSON(req, &dst), io.EOF)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	err := httpx.DecodeJSON(req, &dst)
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}
