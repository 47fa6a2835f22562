package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaide-ai/intake/internal/auth"
	"github.com/plaide-ai/intake/pkg/logger"
)

func newTestTransport(url, token string) *Transport {
	return NewTransport(url, 5*time.Second, auth.NewTokenStore(token), logger.NewNop())
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "secret-token")
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, tr.Do(context.Background(), http.MethodGet, "/api/cases", nil, &out))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.True(t, out.OK)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "")
	require.NoError(t, tr.Do(context.Background(), http.MethodGet, "/api/cases", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDoErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "detail field",
			status:  http.StatusBadRequest,
			body:    `{"detail":"titre manquant"}`,
			wantMsg: "titre manquant",
		},
		{
			name:    "error field",
			status:  http.StatusForbidden,
			body:    `{"error":"accès refusé"}`,
			wantMsg: "accès refusé",
		},
		{
			name:    "unparseable body falls back to status text",
			status:  http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			wantMsg: "Internal Server Error",
		},
		{
			name:    "empty body falls back to status text",
			status:  http.StatusNotFound,
			body:    "",
			wantMsg: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tr := newTestTransport(srv.URL, "tok")
			err := tr.Do(context.Background(), http.MethodGet, "/api/cases/x", nil, nil)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.False(t, apiErr.IsNetwork())
		})
	}
}

func TestDoNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "tok")
	out := map[string]string{"untouched": "yes"}
	require.NoError(t, tr.Do(context.Background(), http.MethodDelete, "/api/cases/x", nil, &out))
	assert.Equal(t, "yes", out["untouched"])
}

func TestDoNetworkErrorHasStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	tr := newTestTransport(srv.URL, "tok")
	err := tr.Do(context.Background(), http.MethodGet, "/api/cases", nil, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.True(t, apiErr.IsNetwork())
}

func TestDoRawReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	tr := newTestTransport(srv.URL, "tok")
	data, err := tr.DoRaw(context.Background(), http.MethodGet, "/api/cases/x/export/pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)
}

func TestResourceFromPath(t *testing.T) {
	assert.Equal(t, "cases", resourceFromPath("/api/cases"))
	assert.Equal(t, "cases", resourceFromPath("/api/cases/abc"))
	assert.Equal(t, "chat", resourceFromPath("/api/cases/abc/chat"))
	assert.Equal(t, "evidence", resourceFromPath("/api/cases/abc/evidence"))
	assert.Equal(t, "unknown", resourceFromPath(""))
}

func TestIsStatusHelpers(t *testing.T) {
	err := &Error{Message: "nope", StatusCode: http.StatusNotFound}
	assert.True(t, IsNotFound(err))
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusForbidden))
	assert.False(t, IsNotFound(nil))
}
