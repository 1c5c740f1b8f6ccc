package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authproviders "github.com/cbodonnell/pong/pkg/auth/providers"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/repositories"
	"github.com/cbodonnell/pong/pkg/repositories/models"
	"github.com/cbodonnell/pong/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, authProvider authproviders.AuthProvider) (http.Handler, *repositories.InMemoryRepository, *state.InMemoryStateManager) {
	t.Helper()
	repository := repositories.NewInMemoryRepository()
	stateManager := state.NewInMemoryStateManager()

	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, repository.SaveMatchResult(context.Background(), &models.MatchResult{
			ID:         id,
			WinnerSlot: i % 2,
			LeftScore:  11,
			RightScore: i,
			StartedAt:  started,
			EndedAt:    started.Add(time.Duration(i+1) * time.Minute),
		}))
	}

	router := NewRouter(NewAPIServerOptions{
		AuthProvider: authProvider,
		Repository:   repository,
		StateManager: stateManager,
	})
	return router, repository, stateManager
}

func TestRouter(t *testing.T) {
	router, _, stateManager := newTestRouter(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "health",
			path:       "/healthz",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"status":"ok"`)
			},
		},
		{
			name:       "state before the first snapshot",
			path:       "/state",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "list matches newest first",
			path:       "/matches",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var results []*models.MatchResult
				require.NoError(t, json.Unmarshal(body, &results))
				require.Len(t, results, 3)
				assert.Equal(t, "third", results[0].ID)
			},
		},
		{
			name:       "list matches with limit",
			path:       "/matches?limit=1",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var results []*models.MatchResult
				require.NoError(t, json.Unmarshal(body, &results))
				assert.Len(t, results, 1)
			},
		},
		{
			name:       "invalid limit",
			path:       "/matches?limit=abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "get match",
			path:       "/matches/second",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				result := &models.MatchResult{}
				require.NoError(t, json.Unmarshal(body, result))
				assert.Equal(t, "second", result.ID)
				assert.Equal(t, 1, result.WinnerSlot)
			},
		},
		{
			name:       "unknown match",
			path:       "/matches/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}

	t.Run("state after a snapshot", func(t *testing.T) {
		require.NoError(t, stateManager.Set(context.Background(), &messages.ServerMatchState{
			Timestamp: 99,
			Phase:     1,
			Winner:    -1,
			Connected: 2,
		}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		snapshot := &messages.ServerMatchState{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), snapshot))
		assert.Equal(t, int64(99), snapshot.Timestamp)
		assert.Equal(t, 2, snapshot.Connected)
	})
}

func TestRouter_MatchesRequireToken(t *testing.T) {
	router, _, _ := newTestRouter(t, authproviders.StaticAuthProvider{"secret": "user-1"})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "malformed", header: "secret", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer secret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/matches", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	// the health check stays public
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
