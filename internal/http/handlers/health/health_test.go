package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-settings/internal/http/handlers/health"
	"github.com/magabrotheeeer/profile-settings/internal/http/response"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandler(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantCode   int
		wantData   map[string]any
	}{
		{
			name:       "all healthy",
			checks:     map[string]health.Checker{"postgres": ok, "redis": ok},
			wantStatus: http.StatusOK,
			wantCode:   response.CodeOK,
			wantData:   map[string]any{"postgres": "ok", "redis": "ok"},
		},
		{
			name:       "redis down",
			checks:     map[string]health.Checker{"postgres": ok, "redis": down},
			wantStatus: http.StatusInternalServerError,
			wantCode:   response.CodeInternal,
			wantData:   map[string]any{"postgres": "ok", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			rec := httptest.NewRecorder()
			health.New(logger, tt.checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantData, resp.Data)
		})
	}
}
