package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type checkFunc func() error

func (f checkFunc) Healthy() error { return f() }

func TestHealth(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	tests := []struct {
		name   string
		h      *HealthHandler
		status int
		deps   map[string]string
	}{
		{
			name:   "all healthy",
			h:      NewHealthHandler(ok, map[string]HealthChecker{"rabbitmq": checkFunc(func() error { return nil })}),
			status: http.StatusOK,
			deps:   map[string]string{"database": "healthy", "rabbitmq": "healthy"},
		},
		{
			name:   "no event bus",
			h:      NewHealthHandler(ok, nil),
			status: http.StatusOK,
			deps:   map[string]string{"database": "healthy", "events": "not configured"},
		},
		{
			name:   "database down",
			h:      NewHealthHandler(down, nil),
			status: http.StatusServiceUnavailable,
			deps:   map[string]string{"database": "unhealthy: refused", "events": "not configured"},
		},
		{
			name:   "nats disconnected",
			h:      NewHealthHandler(ok, map[string]HealthChecker{"nats": checkFunc(func() error { return errors.New("disconnected") })}),
			status: http.StatusServiceUnavailable,
			deps:   map[string]string{"database": "healthy", "nats": "unhealthy: disconnected"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.deps, resp.Dependencies)
		})
	}
}
