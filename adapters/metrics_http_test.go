package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"examgateway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsBackend(url string) domain.Backend {
	return domain.Backend{ID: "b1", Address: url, Capacity: 4}
}

func TestNewMetricsHTTP_PanicsOnNilClient(t *testing.T) {
	assert.PanicsWithValue(t, "adapters.metrics_http.go: client is required", func() {
		NewMetricsHTTP(nil)
	})
}

func TestMetricsHTTP_Poll(t *testing.T) {
	t.Run("parses_full_payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/metrics", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"ok","active":3,"capacity":4}`))
		}))
		defer srv.Close()

		got, err := NewMetricsHTTP(srv.Client()).Poll(context.Background(), metricsBackend(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, domain.BackendMetrics{Status: "ok", Active: 3, Capacity: 4}, got)
	})
	t.Run("accepts_active_sessions_field_name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"active_sessions":2,"capacity":4}`))
		}))
		defer srv.Close()

		got, err := NewMetricsHTTP(srv.Client()).Poll(context.Background(), metricsBackend(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, domain.BackendMetrics{Status: "ok", Active: 2, Capacity: 4}, got)
	})
	t.Run("missing_status_defaults_to_ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"active":0,"capacity":4}`))
		}))
		defer srv.Close()

		got, err := NewMetricsHTTP(srv.Client()).Poll(context.Background(), metricsBackend(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, "ok", got.Status)
	})
	t.Run("non_2xx_is_an_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewMetricsHTTP(srv.Client()).Poll(context.Background(), metricsBackend(srv.URL))
		assert.Error(t, err)
	})
	t.Run("malformed_body_is_an_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewMetricsHTTP(srv.Client()).Poll(context.Background(), metricsBackend(srv.URL))
		assert.Error(t, err)
	})
	t.Run("unreachable_backend_is_an_error", func(t *testing.T) {
		_, err := NewMetricsHTTP(&http.Client{}).Poll(context.Background(), metricsBackend("http://127.0.0.1:1"))
		assert.Error(t, err)
	})
	t.Run("context_deadline_bounds_the_poll", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := NewMetricsHTTP(srv.Client()).Poll(ctx, metricsBackend(srv.URL))
		assert.Error(t, err)
	})
}
