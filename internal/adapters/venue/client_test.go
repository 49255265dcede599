package venue

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token    string
	audience string
}

func (s *staticTokens) Issue(audience string) (string, error) {
	s.audience = audience
	return s.token, nil
}

func newTestAllocator(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (domain.VenueAllocator, *telemetry.Metrics, *staticTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	tokens := &staticTokens{token: "svc-token"}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewHTTPAllocator(Config{BaseURL: srv.URL + "/", Timeout: timeout}, srv.Client(), tokens, metrics, logger), metrics, tokens
}

func TestHTTPAllocator_Allocate(t *testing.T) {
	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	req := domain.VenueAllocationRequest{
		EventID: "ev-1", EventName: "Jazz Night", StartTime: start, EndTime: start.Add(2 * time.Hour),
		AttendeeCount: 50, PreferredLocation: "Main Hall", Notes: "Event allocation for Jazz Night",
	}

	t.Run("success", func(t *testing.T) {
		var got map[string]any
		alloc, metrics, tokens := newTestAllocator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/venues/allocate", r.URL.Path)
			assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"venueId":42,"venueName":"Main Hall","message":"Allocated"}`))
		}, time.Second)

		res := alloc.Allocate(context.Background(), req)
		assert.True(t, res.Success)
		require.NotNil(t, res.VenueID)
		assert.Equal(t, int64(42), *res.VenueID)
		assert.Equal(t, "Main Hall", *res.VenueName)
		assert.Equal(t, "Allocated", res.Message)

		assert.Equal(t, "ev-1", got["eventId"])
		assert.Equal(t, "2025-07-01T18:00:00", got["startTime"])
		assert.Equal(t, "2025-07-01T20:00:00", got["endTime"])
		assert.Equal(t, float64(50), got["attendeeCount"])
		assert.Equal(t, Audience, tokens.audience)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.VenueCalls.WithLabelValues("allocate", "success")))
	})

	t.Run("declined by venue service", func(t *testing.T) {
		alloc, _, _ := newTestAllocator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"No venue fits"}`))
		}, time.Second)

		res := alloc.Allocate(context.Background(), req)
		assert.False(t, res.Success)
		assert.Nil(t, res.VenueID)
		assert.Equal(t, "No venue fits", res.Message)
	})

	fallbacks := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			timeout: time.Second,
		},
		{
			name:    "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) },
			timeout: time.Second,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
		},
	}
	for _, tt := range fallbacks {
		t.Run(tt.name, func(t *testing.T) {
			alloc, metrics, _ := newTestAllocator(t, tt.handler, tt.timeout)

			res := alloc.Allocate(context.Background(), req)
			assert.False(t, res.Success)
			assert.Nil(t, res.VenueID)
			assert.Nil(t, res.VenueName)
			assert.Equal(t, domain.VenueUnavailableMessage, res.Message)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.VenueCalls.WithLabelValues("allocate", "unavailable")))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		alloc := NewHTTPAllocator(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil, nil, nil, logger)
		res := alloc.Allocate(context.Background(), req)
		assert.False(t, res.Success)
		assert.Equal(t, domain.VenueUnavailableMessage, res.Message)
	})
}

func TestHTTPAllocator_GetVenue(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		alloc, _, _ := newTestAllocator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/venues/7", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":7,"name":"Aula","location":"North","capacity":300,"type":"AUDITORIUM"}`))
		}, time.Second)

		v := alloc.GetVenue(context.Background(), 7)
		assert.Equal(t, domain.Venue{ID: 7, Name: "Aula", Location: "North", Capacity: 300, Type: "AUDITORIUM"}, v)
	})

	t.Run("fallback", func(t *testing.T) {
		alloc, _, _ := newTestAllocator(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, time.Second)

		v := alloc.GetVenue(context.Background(), 7)
		assert.Equal(t, domain.Venue{ID: 7, Name: "Unknown Venue", Location: "Unknown", Type: "UNKNOWN"}, v)
	})
}

func TestHTTPAllocator_CheckAvailability(t *testing.T) {
	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)

	t.Run("available", func(t *testing.T) {
		alloc, _, _ := newTestAllocator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/venues/7/availability", r.URL.Path)
			assert.Equal(t, "2025-07-01T18:00:00", r.URL.Query().Get("startTime"))
			assert.Equal(t, "2025-07-01T19:00:00", r.URL.Query().Get("endTime"))
			_, _ = w.Write([]byte(`{"available":true}`))
		}, time.Second)

		assert.True(t, alloc.CheckAvailability(context.Background(), 7, start, start.Add(time.Hour)))
	})

	t.Run("fallback is unavailable", func(t *testing.T) {
		alloc, _, _ := newTestAllocator(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, time.Second)

		assert.False(t, alloc.CheckAvailability(context.Background(), 7, start, start.Add(time.Hour)))
	})
}
