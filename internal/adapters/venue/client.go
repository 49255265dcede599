package venue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Audience is the token audience expected by the venue service.
const Audience = "venue-service"

// The venue service speaks ISO local date-times without zone.
const wireTimeLayout = "2006-01-02T15:04:05"

// Config holds the venue service location and the per-call time budget.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type httpAllocator struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	tokens  domain.TokenIssuer
	metrics *telemetry.Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewHTTPAllocator returns a VenueAllocator calling the venue service REST API. tokens may be
// nil, in which case requests carry no Authorization header.
func NewHTTPAllocator(cfg Config, client *http.Client, tokens domain.TokenIssuer, metrics *telemetry.Metrics, logger *slog.Logger) domain.VenueAllocator {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpAllocator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		client:  client,
		tokens:  tokens,
		metrics: metrics,
		tracer:  otel.Tracer("campusevents/venue"),
		logger:  logger,
	}
}

type allocationResponse struct {
	Success   bool    `json:"success"`
	VenueID   *int64  `json:"venueId"`
	VenueName *string `json:"venueName"`
	Message   string  `json:"message"`
}

type venueResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"`
}

type allocationPayload struct {
	domain.VenueAllocationRequest
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (a *httpAllocator) Allocate(ctx context.Context, req domain.VenueAllocationRequest) domain.VenueAllocationResult {
	payload := allocationPayload{
		VenueAllocationRequest: req,
		StartTime:              req.StartTime.Format(wireTimeLayout),
		EndTime:                req.EndTime.Format(wireTimeLayout),
	}
	var resp allocationResponse
	if err := a.call(ctx, "allocate", http.MethodPost, "/api/venues/allocate", payload, &resp,
		attribute.String("event.id", req.EventID)); err != nil {
		a.logger.WarnContext(ctx, "venue allocation unavailable", "event_id", req.EventID, "error", err)
		return domain.VenueAllocationResult{Success: false, Message: domain.VenueUnavailableMessage}
	}
	return domain.VenueAllocationResult{
		Success:   resp.Success,
		VenueID:   resp.VenueID,
		VenueName: resp.VenueName,
		Message:   resp.Message,
	}
}

func (a *httpAllocator) GetVenue(ctx context.Context, id int64) domain.Venue {
	var resp venueResponse
	path := "/api/venues/" + strconv.FormatInt(id, 10)
	if err := a.call(ctx, "get_venue", http.MethodGet, path, nil, &resp, attribute.Int64("venue.id", id)); err != nil {
		a.logger.WarnContext(ctx, "venue lookup unavailable", "venue_id", id, "error", err)
		return domain.Venue{ID: id, Name: "Unknown Venue", Location: "Unknown", Capacity: 0, Type: "UNKNOWN"}
	}
	return domain.Venue{ID: resp.ID, Name: resp.Name, Location: resp.Location, Capacity: resp.Capacity, Type: resp.Type}
}

func (a *httpAllocator) CheckAvailability(ctx context.Context, id int64, start, end time.Time) bool {
	q := url.Values{}
	q.Set("startTime", start.Format(wireTimeLayout))
	q.Set("endTime", end.Format(wireTimeLayout))
	path := "/api/venues/" + strconv.FormatInt(id, 10) + "/availability?" + q.Encode()

	var resp map[string]bool
	if err := a.call(ctx, "check_availability", http.MethodGet, path, nil, &resp, attribute.Int64("venue.id", id)); err != nil {
		a.logger.WarnContext(ctx, "venue availability unavailable", "venue_id", id, "error", err)
		return false
	}
	return resp["available"]
}

// call performs one request under the per-call timeout and decodes a 2xx JSON body into out.
func (a *httpAllocator) call(ctx context.Context, op, method, path string, body, out any, attrs ...attribute.KeyValue) (err error) {
	ctx, span := a.tracer.Start(ctx, "venue."+op, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "unavailable"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if a.metrics != nil {
			a.metrics.VenueCalls.WithLabelValues(op, outcome).Inc()
		}
		span.End()
	}()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.tokens != nil {
		token, err := a.tokens.Issue(Audience)
		if err != nil {
			return fmt.Errorf("issue service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call venue service: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("venue service returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode venue response: %w", err)
	}
	return nil
}
