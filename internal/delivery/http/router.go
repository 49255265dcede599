package http

import (
	"context"
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds the controllers and infrastructure the router wires together.
type RouterConfig struct {
	Logger        *slog.Logger
	CORSOrigins   []string
	Metrics       *telemetry.Metrics
	Gatherer      prometheus.Gatherer
	HealthCheck   func(ctx context.Context) error
	Categories    *controllers.CategoryController
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Interactions  *controllers.InteractionController
}

// NewRouter initializes the HTTP router with all application routes and wraps it in the
// middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Categories
	mux.HandleFunc("GET /api/event-categories", cfg.Categories.ListCategories)
	mux.HandleFunc("POST /api/event-categories", cfg.Categories.CreateCategory)
	mux.HandleFunc("GET /api/event-categories/{id}", cfg.Categories.GetCategory)
	mux.HandleFunc("PUT /api/event-categories/{id}", cfg.Categories.UpdateCategory)
	mux.HandleFunc("DELETE /api/event-categories/{id}", cfg.Categories.DeleteCategory)
	mux.HandleFunc("GET /api/event-categories/{id}/events", cfg.Categories.ListCategoryEvents)

	// Events
	mux.HandleFunc("GET /api/events", cfg.Events.ListEvents)
	mux.HandleFunc("POST /api/events", cfg.Events.CreateEvent)
	mux.HandleFunc("GET /api/events/search", cfg.Events.SearchEvents)
	mux.HandleFunc("GET /api/events/upcoming", cfg.Events.UpcomingEvents)
	mux.HandleFunc("GET /api/events/{id}", cfg.Events.GetEvent)
	mux.HandleFunc("PUT /api/events/{id}", cfg.Events.UpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", cfg.Events.DeleteEvent)
	mux.HandleFunc("GET /api/events/{id}/summary", cfg.Events.EventSummary)
	mux.HandleFunc("POST /api/events/{id}/allocate-venue", cfg.Events.AllocateVenue)
	mux.HandleFunc("GET /api/organizers/{organizerID}/events", cfg.Events.OrganizerEvents)

	// Attendance and ratings
	mux.HandleFunc("POST /api/events/{eventID}/attendance", middleware.RequireUser(cfg.Interactions.RecordAttendance))
	mux.HandleFunc("GET /api/events/{eventID}/attendance/me", middleware.RequireUser(cfg.Interactions.MyAttendance))
	mux.HandleFunc("GET /api/events/{eventID}/attendees", cfg.Interactions.EventAttendees)
	mux.HandleFunc("POST /api/events/{eventID}/rating", middleware.RequireUser(cfg.Interactions.RateEvent))
	mux.HandleFunc("GET /api/events/{eventID}/rating/me", middleware.RequireUser(cfg.Interactions.MyRating))
	mux.HandleFunc("GET /api/events/{eventID}/ratings", cfg.Interactions.EventRatings)
	mux.HandleFunc("GET /api/events/{eventID}/ratings/summary", cfg.Interactions.RatingSummary)
	mux.HandleFunc("GET /api/users/me/attended-events", middleware.RequireUser(cfg.Interactions.MyAttendedEvents))

	// Registrations
	mux.HandleFunc("GET /api/event-registrations", cfg.Registrations.ListRegistrations)
	mux.HandleFunc("POST /api/event-registrations/register", cfg.Registrations.Register)
	mux.HandleFunc("GET /api/event-registrations/{id}", cfg.Registrations.GetRegistration)
	mux.HandleFunc("PUT /api/event-registrations/{id}", cfg.Registrations.OverwriteRegistration)
	mux.HandleFunc("PUT /api/event-registrations/{id}/cancel", cfg.Registrations.CancelRegistration)
	mux.HandleFunc("GET /api/event-registrations/event/{eventID}", cfg.Registrations.EventRegistrations)
	mux.HandleFunc("GET /api/event-registrations/user/{userID}", cfg.Registrations.UserRegistrations)
	mux.HandleFunc("GET /api/event-registrations/user/{userID}/upcoming", cfg.Registrations.UpcomingUserRegistrations)
	mux.HandleFunc("GET /api/event-registrations/user/{userID}/past", cfg.Registrations.PastUserRegistrations)
	mux.HandleFunc("POST /api/event-registrations/event/{eventID}/user/{userID}/check-in", cfg.Registrations.CheckIn)
	mux.HandleFunc("POST /api/event-registrations/event/{eventID}/user/{userID}/feedback", cfg.Registrations.SubmitFeedback)

	// Operations
	mux.HandleFunc("GET /healthz", healthHandler(cfg.HealthCheck))
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics sits directly around the mux so the matched pattern is visible to it.
	var handler http.Handler = mux
	if cfg.Metrics != nil {
		handler = middleware.Metrics(cfg.Metrics, handler)
	}
	handler = middleware.Identity(handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	return middleware.RequestID(handler)
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, "unavailable", err.Error())
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
