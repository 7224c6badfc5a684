package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gatherhub/server/internal/api/handlers"
	"github.com/gatherhub/server/internal/api/middleware"
	"github.com/gatherhub/server/internal/config"
	"github.com/gatherhub/server/internal/domain/attendance"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/domain/users"
	"github.com/gatherhub/server/internal/metrics"
	"github.com/gatherhub/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires repositories, services, and handlers over the given pool
// and returns the fully assembled HTTP handler.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	usersService := users.NewService(repo.Users(), logger)
	eventsService := events.NewService(repo.Events(), logger)
	attendanceService := attendance.NewService(repo.Attendance(), logger)

	authHandler := handlers.NewAuthHandler(usersService)
	eventsHandler := handlers.NewEventsHandler(eventsService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/auth/users", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(authHandler.GetUserByUsername),
	}))
	mux.Handle("/api/auth/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Register),
	}))
	mux.Handle("/api/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))

	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: http.HandlerFunc(eventsHandler.Create),
	}))
	mux.Handle("/api/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodPut:    http.HandlerFunc(eventsHandler.Update),
		http.MethodDelete: http.HandlerFunc(eventsHandler.Delete),
	}))
	mux.Handle("/api/events/{id}/attend", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(attendanceHandler.Attend),
	}))
	mux.Handle("/api/events/{id}/attendees", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(attendanceHandler.Attendees),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.Server.CORSAllowedOrigins)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
