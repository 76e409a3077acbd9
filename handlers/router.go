package handlers

import (
	"context"
	"net/http"
	"time"

	"project-dashboard/logging"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Assignments AssignmentService
	Employees   EmployeeService
	Projects    ProjectService
	Store       Pinger
}

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter wires every route under /api plus /healthz, wrapped in CORS,
// access logging and panic recovery.
func NewRouter(logger *zap.Logger, svc Services, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	assignments := NewAssignmentHandler(logger, svc.Assignments)
	employees := NewEmployeeHandler(logger, svc.Employees)
	projects := NewProjectHandler(logger, svc.Projects)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", healthz(logger, svc.Store)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(timeout(opts.RequestTimeout))

	api.HandleFunc("/employees", employees.List).Methods(http.MethodGet)
	api.HandleFunc("/employees", employees.Create).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id}", employees.Get).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", employees.Update).Methods(http.MethodPut)
	api.HandleFunc("/employees/{id}", employees.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/projects", projects.List).Methods(http.MethodGet)
	api.HandleFunc("/projects", projects.Create).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", projects.Get).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", projects.Update).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", projects.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/projectassignments", assignments.List).Methods(http.MethodGet)
	api.HandleFunc("/projectassignments", assignments.Create).Methods(http.MethodPost)
	api.HandleFunc("/projectassignments/employee/{ref}", assignments.ListByEmployee).Methods(http.MethodGet)
	api.HandleFunc("/projectassignments/project/{ref}", assignments.ListByProject).Methods(http.MethodGet)
	api.HandleFunc("/projectassignments/{id}", assignments.Get).Methods(http.MethodGet)
	api.HandleFunc("/projectassignments/{id}", assignments.Replace).Methods(http.MethodPut)
	api.HandleFunc("/projectassignments/{id}", assignments.Patch).Methods(http.MethodPatch)
	api.HandleFunc("/projectassignments/{id}", assignments.Delete).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	var h http.Handler = c.Handler(router)
	h = ghandlers.CombinedLoggingHandler(logging.Writer(logger.Named("access")), h)
	h = ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(logging.StdLogger(logger)),
		ghandlers.PrintRecoveryStack(true),
	)(h)
	return h
}

func healthz(logger *zap.Logger, store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if store != nil {
			if err := store.Ping(ctx); err != nil {
				writeJSON(w, logger, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
				return
			}
		}
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// timeout bounds each API request's context. A zero duration disables it.
func timeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
