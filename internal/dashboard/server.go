package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/config"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/runner"
)

// Server exposes the dashboard HTTP API: parsed test results, generated
// spec listings and test-run triggering.
type Server struct {
	// baseCtx outlives individual requests; triggered runs are bound to
	// it rather than to the triggering request.
	baseCtx context.Context

	logger *logrus.Logger
	cfg    *config.Config
	runner *runner.Runner
}

func NewServer(ctx context.Context, logger *logrus.Logger, cfg *config.Config, testRunner *runner.Runner) *Server {
	return &Server{
		baseCtx: ctx,
		logger:  logger,
		cfg:     cfg,
		runner:  testRunner,
	}
}

// Router builds the Gorilla Mux router with all API routes and common
// middleware attached.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	apiSubrouter := router.PathPrefix("/api").Subrouter()

	apiSubrouter.Use(s.loggingMiddleware())
	apiSubrouter.Use(s.corsMiddleware())

	for _, route := range s.apiRoutes() {
		apiSubrouter.
			Methods(route.method, http.MethodOptions).
			Path(route.pattern).
			Name(route.name).
			HandlerFunc(route.handlerFunc)
	}

	// liveness probe, outside the /api prefix and its middleware
	router.
		Methods(http.MethodGet).
		Path("/health").
		Name("Health").
		HandlerFunc(s.handleHealth)

	return router
}

// HTTPServer returns an HTTP server initialized with the dashboard router.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Router(),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
}

type route struct {
	name        string
	method      string
	pattern     string
	handlerFunc http.HandlerFunc
}

func (s *Server) apiRoutes() []route {
	return []route{
		{
			name:        "ResultsLatest",
			method:      http.MethodGet,
			pattern:     "/results/latest",
			handlerFunc: s.handleLatestResults,
		},
		{
			name:        "ResultsRaw",
			method:      http.MethodGet,
			pattern:     "/results/raw",
			handlerFunc: s.handleRawResults,
		},
		{
			name:        "TestsList",
			method:      http.MethodGet,
			pattern:     "/tests",
			handlerFunc: s.handleListTests,
		},
		{
			name:        "RoutesList",
			method:      http.MethodGet,
			pattern:     "/routes",
			handlerFunc: s.handleListRoutes,
		},
		{
			name:        "TestsDelete",
			method:      http.MethodDelete,
			pattern:     "/tests/{filename}",
			handlerFunc: s.handleDeleteTest,
		},
		{
			name:        "RunTests",
			method:      http.MethodPost,
			pattern:     "/run-tests",
			handlerFunc: s.handleRunTests,
		},
		{
			name:        "RunTestsStatus",
			method:      http.MethodGet,
			pattern:     "/run-tests/status",
			handlerFunc: s.handleRunStatus,
		},
	}
}
