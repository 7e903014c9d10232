package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/nestora/nestora-api/auth"
	"github.com/nestora/nestora-api/authz"
	"github.com/nestora/nestora-api/logger"
	"github.com/nestora/nestora-api/observability"
	"github.com/nestora/nestora-api/server/middleware"
)

// Pinger reports backend reachability for the health endpoint.
// database.DB satisfies this interface.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries the wired collaborators the HTTP surface exposes.
type Deps struct {
	Auth     *auth.Service
	Tokens   middleware.TokenParser
	Identity middleware.IdentityResolver
	Policy   *authz.Policy
	// DB is optional; when nil the health endpoint skips the database probe.
	DB Pinger
	// Metrics is optional; when set the auth filter records token telemetry.
	Metrics *observability.AuthMetrics
}

// Server is the HTTP server: a Gin engine mounted on a ServeMux, wrapped
// with the ambient middleware stack and h2c.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	config     Config
	deps       Deps
	log        *logger.Logger
}

// New creates a fully wired Server: middleware applied, routes registered.
func New(cfg Config, deps Deps, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	// Gin mode follows the global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	mux := http.NewServeMux()
	mux.Handle("/", engine)

	s := &Server{
		engine: engine,
		mux:    mux,
		config: cfg,
		deps:   deps,
		log:    log.WithComponent("server"),
	}
	s.registerRoutes()

	policy := deps.Policy
	if policy == nil {
		policy = authz.DefaultPolicy()
	}

	chained := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.BodySizeLimit(cfg.MaxBodySize),
		middleware.RequestLogger(log),
		pathScoped(isCredentialPath, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.AuthRequestsPerMinute,
		})),
		bearerAuth(deps, log),
		middleware.RequirePolicy(policy),
	)(mux)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(chained, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// Handler returns the root handler, ready for httptest-style exercising.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	if s.config.TLS.IsEnabled() {
		tlsConfig, err := s.config.TLS.Build()
		if err != nil {
			_ = listener.Close()
			return err
		}
		listener = tls.NewListener(listener, tlsConfig)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func bearerAuth(deps Deps, log *logger.Logger) middleware.Middleware {
	var opts []middleware.BearerAuthOption
	if deps.Metrics != nil {
		opts = append(opts, middleware.WithAuthMetrics(deps.Metrics))
	}
	return middleware.BearerAuth(deps.Tokens, deps.Identity, log, opts...)
}

// pathScoped applies mw only to requests whose path satisfies match.
func pathScoped(match func(string) bool, mw middleware.Middleware) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		guarded := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if match(r.URL.Path) {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isCredentialPath marks the endpoints that accept credentials and therefore
// get per-IP rate limiting.
func isCredentialPath(path string) bool {
	path = strings.TrimRight(path, "/")
	return path == "/api/auth/login" || path == "/api/auth/register"
}
