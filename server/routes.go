package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nestora/nestora-api/auth"
	"github.com/nestora/nestora-api/auth/authctx"
	apperrors "github.com/nestora/nestora-api/errors"
	"github.com/nestora/nestora-api/validation"
	"github.com/nestora/nestora-api/version"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/healthcheck", s.handleHealthcheck)

	authGroup := s.engine.Group("/api/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/me", s.handleMe)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "nestora-api",
		"version": version.Short(),
	})
}

func (s *Server) handleHealthcheck(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK
	checks := gin.H{"server": "up"}

	if s.deps.DB != nil {
		if err := s.deps.DB.PingContext(c.Request.Context()); err != nil {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			checks["database"] = "down"
		} else {
			checks["database"] = "up"
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}
	// The tag checks count runes; bcrypt caps its input at 72 bytes.
	if err := validation.New().
		Custom(len(req.Password) <= 72, "password", "must be at most 72 bytes").
		Validate(); err != nil {
		RespondWithError(c, err)
		return
	}

	resp, err := s.deps.Auth.Register(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondCreated(c, resp)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	resp, err := s.deps.Auth.Login(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, resp)
}

// handleMe sits under the public /api/auth prefix, so it enforces the
// principal requirement itself rather than relying on the route policy.
func (s *Server) handleMe(c *gin.Context) {
	principal, ok := authctx.Get(c.Request.Context())
	if !ok {
		RespondWithError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	profile, err := s.deps.Auth.Me(c.Request.Context(), principal)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, profile)
}
