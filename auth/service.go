package auth

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/nestora/nestora-api/errors"
	"github.com/nestora/nestora-api/logger"
	"github.com/nestora/nestora-api/observability"
	"github.com/nestora/nestora-api/user"
)

// TokenIssuer is the signing contract Service depends on. The token
// subpackage provides the JWT implementation; tests can substitute a stub.
type TokenIssuer interface {
	Issue(subject string, extra map[string]any) (string, error)
}

// PasswordHasher is the credential-digest contract Service depends on.
// It matches password.Hasher so implementations plug in directly.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) error
}

// Service implements account registration, credential login, and profile
// lookup. All methods return *apperrors.AppError on failure so transports
// can map them to responses without inspecting internals.
type Service struct {
	store   user.Store
	hasher  PasswordHasher
	tokens  TokenIssuer
	log     *logger.Logger
	metrics *observability.AuthMetrics
}

// NewService wires a Service from its dependencies.
func NewService(store user.Store, hasher PasswordHasher, tokens TokenIssuer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("auth"),
	}
}

// WithMetrics attaches authentication instruments. Without it the service
// runs unmetered.
func (s *Service) WithMetrics(m *observability.AuthMetrics) *Service {
	s.metrics = m
	return s
}

// Register creates a new account and returns a freshly issued token for it.
// A duplicate email yields EMAIL_IN_USE whether it is detected up front or
// by the store's uniqueness constraint under concurrent registration.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.EmailInUse()
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("hashing password: %w", err))
	}

	saved, err := s.store.Save(ctx, &user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: digest,
		Role:         user.DefaultRole,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, apperrors.EmailInUse()
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("account registered", map[string]interface{}{
		"user_id": saved.ID,
	})
	if s.metrics != nil {
		s.metrics.RecordRegistration(ctx)
	}
	return s.respond(saved)
}

// Login verifies the presented credentials and issues a token. Unknown email
// and wrong password produce the identical INVALID_CREDENTIALS error, so a
// caller cannot probe which emails are registered.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.recordLogin(ctx, "failed")
			return nil, apperrors.InvalidCredentials()
		}
		return nil, apperrors.DatabaseError(err)
	}

	if err := s.hasher.Verify(req.Password, u.PasswordHash); err != nil {
		s.recordLogin(ctx, "failed")
		return nil, apperrors.InvalidCredentials()
	}

	s.log.Info("login succeeded", map[string]interface{}{
		"user_id": u.ID,
	})
	s.recordLogin(ctx, "ok")
	return s.respond(u)
}

// Me returns the profile behind an authenticated principal.
func (s *Service) Me(ctx context.Context, p *Principal) (*UserProfile, error) {
	u, err := s.store.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperrors.NotFound("user", fmt.Sprintf("%d", p.UserID))
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      NormalizeRole(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func (s *Service) respond(u *user.User) (*AuthResponse, error) {
	tok, err := s.tokens.Issue(u.Email, map[string]any{
		"uid":  u.ID,
		"role": NormalizeRole(u.Role),
	})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issuing token: %w", err))
	}
	return &AuthResponse{
		Token: tok,
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}, nil
}

func (s *Service) recordLogin(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordLogin(ctx, outcome)
	}
}
