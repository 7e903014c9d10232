package auth

import (
	"context"
	"fmt"
	"testing"

	apperrors "github.com/nestora/nestora-api/errors"
	"github.com/nestora/nestora-api/user"
)

// fakeHasher avoids bcrypt cost in unit tests while preserving the contract.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "digest:" + plaintext, nil
}

func (fakeHasher) Verify(plaintext, digest string) error {
	if digest != "digest:"+plaintext {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeIssuer struct{ calls int }

func (f *fakeIssuer) Issue(subject string, extra map[string]any) (string, error) {
	f.calls++
	return "token-for-" + subject, nil
}

func newTestService() (*Service, *user.MemoryStore) {
	store := user.NewMemoryStore()
	return NewService(store, fakeHasher{}, &fakeIssuer{}, nil), store
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, store := newTestService()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "s3cret-enough",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if resp.Token != "token-for-jane@example.com" {
		t.Errorf("unexpected token %q", resp.Token)
	}
	if resp.Email != "jane@example.com" || resp.Name != "Jane" || resp.ID == 0 {
		t.Errorf("unexpected response: %+v", resp)
	}

	saved, err := store.FindByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if saved.PasswordHash == "s3cret-enough" {
		t.Error("password stored in plaintext")
	}
	if saved.Role != user.DefaultRole {
		t.Errorf("expected default role, got %q", saved.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Name: "A", Password: "password1"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Name: "B", Password: "password2"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeEmailInUse {
		t.Fatalf("expected EMAIL_IN_USE, got %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("duplicate registration must leave a single record, got %d", store.Len())
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Name: "A", Password: "password1"}); err != nil {
		t.Fatal(err)
	}
	resp, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token == "" || resp.Email != "a@b.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestLoginIsEnumerationResistant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Name: "A", Password: "password1"}); err != nil {
		t.Fatal(err)
	}

	_, errUnknown := svc.Login(ctx, LoginRequest{Email: "nobody@b.com", Password: "password1"})
	_, errWrongPw := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "wrong"})

	appUnknown, ok1 := apperrors.AsAppError(errUnknown)
	appWrongPw, ok2 := apperrors.AsAppError(errWrongPw)
	if !ok1 || !ok2 {
		t.Fatalf("expected AppErrors, got %v and %v", errUnknown, errWrongPw)
	}
	if appUnknown.Code != apperrors.ErrCodeInvalidCredentials || appWrongPw.Code != apperrors.ErrCodeInvalidCredentials {
		t.Errorf("expected INVALID_CREDENTIALS for both, got %s and %s", appUnknown.Code, appWrongPw.Code)
	}
	if appUnknown.Message != appWrongPw.Message || appUnknown.HTTPStatus != appWrongPw.HTTPStatus {
		t.Error("unknown-email and wrong-password failures must be indistinguishable")
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Name: "A", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}

	profile, err := svc.Me(ctx, &Principal{UserID: reg.ID, Email: reg.Email, Role: "ROLE_USER"})
	if err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if profile.ID != reg.ID || profile.Email != "a@b.com" || profile.Role != "ROLE_USER" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if profile.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestMeUnknownPrincipal(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Me(context.Background(), &Principal{UserID: 999, Email: "ghost@b.com"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestIdentityLoader(t *testing.T) {
	store := user.NewMemoryStore()
	ctx := context.Background()
	if _, err := store.Save(ctx, &user.User{Email: "a@b.com", Name: "A", PasswordHash: "x", Role: "ADMIN"}); err != nil {
		t.Fatal(err)
	}

	loader := NewIdentityLoader(store)
	p, err := loader.Load(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Email != "a@b.com" || p.Role != "ROLE_ADMIN" {
		t.Errorf("unexpected principal: %+v", p)
	}

	if _, err := loader.Load(ctx, "nobody@b.com"); err != ErrIdentityNotFound {
		t.Errorf("expected ErrIdentityNotFound, got %v", err)
	}
}
