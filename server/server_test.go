package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nestora/nestora-api/auth"
	"github.com/nestora/nestora-api/auth/password"
	"github.com/nestora/nestora-api/auth/token"
	"github.com/nestora/nestora-api/server"
	"github.com/nestora/nestora-api/user"
)

func newTestServer(t *testing.T) (http.Handler, *token.Service) {
	t.Helper()

	tokens, err := token.NewService(token.Config{Secret: "test-secret-test-secret-test-secret!"})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	store := user.NewMemoryStore()
	hasher := password.NewBcryptHasher(password.WithCost(4))
	svc := auth.NewService(store, hasher, tokens, nil)

	cfg := server.Config{AuthRequestsPerMinute: 1000}
	cfg.ApplyDefaults()

	srv := server.New(cfg, server.Deps{
		Auth:     svc,
		Tokens:   tokens,
		Identity: auth.NewIdentityLoader(store),
	}, nil)
	return srv.Handler(), tokens
}

func doJSON(t *testing.T, h http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type authEnvelope struct {
	Data struct {
		Token string `json:"token"`
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"data"`
}

func register(t *testing.T, h http.Handler, email, name, pw string) authEnvelope {
	t.Helper()
	body := `{"email":"` + email + `","name":"` + name + `","password":"` + pw + `"}`
	rr := doJSON(t, h, "POST", "/api/auth/register", body, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rr.Code, rr.Body.String())
	}
	var env authEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad register response: %v", err)
	}
	return env
}

func TestRegisterLoginMeFlow(t *testing.T) {
	h, _ := newTestServer(t)

	reg := register(t, h, "jane@example.com", "Jane", "s3cret-enough")
	if reg.Data.Token == "" || reg.Data.Email != "jane@example.com" {
		t.Fatalf("unexpected register payload: %+v", reg.Data)
	}

	rr := doJSON(t, h, "POST", "/api/auth/login", `{"email":"jane@example.com","password":"s3cret-enough"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rr.Code, rr.Body.String())
	}
	var login authEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &login); err != nil {
		t.Fatal(err)
	}

	me := doJSON(t, h, "GET", "/api/auth/me", "", login.Data.Token)
	if me.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", me.Code, me.Body.String())
	}
	var profile struct {
		Data struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	if err := json.Unmarshal(me.Body.Bytes(), &profile); err != nil {
		t.Fatal(err)
	}
	if profile.Data.Email != "jane@example.com" || profile.Data.Role != "ROLE_USER" {
		t.Errorf("unexpected profile: %+v", profile.Data)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, "POST", "/api/auth/register", `{"email":"not-an-email","name":"","password":"short"}`, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid payload, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	h, _ := newTestServer(t)

	// 40 three-byte runes: within the 72-rune tag limit, over 72 bytes.
	pw := strings.Repeat("\u20ac", 40)
	body := `{"email":"long@example.com","name":"Long","password":"` + pw + `"}`
	rr := doJSON(t, h, "POST", "/api/auth/register", body, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for over-long password, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	h, _ := newTestServer(t)
	register(t, h, "jane@example.com", "Jane", "s3cret-enough")

	rr := doJSON(t, h, "POST", "/api/auth/register", `{"email":"jane@example.com","name":"Other","password":"different-pw"}`, "")
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, _ := newTestServer(t)
	register(t, h, "jane@example.com", "Jane", "s3cret-enough")

	rr := doJSON(t, h, "POST", "/api/auth/login", `{"email":"jane@example.com","password":"wrong"}`, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rr.Code)
	}

	unknown := doJSON(t, h, "POST", "/api/auth/login", `{"email":"nobody@example.com","password":"wrong"}`, "")
	if unknown.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", unknown.Code)
	}
	if unknown.Body.String() != rr.Body.String() {
		t.Error("login failures must be indistinguishable")
	}
}

func TestMeWithoutToken(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, "GET", "/api/auth/me", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rr.Code)
	}
}

func TestProtectedPathAnonymous(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, "GET", "/api/rentals", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous protected path, got %d", rr.Code)
	}
}

func TestTamperedTokenForbidden(t *testing.T) {
	h, _ := newTestServer(t)
	reg := register(t, h, "jane@example.com", "Jane", "s3cret-enough")

	tampered := reg.Data.Token + "x"
	rr := doJSON(t, h, "GET", "/api/auth/me", "", tampered)
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for tampered token, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHealthcheckPublic(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, "GET", "/healthcheck", "", "")
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 from healthcheck, got %d", rr.Code)
	}
}

func TestRootBanner(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, "GET", "/", "", "")
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 from root, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "nestora-api") {
		t.Errorf("expected service banner, got %s", rr.Body.String())
	}
}
