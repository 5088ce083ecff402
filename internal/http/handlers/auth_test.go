package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobsplus/jobsplus/internal/auth"
	"github.com/jobsplus/jobsplus/internal/config"
	"github.com/jobsplus/jobsplus/internal/domain/user"
	"github.com/jobsplus/jobsplus/internal/http/handlers"
	"github.com/jobsplus/jobsplus/internal/repo/memory"
	"github.com/jobsplus/jobsplus/internal/security"
)

// The auth handler is wired with the real in-memory stores; faking the
// session plumbing would mostly test the fakes.

type authFixture struct {
	handler *handlers.AuthHandler
	users   *memory.UsersRepo
	refresh *memory.RefreshTokensRepo
	jwt     *auth.Manager
	router  *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := memory.NewUsersRepo()
	refresh := memory.NewRefreshTokensRepo()
	jwtManager := auth.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	cfg := config.Config{Env: "test"}

	h := handlers.NewAuthHandler(users, jwtManager, refresh, cfg)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/logout", h.Logout)

	return &authFixture{handler: h, users: users, refresh: refresh, jwt: jwtManager, router: r}
}

func (f *authFixture) post(path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("{}")
	} else {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatalf("no refresh_token cookie in response")
	return nil
}

const registerBody = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"password": "password123",
	"profile": {"bio": "engineer", "skills": ["Go"]}
}`

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		before         func(f *authFixture)
		wantStatusCode int
		wantErrCode    string
	}{
		{
			name:           "success",
			body:           registerBody,
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: registerBody,
			before: func(f *authFixture) {
				if w := f.post("/api/auth/register", registerBody); w.Code != http.StatusCreated {
					t.Fatalf("fixture register failed: %s", w.Body.String())
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "email_taken",
		},
		{
			name:           "short password rejected by binding",
			body:           `{"name": "Ada Lovelace", "email": "ada@example.com", "password": "abc"}`,
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_request",
		},
		{
			name:           "bad role rejected by binding",
			body:           `{"name": "Ada", "email": "ada@example.com", "password": "password123", "role": "admin"}`,
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_request",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			if tt.before != nil {
				tt.before(f)
			}

			w := f.post("/api/auth/register", tt.body)
			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantErrCode != "" {
				var resp struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Error.Code != tt.wantErrCode {
					t.Fatalf("got error code %q, want %q", resp.Error.Code, tt.wantErrCode)
				}
			}
		})
	}
}

func TestRegisterResponseShape(t *testing.T) {
	f := newAuthFixture(t)

	w := f.post("/api/auth/register", registerBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.AccessToken == "" {
		t.Fatalf("expected an access token")
	}
	if resp.User.Role != "user" {
		t.Fatalf("expected default role user, got %q", resp.User.Role)
	}

	if strings.Contains(w.Body.String(), "passwordHash") {
		t.Fatalf("password hash leaked into the response: %s", w.Body.String())
	}

	claims, err := f.jwt.VerifyAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued access token does not verify: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token subject %q does not match user id %q", claims.UserID, resp.User.ID)
	}

	c := refreshCookie(t, w)
	if !c.HttpOnly {
		t.Fatalf("refresh cookie must be HttpOnly")
	}
	if c.Path != "/api/auth" {
		t.Fatalf("refresh cookie path %q, want /api/auth", c.Path)
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"email": "ada@example.com", "password": "password123"}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           `{"email": "ada@example.com", "password": "wrong-password"}`,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "unknown email",
			body:           `{"email": "nobody@example.com", "password": "password123"}`,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing password rejected by binding",
			body:           `{"email": "ada@example.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			seedUser(t, f, "ada@example.com", hash)

			w := f.post("/api/auth/login", tt.body)
			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestRefreshRotation(t *testing.T) {
	f := newAuthFixture(t)

	registered := f.post("/api/auth/register", registerBody)
	if registered.Code != http.StatusCreated {
		t.Fatalf("register failed: %s", registered.Body.String())
	}
	original := refreshCookie(t, registered)

	// first refresh succeeds and rotates the cookie
	first := f.post("/api/auth/refresh", "", original)
	if first.Code != http.StatusOK {
		t.Fatalf("refresh got %d, body=%s", first.Code, first.Body.String())
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected a fresh access token")
	}

	rotated := refreshCookie(t, first)
	if rotated.Value == original.Value {
		t.Fatalf("refresh must rotate the cookie value")
	}

	// replaying the consumed token must fail
	replay := f.post("/api/auth/refresh", "", original)
	if replay.Code != http.StatusUnauthorized {
		t.Fatalf("replay got %d, want %d, body=%s", replay.Code, http.StatusUnauthorized, replay.Body.String())
	}

	// while the rotated one still works
	second := f.post("/api/auth/refresh", "", rotated)
	if second.Code != http.StatusOK {
		t.Fatalf("rotated refresh got %d, body=%s", second.Code, second.Body.String())
	}
}

func TestRefreshWithoutCookie(t *testing.T) {
	f := newAuthFixture(t)

	w := f.post("/api/auth/refresh", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)

	registered := f.post("/api/auth/register", registerBody)
	if registered.Code != http.StatusCreated {
		t.Fatalf("register failed: %s", registered.Body.String())
	}
	cookie := refreshCookie(t, registered)

	w := f.post("/api/auth/logout", "", cookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout got %d, body=%s", w.Code, w.Body.String())
	}

	cleared := refreshCookie(t, w)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout must clear the cookie, got value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}

	// the revoked token no longer refreshes
	replay := f.post("/api/auth/refresh", "", cookie)
	if replay.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout got %d, want %d", replay.Code, http.StatusUnauthorized)
	}

	// logging out without a cookie is still a 204
	again := f.post("/api/auth/logout", "")
	if again.Code != http.StatusNoContent {
		t.Fatalf("cookieless logout got %d", again.Code)
	}
}

func seedUser(t *testing.T, f *authFixture, email, passwordHash string) {
	t.Helper()

	_, err := f.users.Create(user.CreateUserInput{
		Name:         "Ada Lovelace",
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}
