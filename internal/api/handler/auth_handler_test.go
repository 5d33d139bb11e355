package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/api"
	"github.com/andrianarivo/haustiere/internal/api/handler"
	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/service"
)

type memoryUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func newAuthTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	tokens := service.NewTokenManager("secret", time.Hour)
	authService := service.NewAuthService(newMemoryUserRepo(), tokens)
	h := handler.NewAuthHandler(authService)

	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", h.Logout)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	e := newAuthTestServer()

	rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"p1secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected USER role, got %s", user.Role)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e := newAuthTestServer()

	if rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"p1secret"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}
	rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"other1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	e := newAuthTestServer()

	rec := postJSON(e, "/auth/register", `{"email":"not-an-email","password":"p1secret"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newAuthTestServer()
	postJSON(e, "/auth/register", `{"email":"a@x.com","password":"p1secret"}`)

	rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"p1secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string       `json:"access_token"`
		User        *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access_token in response")
	}
	if resp.User == nil || resp.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	e := newAuthTestServer()
	postJSON(e, "/auth/register", `{"email":"a@x.com","password":"p1secret"}`)

	rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newAuthTestServer()

	rec := postJSON(e, "/auth/logout", ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
