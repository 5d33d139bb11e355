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
	"github.com/andrianarivo/haustiere/internal/api/middleware"
	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
	"github.com/andrianarivo/haustiere/internal/core/service"
)

type memoryCatRepo struct {
	cats   map[uint]*domain.Cat
	nextID uint
}

func newMemoryCatRepo() *memoryCatRepo {
	return &memoryCatRepo{cats: make(map[uint]*domain.Cat), nextID: 1}
}

func (r *memoryCatRepo) Create(_ context.Context, cat *domain.Cat) (*domain.Cat, error) {
	stored := *cat
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.cats[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryCatRepo) FindAll(_ context.Context) ([]domain.Cat, error) {
	out := make([]domain.Cat, 0, len(r.cats))
	for _, c := range r.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryCatRepo) FindByID(_ context.Context, id uint) (*domain.Cat, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCatNotFound
	}
	out := *c
	return &out, nil
}

func (r *memoryCatRepo) Update(_ context.Context, cat *domain.Cat) (*domain.Cat, error) {
	existing, ok := r.cats[cat.ID]
	if !ok {
		return nil, domain.ErrCatNotFound
	}
	existing.Name = cat.Name
	existing.Age = cat.Age
	existing.Breed = cat.Breed
	out := *existing
	return &out, nil
}

func (r *memoryCatRepo) Delete(_ context.Context, id uint) (*domain.Cat, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCatNotFound
	}
	delete(r.cats, id)
	out := *c
	return &out, nil
}

func (r *memoryCatRepo) UpdateStatus(_ context.Context, id uint, status domain.AdoptionStatus) error {
	c, ok := r.cats[id]
	if !ok {
		return domain.ErrCatNotFound
	}
	c.Status = status
	return nil
}

// catFixture is a REST server with the real auth chain and in-memory stores.
type catFixture struct {
	e          *echo.Echo
	userToken  string
	adminToken string
}

func newCatFixture(t *testing.T) *catFixture {
	t.Helper()

	users := newMemoryUserRepo()
	tokens := service.NewTokenManager("secret", time.Hour)
	authService := service.NewAuthService(users, tokens)
	catService := service.NewCatService(newMemoryCatRepo(), nil, zerolog.Nop())

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewCatHandler(catService)
	authenticated := middleware.Auth(authService)
	adminOnly := middleware.RBAC(authService, domain.RoleAdmin)
	anyRole := middleware.RBAC(authService)

	cats := e.Group("/cats", authenticated)
	cats.GET("", h.FindAll, anyRole)
	cats.GET("/:id", h.FindOne, anyRole)
	cats.POST("", h.Create, adminOnly)
	cats.PATCH("/:id", h.Update, adminOnly)
	cats.DELETE("/:id", h.Remove, adminOnly)

	user, err := authService.Register(context.Background(), "user@x.com", "p1secret")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	userToken, err := tokens.Issue(user.ID, user.Role)
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}

	admin, err := authService.Register(context.Background(), "admin@x.com", "p1secret")
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	users.users[admin.ID].Role = domain.RoleAdmin
	adminToken, err := tokens.Issue(admin.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}

	return &catFixture{e: e, userToken: userToken, adminToken: adminToken}
}

func (f *catFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestCatRoutes_RequireAuthentication(t *testing.T) {
	f := newCatFixture(t)

	rec := f.do(http.MethodGet, "/cats", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestCatRoutes_UserCanList(t *testing.T) {
	f := newCatFixture(t)

	rec := f.do(http.MethodGet, "/cats", f.userToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCatRoutes_UserCannotCreate(t *testing.T) {
	f := newCatFixture(t)

	rec := f.do(http.MethodPost, "/cats", f.userToken, `{"name":"Whiskers","age":2}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER on admin action, got %d", rec.Code)
	}
}

func TestCatRoutes_AdminCRUD(t *testing.T) {
	f := newCatFixture(t)

	rec := f.do(http.MethodPost, "/cats", f.adminToken, `{"name":"Whiskers","age":2,"breed":"Tabby"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var cat domain.Cat
	if err := json.Unmarshal(rec.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = f.do(http.MethodPatch, "/cats/1", f.adminToken, `{"name":"Mittens"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodGet, "/cats/1", f.userToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var fetched domain.Cat
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.Name != "Mittens" {
		t.Fatalf("expected updated name, got %s", fetched.Name)
	}

	rec = f.do(http.MethodDelete, "/cats/1", f.adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec = f.do(http.MethodGet, "/cats/1", f.userToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCatRoutes_InvalidAge(t *testing.T) {
	f := newCatFixture(t)

	rec := f.do(http.MethodPost, "/cats", f.adminToken, `{"name":"Whiskers","age":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative age, got %d", rec.Code)
	}
}

var _ ports.CatRepository = (*memoryCatRepo)(nil)
var _ ports.UserRepository = (*memoryUserRepo)(nil)
