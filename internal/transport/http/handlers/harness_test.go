package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/taskdeck/internal/domain"
	"github.com/vedran77/taskdeck/internal/service"
	"github.com/vedran77/taskdeck/internal/token"
	"github.com/vedran77/taskdeck/internal/transport/http/middleware"
)

type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

// memTaskRepo mirrors the scoped-query contract of the postgres repo,
// including filter and ordering semantics, so handler tests can exercise
// listing end to end.
type memTaskRepo struct {
	tasks map[uuid.UUID]*domain.Task
}

func (r *memTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepo) GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.UserID != ownerID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		out = append(out, *t)
	}

	asc := filter.SortOrder == "asc"
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !asc {
			a, b = b, a
		}
		switch filter.SortBy {
		case "title":
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case "status":
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		case "priority":
			if a.Priority != b.Priority {
				return a.Priority < b.Priority
			}
		case "updatedAt":
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID.String() < b.ID.String()
	})

	return out, nil
}

func (r *memTaskRepo) UpdateByOwner(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) DeleteByOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != ownerID {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

// newTestServer wires the handlers the same way cmd/server does, minus the
// real database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	userRepo := &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
	taskRepo := &memTaskRepo{tasks: make(map[uuid.UUID]*domain.Task)}

	tokens := token.NewService("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens)
	taskService := service.NewTaskService(taskRepo)

	authHandler := NewAuthHandler(authService, time.Hour, false)
	taskHandler := NewTaskHandler(taskService)
	auth := middleware.Auth(tokens, userRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.Handle("GET /auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PATCH /auth/me", auth(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("POST /tasks", auth(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("GET /tasks", auth(http.HandlerFunc(taskHandler.List)))
	mux.Handle("GET /tasks/{id}", auth(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("PUT /tasks/{id}", auth(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /tasks/{id}", auth(http.HandlerFunc(taskHandler.Delete)))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testClient struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newClient(t *testing.T, srv *httptest.Server) *testClient {
	return &testClient{t: t, srv: srv}
}

func (c *testClient) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: c.token})
	}

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// register signs the client up and captures the session cookie.
func (c *testClient) register(name, email, password string) map[string]any {
	c.t.Helper()

	var buf bytes.Buffer
	require.NoError(c.t, json.NewEncoder(&buf).Encode(map[string]string{
		"name": name, "email": email, "password": password,
	}))

	resp, err := c.srv.Client().Post(c.srv.URL+"/auth/register", "application/json", &buf)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			c.token = cookie.Value
		}
	}
	require.NotEmpty(c.t, c.token, "registration must set the session cookie")

	var decoded map[string]any
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func (c *testClient) createTask(body map[string]any) string {
	c.t.Helper()

	resp, decoded := c.do(http.MethodPost, "/tasks", body)
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)

	task := decoded["task"].(map[string]any)
	return task["id"].(string)
}
