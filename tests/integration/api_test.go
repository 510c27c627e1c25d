package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	assignmentdomain "github.com/devforge-portal/portal-backend/internal/assignments/domain"
	"github.com/devforge-portal/portal-backend/internal/bootstrap"
	"github.com/devforge-portal/portal-backend/internal/identity"
	projectdomain "github.com/devforge-portal/portal-backend/internal/projects/domain"
	userdomain "github.com/devforge-portal/portal-backend/internal/users/domain"
	userservice "github.com/devforge-portal/portal-backend/internal/users/service"
)

// ---- in-memory stores ----

type memProjects struct {
	mu    sync.Mutex
	items map[string]projectdomain.Project
}

func (m *memProjects) Create(_ context.Context, p projectdomain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = p
	return nil
}

func (m *memProjects) Get(_ context.Context, id string) (projectdomain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return projectdomain.Project{}, projectdomain.ErrNotFound
	}
	return p, nil
}

func (m *memProjects) List(_ context.Context) ([]projectdomain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]projectdomain.Project, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProjects) ListByStatus(_ context.Context, status projectdomain.Status) ([]projectdomain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []projectdomain.Project{}
	for _, p := range m.items {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjects) Update(_ context.Context, id string, p projectdomain.Project) (projectdomain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok {
		return projectdomain.Project{}, projectdomain.ErrNotFound
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	m.items[id] = p
	return p, nil
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return projectdomain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	items map[string]userdomain.User
}

func (m *memUsers) Create(_ context.Context, u userdomain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[u.ID] = u
	return nil
}

func (m *memUsers) Get(_ context.Context, id string) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return userdomain.User{}, userdomain.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByCognitoUsername(_ context.Context, username string) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.CognitoUsername == username {
			return u, nil
		}
	}
	return userdomain.User{}, userdomain.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]userdomain.User, 0, len(m.items))
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id string, u userdomain.User) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok {
		return userdomain.User{}, userdomain.ErrNotFound
	}
	u.ID = existing.ID
	u.CognitoUsername = existing.CognitoUsername
	u.CreatedAt = existing.CreatedAt
	m.items[id] = u
	return u, nil
}

func (m *memUsers) MarkInactive(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return userdomain.ErrNotFound
	}
	u.Status = userdomain.StatusInactive
	m.items[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return userdomain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memAssignments struct {
	mu    sync.Mutex
	items map[string]assignmentdomain.Assignment
}

func (m *memAssignments) Create(_ context.Context, a assignmentdomain.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = a
	return nil
}

func (m *memAssignments) Get(_ context.Context, id string) (assignmentdomain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return assignmentdomain.Assignment{}, assignmentdomain.ErrNotFound
	}
	return a, nil
}

func (m *memAssignments) List(_ context.Context, projectID, userID string) ([]assignmentdomain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []assignmentdomain.Assignment{}
	for _, a := range m.items {
		if projectID != "" && a.ProjectID != projectID {
			continue
		}
		if userID != "" && a.UserID != userID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memAssignments) Update(_ context.Context, id string, a assignmentdomain.Assignment) (assignmentdomain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok {
		return assignmentdomain.Assignment{}, assignmentdomain.ErrNotFound
	}
	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt
	m.items[id] = a
	return a, nil
}

func (m *memAssignments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return assignmentdomain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// stubIdentity stands in for the hosted user pool.
type stubIdentity struct {
	mu        sync.Mutex
	accounts  map[string]bool
	deleteErr error
}

func (s *stubIdentity) CreateAccount(_ context.Context, email, _ string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = true
	return email, "Temp#Pass123", nil
}

func (s *stubIdentity) UpdateAccount(_ context.Context, _, _, _ string) error { return nil }

func (s *stubIdentity) DeleteAccount(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if !s.accounts[username] {
		return identity.ErrAccountNotFound
	}
	delete(s.accounts, username)
	return nil
}

func (s *stubIdentity) AccountExists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[username], nil
}

func (s *stubIdentity) ListUsernames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.accounts))
	for n := range s.accounts {
		out = append(out, n)
	}
	return out, nil
}

// ---- harness ----

type env struct {
	router *gin.Engine
	idp    *stubIdentity
	users  *memUsers
}

func newEnv() *env {
	gin.SetMode(gin.TestMode)

	projects := &memProjects{items: map[string]projectdomain.Project{}}
	users := &memUsers{items: map[string]userdomain.User{}}
	assignments := &memAssignments{items: map[string]assignmentdomain.Assignment{}}
	idp := &stubIdentity{accounts: map[string]bool{}}

	log := zap.NewNop()
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "portal-backend",
		Version:       "test",
		DevBypassAuth: true,
		Log:           log,
		Projects:      projects,
		Users:         userservice.NewUserService(users, idp, log),
		Assignments:   assignments,
	})

	return &env{router: router, idp: idp, users: users}
}

func (e *env) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func projectBody() map[string]any {
	return map[string]any{
		"title":      "Recipe Sharing Platform",
		"overview":   "A community site for publishing and rating recipes.",
		"status":     "active",
		"objectives": []string{"publish recipes", "rate recipes"},
		"techStack": map[string]any{
			"frontend": []string{"react"},
			"backend":  []string{"go"},
			"database": []string{"dynamodb"},
		},
		"metadata": map[string]any{
			"type":          "website",
			"estimatedTime": "8 weeks",
			"teamSize":      map[string]any{"min": 2, "max": 5},
			"difficulty":    "intermediate",
			"tags":          []string{"web", "community"},
		},
	}
}

// ---- tests ----

func TestHealth(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])
}

func TestPreflight(t *testing.T) {
	e := newEnv()

	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestProjectLifecycle(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/projects", projectBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[projectdomain.Project](t, w)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// round trip preserves the record
	w = e.do(t, http.MethodGet, "/projects/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[projectdomain.Project](t, w)
	assert.Equal(t, created, got)
	assert.Equal(t, []string{"publish recipes", "rate recipes"}, got.Objectives)
	assert.Equal(t, projectdomain.TeamSize{Min: 2, Max: 5}, got.Metadata.TeamSize)

	// status filter
	w = e.do(t, http.MethodGet, "/projects?status=active", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]projectdomain.Project](t, w), 1)
	w = e.do(t, http.MethodGet, "/projects?status=archived", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]projectdomain.Project](t, w))

	// update replaces the document, keeps identity and creation time
	body := projectBody()
	body["title"] = "Recipe Sharing Platform v2"
	body["status"] = "completed"
	w = e.do(t, http.MethodPut, "/projects/"+created.ID, body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[projectdomain.Project](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, projectdomain.StatusCompleted, updated.Status)

	// delete, then reads and updates are 404
	w = e.do(t, http.MethodDelete, "/projects/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = e.do(t, http.MethodGet, "/projects/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Project not found"}`, w.Body.String())
	w = e.do(t, http.MethodPut, "/projects/"+created.ID, projectBody(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMissingProject(t *testing.T) {
	e := newEnv()
	w := e.do(t, http.MethodPut, "/projects/no-such-id", projectBody(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Project not found"}`, w.Body.String())
}

func TestUserLifecycle(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/users", map[string]any{
		"email": "dana@example.com",
		"name":  "Dana",
		"role":  "admin",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.NotEmpty(t, created["temp_password"], "create response must carry the one-time password")
	assert.Equal(t, "admin", created["role"])

	// temp password never appears on subsequent reads
	w = e.do(t, http.MethodGet, "/users/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[map[string]any](t, w)
	_, leaked := fetched["temp_password"]
	assert.False(t, leaked)

	// identity outage blocks deletion and the record survives
	e.idp.deleteErr = errors.New("service unavailable")
	w = e.do(t, http.MethodDelete, "/users/"+id, nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	w = e.do(t, http.MethodGet, "/users/"+id, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code, "record must survive a failed identity delete")

	// once the outage clears, deletion completes
	e.idp.deleteErr = nil
	w = e.do(t, http.MethodDelete, "/users/"+id, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = e.do(t, http.MethodGet, "/users/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())
}

func TestUserSync(t *testing.T) {
	e := newEnv()
	hdr := http.Header{"x-user-sub": []string{"sub-123"}}

	t.Run("unauthenticated", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/users/sync", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("upsert is idempotent", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/users/sync", map[string]any{"name": "Sam"}, hdr)
		require.Equal(t, http.StatusOK, w.Code)
		first := decode[userdomain.User](t, w)
		assert.Equal(t, "sub-123", first.CognitoUsername)
		assert.Equal(t, userdomain.RoleUser, first.Role)

		w = e.do(t, http.MethodPost, "/users/sync", map[string]any{"name": "Sam"}, hdr)
		require.Equal(t, http.StatusOK, w.Code)
		second := decode[userdomain.User](t, w)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, e.users.items, 1)
	})
}

func TestAssignmentViews(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/projects", projectBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	project := decode[projectdomain.Project](t, w)

	w = e.do(t, http.MethodPost, "/users", map[string]any{"email": "dana@example.com", "name": "Dana"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode[userdomain.User](t, w)

	w = e.do(t, http.MethodPost, "/assignments", map[string]any{
		"project_id": project.ID,
		"user_id":    user.ID,
		"role":       "lead",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)
	assert.Equal(t, project.Title, created["project_title"])
	assert.Equal(t, "Dana", created["user_name"])
	assert.Equal(t, "pending", created["status"], "status defaults when omitted")

	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	// list filters by reference
	w = e.do(t, http.MethodGet, "/assignments?project_id="+project.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	w = e.do(t, http.MethodGet, "/assignments?project_id=other", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))

	// a deleted referent degrades to the unknown fallback, not an error
	w = e.do(t, http.MethodDelete, "/projects/"+project.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = e.do(t, http.MethodGet, "/assignments/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[map[string]any](t, w)
	assert.Equal(t, "Unknown Project", view["project_title"])
	assert.Equal(t, "Dana", view["user_name"])
}

func TestAssignmentValidation(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/assignments", map[string]any{"user_id": "u1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid assignment object"}`, w.Body.String())

	w = e.do(t, http.MethodGet, "/assignments/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Assignment not found"}`, w.Body.String())
}
