package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/auth"
	"github.com/dmitrijs2005/gotodo/internal/server/config"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/repomanager"
	todosrepo "github.com/dmitrijs2005/gotodo/internal/server/repositories/todos"
	usersrepo "github.com/dmitrijs2005/gotodo/internal/server/repositories/users"
	"github.com/dmitrijs2005/gotodo/internal/server/services"
)

// --- in-memory repositories ---

type memUsers struct {
	users []*models.User
	seq   int
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("u-%d", m.seq)
	u.CreatedAt = time.Now()
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memTodos struct {
	todos []*models.Todo
	seq   int
}

func (m *memTodos) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	m.seq++
	todo.ID = fmt.Sprintf("t-%d", m.seq)
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	m.todos = append(m.todos, todo)
	return todo, nil
}

func (m *memTodos) ListByOwner(ctx context.Context, ownerID string, offset int, limit int) ([]*models.Todo, error) {
	var owned []*models.Todo
	for _, t := range m.todos {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (m *memTodos) GetByID(ctx context.Context, id string, ownerID string) (*models.Todo, error) {
	for _, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			return t, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memTodos) Update(ctx context.Context, id string, ownerID string, update *models.TodoUpdate) (*models.Todo, error) {
	t, err := m.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Completed != nil {
		t.Completed = *update.Completed
	}
	t.UpdatedAt = time.Now()
	return t, nil
}

func (m *memTodos) Delete(ctx context.Context, id string, ownerID string) error {
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memRepoManager struct {
	u *memUsers
	t *memTodos
}

var _ repomanager.RepositoryManager = (*memRepoManager)(nil)

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *memRepoManager) Todos(db dbx.DBTX) todosrepo.Repository      { return m.t }

// --- test server ---

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: 30 * time.Minute,
		CookieName:                  "access_token",
		BearerPrefix:                "Bearer ",
		CORSOrigins:                 "*",
		GinMode:                     gin.TestMode,
	}
}

func newTestServer(t *testing.T) (*Server, *memRepoManager) {
	t.Helper()

	// The repositories are in-memory fakes, but Register still opens a real
	// transaction on the *sql.DB handle, so back it with in-memory sqlite.
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	rm := &memRepoManager{u: &memUsers{}, t: &memTodos{}}

	userService := services.NewUserService(db, rm, cfg)
	todoService := services.NewTodoService(db, rm)

	extractor := auth.NewExtractor(cfg.CookieName, cfg.BearerPrefix)
	resolver := auth.NewResolver(rm.Users(db), extractor, []byte(cfg.SecretKey), logger)

	return NewServer(cfg, logger, userService, todoService, resolver), rm
}

// registerUser creates a user directly through the service layer.
func registerUser(t *testing.T, s *Server, username string) *models.User {
	t.Helper()

	u, err := s.users.Register(context.Background(), username, username+"@example.com", "password123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	return u
}

// mintToken signs a valid access token for the given username.
func mintToken(t *testing.T, s *Server, username string, ttl time.Duration) string {
	t.Helper()

	token, err := auth.GenerateToken(username, []byte(s.cfg.SecretKey), ttl)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return token
}

// seedTodo inserts a todo directly into the in-memory store.
func seedTodo(t *testing.T, rm *memRepoManager, ownerID, title string) *models.Todo {
	t.Helper()

	todo, err := rm.t.Create(context.Background(), &models.Todo{OwnerID: ownerID, Title: title})
	if err != nil {
		t.Fatalf("seed todo error: %v", err)
	}
	return todo
}

// readCookie returns the named Set-Cookie entry of the response, or nil.
func readCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// bodyContains asserts that the response body includes the given substring.
func bodyContains(substr string) func(*http.Response, *http.Request) error {
	return func(resp *http.Response, req *http.Request) error {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if !strings.Contains(string(body), substr) {
			return fmt.Errorf("body does not contain %q", substr)
		}
		return nil
	}
}
