package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/vitrina-go/internal/middleware"
	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/render"
	"github.com/olegiv/vitrina-go/web"
)

// testDB creates an in-memory SQLite database with the required schema for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			surname TEXT,
			phone_number TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_users_username ON users(username);

		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX idx_sessions_expiry ON sessions(expiry);

		CREATE TABLE contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			contact_info TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_contact_messages_created_at ON contact_messages(created_at DESC);
		CREATE INDEX idx_contact_messages_is_read ON contact_messages(is_read);

		CREATE TABLE text_blocks (
			id INTEGER PRIMARY KEY,
			body TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_pages_name ON pages(name);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return db
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testRenderer creates a renderer backed by the real embedded templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	r, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

// createTestUser creates a user row and returns its id.
func createTestUser(t *testing.T, db *sql.DB, username, passwordHash string, isAdmin bool) int64 {
	t.Helper()

	now := time.Now()
	result, err := db.Exec(
		`INSERT INTO users (username, password_hash, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		username, passwordHash, isAdmin, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// createTestMessage inserts a contact message and returns its id.
func createTestMessage(t *testing.T, db *sql.DB, contactInfo string, createdAt time.Time) int64 {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO contact_messages (contact_info, created_at) VALUES (?, ?)`,
		contactInfo, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to create test message: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// createTestBlock inserts a text block with a fixed id.
func createTestBlock(t *testing.T, db *sql.DB, id int64, body string) {
	t.Helper()

	if _, err := db.Exec(
		`INSERT INTO text_blocks (id, body, updated_at) VALUES (?, ?, ?)`,
		id, body, time.Now(),
	); err != nil {
		t.Fatalf("failed to create test block: %v", err)
	}
}

// createTestPage inserts a named page and returns its id.
func createTestPage(t *testing.T, db *sql.DB, name, title, content string) int64 {
	t.Helper()

	now := time.Now()
	result, err := db.Exec(
		`INSERT INTO pages (name, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		name, title, content, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test page: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// requestWithUser puts a user into the request context, as the LoadUser
// middleware would.
func requestWithUser(r *http.Request, user model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, user))
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
