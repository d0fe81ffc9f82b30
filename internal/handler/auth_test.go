// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/olegiv/vitrina-go/internal/auth"
	"github.com/olegiv/vitrina-go/internal/session"
)

func postForm(t *testing.T, h http.HandlerFunc, target string, form url.Values, req func(*http.Request) *http.Request) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if req != nil {
		r = req(r)
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec, r
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	form := url.Values{
		"action":       {ActionRegister},
		"user_name":    {"ivan"},
		"password":     {"secret123"},
		"surname":      {"Petrov"},
		"phone_number": {"+7 900 000 00 00"},
	}
	rec, req := postForm(t, h.Register, "/register", form, func(r *http.Request) *http.Request {
		return requestWithSession(sm, r)
	})

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != RouteAboutProduct {
		t.Errorf("Location = %q; want %q", loc, RouteAboutProduct)
	}
	if got := sm.GetString(req.Context(), session.KeyUsername); got != "ivan" {
		t.Errorf("session subject = %q; want ivan", got)
	}

	var isAdmin bool
	var hash string
	if err := db.QueryRow("SELECT is_admin, password_hash FROM users WHERE username = 'ivan'").Scan(&isAdmin, &hash); err != nil {
		t.Fatalf("user row not created: %v", err)
	}
	if isAdmin {
		t.Error("registered user must not be admin")
	}
	if hash == "secret123" || !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("password stored without hashing: %q", hash)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)
	createTestUser(t, db, "ivan", "hash", false)

	form := url.Values{
		"action":    {ActionRegister},
		"user_name": {"ivan"},
		"password":  {"secret123"},
	}
	rec, _ := postForm(t, h.Register, "/register", form, func(r *http.Request) *http.Request {
		return requestWithSession(sm, r)
	})

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Error("duplicate registration did not re-render with an error")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'ivan'").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("user count = %d; want 1", count)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing password", url.Values{"action": {ActionRegister}, "user_name": {"ivan"}}},
		{"missing username", url.Values{"action": {ActionRegister}, "password": {"secret123"}}},
		{"missing both on login", url.Values{"action": {ActionLogin}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := postForm(t, h.Register, "/register", tt.form, func(r *http.Request) *http.Request {
				return requestWithSession(sm, r)
			})

			assertStatus(t, rec.Code, http.StatusOK)
			if !strings.Contains(rec.Body.String(), "All fields must be filled in") {
				t.Error("missing field did not re-render with an error")
			}
		})
	}
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	hash, err := auth.HashPassword("right-password")
	if err != nil {
		t.Fatal(err)
	}
	createTestUser(t, db, "ivan", hash, false)

	// Unknown user and wrong password must be indistinguishable
	var bodies []string
	for _, form := range []url.Values{
		{"action": {ActionLogin}, "user_name": {"nobody"}, "password": {"whatever"}},
		{"action": {ActionLogin}, "user_name": {"ivan"}, "password": {"wrong-password"}},
	} {
		rec, req := postForm(t, h.Register, "/register", form, func(r *http.Request) *http.Request {
			return requestWithSession(sm, r)
		})
		assertStatus(t, rec.Code, http.StatusOK)
		if got := sm.GetString(req.Context(), session.KeyUsername); got != "" {
			t.Errorf("session subject set on failed login: %q", got)
		}
		bodies = append(bodies, rec.Body.String())
	}

	if bodies[0] != bodies[1] {
		t.Error("unknown-user and wrong-password responses differ")
	}
	if !strings.Contains(bodies[0], "Invalid username or password") {
		t.Error("failed login did not render the uniform error")
	}
}

func TestLogin_Success(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	hash, err := auth.HashPassword("right-password")
	if err != nil {
		t.Fatal(err)
	}
	createTestUser(t, db, "ivan", hash, false)

	form := url.Values{
		"action":    {ActionLogin},
		"user_name": {"ivan"},
		"password":  {"right-password"},
	}
	rec, req := postForm(t, h.Register, "/register", form, func(r *http.Request) *http.Request {
		return requestWithSession(sm, r)
	})

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if got := sm.GetString(req.Context(), session.KeyUsername); got != "ivan" {
		t.Errorf("session subject = %q; want ivan", got)
	}
}

func TestRegisterForm_RedirectsAuthenticated(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/register", nil))
	sm.Put(req.Context(), session.KeyUsername, "ivan")
	rec := httptest.NewRecorder()
	h.RegisterForm(rec, req)

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != RouteAboutProduct {
		t.Errorf("Location = %q; want %q", loc, RouteAboutProduct)
	}
}

// The action must be carried by the clicked submit button alone. A second
// form field named "action" would shadow the button's value, since the
// first value in document order wins on submit.
func TestRegisterForm_ActionSelectsVariant(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	tests := []struct {
		name   string
		target string
		value  string
	}{
		{"login by default", "/register", ActionLogin},
		{"register via query", "/register?action=register", ActionRegister},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, tt.target, nil))
			rec := httptest.NewRecorder()
			h.RegisterForm(rec, req)

			assertStatus(t, rec.Code, http.StatusOK)
			body := rec.Body.String()
			if n := strings.Count(body, `name="action"`); n != 1 {
				t.Errorf("form carries %d action fields; want exactly 1", n)
			}
			if strings.Contains(body, `type="hidden" name="action"`) {
				t.Error("action must come from the submit button, not a hidden field")
			}
			if want := `name="action" value="` + tt.value + `"`; !strings.Contains(body, want) {
				t.Errorf("form does not carry %s", want)
			}
		})
	}
}

func TestRegisterForm_RegisterVariantFields(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/register?action=register", nil))
	rec := httptest.NewRecorder()
	h.RegisterForm(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	for _, field := range []string{`name="surname"`, `name="phone_number"`} {
		if !strings.Contains(rec.Body.String(), field) {
			t.Errorf("registration variant missing %s", field)
		}
	}
}

func TestLogout(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, nil)

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/logout", nil))
	sm.Put(req.Context(), session.KeyUsername, "ivan")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != RouteRegister {
		t.Errorf("Location = %q; want %q", loc, RouteRegister)
	}
	if got := sm.GetString(req.Context(), session.KeyUsername); got != "" {
		t.Errorf("session subject survived logout: %q", got)
	}
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != RouteRegister {
		t.Errorf("Location = %q; want %q", loc, RouteRegister)
	}
}
