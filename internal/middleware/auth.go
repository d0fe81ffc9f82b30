// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization and request hardening.
package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/session"
	"github.com/olegiv/vitrina-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the loaded user in the request context.
const ContextKeyUser ContextKey = "user"

// Auth creates middleware that requires an authenticated session subject.
// Anonymous clients are sent to the registration page.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), session.KeyUsername)
			if username == "" {
				http.Redirect(w, r, "/register", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the session subject's user row into
// the request context when one exists. It never rejects: routes that need a
// user combine this with Auth or RequireAdmin.
func LoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), session.KeyUsername)
			if username == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByUsername(r.Context(), username)
			if err != nil {
				// Backing user gone: continue anonymous, guards decide
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin creates middleware that requires an authenticated admin.
// It re-fetches the user row on every request: a session whose backing user
// was deleted after login is unauthorized, not admin. Non-admins receive a
// terminal 403, never a redirect.
func RequireAdmin(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), session.KeyUsername)
			if username == "" {
				http.Redirect(w, r, "/register", http.StatusSeeOther)
				return
			}

			user, err := queries.GetUserByUsername(r.Context(), username)
			if err != nil || !user.IsAdmin {
				if err != nil && err != sql.ErrNoRows {
					slog.Error("admin check failed", "error", err, "username", username)
				} else {
					slog.Warn("access denied",
						"status", http.StatusForbidden,
						"method", r.Method,
						"path", r.URL.Path,
						"username", username,
					)
				}
				http.Error(w, "Access denied. Administrators only.", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// IsAdmin reports whether the request carries an admin user.
func IsAdmin(r *http.Request) bool {
	user := GetUser(r)
	return user != nil && user.IsAdmin
}
