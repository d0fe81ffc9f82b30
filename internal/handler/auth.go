// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/vitrina-go/internal/auth"
	"github.com/olegiv/vitrina-go/internal/mailer"
	"github.com/olegiv/vitrina-go/internal/render"
	"github.com/olegiv/vitrina-go/internal/session"
	"github.com/olegiv/vitrina-go/internal/store"
)

// registrationNoticeTimeout bounds the background notification send.
const registrationNoticeTimeout = 15 * time.Second

// RegisterData is the view model for the combined login/registration form.
type RegisterData struct {
	Action string
	Error  string
}

// AuthHandler handles the combined registration/login form and logout.
type AuthHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	mailer         *mailer.Mailer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, m *mailer.Mailer) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		mailer:         m,
	}
}

// RegisterForm renders the combined login/registration page. The
// ?action=register query switches the form to its registration variant.
// Already-authenticated users are sent to the product page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetString(r.Context(), session.KeyUsername) != "" {
		http.Redirect(w, r, RouteAboutProduct, http.StatusSeeOther)
		return
	}
	action := ActionLogin
	if r.URL.Query().Get("action") == ActionRegister {
		action = ActionRegister
	}
	h.renderForm(w, r, action, "")
}

// Register handles the form submission. The form's "action" field selects
// between logging in and creating an account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, ActionLogin, "Invalid form data")
		return
	}

	action := r.FormValue("action")
	username := r.FormValue("user_name")
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderForm(w, r, action, "All fields must be filled in")
		return
	}

	switch action {
	case ActionRegister:
		h.register(w, r, username, password)
	case ActionLogin:
		h.login(w, r, username, password)
	default:
		h.renderForm(w, r, ActionLogin, "")
	}
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, username, password string) {
	if _, err := h.queries.GetUserByUsername(r.Context(), username); err == nil {
		h.renderForm(w, r, ActionRegister, "User already exists, try a different username.")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "database error during registration", "error", err)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "password hash error", "error", err)
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Surname:      nullString(r.FormValue("surname")),
		PhoneNumber:  nullString(r.FormValue("phone_number")),
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// The unique index catches a concurrent registration of the same name
		if strings.Contains(err.Error(), "UNIQUE") {
			h.renderForm(w, r, ActionRegister, "User already exists, try a different username.")
			return
		}
		logAndInternalError(w, "failed to create user", "error", err, "username", username)
		return
	}

	if err := h.startSession(r, username); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", username)

	// Best effort: the registration response never waits on, or reflects,
	// the notification outcome.
	if h.mailer != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), registrationNoticeTimeout)
			defer cancel()
			_ = h.mailer.SendRegistrationNotice(ctx, username)
		}()
	}

	http.Redirect(w, r, RouteAboutProduct, http.StatusSeeOther)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, username, password string) {
	// One message for unknown user and wrong password
	const invalidCredentials = "Invalid username or password"

	user, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "username", username)
		} else {
			slog.Error("database error during login", "error", err)
		}
		h.renderForm(w, r, ActionLogin, invalidCredentials)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		h.renderForm(w, r, ActionLogin, invalidCredentials)
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "username", username)
		h.renderForm(w, r, ActionLogin, invalidCredentials)
		return
	}

	// Re-hash password if it uses old/expensive parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.startSession(r, username); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "username", username)
	http.Redirect(w, r, RouteAboutProduct, http.StatusSeeOther)
}

// startSession regenerates the session ID against fixation and stores the
// authenticated username.
func (h *AuthHandler) startSession(r *http.Request, username string) error {
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sessionManager.Put(r.Context(), session.KeyUsername, username)
	return nil
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := h.sessionManager.GetString(r.Context(), session.KeyUsername)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if username != "" {
		slog.Info("user logged out", "username", username)
	}

	flashAndRedirect(w, r, h.renderer, RouteRegister, "You have been logged out.", "info")
}

func (h *AuthHandler) renderForm(w http.ResponseWriter, r *http.Request, action, errMsg string) {
	data := viewData(r, "Sign in")
	data.Data = RegisterData{Action: action, Error: errMsg}
	renderOrInternalError(w, r, h.renderer, "site/register", data)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
