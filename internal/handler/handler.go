// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and
// the admin panel.
package handler

import (
	"net/http"

	"github.com/olegiv/vitrina-go/internal/middleware"
	"github.com/olegiv/vitrina-go/internal/render"
)

// viewData builds TemplateData pre-filled with the current user, when the
// LoadUser middleware put one into the request context.
func viewData(r *http.Request, title string) render.TemplateData {
	data := render.TemplateData{Title: title, IsAdmin: middleware.IsAdmin(r)}
	if user := middleware.GetUser(r); user != nil {
		data.UserName = user.Username
	}
	return data
}

// Root redirects the bare root path to the registration page.
func Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteRegister, http.StatusSeeOther)
}
