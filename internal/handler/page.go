// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/store"
	"github.com/olegiv/vitrina-go/internal/util"
)

// EditPageData is the view model for the named page editor.
type EditPageData struct {
	Page  model.Page
	Error string
}

// EditPageForm renders the editor for one named page.
func (h *AdminHandler) EditPageForm(w http.ResponseWriter, r *http.Request) {
	page, ok := h.requirePage(w, r)
	if !ok {
		return
	}

	h.renderEditPage(w, r, page, "")
}

// EditPageSubmit replaces a page's title and content. Both fields are
// required.
func (h *AdminHandler) EditPageSubmit(w http.ResponseWriter, r *http.Request) {
	page, ok := h.requirePage(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderEditPage(w, r, page, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		h.renderEditPage(w, r, page, "Title and content must be filled in")
		return
	}

	now := time.Now()
	err := h.queries.UpdatePage(r.Context(), store.UpdatePageParams{
		Title:     title,
		Content:   content,
		UpdatedAt: now,
		ID:        page.ID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Page not found", http.StatusNotFound)
			return
		}
		logAndInternalError(w, "failed to save page", "error", err, "page", page.Name)
		return
	}

	// Write through so the next read sees the new revision
	if h.content != nil {
		page.Title = title
		page.Content = content
		page.UpdatedAt = now
		h.content.SetPage(r.Context(), page)
	}

	flashSuccess(w, r, h.renderer, RouteAdmin, "Page saved.")
}

// requirePage resolves the {name} URL parameter to a page, consulting the
// cache before the database. Names that are not valid slugs never hit
// either.
func (h *AdminHandler) requirePage(w http.ResponseWriter, r *http.Request) (model.Page, bool) {
	name := chi.URLParam(r, "name")
	if !util.IsValidSlug(name) {
		http.NotFound(w, r)
		return model.Page{}, false
	}

	if h.content != nil {
		if page, ok := h.content.GetPage(r.Context(), name); ok {
			return page, true
		}
	}

	page, err := h.queries.GetPageByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Page not found", http.StatusNotFound)
			return model.Page{}, false
		}
		logAndInternalError(w, "failed to load page", "error", err, "page", name)
		return model.Page{}, false
	}
	return page, true
}

func (h *AdminHandler) renderEditPage(w http.ResponseWriter, r *http.Request, page model.Page, errMsg string) {
	data := viewData(r, "Edit page")
	data.Data = EditPageData{Page: page, Error: errMsg}
	renderOrInternalError(w, r, h.renderer, "admin/edit_page", data)
}
