// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/store"
)

// EditTextData is the view model for the text block editor.
type EditTextData struct {
	Block model.TextBlock
	Label string
}

// EditTextForm renders the editor for one text block.
func (h *AdminHandler) EditTextForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	block, err := h.queries.GetTextBlock(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Text not found", http.StatusNotFound)
			return
		}
		logAndInternalError(w, "failed to load text block", "error", err, "block_id", id)
		return
	}

	data := viewData(r, "Edit text")
	data.Data = EditTextData{Block: block, Label: model.BlockLabel(id)}
	renderOrInternalError(w, r, h.renderer, "admin/edit_text", data)
}

// EditTextSubmit replaces a text block's body. The form must carry the
// text_new field; an empty value is a legitimate way to clear a block.
func (h *AdminHandler) EditTextSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	if _, present := r.PostForm["text_new"]; !present {
		http.Error(w, "Text field is missing", http.StatusBadRequest)
		return
	}
	body := r.PostForm.Get("text_new")

	now := time.Now()
	err := h.queries.UpdateTextBlock(r.Context(), store.UpdateTextBlockParams{
		Body:      body,
		UpdatedAt: now,
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Text not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to save text block", "error", err, "block_id", id)
		http.Error(w, fmt.Sprintf("Error saving text: %v", err), http.StatusInternalServerError)
		return
	}

	// Write through so the next read sees the new body
	if h.content != nil {
		h.content.SetBlock(r.Context(), model.TextBlock{ID: id, Body: body, UpdatedAt: now})
	}

	slog.Info("text block updated", "block_id", id, "length", len(body))
	flashSuccess(w, r, h.renderer, RouteAdmin, "Text saved.")
}
