// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/vitrina-go/internal/cache"
	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/render"
	"github.com/olegiv/vitrina-go/internal/store"
)

// BlockSummary is one text block row on the dashboard.
type BlockSummary struct {
	ID    int64
	Label string
	Body  string
}

// DashboardData is the view model for the admin dashboard.
type DashboardData struct {
	Messages    []model.ContactMessage
	UnreadCount int64
	Blocks      []BlockSummary
	Pages       []model.Page
}

// AdminHandler serves the admin dashboard and content moderation actions.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	content  *cache.Content
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer, content *cache.Content) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
		content:  content,
	}
}

// Dashboard renders the contact inbox newest-first together with the unread
// count and the editable content summaries.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListContactMessages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list contact messages", "error", err)
		return
	}

	unread, err := h.queries.CountUnreadContactMessages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count unread messages", "error", err)
		return
	}

	blocks, err := h.queries.ListTextBlocks(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list text blocks", "error", err)
		return
	}
	bodies := make(map[int64]string, len(blocks))
	for _, block := range blocks {
		bodies[block.ID] = block.Body
	}

	summaries := make([]BlockSummary, 0, len(model.BlockIDs()))
	for _, id := range model.BlockIDs() {
		body, ok := bodies[id]
		if !ok {
			body = model.BlockFallback
		}
		summaries = append(summaries, BlockSummary{ID: id, Label: model.BlockLabel(id), Body: body})
	}

	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list pages", "error", err)
		return
	}

	data := viewData(r, "Admin panel")
	data.Data = DashboardData{
		Messages:    messages,
		UnreadCount: unread,
		Blocks:      summaries,
		Pages:       pages,
	}
	renderOrInternalError(w, r, h.renderer, "admin/dashboard", data)
}

// MarkRead marks a contact message as read. Marking an already-read message
// succeeds again with no further effect.
func (h *AdminHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.MarkContactMessageRead(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		logAndInternalError(w, "failed to mark message read", "error", err, "message_id", id)
		return
	}

	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Delete permanently removes a contact message.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteContactMessage(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		logAndInternalError(w, "failed to delete message", "error", err, "message_id", id)
		return
	}

	slog.Info("contact message deleted", "message_id", id)
	flashSuccess(w, r, h.renderer, RouteAdmin, "Message deleted.")
}
