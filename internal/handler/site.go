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

	"github.com/olegiv/vitrina-go/internal/cache"
	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/render"
	"github.com/olegiv/vitrina-go/internal/store"
)

// BlockPageData is the view model for a public page backed by a text block.
type BlockPageData struct {
	Body string
}

// ContactData is the view model for the contact page.
type ContactData struct {
	Body    string
	Error   string
	Success string
}

// SiteHandler serves the public pages backed by text blocks and the
// contact form.
type SiteHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	content  *cache.Content
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(db *sql.DB, renderer *render.Renderer, content *cache.Content) *SiteHandler {
	return &SiteHandler{
		queries:  store.New(db),
		renderer: renderer,
		content:  content,
	}
}

// AboutProduct renders the product description page.
func (h *SiteHandler) AboutProduct(w http.ResponseWriter, r *http.Request) {
	h.renderBlockPage(w, r, "site/about_product", model.BlockAbout)
}

// Drafts renders the work-in-progress page.
func (h *SiteHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	h.renderBlockPage(w, r, "site/drafts", model.BlockDrafts)
}

// Plans renders the roadmap page.
func (h *SiteHandler) Plans(w http.ResponseWriter, r *http.Request) {
	h.renderBlockPage(w, r, "site/plans", model.BlockPlans)
}

func (h *SiteHandler) renderBlockPage(w http.ResponseWriter, r *http.Request, template string, blockID int64) {
	data := viewData(r, model.BlockLabel(blockID))
	data.Data = BlockPageData{Body: h.blockBody(r.Context(), blockID)}
	renderOrInternalError(w, r, h.renderer, template, data)
}

// blockBody returns a text block's body, consulting the cache first. A
// missing row or a failing read degrades to the fixed fallback string:
// content absence is never an error for readers. Misses fall through to
// the database without storing the result; only writers put values in the
// cache, so a read racing an edit can never pin a pre-edit body.
func (h *SiteHandler) blockBody(ctx context.Context, id int64) string {
	if h.content != nil {
		if block, ok := h.content.GetBlock(ctx, id); ok {
			return block.Body
		}
	}

	block, err := h.queries.GetTextBlock(ctx, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to load text block", "error", err, "block_id", id)
		}
		return model.BlockFallback
	}
	return block.Body
}

// ContactForm renders the contact page.
func (h *SiteHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, "", "")
}

// ContactSubmit stores a contact-form submission as an unread message.
func (h *SiteHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderContact(w, r, "Invalid form data", "")
		return
	}

	contactInfo := strings.TrimSpace(r.FormValue("contact_info"))
	if contactInfo == "" {
		h.renderContact(w, r, "Please fill in the field.", "")
		return
	}

	msg, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		ContactInfo: contactInfo,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to store contact message", "error", err)
		return
	}

	slog.Info("contact message received", "message_id", msg.ID)
	h.renderContact(w, r, "", "Thank you! Your contact details have been sent.")
}

func (h *SiteHandler) renderContact(w http.ResponseWriter, r *http.Request, errMsg, successMsg string) {
	data := viewData(r, model.BlockLabel(model.BlockContacts))
	data.Data = ContactData{
		Body:    h.blockBody(r.Context(), model.BlockContacts),
		Error:   errMsg,
		Success: successMsg,
	}
	renderOrInternalError(w, r, h.renderer, "site/contact", data)
}
