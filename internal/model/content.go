// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Text block ids. Each id is bound to one public page and is guaranteed to
// exist after seeding.
const (
	BlockAbout    int64 = 1
	BlockDrafts   int64 = 2
	BlockPlans    int64 = 3
	BlockContacts int64 = 4
)

// BlockFallback is returned to readers when a block row is missing.
// Content absence is recoverable for readers, never an error.
const BlockFallback = "Text not found"

// TextBlock is an admin-editable text unit addressed by a fixed numeric id.
type TextBlock struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlockLabel returns the human-readable page name a block id is bound to.
func BlockLabel(id int64) string {
	switch id {
	case BlockAbout:
		return "About the product"
	case BlockDrafts:
		return "Drafts"
	case BlockPlans:
		return "Plans"
	case BlockContacts:
		return "Contacts"
	default:
		return "Unknown page"
	}
}

// BlockIDs returns every required text block id, in render order.
func BlockIDs() []int64 {
	return []int64{BlockAbout, BlockDrafts, BlockPlans, BlockContacts}
}

// Page is an admin-editable content unit addressed by a unique name.
type Page struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
