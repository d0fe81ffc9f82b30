// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ContactMessage is a single contact-form submission. Messages are
// append-only; admins may flip the read flag or delete them.
type ContactMessage struct {
	ID          int64     `json:"id"`
	ContactInfo string    `json:"contact_info"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
