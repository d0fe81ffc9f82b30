// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models shared across the application:
// User, ContactMessage, TextBlock and Page.
package model

import (
	"database/sql"
	"time"
)

// User represents a registered site user.
type User struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"` // Never expose in JSON
	Surname      sql.NullString `json:"surname,omitempty"`
	PhoneNumber  sql.NullString `json:"phone_number,omitempty"`
	IsAdmin      bool           `json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
