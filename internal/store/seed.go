// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/vitrina-go/internal/auth"
	"github.com/olegiv/vitrina-go/internal/model"
	"github.com/olegiv/vitrina-go/internal/util"
)

// DefaultAdminUsername is the seeded admin account name.
const DefaultAdminUsername = "admin"

// defaultBlockBodies are the placeholder bodies for the required text blocks.
var defaultBlockBodies = map[int64]string{
	model.BlockAbout:    "Text for the 'About the product' page",
	model.BlockDrafts:   "Text for the 'Drafts' page",
	model.BlockPlans:    "Text for the 'Plans' page",
	model.BlockContacts: "Text for the 'Contacts' page",
}

// defaultPages are the placeholder named pages created at startup. Each
// page's URL name is the slug of its title.
var defaultPages = []struct {
	title, content string
}{
	{"About", "Placeholder about page."},
	{"Contacts", "Placeholder contacts page."},
}

// Seed creates the initial data: the admin account, the four required text
// blocks and the default named pages. Safe to run on every startup; each row
// is only created when absent.
func Seed(ctx context.Context, db *sql.DB, adminPassword string) error {
	queries := New(db)
	now := time.Now()

	// Admin account
	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	switch {
	case err == nil:
		slog.Debug("admin user already exists, skipping seed")
	case errors.Is(err, sql.ErrNoRows):
		passwordHash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		user, err := queries.CreateUser(ctx, CreateUserParams{
			Username:     DefaultAdminUsername,
			PasswordHash: passwordHash,
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
		slog.Info("created default admin user", "id", user.ID, "username", user.Username)
	default:
		return fmt.Errorf("checking for admin user: %w", err)
	}

	// Required text blocks
	for _, id := range model.BlockIDs() {
		_, err := queries.GetTextBlock(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking text block %d: %w", id, err)
		}
		if err := queries.CreateTextBlock(ctx, CreateTextBlockParams{
			ID:        id,
			Body:      defaultBlockBodies[id],
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating text block %d: %w", id, err)
		}
		slog.Info("created text block", "id", id)
	}

	// Default named pages
	for _, p := range defaultPages {
		name := util.Slugify(p.title)
		_, err := queries.GetPageByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking page %q: %w", name, err)
		}
		if _, err := queries.CreatePage(ctx, CreatePageParams{
			Name:      name,
			Title:     p.title,
			Content:   p.content,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating page %q: %w", name, err)
		}
		slog.Info("created page", "name", name)
	}

	return nil
}
