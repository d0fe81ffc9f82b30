// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olegiv/vitrina-go/internal/model"
)

// Content is a typed wrapper over a Cache for text blocks and pages.
// Entries are written through: only writers store values, immediately after
// a successful database write, so readers never put a mid-write snapshot
// back into the cache. All methods degrade silently: callers treat any
// error as a miss and read the database instead.
type Content struct {
	cache Cache
}

// NewContent wraps a cache backend.
func NewContent(c Cache) *Content {
	return &Content{cache: c}
}

func blockKey(id int64) string {
	return fmt.Sprintf("block:%d", id)
}

func pageKey(name string) string {
	return "page:" + name
}

// GetBlock returns a cached text block, or false on a miss.
func (c *Content) GetBlock(ctx context.Context, id int64) (model.TextBlock, bool) {
	var block model.TextBlock
	data, err := c.cache.Get(ctx, blockKey(id))
	if err != nil {
		return block, false
	}
	if err := json.Unmarshal(data, &block); err != nil {
		return block, false
	}
	return block, true
}

// SetBlock caches a text block. Called by writers with the value they just
// committed; an overwrite replaces whatever an earlier write left behind.
func (c *Content) SetBlock(ctx context.Context, block model.TextBlock) {
	if data, err := json.Marshal(block); err == nil {
		_ = c.cache.Set(ctx, blockKey(block.ID), data, 0)
	}
}

// GetPage returns a cached page, or false on a miss.
func (c *Content) GetPage(ctx context.Context, name string) (model.Page, bool) {
	var page model.Page
	data, err := c.cache.Get(ctx, pageKey(name))
	if err != nil {
		return page, false
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return page, false
	}
	return page, true
}

// SetPage caches a page under its unique name. Same write-through contract
// as SetBlock.
func (c *Content) SetPage(ctx context.Context, page model.Page) {
	if data, err := json.Marshal(page); err == nil {
		_ = c.cache.Set(ctx, pageKey(page.Name), data, 0)
	}
}

// Close closes the underlying backend.
func (c *Content) Close() error {
	return c.cache.Close()
}
