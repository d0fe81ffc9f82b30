// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the read-side content cache. Values are []byte so
// the in-memory and Redis backends are interchangeable. Every content write
// must invalidate the corresponding key; readers fall back to the database
// on any cache error.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for cache backends.
// All implementations must be thread-safe.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrCacheMiss indicates the key was not found in cache or has expired.
const ErrCacheMiss Error = "cache miss"

// Config selects and tunes the cache backend.
type Config struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string
	// Prefix is prepended to every Redis key.
	Prefix string
	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration
	// CleanupInterval controls how often the memory backend drops expired
	// entries. Zero disables the janitor.
	CleanupInterval time.Duration
}

// New creates a cache backend from the config. When Redis is configured but
// unreachable, the in-memory backend is used instead and ok is false.
func New(cfg Config) (c Cache, ok bool) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = time.Hour
	}
	if cfg.RedisURL != "" {
		if rc, err := NewRedis(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL); err == nil {
			return rc, true
		}
	}
	return NewMemory(cfg.DefaultTTL, cfg.CleanupInterval), cfg.RedisURL == ""
}
