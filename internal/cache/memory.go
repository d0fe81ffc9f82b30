// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a stored value with its expiry time.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Memory is an in-process cache with per-entry TTL.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemory creates an in-memory cache. When cleanupInterval is positive, a
// janitor goroutine drops expired entries until Close is called.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	m := &Memory{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.janitor(cleanupInterval)
	}
	return m
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return nil, ErrCacheMiss
	}

	// Copy so callers cannot mutate the cached value.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Delete implements Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close stops the janitor and clears all entries.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, entry := range m.entries {
				if entry.expired(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
