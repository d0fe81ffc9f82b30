// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig) http.Header {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	return rec.Header()
}

func TestSecurityHeaders_Defaults(t *testing.T) {
	h := serveWithHeaders(DefaultSecurityHeadersConfig(false))

	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := h.Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := h.Get("Content-Security-Policy"); !strings.Contains(got, "default-src 'self'") {
		t.Errorf("Content-Security-Policy = %q", got)
	}
	if got := h.Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=31536000") {
		t.Errorf("Strict-Transport-Security = %q", got)
	}
}

func TestSecurityHeaders_DevelopmentSkipsHSTS(t *testing.T) {
	h := serveWithHeaders(DefaultSecurityHeadersConfig(true))

	if got := h.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS set in development: %q", got)
	}
	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestSecurityHeaders_DisabledOptionalHeaders(t *testing.T) {
	h := serveWithHeaders(SecurityHeadersConfig{})

	for _, name := range []string{"Content-Security-Policy", "X-Frame-Options", "Referrer-Policy", "Strict-Transport-Security"} {
		if got := h.Get(name); got != "" {
			t.Errorf("%s set despite empty config: %q", name, got)
		}
	}
	// nosniff is unconditional
	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}
