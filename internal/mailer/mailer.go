// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends best-effort outbound notifications. Delivery is
// fire-and-forget: callers discard the result and failures only reach
// the log, never an HTTP response.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Config holds SMTP settings for outbound notices.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether outbound delivery is configured.
func (c Config) Enabled() bool {
	return c.Host != "" && c.To != ""
}

// Mailer delivers notification emails over SMTP.
type Mailer struct {
	cfg Config
}

// New creates a Mailer. A disabled config is valid; every send then reports
// failure without attempting delivery.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendRegistrationNotice emails the site owner about a new registration.
// Returns true on successful delivery. Never panics and never returns an
// error: the outcome is a boolean the caller is free to ignore.
func (m *Mailer) SendRegistrationNotice(ctx context.Context, username string) bool {
	if username == "" {
		slog.Error("registration notice skipped: empty username")
		return false
	}
	if !m.cfg.Enabled() {
		slog.Debug("registration notice skipped: mailer not configured", "username", username)
		return false
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		slog.Error("registration notice: invalid from address", "error", err)
		return false
	}
	if err := msg.To(m.cfg.To); err != nil {
		slog.Error("registration notice: invalid to address", "error", err)
		return false
	}
	msg.Subject(fmt.Sprintf("New registration: %s", username))
	msg.SetBodyString(mail.TypeTextHTML,
		fmt.Sprintf("<h2>New signup on the site</h2><p>@%s</p>", username))

	opts := []mail.Option{mail.WithPort(m.cfg.Port), mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		slog.Error("registration notice: creating SMTP client", "error", err)
		return false
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		slog.Error("registration notice: delivery failed", "error", err, "username", username)
		return false
	}

	slog.Info("registration notice sent", "username", username)
	return true
}
