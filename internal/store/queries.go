// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrina-go/internal/model"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries exposes all database operations.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// =============================================================================
// USERS
// =============================================================================

const createUser = `
INSERT INTO users (username, password_hash, surname, phone_number, is_admin, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, username, password_hash, surname, phone_number, is_admin, created_at, updated_at
`

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Surname      sql.NullString
	PhoneNumber  sql.NullString
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new user. The unique index on username surfaces
// duplicates as a constraint error.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Username, arg.PasswordHash, arg.Surname, arg.PhoneNumber, arg.IsAdmin, arg.CreatedAt, arg.UpdatedAt)
	return scanUser(row)
}

const getUserByUsername = `
SELECT id, username, password_hash, surname, phone_number, is_admin, created_at, updated_at
FROM users WHERE username = ?
`

// GetUserByUsername fetches a user by its unique username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
}

const updateUserPassword = `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?
`

// UpdateUserPasswordParams holds the fields for UpdateUserPassword.
type UpdateUserPasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           int64
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Surname, &u.PhoneNumber, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// =============================================================================
// CONTACT MESSAGES
// =============================================================================

const createContactMessage = `
INSERT INTO contact_messages (contact_info, is_read, created_at)
VALUES (?, 0, ?)
RETURNING id, contact_info, is_read, created_at
`

// CreateContactMessageParams holds the fields for CreateContactMessage.
type CreateContactMessageParams struct {
	ContactInfo string
	CreatedAt   time.Time
}

// CreateContactMessage appends a new unread message.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createContactMessage, arg.ContactInfo, arg.CreatedAt)
	return scanMessage(row)
}

const listContactMessages = `
SELECT id, contact_info, is_read, created_at
FROM contact_messages
ORDER BY created_at DESC, id DESC
`

// ListContactMessages returns every message, newest first.
func (q *Queries) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.ContactInfo, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const countUnreadContactMessages = `
SELECT COUNT(*) FROM contact_messages WHERE is_read = 0
`

// CountUnreadContactMessages returns the number of unread messages.
func (q *Queries) CountUnreadContactMessages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUnreadContactMessages).Scan(&n)
	return n, err
}

const getContactMessage = `
SELECT id, contact_info, is_read, created_at FROM contact_messages WHERE id = ?
`

// GetContactMessage fetches a single message by id.
func (q *Queries) GetContactMessage(ctx context.Context, id int64) (model.ContactMessage, error) {
	return scanMessage(q.db.QueryRowContext(ctx, getContactMessage, id))
}

const markContactMessageRead = `
UPDATE contact_messages SET is_read = 1 WHERE id = ?
`

// MarkContactMessageRead flips the read flag. Idempotent: marking an
// already-read message is not an error. Returns sql.ErrNoRows when the id
// does not exist.
func (q *Queries) MarkContactMessageRead(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, markContactMessageRead, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const deleteContactMessage = `
DELETE FROM contact_messages WHERE id = ?
`

// DeleteContactMessage removes a message permanently. Returns sql.ErrNoRows
// when the id does not exist.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteContactMessage, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanMessage(row *sql.Row) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(&m.ID, &m.ContactInfo, &m.IsRead, &m.CreatedAt)
	return m, err
}

// =============================================================================
// TEXT BLOCKS
// =============================================================================

const getTextBlock = `
SELECT id, body, updated_at FROM text_blocks WHERE id = ?
`

// GetTextBlock fetches a text block by its fixed id.
func (q *Queries) GetTextBlock(ctx context.Context, id int64) (model.TextBlock, error) {
	var b model.TextBlock
	err := q.db.QueryRowContext(ctx, getTextBlock, id).Scan(&b.ID, &b.Body, &b.UpdatedAt)
	return b, err
}

const listTextBlocks = `
SELECT id, body, updated_at FROM text_blocks ORDER BY id
`

// ListTextBlocks returns all text blocks ordered by id.
func (q *Queries) ListTextBlocks(ctx context.Context) ([]model.TextBlock, error) {
	rows, err := q.db.QueryContext(ctx, listTextBlocks)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var blocks []model.TextBlock
	for rows.Next() {
		var b model.TextBlock
		if err := rows.Scan(&b.ID, &b.Body, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

const createTextBlock = `
INSERT INTO text_blocks (id, body, updated_at) VALUES (?, ?, ?)
`

// CreateTextBlockParams holds the fields for CreateTextBlock.
type CreateTextBlockParams struct {
	ID        int64
	Body      string
	UpdatedAt time.Time
}

// CreateTextBlock inserts a block with an explicit fixed id. Used by seeding.
func (q *Queries) CreateTextBlock(ctx context.Context, arg CreateTextBlockParams) error {
	_, err := q.db.ExecContext(ctx, createTextBlock, arg.ID, arg.Body, arg.UpdatedAt)
	return err
}

const updateTextBlock = `
UPDATE text_blocks SET body = ?, updated_at = ? WHERE id = ?
`

// UpdateTextBlockParams holds the fields for UpdateTextBlock.
type UpdateTextBlockParams struct {
	Body      string
	UpdatedAt time.Time
	ID        int64
}

// UpdateTextBlock replaces a block body. Returns sql.ErrNoRows when the id
// does not exist.
func (q *Queries) UpdateTextBlock(ctx context.Context, arg UpdateTextBlockParams) error {
	res, err := q.db.ExecContext(ctx, updateTextBlock, arg.Body, arg.UpdatedAt, arg.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// =============================================================================
// PAGES
// =============================================================================

const getPageByName = `
SELECT id, name, title, content, created_at, updated_at FROM pages WHERE name = ?
`

// GetPageByName fetches a page by its unique name.
func (q *Queries) GetPageByName(ctx context.Context, name string) (model.Page, error) {
	var p model.Page
	err := q.db.QueryRowContext(ctx, getPageByName, name).
		Scan(&p.ID, &p.Name, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createPage = `
INSERT INTO pages (name, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, name, title, content, created_at, updated_at
`

// CreatePageParams holds the fields for CreatePage.
type CreatePageParams struct {
	Name      string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePage inserts a named page. The unique index on name surfaces
// duplicates as a constraint error.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.Page, error) {
	var p model.Page
	err := q.db.QueryRowContext(ctx, createPage,
		arg.Name, arg.Title, arg.Content, arg.CreatedAt, arg.UpdatedAt).
		Scan(&p.ID, &p.Name, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updatePage = `
UPDATE pages SET title = ?, content = ?, updated_at = ? WHERE id = ?
`

// UpdatePageParams holds the fields for UpdatePage.
type UpdatePageParams struct {
	Title     string
	Content   string
	UpdatedAt time.Time
	ID        int64
}

// UpdatePage replaces a page's title and content. Returns sql.ErrNoRows when
// the id does not exist.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) error {
	res, err := q.db.ExecContext(ctx, updatePage, arg.Title, arg.Content, arg.UpdatedAt, arg.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const listPages = `
SELECT id, name, title, content, created_at, updated_at FROM pages ORDER BY name
`

// ListPages returns all pages ordered by name.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx, listPages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var pages []model.Page
	for rows.Next() {
		var p model.Page
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// requireAffected maps a zero-row write to sql.ErrNoRows so handlers can
// turn it into a 404.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
