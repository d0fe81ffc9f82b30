// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestEditPageForm(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm), testContentCache(t))
	createTestPage(t, db, "about", "About us", "We make things.")

	rec, req := adminRequest(t, h, "/admin/edit_page/about", map[string]string{"name": "about"})
	req = requestWithSession(sm, req)
	h.EditPageForm(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "About us") || !strings.Contains(body, "We make things.") {
		t.Error("editor missing page title or content")
	}
}

func TestEditPageForm_UnknownName(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm), testContentCache(t))

	rec, req := adminRequest(t, h, "/admin/edit_page/nope", map[string]string{"name": "nope"})
	req = requestWithSession(sm, req)
	h.EditPageForm(rec, req)

	assertStatus(t, rec.Code, http.StatusNotFound)
}

func TestEditPageForm_InvalidSlug(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm), testContentCache(t))
	createTestPage(t, db, "about", "About us", "We make things.")

	for _, name := range []string{"About", "a b", "о-продукте", "a/../b", ""} {
		rec, req := adminRequest(t, h, "/admin/edit_page/x", map[string]string{"name": name})
		req = requestWithSession(sm, req)
		h.EditPageForm(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("name %q: status = %d; want 404", name, rec.Code)
		}
	}
}

func TestEditPageSubmit(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm), testContentCache(t))
	createTestPage(t, db, "about", "About us", "We make things.")

	form := url.Values{
		"title":   {"About the team"},
		"content": {"We make other things now."},
	}
	rec, _ := postForm(t, h.EditPageSubmit, "/admin/edit_page/about", form, func(r *http.Request) *http.Request {
		return requestWithSession(sm, requestWithURLParams(r, map[string]string{"name": "about"}))
	})

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != RouteAdmin {
		t.Errorf("Location = %q; want %q", loc, RouteAdmin)
	}

	var title, content string
	if err := db.QueryRow("SELECT title, content FROM pages WHERE name = 'about'").Scan(&title, &content); err != nil {
		t.Fatal(err)
	}
	if title != "About the team" || content != "We make other things now." {
		t.Errorf("page not updated: title=%q content=%q", title, content)
	}
}

func TestEditPageSubmit_RequiredFields(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm), testContentCache(t))
	createTestPage(t, db, "about", "About us", "We make things.")

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing title", url.Values{"content": {"body"}}},
		{"missing content", url.Values{"title": {"head"}}},
		{"both empty", url.Values{"title": {""}, "content": {""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := postForm(t, h.EditPageSubmit, "/admin/edit_page/about", tt.form, func(r *http.Request) *http.Request {
				return requestWithSession(sm, requestWithURLParams(r, map[string]string{"name": "about"}))
			})

			assertStatus(t, rec.Code, http.StatusOK)
			if !strings.Contains(rec.Body.String(), "Title and content must be filled in") {
				t.Error("rejected submit did not re-render with an error")
			}
		})
	}

	var title string
	if err := db.QueryRow("SELECT title FROM pages WHERE name = 'about'").Scan(&title); err != nil {
		t.Fatal(err)
	}
	if title != "About us" {
		t.Errorf("page changed on rejected submit: %q", title)
	}
}

func TestEditPage_SaveVisibleWithCache(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	content := testContentCache(t)
	h := NewAdminHandler(db, testRenderer(t, sm), content)
	createTestPage(t, db, "about", "About us", "We make things.")

	// Save a new revision through the editor
	form := url.Values{
		"title":   {"About the team"},
		"content": {"Fresh copy."},
	}
	rec, req := postForm(t, h.EditPageSubmit, "/admin/edit_page/about", form, func(r *http.Request) *http.Request {
		return requestWithSession(sm, requestWithURLParams(r, map[string]string{"name": "about"}))
	})
	assertStatus(t, rec.Code, http.StatusSeeOther)

	// The save was written through under the page's name
	page, found := content.GetPage(req.Context(), "about")
	if !found {
		t.Fatal("saved page not in cache")
	}
	if page.Title != "About the team" || page.Content != "Fresh copy." {
		t.Errorf("cached page = %q/%q; want the saved revision", page.Title, page.Content)
	}

	// The editor serves the cached revision without touching the pages table
	if _, err := db.Exec("DELETE FROM pages WHERE name = 'about'"); err != nil {
		t.Fatal(err)
	}
	rec2, req2 := adminRequest(t, h, "/admin/edit_page/about", map[string]string{"name": "about"})
	req2 = requestWithSession(sm, req2)
	h.EditPageForm(rec2, req2)

	assertStatus(t, rec2.Code, http.StatusOK)
	if !strings.Contains(rec2.Body.String(), "Fresh copy.") {
		t.Error("editor did not serve the cached page")
	}
}

func TestEditPageSubmit_UnknownName(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm), testContentCache(t))

	form := url.Values{"title": {"t"}, "content": {"c"}}
	rec, _ := postForm(t, h.EditPageSubmit, "/admin/edit_page/nope", form, func(r *http.Request) *http.Request {
		return requestWithSession(sm, requestWithURLParams(r, map[string]string{"name": "nope"}))
	})

	assertStatus(t, rec.Code, http.StatusNotFound)
}
