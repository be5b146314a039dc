package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/internal/db"
	"gorm.io/gorm"
)

func seedGeneratedPage(t *testing.T, gdb *gorm.DB, slug, templateKey string) {
	t.Helper()
	page := &db.GeneratedPage{
		Slug:        slug,
		Title:       "title " + slug,
		H1:          "H1 " + slug,
		TemplateKey: templateKey,
	}
	if err := gdb.Create(page).Error; err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}
}

func TestShowPageRendersStoredPage(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedGeneratedPage(t, gdb, "plumber", "landing")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/p/plumber", nil)
	c.Params = gin.Params{{Key: "slug", Value: "plumber"}}

	api.ShowPage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<h1>H1 plumber</h1>") {
		t.Fatalf("expected rendered body, got:\n%s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestShowPageUnknownSlugReturns404Document(t *testing.T) {
	api, _ := setupTestAPI(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/p/missing", nil)
	c.Params = gin.Params{{Key: "slug", Value: "missing"}}

	api.ShowPage(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Page not found") {
		t.Fatalf("expected stable not-found document, got:\n%s", w.Body.String())
	}
}

func TestListPagesFiltersAndPaginates(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedGeneratedPage(t, gdb, "a", "landing")
	seedGeneratedPage(t, gdb, "b", "landing")
	seedGeneratedPage(t, gdb, "c", "guide")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/api/pages?templateKey=landing&limit=1", nil)

	api.ListPages(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var response struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
		Pages      []struct {
			Slug string `json:"Slug"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if response.Total != 2 || response.TotalPages != 2 || len(response.Pages) != 1 {
		t.Fatalf("unexpected listing: %s", w.Body.String())
	}
}

func TestDeletePage(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedGeneratedPage(t, gdb, "plumber", "landing")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/api/pages/plumber", nil)
	c.Params = gin.Params{{Key: "slug", Value: "plumber"}}

	api.DeletePage(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/api/pages/plumber", nil)
	c.Params = gin.Params{{Key: "slug", Value: "plumber"}}

	api.DeletePage(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestDeletePagesByTemplateKey(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedGeneratedPage(t, gdb, "a", "landing")
	seedGeneratedPage(t, gdb, "b", "landing")
	seedGeneratedPage(t, gdb, "c", "guide")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/api/pages?templateKey=landing", nil)

	api.DeletePagesByTemplateKey(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var response struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if response.Deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", response.Deleted)
	}
}

func TestFeedsReflectStoredPages(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedGeneratedPage(t, gdb, "plumber", "landing")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	c.Request.Host = "example.com"

	api.Sitemap(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http://example.com/p/plumber") {
		t.Fatalf("expected page entry in sitemap:\n%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	c.Request.Host = "example.com"

	api.Robots(c)
	if !strings.Contains(w.Body.String(), "Disallow: /admin/") {
		t.Fatalf("expected admin disallow in robots:\n%s", w.Body.String())
	}
}
