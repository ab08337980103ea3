package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCategoryService_Delete(t *testing.T) {
	t.Run("succeeds with dangling article references", func(t *testing.T) {
		// Articles still point at category 2; the client must not fetch
		// them, warn, or cascade. The server owns referential cleanup.
		type call struct{ method, path string }
		var calls []call
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, call{method: r.Method, path: r.URL.Path})
			switch r.URL.Path {
			case "/articles":
				json.NewEncoder(w).Encode([]Article{
					{ID: 1, Title: "First", CategoryID: 2},
					{ID: 2, Title: "Second", CategoryID: 2},
				})
			case "/categories":
				w.Write([]byte(`{"success":true}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		client := NewClient(srv.URL, WithTokenSource(staticToken("t1")))
		articles, err := NewArticleService(client).List(context.Background(), ArticleQuery{CategoryID: 2})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(articles) != 2 {
			t.Fatalf("expected 2 referencing articles, got %d", len(articles))
		}

		calls = nil
		if err := NewCategoryService(client).Delete(context.Background(), 2); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(calls) != 1 {
			t.Fatalf("expected exactly one request, got %d: %+v", len(calls), calls)
		}
		if calls[0].method != http.MethodDelete || calls[0].path != "/categories" {
			t.Errorf("expected DELETE /categories, got %s %s", calls[0].method, calls[0].path)
		}
	})

	t.Run("requires a token before any network call", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		svc := NewCategoryService(NewClient(srv.URL))
		if err := svc.Delete(context.Background(), 2); err == nil {
			t.Fatal("expected error")
		}
		if called {
			t.Error("no network call should be made without a token")
		}
	})
}
