package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestArticleService_List(t *testing.T) {
	t.Run("passes search and category filters", func(t *testing.T) {
		var query map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = map[string]string{
				"search":      r.URL.Query().Get("search"),
				"category_id": r.URL.Query().Get("category_id"),
			}
			json.NewEncoder(w).Encode([]Article{{ID: 1, Title: "First"}})
		}))
		defer srv.Close()

		svc := NewArticleService(NewClient(srv.URL))
		articles, err := svc.List(context.Background(), ArticleQuery{Search: "mading", CategoryID: 3})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(articles) != 1 {
			t.Fatalf("expected 1 article, got %d", len(articles))
		}
		if query["search"] != "mading" || query["category_id"] != "3" {
			t.Errorf("unexpected query %+v", query)
		}
	})

	t.Run("normalizes null body to empty slice", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}))
		defer srv.Close()

		svc := NewArticleService(NewClient(srv.URL))
		articles, err := svc.List(context.Background(), ArticleQuery{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if articles == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(articles) != 0 {
			t.Errorf("expected empty slice, got %d items", len(articles))
		}
	})
}

func TestArticleService_Mutations(t *testing.T) {
	t.Run("react requires a token before any network call", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		svc := NewArticleService(NewClient(srv.URL))
		_, err := svc.React(context.Background(), 1, ActionLike)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if called {
			t.Error("no network call should be made without a token")
		}
	})

	t.Run("react posts the action payload", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&body)
			w.Write([]byte(`{"success":true,"message":"Article liked"}`))
		}))
		defer srv.Close()

		svc := NewArticleService(NewClient(srv.URL, WithTokenSource(staticToken("t1"))))
		msg, err := svc.React(context.Background(), 7, ActionLike)
		if err != nil {
			t.Fatalf("React failed: %v", err)
		}
		if msg != "Article liked" {
			t.Errorf("unexpected message %q", msg)
		}
		if body["action"] != "like" || body["articleId"] != float64(7) {
			t.Errorf("unexpected payload %+v", body)
		}
	})

	t.Run("delete uses the method override", func(t *testing.T) {
		var (
			method string
			body   map[string]any
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			json.NewDecoder(r.Body).Decode(&body)
			w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		svc := NewArticleService(NewClient(srv.URL, WithTokenSource(staticToken("t1"))))
		if err := svc.Delete(context.Background(), 9); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if method != http.MethodPost {
			t.Errorf("expected POST with override, got %s", method)
		}
		if body["_method"] != "DELETE" || body["id"] != float64(9) {
			t.Errorf("unexpected payload %+v", body)
		}
	})

	t.Run("failed save surfaces the server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"Failed to save article."}`))
		}))
		defer srv.Close()

		svc := NewArticleService(NewClient(srv.URL, WithTokenSource(staticToken("t1"))))
		err := svc.Create(context.Background(), ArticleDraft{Title: "x", Content: "y"})
		if err == nil {
			t.Fatal("expected error")
		}
		if Message(err, "fallback") != "Failed to save article." {
			t.Errorf("unexpected message %q", Message(err, "fallback"))
		}
	})
}
