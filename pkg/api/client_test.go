package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_Get(t *testing.T) {
	t.Run("decodes response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/categories" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "News"}})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		var categories []Category
		if err := client.Get(context.Background(), "/categories", nil, &categories); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(categories) != 1 || categories[0].Name != "News" {
			t.Errorf("unexpected categories %+v", categories)
		}
	})

	t.Run("attaches bearer token when present", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte("[]"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, WithTokenSource(staticToken("t1")))
		if err := client.Get(context.Background(), "/articles", nil, nil); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "Bearer t1" {
			t.Errorf("expected bearer header, got %q", got)
		}
	})

	t.Run("sends a request id", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("X-Request-ID")
			w.Write([]byte("[]"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		if err := client.Get(context.Background(), "/articles", nil, nil); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == "" {
			t.Error("expected X-Request-ID header")
		}
	})
}

func TestClient_Errors(t *testing.T) {
	t.Run("server error message is kept verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Login failed"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		err := client.Get(context.Background(), "/articles", nil, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if Message(err, "fallback") != "Login failed" {
			t.Errorf("expected verbatim server message, got %q", Message(err, "fallback"))
		}
	})

	t.Run("application error with 200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"Article not found"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		err := client.Get(context.Background(), "/articles", nil, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if Message(err, "fallback") != "Article not found" {
			t.Errorf("unexpected message %q", Message(err, "fallback"))
		}
	})

	t.Run("transport failure falls back to generic message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client := NewClient(srv.URL)
		err := client.Get(context.Background(), "/articles", nil, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if Message(err, "Failed to load articles.") != "Failed to load articles." {
			t.Errorf("expected generic fallback, got %q", Message(err, "Failed to load articles."))
		}
	})
}

func TestClient_PostMultipart(t *testing.T) {
	var (
		fields   map[string]string
		filename string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		fields = map[string]string{}
		for k := range r.MultipartForm.Value {
			fields[k] = r.FormValue(k)
		}
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			filename = files[0].Filename
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(staticToken("t1")))
	file := &Upload{Field: "image", Filename: "cover.png", Content: []byte("png-bytes")}
	payload := map[string]string{"title": "Hello", "_method": "PUT", "id": "4"}
	var status statusResponse
	if err := client.PostMultipart(context.Background(), "/articles", payload, file, &status); err != nil {
		t.Fatalf("PostMultipart failed: %v", err)
	}
	if !status.Success {
		t.Error("expected success response")
	}
	if fields["_method"] != "PUT" || fields["id"] != "4" {
		t.Errorf("method override fields not sent: %+v", fields)
	}
	if filename != "cover.png" {
		t.Errorf("expected file upload, got %q", filename)
	}
}

func TestClient_ImageURL(t *testing.T) {
	client := NewClient("http://example.test/api/")
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"uploads/a.png", "http://example.test/api/uploads/a.png"},
		{"/uploads/a.png", "http://example.test/api/uploads/a.png"},
	}
	for _, tt := range tests {
		if got := client.ImageURL(tt.path); got != tt.want {
			t.Errorf("ImageURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
