package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/session"
)

func TestSignIn(t *testing.T) {
	t.Run("admin login persists the session and routes to admin", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"token":"t1","user":{"id":1,"username":"root","role":"admin"}}`))
		}))
		defer srv.Close()

		store := session.NewMemStore()
		auth := api.NewAuthService(api.NewClient(srv.URL))
		route, err := SignIn(context.Background(), auth, store, "root", "secret")
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if route != RouteAdmin {
			t.Errorf("expected admin route, got %q", route)
		}
		if store.Token() != "t1" {
			t.Errorf("expected persisted token t1, got %q", store.Token())
		}
		if store.Role() != api.RoleAdmin {
			t.Errorf("expected persisted role admin, got %q", store.Role())
		}
	})

	t.Run("regular user routes home", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token":"t2","user":{"id":2,"username":"sari","role":"user"}}`))
		}))
		defer srv.Close()

		store := session.NewMemStore()
		auth := api.NewAuthService(api.NewClient(srv.URL))
		route, err := SignIn(context.Background(), auth, store, "sari", "secret")
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if route != RouteHome {
			t.Errorf("expected home route, got %q", route)
		}
	})

	t.Run("server failure persists nothing and keeps the message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Login failed"}`))
		}))
		defer srv.Close()

		store := session.NewMemStore()
		auth := api.NewAuthService(api.NewClient(srv.URL))
		_, err := SignIn(context.Background(), auth, store, "root", "wrong")
		if err == nil {
			t.Fatal("expected error")
		}
		if got := api.Message(err, "fallback"); got != "Login failed" {
			t.Errorf("expected verbatim server message, got %q", got)
		}
		if store.Token() != "" {
			t.Error("no session may be persisted on failure")
		}
	})

	t.Run("missing role is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token":"t3","user":{"id":3,"username":"ghost"}}`))
		}))
		defer srv.Close()

		store := session.NewMemStore()
		auth := api.NewAuthService(api.NewClient(srv.URL))
		if _, err := SignIn(context.Background(), auth, store, "ghost", "secret"); err == nil {
			t.Fatal("expected error for missing role")
		}
		if store.Token() != "" {
			t.Error("no session may be persisted without a role")
		}
	})
}

func TestSignOut(t *testing.T) {
	store := session.NewMemStore()
	if err := store.Save("t1", api.User{ID: 1, Role: api.RoleAdmin}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SignOut(store); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if store.Token() != "" {
		t.Error("expected cleared session")
	}
}
