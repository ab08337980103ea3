package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stembase/mading/pkg/api"
)

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if store.Token() != "" {
		t.Error("fresh store should be logged out")
	}

	user := api.User{ID: 1, Username: "root", Role: api.RoleAdmin}
	if err := store.Save("t1", user); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.Token() != "t1" || store.Role() != api.RoleAdmin {
		t.Errorf("unexpected in-memory state: token=%q role=%q", store.Token(), store.Role())
	}

	// A second store on the same path sees the persisted session.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Token() != "t1" {
		t.Errorf("expected persisted token t1, got %q", reopened.Token())
	}
	got, ok := reopened.User()
	if !ok || got.Username != "root" {
		t.Errorf("expected persisted user, got %+v ok=%v", got, ok)
	}
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save("t1", api.User{ID: 1, Role: api.RoleUser}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Token() != "" {
		t.Error("expected logged-out store after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}

	// Clearing an already-cleared store is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("corrupt session file must not block startup: %v", err)
	}
	if store.Token() != "" {
		t.Error("corrupt session reads as logged out")
	}
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()
	if _, ok := store.User(); ok {
		t.Error("fresh MemStore should be logged out")
	}
	if err := store.Save("t1", api.User{ID: 2, Username: "sari", Role: api.RoleWriter}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.Role() != api.RoleWriter {
		t.Errorf("unexpected role %q", store.Role())
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Token() != "" {
		t.Error("expected cleared store")
	}
}
