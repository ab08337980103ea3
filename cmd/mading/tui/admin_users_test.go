package tui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAdminUsersModel_SearchBackspaceIsRuneSafe(t *testing.T) {
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))

	m := NewAdminUsersModel(app)
	m.mode = UsersSearch
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sé")})
	if m.search != "sé" {
		t.Fatalf("expected search %q, got %q", "sé", m.search)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.search != "s" {
		t.Errorf("expected backspace to drop one rune, got %q", m.search)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace}) // empty box stays empty
	if m.search != "" {
		t.Errorf("expected empty search, got %q", m.search)
	}
}
