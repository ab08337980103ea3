package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/session"
)

func testApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewMemStore()
	client := api.NewClient(srv.URL, api.WithTokenSource(store))
	return NewApp(client, store, zerolog.Nop(), 6, 9)
}

func TestArticleModel_ReconcileDeliversArticleThroughMessage(t *testing.T) {
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles" || r.URL.Query().Get("id") != "7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.String())
		}
		json.NewEncoder(w).Encode(article7())
	}))

	m := NewArticleModel(app, 7)
	_, cmd := m.Update(reconcileDueMsg{id: 7})
	if cmd == nil {
		t.Fatal("expected a reconcile command")
	}

	// The command runs off the event loop; it must not touch the model
	// and instead hand the fetched article back in its message.
	if m.article != nil {
		t.Fatal("model must not change before the message is handled")
	}
	msg, ok := cmd().(likeReconciledMsg)
	if !ok {
		t.Fatalf("expected likeReconciledMsg, got %T", msg)
	}
	if m.article != nil {
		t.Fatal("command must not write the model directly")
	}
	if msg.article == nil || msg.article.ID != 7 {
		t.Fatalf("expected reconciled article in message, got %+v", msg.article)
	}

	m.Update(msg)
	if m.article == nil || m.article.Title != "Reconciled" {
		t.Errorf("expected article applied by Update, got %+v", m.article)
	}
	if got := m.like.State(7); !got.Liked || got.Pending {
		t.Errorf("expected settled liked state, got %+v", got)
	}
}

func TestArticleModel_ReconcileFailureKeepsArticle(t *testing.T) {
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	m := NewArticleModel(app, 7)
	existing := article7()
	m.Update(articleLoadedMsg{article: existing})

	_, cmd := m.Update(reconcileDueMsg{id: 7})
	msg := cmd().(likeReconciledMsg)
	if msg.article != nil {
		t.Fatalf("expected no article on failed fetch, got %+v", msg.article)
	}
	m.Update(msg)
	if m.article != existing {
		t.Error("failed reconcile must not clear the loaded article")
	}
}

// article7 is the fixture the reconcile tests fetch.
func article7() *api.Article {
	return &api.Article{ID: 7, Title: "Reconciled", Content: "<p>body</p>", Liked: true, Likes: 4}
}
