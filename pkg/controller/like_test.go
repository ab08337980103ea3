package controller

import (
	"errors"
	"testing"
	"time"
)

type fakeTokens struct{ token string }

func (f *fakeTokens) Token() string { return f.token }

func TestLike_ToggleFlipsImmediately(t *testing.T) {
	sched := NewManual()
	like := NewLike(&fakeTokens{token: "t1"}, sched, ReconcileDelay)
	like.Seed(1, false)

	res, err := like.Toggle(1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if res.Action != "like" {
		t.Errorf("expected like action, got %q", res.Action)
	}

	state := like.State(1)
	if !state.Liked {
		t.Error("displayed state must flip before any response arrives")
	}
	if !state.Pending {
		t.Error("optimistic flip must be marked pending")
	}
}

func TestLike_ReconcileOverridesOptimisticValue(t *testing.T) {
	sched := NewManual()
	like := NewLike(&fakeTokens{token: "t1"}, sched, ReconcileDelay)
	like.Seed(1, false)

	res, err := like.Toggle(1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	sched.Advance(ReconcileDelay)
	id, ok := <-res.Reconcile
	if !ok {
		t.Fatal("reconcile timer should fire")
	}
	if id != 1 {
		t.Errorf("expected article 1, got %d", id)
	}

	// The server reports the like never landed.
	like.Apply(1, false)

	state := like.State(1)
	if state.Liked {
		t.Error("reconciled value must win over the optimistic one")
	}
	if state.Pending {
		t.Error("reconciliation settles the pending phase")
	}
}

func TestLike_RetoggleCancelsReconcile(t *testing.T) {
	sched := NewManual()
	like := NewLike(&fakeTokens{token: "t1"}, sched, ReconcileDelay)

	first, err := like.Toggle(1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	sched.Advance(time.Second)
	second, err := like.Toggle(1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	sched.Advance(ReconcileDelay)
	if _, ok := <-first.Reconcile; ok {
		t.Error("superseded reconcile must not fire")
	}
	if _, ok := <-second.Reconcile; !ok {
		t.Error("latest reconcile must fire")
	}
}

func TestLike_UnauthenticatedIsIntercepted(t *testing.T) {
	sched := NewManual()
	like := NewLike(&fakeTokens{}, sched, ReconcileDelay)
	like.Seed(1, false)

	_, err := like.Toggle(1)
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if like.State(1).Liked {
		t.Error("no state change without a session")
	}
	if sched.Pending() != 0 {
		t.Error("no reconcile timer without a session")
	}
}

func TestLike_Revert(t *testing.T) {
	sched := NewManual()
	like := NewLike(&fakeTokens{token: "t1"}, sched, ReconcileDelay)
	like.Seed(1, false)

	if _, err := like.Toggle(1); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	like.Revert(1)

	state := like.State(1)
	if state.Liked || state.Pending {
		t.Errorf("expected pre-toggle state, got %+v", state)
	}
}

func TestLike_SeedDoesNotClobberPending(t *testing.T) {
	sched := NewManual()
	like := NewLike(&fakeTokens{token: "t1"}, sched, ReconcileDelay)
	like.Seed(1, false)

	if _, err := like.Toggle(1); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	like.Seed(1, false)

	if !like.State(1).Liked {
		t.Error("a seed during the pending phase must not undo the optimistic flip")
	}
}
