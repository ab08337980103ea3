package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/stembase/mading/pkg/api"
)

// ReconcileDelay is how long an optimistic like stays unverified before
// the authoritative refetch.
const ReconcileDelay = 2 * time.Second

// ErrLoginRequired is returned when an unauthenticated user attempts an
// action that needs a session. Screens show a login prompt instead of
// issuing any network call.
var ErrLoginRequired = errors.New("login required")

// LikeState is a snapshot of one article's like state. Pending means an
// optimistic flip has not been reconciled with the server yet.
type LikeState struct {
	Liked   bool
	Pending bool
}

// Toggle describes the result of an optimistic flip: the action to send
// to the server and the channel that delivers the article id when the
// reconcile delay elapses. A re-toggle before then closes the channel
// without a value.
type Toggle struct {
	Action    string
	Reconcile <-chan int
}

// Like tracks per-article like state as an explicit two-phase
// transition: Toggle flips the local state immediately and arms a
// cancellable reconcile timer; Apply settles the state from the
// authoritative fetch, confirming or reverting the optimistic value.
type Like struct {
	mu     sync.Mutex
	tokens api.TokenSource
	sched  Scheduler
	delay  time.Duration
	states map[int]*likeEntry
}

type likeEntry struct {
	liked   bool
	pending bool
	stop    func()
	arm     *reconcileArm
}

type reconcileArm struct {
	ch    chan int
	fired bool
}

// NewLike creates a Like controller. tokens gates unauthenticated
// toggles, sched drives the reconcile delay.
func NewLike(tokens api.TokenSource, sched Scheduler, delay time.Duration) *Like {
	return &Like{
		tokens: tokens,
		sched:  sched,
		delay:  delay,
		states: make(map[int]*likeEntry),
	}
}

// Seed records the server-reported like state for an article, replacing
// any optimistic value unless a flip is still pending.
func (l *Like) Seed(id int, liked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entryLocked(id)
	if e.pending {
		return
	}
	e.liked = liked
}

// State returns the current snapshot for an article.
func (l *Like) State(id int) LikeState {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entryLocked(id)
	return LikeState{Liked: e.liked, Pending: e.pending}
}

// Toggle optimistically flips the article's like state before any
// network call and arms the reconcile timer. Unauthenticated callers
// get ErrLoginRequired and no state change.
func (l *Like) Toggle(id int) (Toggle, error) {
	if l.tokens == nil || l.tokens.Token() == "" {
		return Toggle{}, ErrLoginRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entryLocked(id)
	l.cancelLocked(e)

	e.liked = !e.liked
	e.pending = true
	action := api.ActionUnlike
	if e.liked {
		action = api.ActionLike
	}

	arm := &reconcileArm{ch: make(chan int, 1)}
	e.arm = arm
	e.stop = l.sched.AfterFunc(l.delay, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if e.arm != arm {
			return
		}
		arm.fired = true
		arm.ch <- id
		close(arm.ch)
	})
	return Toggle{Action: action, Reconcile: arm.ch}, nil
}

// Apply settles an article's state from the authoritative fetch. The
// reconciled value always wins over the optimistic one.
func (l *Like) Apply(id int, liked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entryLocked(id)
	l.cancelLocked(e)
	e.liked = liked
	e.pending = false
}

// Revert drops the optimistic flip after a failed toggle request,
// restoring the pre-toggle value without waiting for the timer.
func (l *Like) Revert(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entryLocked(id)
	if !e.pending {
		return
	}
	l.cancelLocked(e)
	e.liked = !e.liked
	e.pending = false
}

func (l *Like) entryLocked(id int) *likeEntry {
	e, ok := l.states[id]
	if !ok {
		e = &likeEntry{}
		l.states[id] = e
	}
	return e
}

func (l *Like) cancelLocked(e *likeEntry) {
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
	if e.arm != nil && !e.arm.fired {
		close(e.arm.ch)
	}
	e.arm = nil
}
