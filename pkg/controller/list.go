package controller

import (
	"context"
	"sync"

	"github.com/stembase/mading/pkg/api"
)

// Query carries the optional list parameters. Zero values mean
// unfiltered.
type Query struct {
	Search     string
	CategoryID int
	Role       string
	Page       int
}

// FetchFunc loads a resource collection from the API.
type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, error)

// List owns one resource collection in memory together with its loading
// flag, error/success message pair, and query parameters. It is the one
// generic controller instantiated per resource type (articles,
// categories, comments, users).
//
// Each Refresh is stamped with a generation token; a response arriving
// after a newer refresh started is discarded, so only the latest
// request's result is ever applied.
type List[T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	fallback string

	gen     uint64
	items   []T
	loading bool
	errMsg  string
	infoMsg string
	query   Query
}

// NewList creates a List around fetch. fallback is the generic message
// shown when a fetch fails without a server-provided error.
func NewList[T any](fetch FetchFunc[T], fallback string) *List[T] {
	return &List[T]{fetch: fetch, fallback: fallback, items: []T{}}
}

// Refresh fetches the collection with the current query. On success the
// collection is replaced; on failure it resets to empty and the error
// message is set. Errors never escape: the controller's message pair is
// the boundary.
func (l *List[T]) Refresh(ctx context.Context) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	q := l.query
	l.loading = true
	l.errMsg = ""
	l.mu.Unlock()

	items, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		// A newer refresh superseded this one; drop the stale result.
		return
	}
	l.loading = false
	if err != nil {
		l.items = []T{}
		l.errMsg = api.Message(err, l.fallback)
		return
	}
	if items == nil {
		items = []T{}
	}
	l.items = items
}

// Items returns a copy of the current collection.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the size of the current collection.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Loading reports whether a refresh is in flight.
func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Error returns the current error message, empty when none.
func (l *List[T]) Error() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Success returns the current success message, empty when none.
func (l *List[T]) Success() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.infoMsg
}

// SetError sets the error message and clears any success message.
func (l *List[T]) SetError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = msg
	l.infoMsg = ""
}

// SetSuccess sets the success message and clears any error message.
func (l *List[T]) SetSuccess(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoMsg = msg
	l.errMsg = ""
}

// ClearMessages drops both messages. Banner expiry calls this.
func (l *List[T]) ClearMessages() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = ""
	l.infoMsg = ""
}

// Query returns the current query parameters.
func (l *List[T]) Query() Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// SetQuery replaces the query parameters. The caller refreshes
// afterwards.
func (l *List[T]) SetQuery(q Query) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = q
}

// SetSearch updates only the search text.
func (l *List[T]) SetSearch(search string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query.Search = search
}

// SetPage updates only the page number.
func (l *List[T]) SetPage(page int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query.Page = page
}

// Patch applies fn to the collection in place, for screens that update
// local state after a confirmed mutation (delete, role change) instead
// of refetching.
func (l *List[T]) Patch(fn func(items []T) []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = fn(l.items)
	if l.items == nil {
		l.items = []T{}
	}
}
