package controller

import (
	"context"
	"fmt"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/session"
)

// Route names the area a successful login lands in.
type Route string

const (
	// RouteAdmin is the admin dashboard, for role=admin sessions.
	RouteAdmin Route = "admin"
	// RouteHome is the public front page.
	RouteHome Route = "home"
)

// SignIn logs in, persists the session through the gateway, and returns
// the route for the user's role. On failure nothing is persisted and
// the error carries the server's message.
func SignIn(ctx context.Context, auth *api.AuthService, store session.Store, username, password string) (Route, error) {
	resp, err := auth.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	if resp.User.Role == "" {
		return "", fmt.Errorf("user role not provided")
	}
	if err := store.Save(resp.Token, resp.User); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	if resp.User.Role == api.RoleAdmin {
		return RouteAdmin, nil
	}
	return RouteHome, nil
}

// SignOut clears the persisted session.
func SignOut(store session.Store) error {
	return store.Clear()
}
