package api

import (
	"context"
	"net/url"
)

// UserQuery narrows GET /users. Zero values are omitted.
type UserQuery struct {
	Search string
	Role   string
}

// UserService wraps the /users endpoints. All of them require an admin
// session; the server enforces that, the client only fails fast on a
// missing token.
type UserService struct {
	client *Client
}

// NewUserService creates a UserService on the shared client.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// List fetches users matching q, normalized to a non-nil slice.
func (s *UserService) List(ctx context.Context, q UserQuery) ([]User, error) {
	if _, err := s.client.RequireToken(); err != nil {
		return nil, err
	}
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Role != "" {
		values.Set("role", q.Role)
	}
	var users []User
	if err := s.client.Get(ctx, "/users", values, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Create registers a new account with an explicit role and returns the
// created user when the server echoes it back.
func (s *UserService) Create(ctx context.Context, username, email, password, role string) (*User, error) {
	if _, err := s.client.RequireToken(); err != nil {
		return nil, err
	}
	body := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}
	var status statusResponse
	if err := s.client.PostJSON(ctx, "/users", body, &status); err != nil {
		return nil, err
	}
	if !status.Success {
		return nil, &APIError{Message: status.Error}
	}
	return status.User, nil
}

// UpdateRole changes a user's role without touching any other field.
func (s *UserService) UpdateRole(ctx context.Context, id int, role string) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.PutJSON(ctx, "/users", map[string]any{"id": id, "role": role}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.DeleteJSON(ctx, "/users", map[string]any{"id": id}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}
