package api

import "context"

// AuthService wraps the /auth endpoints. These are the only calls that
// never carry a bearer token.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService on the shared client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a token and user payload.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	body := Credentials{Username: username, Password: password}
	var resp AuthResponse
	if err := s.client.PostJSON(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The server assigns the default role.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	body := Credentials{Username: username, Email: email, Password: password}
	var status statusResponse
	if err := s.client.PostJSON(ctx, "/auth/register", body, &status); err != nil {
		return err
	}
	if status.Error != "" {
		return &APIError{Message: status.Error}
	}
	return nil
}
