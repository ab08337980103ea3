package api

import "context"

// CategoryService wraps the /categories endpoints.
type CategoryService struct {
	client *Client
}

// NewCategoryService creates a CategoryService on the shared client.
func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

// List fetches all categories, normalized to a non-nil slice.
func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.client.Get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// Create adds a new category.
func (s *CategoryService) Create(ctx context.Context, name string) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.PostJSON(ctx, "/categories", map[string]any{"name": name}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id int, name string) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.PutJSON(ctx, "/categories", map[string]any{"id": id, "name": name}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// Delete removes a category. Articles referencing it are left alone; the
// client performs no cascade check.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.DeleteJSON(ctx, "/categories", map[string]any{"id": id}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}
