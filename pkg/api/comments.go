package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// CommentService wraps the /comments endpoints.
type CommentService struct {
	client *Client
}

// NewCommentService creates a CommentService on the shared client.
func NewCommentService(client *Client) *CommentService {
	return &CommentService{client: client}
}

// ListByArticle fetches the comments of a single article, normalized to
// a non-nil slice. The endpoint is public.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int) ([]Comment, error) {
	values := url.Values{}
	values.Set("article_id", strconv.Itoa(articleID))
	var comments []Comment
	if err := s.client.Get(ctx, "/comments", values, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

// Create posts a new comment on an article. Empty content is rejected
// before any network call.
func (s *CommentService) Create(ctx context.Context, articleID int, content string) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return &APIError{Message: "comment must not be empty"}
	}
	body := map[string]any{"article_id": articleID, "content": content}
	var status statusResponse
	if err := s.client.PostJSON(ctx, "/comments", body, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// Update rewrites a comment's content.
func (s *CommentService) Update(ctx context.Context, id int, content string) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.PutJSON(ctx, "/comments", map[string]any{"id": id, "content": content}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id int) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	var status statusResponse
	if err := s.client.DeleteJSON(ctx, "/comments", map[string]any{"id": id}, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}
