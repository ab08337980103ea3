package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Like actions accepted by POST /articles.
const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// ArticleQuery narrows GET /articles. Zero values are omitted.
type ArticleQuery struct {
	Search     string
	CategoryID int
	ID         int
}

// ArticleDraft is the form payload for creating or updating an article.
// Image is optional; when present the request is sent as multipart.
type ArticleDraft struct {
	Title      string
	Content    string
	CategoryID int
	Image      *Upload
}

// ArticleService wraps the /articles endpoints.
type ArticleService struct {
	client *Client
}

// NewArticleService creates an ArticleService on the shared client.
func NewArticleService(client *Client) *ArticleService {
	return &ArticleService{client: client}
}

// List fetches articles matching q. The response is normalized to a
// non-nil slice.
func (s *ArticleService) List(ctx context.Context, q ArticleQuery) ([]Article, error) {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		values.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	var articles []Article
	if err := s.client.Get(ctx, "/articles", values, &articles); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []Article{}
	}
	return articles, nil
}

// Get fetches a single article by id via GET /articles?id=.
func (s *ArticleService) Get(ctx context.Context, id int) (*Article, error) {
	values := url.Values{}
	values.Set("id", strconv.Itoa(id))
	var article Article
	if err := s.client.Get(ctx, "/articles", values, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// Create submits a new article as a multipart POST.
func (s *ArticleService) Create(ctx context.Context, draft ArticleDraft) error {
	return s.submit(ctx, 0, draft)
}

// Update edits an existing article. The API routes updates through POST
// with a _method=PUT override so the image upload path stays the same.
func (s *ArticleService) Update(ctx context.Context, id int, draft ArticleDraft) error {
	return s.submit(ctx, id, draft)
}

func (s *ArticleService) submit(ctx context.Context, id int, draft ArticleDraft) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	fields := map[string]string{
		"title":   draft.Title,
		"content": draft.Content,
	}
	if draft.CategoryID > 0 {
		fields["category_id"] = strconv.Itoa(draft.CategoryID)
	}
	if id > 0 {
		fields["id"] = strconv.Itoa(id)
		fields["_method"] = "PUT"
	} else {
		fields["_method"] = "POST"
	}
	var status statusResponse
	if err := s.client.PostMultipart(ctx, "/articles", fields, draft.Image, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// Delete removes an article. The API expects a POST with a method
// override rather than a bare DELETE.
func (s *ArticleService) Delete(ctx context.Context, id int) error {
	if _, err := s.client.RequireToken(); err != nil {
		return err
	}
	body := map[string]any{"id": id, "_method": "DELETE"}
	var status statusResponse
	if err := s.client.PostJSON(ctx, "/articles", body, &status); err != nil {
		return err
	}
	if !status.Success {
		return &APIError{Message: status.Error}
	}
	return nil
}

// React likes or unlikes an article on behalf of the current user and
// returns the server's confirmation message.
func (s *ArticleService) React(ctx context.Context, id int, action string) (string, error) {
	if action != ActionLike && action != ActionUnlike {
		return "", fmt.Errorf("unknown article action %q", action)
	}
	if _, err := s.client.RequireToken(); err != nil {
		return "", err
	}
	body := map[string]any{"action": action, "articleId": id}
	var status statusResponse
	if err := s.client.PostJSON(ctx, "/articles", body, &status); err != nil {
		return "", err
	}
	return status.Message, nil
}
