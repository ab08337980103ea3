package api

import "context"

// StatsService wraps GET /stats, the admin dashboard aggregate.
type StatsService struct {
	client *Client
}

// NewStatsService creates a StatsService on the shared client.
func NewStatsService(client *Client) *StatsService {
	return &StatsService{client: client}
}

// Get fetches the dashboard counts. Requires an authenticated session;
// the server additionally requires the admin role.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if _, err := s.client.RequireToken(); err != nil {
		return nil, err
	}
	var stats Stats
	if err := s.client.Get(ctx, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
