package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MADING_SESSION_FILE", "/tmp/mading-session.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost/mading/api" {
		t.Errorf("unexpected API URL %q", cfg.APIBaseURL)
	}
	if cfg.ArticlesPerPage != 6 || cfg.UsersPerPage != 9 {
		t.Errorf("unexpected page sizes: %d, %d", cfg.ArticlesPerPage, cfg.UsersPerPage)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MADING_API_URL", "https://news.example.test/api")
	t.Setenv("MADING_SESSION_FILE", "/tmp/s.json")
	t.Setenv("MADING_LOG_LEVEL", "debug")
	t.Setenv("MADING_ARTICLES_PER_PAGE", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://news.example.test/api" {
		t.Errorf("unexpected API URL %q", cfg.APIBaseURL)
	}
	if cfg.SessionFile != "/tmp/s.json" {
		t.Errorf("unexpected session file %q", cfg.SessionFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.ArticlesPerPage != 12 {
		t.Errorf("unexpected page size %d", cfg.ArticlesPerPage)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MADING_SESSION_FILE", "/tmp/s.json")
	t.Setenv("MADING_ARTICLES_PER_PAGE", "zero")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ArticlesPerPage != 6 {
		t.Errorf("expected default page size, got %d", cfg.ArticlesPerPage)
	}
}
