package config

import (
	"os"
	"reflect"
	"testing"
)

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty falls back to defaults",
			raw:  "",
			want: defaultOrigins,
		},
		{
			name: "single origin",
			raw:  "https://ui.example.com",
			want: []string{"https://ui.example.com"},
		},
		{
			name: "multiple origins trimmed",
			raw:  "http://localhost:3000 , https://ui.example.com",
			want: []string{"http://localhost:3000", "https://ui.example.com"},
		},
		{
			name: "only separators falls back to defaults",
			raw:  " , ,",
			want: defaultOrigins,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitOrigins(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// Clear anything the environment might carry into the test. t.Setenv
	// registers restoration; the Unsetenv makes the key truly absent.
	for _, key := range []string{"HTTP_PORT", "DATABASE_URL", "GOOGLE_API_KEY", "ALLOWED_ORIGINS", "ASSISTANT_NAME", "SEED_DATA_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default HTTP port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.AssistantName != "Ken" {
		t.Errorf("expected default assistant name Ken, got %q", cfg.AssistantName)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("expected default allowed origins")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ASSISTANT_NAME", "Momo")
	t.Setenv("ALLOWED_ORIGINS", "https://ui.example.com")

	cfg := Load()
	if cfg.HTTPPort != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.HTTPPort)
	}
	if cfg.AssistantName != "Momo" {
		t.Errorf("expected assistant name Momo, got %q", cfg.AssistantName)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://ui.example.com" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}
