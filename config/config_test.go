package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "ragchat.yaml")
	if err := os.WriteFile(configFile, []byte("backend_url: http://file.example.com\ntop_k: 3\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	tests := []struct {
		name      string
		file      string
		overrides Config
		expected  Config
		expectErr bool
	}{
		{
			name:     "defaults apply when nothing is set",
			expected: Config{BackendURL: DefaultBackendURL, TopK: DefaultTopK},
		},
		{
			name:     "file values are used",
			file:     configFile,
			expected: Config{BackendURL: "http://file.example.com", TopK: 3},
		},
		{
			name:      "overrides beat file values",
			file:      configFile,
			overrides: Config{BackendURL: "http://flag.example.com", TopK: 8},
			expected:  Config{BackendURL: "http://flag.example.com", TopK: 8},
		},
		{
			name:      "partial overrides keep file values",
			file:      configFile,
			overrides: Config{TopK: 2},
			expected:  Config{BackendURL: "http://file.example.com", TopK: 2},
		},
		{
			name:      "trailing slash is stripped",
			overrides: Config{BackendURL: "http://example.com/"},
			expected:  Config{BackendURL: "http://example.com", TopK: DefaultTopK},
		},
		{
			name:      "top_k above the maximum is rejected",
			overrides: Config{TopK: 21},
			expectErr: true,
		},
		{
			name:      "negative top_k is rejected",
			overrides: Config{TopK: -1},
			expectErr: true,
		},
		{
			name:      "URL without scheme is rejected",
			overrides: Config{BackendURL: "example.com"},
			expectErr: true,
		},
		{
			name:      "missing file is an error",
			file:      filepath.Join(t.TempDir(), "missing.yaml"),
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := Load(tt.file, tt.overrides)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", actual)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBackendURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "plain URL passes through",
			raw:      "http://localhost:8000",
			expected: "http://localhost:8000",
		},
		{
			name:     "trailing slashes are removed",
			raw:      "https://rag.example.com//",
			expected: "https://rag.example.com",
		},
		{
			name:     "surrounding whitespace is trimmed",
			raw:      " http://localhost:8000 ",
			expected: "http://localhost:8000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseBackendURL(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actual != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, actual)
			}
		})
	}
}
