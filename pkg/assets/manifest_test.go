package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"manifest.json", `{"favicon.ico": "favicon.abc.ico", "/icon-32.png": "icon-32.def.png"}`},
		{"manifest.yaml", "favicon.ico: favicon.abc.ico\n/icon-32.png: icon-32.def.png\n"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			m, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if m.Len() != 2 {
				t.Errorf("Len() = %d, want 2", m.Len())
			}
			if got, ok := m.Lookup("/favicon.ico"); !ok || got != "favicon.abc.ico" {
				t.Errorf("Lookup(/favicon.ico) = %q, %v", got, ok)
			}
			if got, ok := m.Lookup("icon-32.png"); !ok || got != "icon-32.def.png" {
				t.Errorf("Lookup(icon-32.png) = %q, %v", got, ok)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() should fail for a missing file")
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for invalid JSON")
	}
}

func TestResolver(t *testing.T) {
	m := NewManifest()
	m.Set("favicon.ico", "favicon.abc.ico")
	r := NewResolver(m, "/static/")

	tests := []struct {
		source, want string
	}{
		{"/favicon.ico", "/static/favicon.abc.ico"},
		{"favicon.ico", "/static/favicon.abc.ico"},
		{"/unknown.png", "/unknown.png"},
		{"https://cdn.example.com/favicon.ico", "https://cdn.example.com/favicon.ico"},
		{"//cdn.example.com/favicon.ico", "//cdn.example.com/favicon.ico"},
	}
	for _, tt := range tests {
		if got := r.Asset(tt.source); got != tt.want {
			t.Errorf("Asset(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
