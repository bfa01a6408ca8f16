// Package assets resolves head asset URLs, such as favicons and touch
// icons, to their fingerprinted names.
//
// A build step writes a manifest mapping source names to hashed names:
//
//	{
//	  "favicon.ico": "favicon.3f9a1c.ico",
//	  "apple-touch-icon-57x57.png": "apple-touch-icon-57x57.b71e0d.png"
//	}
//
// The manifest may also be written as YAML. A Resolver built from it
// rewrites the href of icon links:
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/static/")
//	resolver.Asset("/favicon.ico") // "/static/favicon.3f9a1c.ico"
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manifest maps source asset names to fingerprinted names.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Load reads a manifest file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parse asset manifest %s: %w", path, err)
	}

	m := NewManifest()
	for k, v := range entries {
		m.entries[key(k)] = v
	}
	return m, nil
}

// key normalizes a source name; "/favicon.ico" and "favicon.ico" are the
// same entry.
func key(source string) string {
	return strings.TrimPrefix(source, "/")
}

// Lookup returns the fingerprinted name for source.
func (m *Manifest) Lookup(source string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resolved, ok := m.entries[key(source)]
	return resolved, ok
}

// Set adds or updates an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key(source)] = resolved
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Resolver rewrites asset URLs.
type Resolver interface {
	// Asset returns the URL to emit for source.
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver that replaces URLs listed in m with
// prefix + fingerprinted name. Unlisted URLs, absolute URLs and
// protocol-relative URLs are returned unchanged.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	if strings.Contains(source, "://") || strings.HasPrefix(source, "//") {
		return source
	}
	resolved, ok := r.manifest.Lookup(source)
	if !ok {
		return source
	}
	return r.prefix + resolved
}
