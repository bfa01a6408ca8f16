package routepath

import (
	"errors"
	"testing"
)

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantQuery   string
		wantChanged bool
	}{
		{name: "root", input: "/", wantPath: "/"},
		{name: "empty string", input: "", wantPath: "/", wantChanged: true},
		{name: "no leading slash", input: "about", wantPath: "/about", wantChanged: true},
		{name: "collapse slashes", input: "/blog//post", wantPath: "/blog/post", wantChanged: true},
		{name: "single dot", input: "/blog/./post", wantPath: "/blog/post", wantChanged: true},
		{name: "double dot", input: "/blog/posts/../other", wantPath: "/blog/other", wantChanged: true},
		{name: "trailing slash", input: "/some/url/", wantPath: "/some/url", wantChanged: true},
		{name: "query preserved", input: "/search//?q=a//b", wantPath: "/search", wantQuery: "q=a//b", wantChanged: true},
		{name: "percent escape", input: "/caf%C3%A9", wantPath: "/caf%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalizePath(tt.input)
			if err != nil {
				t.Fatalf("CanonicalizePath(%q) error: %v", tt.input, err)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if got.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", got.Query, tt.wantQuery)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", got.Changed, tt.wantChanged)
			}
		})
	}
}

func TestCanonicalizePathErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "backslash", input: `/a\b`, wantErr: ErrBackslashInPath},
		{name: "nul literal", input: "/a\x00b", wantErr: ErrNullByteInPath},
		{name: "nul encoded", input: "/a%00b", wantErr: ErrNullByteInPath},
		{name: "bad escape", input: "/a%GG", wantErr: ErrInvalidPercentEscape},
		{name: "short escape", input: "/a%2", wantErr: ErrInvalidPercentEscape},
		{name: "escapes root", input: "/../secret", wantErr: ErrPathEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CanonicalizePath(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanonicalizePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/x": true,
		"http://example.com":    true,
		"/x":                    false,
		"//cdn.example.com/x":   false,
		"ftp://example.com":     false,
		"HTTPS://example.com":   false,
	}
	for in, want := range tests {
		if got := IsAbsoluteURL(in); got != want {
			t.Errorf("IsAbsoluteURL(%q) = %v, want %v", in, got, want)
		}
	}
}
