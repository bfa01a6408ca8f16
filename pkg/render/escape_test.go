package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "plain text", input: "Hello, World!", expected: "Hello, World!"},
		{name: "ampersand", input: "Tom & Jerry", expected: "Tom &amp; Jerry"},
		{name: "angle brackets", input: "a < b > c", expected: "a &lt; b &gt; c"},
		{name: "double quote", input: `say "hello"`, expected: "say &quot;hello&quot;"},
		{name: "single quote", input: "it's", expected: "it&#39;s"},
		{name: "newline kept", input: "a\nb", expected: "a\nb"},
		{name: "unicode", input: "日本語 & ü", expected: "日本語 &amp; ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeHTML(tt.input); got != tt.expected {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "width=device-width, initial-scale=1", expected: "width=device-width, initial-scale=1"},
		{name: "quote breakout", input: `x" onload="alert(1)`, expected: "x&quot; onload=&quot;alert(1)"},
		{name: "whitespace", input: "a\nb\rc\td", expected: "a&#10;b&#13;c&#9;d"},
		{name: "already escaped", input: "&amp;", expected: "&amp;amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeAttr(tt.input); got != tt.expected {
				t.Errorf("EscapeAttr(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
