package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vango-meta/internal/config"
	"github.com/vango-dev/vango-meta/pkg/meta"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.JSONFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	cfgPath := writeConfig(t, `{"baseURL": "https://example.com", "meta": {"custom": {"viewport": "width=device-width"}}}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			args: []string{"--controller", "ControllerName", "--action", "actionName", "--skip", "icon,custom"},
			want: `<title>Controller Name - Action Name</title><meta charset="utf-8"/><meta name="robots" content="noindex,nofollow,noarchive"/>`,
		},
		{
			name: "page values",
			args: []string{
				"--title", "Foo", "--language", "de", "--description", "A sentence",
				"--keywords", "foo bar", "--robots", "index", "--only", "",
				"--skip", "icon,charset", "--implode", `\n`,
			},
			want: strings.Join([]string{
				`<title>Foo</title>`,
				`<meta http-equiv="language" content="de"/>`,
				`<meta name="robots" content="index,nofollow,noarchive"/>`,
				`<meta name="description" content="A sentence" lang="de"/>`,
				`<meta name="keywords" content="foo bar" lang="de"/>`,
				`<meta name="viewport" content="width=device-width"/>`,
			}, "\n"),
		},
		{
			name: "single canonical",
			args: []string{"--only", "canonical", "--canonical", "/shop//items", "--full"},
			want: `<link rel="canonical" href="https://example.com/shop/items"/>`,
		},
		{
			name: "generic headers",
			args: []string{"--only", "og:title", "--meta", "og:title=Shop"},
			want: `<meta name="title" content="Shop" property="og:title"/>`,
		},
		{
			name: "http-equiv",
			args: []string{"--only", "http-equiv", "--http-equiv", "expires=0", "--http-equiv", "refresh=30"},
			want: `<meta http-equiv="expires" content="0"/><meta http-equiv="refresh" content="30"/>`,
		},
		{
			name: "robots off",
			args: []string{"--only", "robots", "--robots", "off"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--config", cfgPath}, tt.args...)
			got, err := execute(t, args...)
			if err != nil {
				t.Fatalf("render error: %v", err)
			}
			if got != tt.want+"\n" {
				t.Errorf("render output =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	single := writeConfig(t, `{"multiLanguage": false}`)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"language mismatch", []string{"--config", single, "--language", "de", "--description", "x", "--lang", "en"}, "M001"},
		{"bad pair", []string{"--config", single, "--custom", "viewport"}, "M002"},
		{"empty name", []string{"--config", single, "--custom", "=x"}, "M002"},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "meta.json")}, "M010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"render"}, tt.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParseRobots(t *testing.T) {
	got := parseRobots("index, nofollow,,noarchive")
	want := []meta.RobotsFlag{meta.Allow("index"), meta.Deny("follow"), meta.Deny("archive")}
	if len(got) != len(want) {
		t.Fatalf("parseRobots() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseRobots()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if got != version+"\n" {
		t.Errorf("version --short = %q, want %q", got, version+"\n")
	}
}

func TestServer(t *testing.T) {
	cfg, err := config.Parse([]byte(`{"baseURL": "https://example.com", "locale": "C"}`), config.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	h, err := newServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}

	get := func(path string) (int, string) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code, rec.Body.String()
	}

	if code, body := get("/healthz"); code != http.StatusOK || body != "ok" {
		t.Errorf("GET /healthz = %d %q", code, body)
	}

	code, body := get("/articles/viewAll?lang=de&description=Alle")
	if code != http.StatusOK {
		t.Fatalf("GET /articles/viewAll = %d %q", code, body)
	}
	for _, want := range []string{
		`<title>Articles - View All</title>`,
		`<link rel="canonical" href="/articles/viewAll"/>`,
		`<meta http-equiv="language" content="de"/>`,
		`<meta name="description" content="Alle" lang="de"/>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %s\n%s", want, body)
		}
	}

	if _, body := get("/"); !strings.Contains(body, "<title>Pages - Home</title>") {
		t.Errorf("GET / body = %q", body)
	}

	code, body = get("/metrics")
	if code != http.StatusOK || !strings.Contains(body, "vango_meta_renders_total") {
		t.Errorf("GET /metrics = %d, missing render metrics", code)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if !cfg.MultiLanguage || cfg.Path() != "" {
		t.Errorf("loadConfig() = %+v, want defaults", cfg)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("loadConfig(missing) should fail")
	}
}
