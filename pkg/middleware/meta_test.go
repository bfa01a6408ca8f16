package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/vango-meta/pkg/meta"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

func testFactory(req meta.Request) *meta.Registry {
	return meta.New(nil, nil, req, meta.WithLocale(func() string { return "" }))
}

func serve(t *testing.T, h http.Handler, path string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, body %q", path, rec.Code, rec.Body.String())
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func headHandler(w http.ResponseWriter, r *http.Request) {
	reg, ok := meta.FromContext(r.Context())
	if !ok {
		http.Error(w, "no registry", http.StatusInternalServerError)
		return
	}
	reg.SetCanonical(meta.Auto[routepath.Target]())
	head, err := Head(r, meta.WithSkip(meta.HeaderIcon))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = io.WriteString(w, head)
}

func TestMeta_BuildsRegistryFromRoute(t *testing.T) {
	r := chi.NewRouter()
	r.With(Meta(testFactory)).Get("/{controller}/{action}", headHandler)

	got := serve(t, r, "/user_profiles/editPage")
	want := `<title>User Profiles - Edit Page</title>` +
		`<meta charset="utf-8"/>` +
		`<link rel="canonical" href="/user_profiles/editPage"/>` +
		`<meta name="robots" content="noindex,nofollow,noarchive"/>`
	if got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestMeta_ParamNames(t *testing.T) {
	r := chi.NewRouter()
	r.With(Meta(testFactory, WithParamNames("c", "a"))).Get("/{c}/{a}", headHandler)

	if got := serve(t, r, "/Shop/index"); !strings.HasPrefix(got, "<title>Shop - Index</title>") {
		t.Errorf("body = %q", got)
	}
}

func TestMeta_RequestResolver(t *testing.T) {
	h := Meta(testFactory, WithRequestResolver(func(r *http.Request) meta.Request {
		return meta.Request{Controller: "Static", Action: "about", Path: "/about-us"}
	}))(http.HandlerFunc(headHandler))

	got := serve(t, h, "/whatever")
	if !strings.HasPrefix(got, "<title>Static - About</title>") || !strings.Contains(got, `href="/about-us"`) {
		t.Errorf("body = %q", got)
	}
}

func TestHead_NoRegistry(t *testing.T) {
	_, err := Head(httptest.NewRequest(http.MethodGet, "/", nil))
	if !errors.Is(err, ErrNoRegistry) {
		t.Fatalf("Head() error = %v, want ErrNoRegistry", err)
	}
}
