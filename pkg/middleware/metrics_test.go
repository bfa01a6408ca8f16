package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	ierrors "github.com/vango-dev/vango-meta/internal/errors"
	"github.com/vango-dev/vango-meta/pkg/meta"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheus_RecordsSuccessAndError(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()))

	m.ObserveRender("title", time.Millisecond, nil)
	m.ObserveRender("canonical", time.Millisecond, ierrors.New("M003").Wrap(routepath.ErrIncompleteRoute))

	if got := metricCounterValue(t, m.rendersTotal.WithLabelValues("title", "success")); got != 1 {
		t.Fatalf("renders_total(title, success)=%v, want 1", got)
	}
	if got := metricCounterValue(t, m.rendersTotal.WithLabelValues("canonical", "error")); got != 1 {
		t.Fatalf("renders_total(canonical, error)=%v, want 1", got)
	}
	if got := metricCounterValue(t, m.renderErrors.WithLabelValues("incomplete_route")); got != 1 {
		t.Fatalf("render_errors_total(incomplete_route)=%v, want 1", got)
	}
	if got := metricHistogramCount(t, m.renderDuration.WithLabelValues("title")); got != 1 {
		t.Fatalf("render_duration_seconds(title) count=%d, want 1", got)
	}
}

func TestPrometheus_SameRegistryReturnsSameMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := Prometheus(WithRegistry(reg))
	b := Prometheus(WithRegistry(reg), WithNamespace("ignored"))
	if a != b {
		t.Fatal("expected a second Prometheus() call on the same registry to reuse the collectors")
	}
}

func TestPrometheus_MetricNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg), WithConstLabels(prometheus.Labels{"app": "shop"}))
	m.ObserveRender("robots", time.Microsecond, meta.ErrInvalidArgument)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"vango_meta_renders_total",
		"vango_meta_render_duration_seconds",
		"vango_meta_render_errors_total",
	} {
		if !names[want] {
			t.Errorf("missing metric %s, got %v", want, names)
		}
	}
}

func TestPrometheus_ObservesRegistry(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()), WithSubsystem("head"))
	reg := meta.New(nil, nil, meta.Request{Controller: "Pages", Action: "home"}, meta.WithObserver(m))

	if _, err := reg.Out(""); err != nil {
		t.Fatalf("Out() error: %v", err)
	}
	for _, header := range meta.Headers() {
		if got := metricCounterValue(t, m.rendersTotal.WithLabelValues(header, "success")); got != 1 {
			t.Errorf("renders_total(%s, success)=%v, want 1", header, got)
		}
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{routepath.ErrIncompleteRoute, "incomplete_route"},
		{ierrors.New("M003").Wrap(routepath.ErrPathEscapesRoot), "invalid_path"},
		{routepath.ErrInvalidPercentEscape, "invalid_path"},
		{ierrors.New("M003").Wrap(errors.New("dial tcp")), "url_build"},
		{ierrors.New("M001").WithDetail("keywords"), "language_mismatch"},
		{meta.ErrInvalidArgument, "invalid_argument"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
