package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/picalc/internal/engine"
	"github.com/agbru/picalc/internal/logging"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	if m.handler == nil || m.registry == nil {
		t.Fatal("NewMetrics left handler or registry nil")
	}
	// Private registries must not collide.
	_ = NewMetrics()
}

func TestMetrics_ObserverFor(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	obs := m.ObserverFor("dynamic")
	for i := 0; i < 5; i++ {
		obs.ObserveTerm(time.Millisecond)
		obs.ObserveFold(time.Microsecond)
	}
	if got := sampleValue(t, m, "picalc_terms_total", "dynamic"); got != 5 {
		t.Errorf("terms_total = %v, want 5", got)
	}
	if got := sampleValue(t, m, "picalc_term_duration_seconds", "dynamic"); got != 5 {
		t.Errorf("term_duration count = %v, want 5", got)
	}
}

func TestMetrics_WiredIntoEngine(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	e, err := engine.NewDefaultFactory().Get("pool")
	if err != nil {
		t.Fatal(err)
	}
	p := engine.Params{Threads: 2, Iterations: 7, Precision: 256, Observer: m.ObserverFor("pool")}
	if _, err := e.Calculate(context.Background(), nil, 0, p); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got := sampleValue(t, m, "picalc_terms_total", "pool"); got != 7 {
		t.Errorf("terms_total = %v, want 7", got)
	}
}

func TestMetrics_ActiveRunsAndOutcome(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.IncrementActiveRuns()
	m.IncrementActiveRuns()
	m.DecrementActiveRuns()
	if got := sampleValue(t, m, "picalc_active_runs"); got != 1 {
		t.Errorf("active_runs = %v, want 1", got)
	}

	m.ObserveRun("queue", time.Second, nil)
	m.ObserveRun("queue", time.Second, errors.New("boom"))
	if got := sampleValue(t, m, "picalc_runs_total", "queue", "error"); got != 1 {
		t.Errorf("runs_total{status=error} = %v, want 1", got)
	}
	if got := sampleValue(t, m, "picalc_runs_total", "queue", "success"); got != 1 {
		t.Errorf("runs_total{status=success} = %v, want 1", got)
	}
}

func TestMetrics_WritePrometheus(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.IncrementActiveRuns()
	m.ObserverFor("dynamic").ObserveFold(time.Microsecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	for _, want := range []string{"picalc_active_runs 1", "picalc_terms_total{engine=\"dynamic\"} 1", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %q", want)
		}
	}
}

func TestServer_handleMetrics(t *testing.T) {
	t.Parallel()
	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodHead, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodPut, http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			t.Parallel()
			s := New("127.0.0.1:0", NewMetrics(), newTestLogger())
			req := httptest.NewRequest(tc.method, "/metrics", http.NoBody)
			rec := httptest.NewRecorder()
			s.handleMetrics(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestServer_metricsMiddlewareCounts(t *testing.T) {
	t.Parallel()
	s := New("127.0.0.1:0", NewMetrics(), newTestLogger())
	nextCalled := false
	handler := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	if !nextCalled {
		t.Error("next handler was not called")
	}
	if got := sampleValue(t, s.metrics, "picalc_http_requests_total", "/healthz"); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}
}

func TestServer_StartShutdown(t *testing.T) {
	t.Parallel()
	s := New("127.0.0.1:0", NewMetrics(), newTestLogger())
	addr, err := s.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Shutdown(context.Background())

	resp, err := http.Get("http://" + addr + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestServer_ShutdownWithoutStart(t *testing.T) {
	t.Parallel()
	if err := New(":0", NewMetrics(), newTestLogger()).Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown before Start = %v, want nil", err)
	}
}

// sampleValue gathers m and returns the value of the series of family name
// whose label values equal labels (in label-name order). Histograms report
// their sample count.
func sampleValue(t *testing.T, m *Metrics, name string, labels ...string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, metric := range mf.GetMetric() {
			pairs := metric.GetLabel()
			if len(pairs) != len(labels) {
				continue
			}
			for i, lp := range pairs {
				if lp.GetValue() != labels[i] {
					continue series
				}
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("no series %s%v", name, labels)
	return 0
}

// testLogger discards everything.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}
