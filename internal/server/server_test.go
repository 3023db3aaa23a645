package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotkit/pkg/cache"
	"github.com/matzehuels/plotkit/pkg/charts"
	"github.com/matzehuels/plotkit/pkg/observability"
	"github.com/matzehuels/plotkit/pkg/pipeline"
)

func newTestServer(t *testing.T) (*Server, *observability.Counters) {
	t.Helper()
	logger := log.New(io.Discard)
	stats := observability.NewCounters()
	observability.SetRenderHooks(stats)
	observability.SetCacheHooks(stats)
	observability.SetHTTPHooks(stats)
	t.Cleanup(observability.Reset)

	runner := pipeline.NewRunner(cache.NewScoped(cache.NewMemoryCache(), "test:"), logger)
	return New(runner, logger, stats), stats
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, []byte) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestDemos(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := get(t, srv, "/demos")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got []charts.Demo
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(charts.Demos()) {
		t.Fatalf("got %d demos, want %d", len(got), len(charts.Demos()))
	}
	for i, name := range charts.Demos() {
		if got[i].Name != name || got[i].Description == "" {
			t.Errorf("demo %d = %+v, want name %q with a description", i, got[i], name)
		}
	}
}

func TestRender(t *testing.T) {
	srv, stats := newTestServer(t)

	resp, body := get(t, srv, "/demos/markevery.svg?ncol=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("first request X-Cache = %q, want MISS", resp.Header.Get("X-Cache"))
	}
	if !strings.Contains(string(body), "<svg") {
		t.Error("body is not an SVG document")
	}

	resp, _ = get(t, srv, "/demos/markevery.svg?ncol=3")
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", resp.Header.Get("X-Cache"))
	}

	resp, body = get(t, srv, "/demos/pie.PNG?dpi=50&transparent=true")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("png status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Type") != "image/png" || !strings.HasPrefix(string(body), "\x89PNG") {
		t.Errorf("png response: Content-Type %q, body prefix %q", resp.Header.Get("Content-Type"), body[:4])
	}

	s := stats.Snapshot()
	if s.Requests != 3 || s.Statuses[http.StatusOK] != 3 {
		t.Errorf("requests = %d, statuses = %v", s.Requests, s.Statuses)
	}
	if s.Formats["svg"] != 1 || s.Formats["png"] != 1 {
		t.Errorf("formats = %v", s.Formats)
	}
}

func TestRenderErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	tests := []struct {
		path     string
		status   int
		wantCode string
	}{
		{"/demos/nope.svg", http.StatusNotFound, "NOT_FOUND"},
		{"/demos/pie.bmp", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/demos/pie.svg?ncol=0", http.StatusBadRequest, "INVALID_COLUMNS"},
		{"/demos/pie.svg?ncol=two", http.StatusBadRequest, "INVALID_COLUMNS"},
		{"/demos/pie.svg?dpi=-3", http.StatusBadRequest, "INVALID_INPUT"},
		{"/demos/pie.png?dpi=1000000", http.StatusBadRequest, "INVALID_INPUT"},
		{"/demos/pie.png?dpi=NaN", http.StatusBadRequest, "INVALID_INPUT"},
		{"/demos/pie.png?dpi=Inf", http.StatusBadRequest, "INVALID_INPUT"},
		{"/demos/pie.svg?legend=maybe", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var got map[string]string
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatal(err)
			}
			if got["code"] != tt.wantCode || got["error"] == "" {
				t.Errorf("body = %v, want code %s with a message", got, tt.wantCode)
			}
		})
	}
}

func TestRenderWideLegend(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := get(t, srv, "/demos/pie.svg?ncol=9223372036854775807")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "<svg") {
		t.Error("body is not an SVG document")
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t)
	get(t, srv, "/healthz")
	resp, body := get(t, srv, "/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var snap observability.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Requests != 1 {
		t.Errorf("requests = %d, want 1 (the stats request is counted after it responds)", snap.Requests)
	}
}

func TestStatusCodeForInternalErrors(t *testing.T) {
	if got := statusCode(io.ErrUnexpectedEOF); got != http.StatusInternalServerError {
		t.Errorf("statusCode = %d, want 500", got)
	}
}
