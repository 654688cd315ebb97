package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/respkv-go/internal/storage/memory"
	"github.com/yndnr/respkv-go/pkg/resp"
)

// scrape returns the text exposition of h.
func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.registry == nil {
		t.Fatal("registry field is nil")
	}
	if r.CommandsTotal == nil || r.CommandDuration == nil || r.ConnectionsActive == nil {
		t.Error("metric fields not initialised")
	}
}

func TestGlobal(t *testing.T) {
	if Global() != Global() {
		t.Error("Global() should return the same instance")
	}
	if Handler() == nil {
		t.Error("Handler() returned nil")
	}
}

func TestCommandMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordCommand("get", ResultOK, time.Millisecond)
	r.RecordCommand("get", ResultOK, time.Millisecond)
	r.RecordCommand("set", ResultInvalid, 0)

	body := scrape(t, r.Handler())
	for _, want := range []string{
		`respkv_commands_total{command="get",result="ok"} 2`,
		`respkv_commands_total{command="set",result="invalid"} 1`,
		`respkv_command_duration_seconds_count{command="get"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
	if strings.Contains(body, `respkv_command_duration_seconds_count{command="set"}`) {
		t.Error("invalid commands should not record latency")
	}
}

func TestConnectionMetrics(t *testing.T) {
	r := NewRegistry()
	r.ConnOpened()
	r.ConnOpened()
	r.ConnClosed()
	r.IncProtocolError()
	r.IncRateLimited()

	body := scrape(t, r.Handler())
	for _, want := range []string{
		"respkv_connections_active 1",
		"respkv_connections_total 2",
		"respkv_protocol_errors_total 1",
		"respkv_rate_limited_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestStoreCollector(t *testing.T) {
	store := memory.New()
	store.Set("a", resp.OK)
	store.Set("b", resp.OK)
	store.HSet("h", "f1", resp.OK)
	store.HSet("h", "f2", resp.OK)
	store.HSet("h", "f3", resp.OK)

	r := NewRegistry()
	r.MustRegister(NewStoreCollector(store))

	body := scrape(t, r.Handler())
	for _, want := range []string{
		`respkv_store_keys{space="strings"} 2`,
		`respkv_store_keys{space="hashes"} 1`,
		"respkv_store_hash_fields 3",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.ConnOpened()
				r.RecordCommand("get", ResultOK, time.Microsecond)
				r.ConnClosed()
			}
		}()
	}
	wg.Wait()

	body := scrape(t, r.Handler())
	if !strings.Contains(body, `respkv_commands_total{command="get",result="ok"} 2000`) {
		t.Error("lost command increments under concurrency")
	}
	if !strings.Contains(body, "respkv_connections_active 0") {
		t.Error("connections_active should return to 0")
	}
}
