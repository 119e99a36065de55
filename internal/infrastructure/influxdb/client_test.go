package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-components/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/influxdb"
)

// fakeInflux answers /ping and collects line protocol sent to /api/v2/write.
type fakeInflux struct {
	mu      sync.Mutex
	lines   []string
	writeOK bool
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ping":
		w.WriteHeader(http.StatusNoContent)
	case "/api/v2/write":
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lines = append(f.lines, strings.Split(strings.TrimSpace(string(body)), "\n")...)
		ok := f.writeOK
		f.mu.Unlock()
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"code":"invalid","message":"rejected"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeInflux) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           url,
		Token:         "test-token",
		Org:           "graylogic",
		Bucket:        "metrics",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func startFake(t *testing.T, writeOK bool) (*fakeInflux, *httptest.Server) {
	t.Helper()
	fake := &fakeInflux{writeOK: writeOK}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, srv
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false

	if _, err := influxdb.Connect(cfg, ""); !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := influxdb.Connect(testConfig(url), ""); !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect_DefaultBatchSettings(t *testing.T) {
	_, srv := startFake(t, true)
	cfg := testConfig(srv.URL)
	cfg.BatchSize = -5
	cfg.FlushInterval = 0

	client, err := influxdb.Connect(cfg, "")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
}

func TestWriteEntityInventory(t *testing.T) {
	fake, srv := startFake(t, true)
	client, err := influxdb.Connect(testConfig(srv.URL), "site-01")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	client.WriteEntityInventory("sensor", 4)
	client.WriteEntityInventory("switch", 0)
	client.Flush()

	lines := waitForLines(t, fake, 2)
	for _, want := range [][]string{
		{"entity_inventory,", "kind=sensor", "site=site-01", " count=4i"},
		{"entity_inventory,", "kind=switch", "site=site-01", " count=0i"},
	} {
		if !anyLineContains(lines, want...) {
			t.Errorf("no line containing %q in %v", want, lines)
		}
	}
}

func TestWriteErrorsReachCallback(t *testing.T) {
	_, srv := startFake(t, false)
	client, err := influxdb.Connect(testConfig(srv.URL), "")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	errCh := make(chan error, 1)
	client.SetOnError(func(err error) {
		select {
		case errCh <- err:
		default:
		}
	})

	client.WritePoint("entity_inventory", map[string]string{"kind": "sensor"}, map[string]any{"count": 1})
	client.Flush()

	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("write error not delivered to callback")
	}
}

func TestHealthCheck(t *testing.T) {
	_, srv := startFake(t, true)
	client, err := influxdb.Connect(testConfig(srv.URL), "")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	client.Close()
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrNotConnected", err)
	}
}

func TestClose(t *testing.T) {
	fake, srv := startFake(t, true)
	client, err := influxdb.Connect(testConfig(srv.URL), "")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	client.WriteEntityInventory("sensor", 1)
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if len(fake.received()) != 1 {
		t.Errorf("Close() should flush pending writes, got %v", fake.received())
	}

	// Writes after Close are dropped.
	client.WriteEntityInventory("sensor", 2)
	client.Flush()
}

func TestClose_Nil(t *testing.T) {
	client := &influxdb.Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v", err)
	}
}

func waitForLines(t *testing.T, fake *fakeInflux, n int) []string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if lines := fake.received(); len(lines) >= n {
			return lines
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("received %d lines, want %d", len(fake.received()), n)
	return nil
}

// anyLineContains reports whether one line holds every part.
func anyLineContains(lines []string, parts ...string) bool {
	for _, l := range lines {
		ok := true
		for _, p := range parts {
			if !strings.Contains(l, p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
