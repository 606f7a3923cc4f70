package probe

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"timedread/infrastructure/network/reader"
	"timedread/infrastructure/settings"
	"timedread/infrastructure/telemetry/readstats"

	"github.com/coder/websocket"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/nettest"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) Printf(format string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}

func testConfig(readTimeoutMs int) settings.Configuration {
	return settings.Configuration{
		Read: settings.ReadConfig{ReadTimeoutMs: settings.ReadTimeoutMs(readTimeoutMs)},
	}.WithDefaults()
}

// serveTCP accepts one connection, writes payload, then either closes or
// stalls until the test ends.
func serveTCP(t *testing.T, payload []byte, stall bool) string {
	t.Helper()
	ln, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	stop := make(chan struct{})
	t.Cleanup(func() {
		close(stop)
		_ = ln.Close()
	})
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Write(payload)
		if stall {
			<-stop
		}
	}()
	return "tcp://" + ln.Addr().String()
}

func newTestRunner(cfg settings.Configuration, opts Options, out *bytes.Buffer) (*Runner, *readstats.Collector) {
	stats := readstats.NewCollector(10*time.Millisecond, 0)
	return NewRunner(cfg, opts, NewDefaultDialer(cfg), &fakeLogger{}, stats, out), stats
}

func TestRunner_TCP_ReadsUntilEOF(t *testing.T) {
	target, err := ParseTarget(serveTCP(t, []byte("hello world"), false))
	if err != nil {
		t.Fatalf("ParseTarget: %v", err)
	}
	var out bytes.Buffer
	r, stats := newTestRunner(testConfig(2000), Options{}, &out)

	results, err := r.Run(context.Background(), []Target{target})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	res := results[0]
	if !res.EOF || res.Bytes != len("hello world") {
		t.Fatalf("unexpected result %+v", res)
	}
	if s := stats.Snapshot(); s.Bytes != uint64(len("hello world")) {
		t.Fatalf("stats missed bytes: %+v", s)
	}
	if !strings.Contains(out.String(), "eof") || !strings.Contains(out.String(), "total\t") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunner_TCP_StalledPeerTimesOut(t *testing.T) {
	target, _ := ParseTarget(serveTCP(t, []byte("x"), true))
	var out bytes.Buffer
	r, stats := newTestRunner(testConfig(30), Options{}, &out)

	start := time.Now()
	results, err := r.Run(context.Background(), []Target{target})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("stalled peer blocked the probe for %v", elapsed)
	}
	if !errors.Is(results[0].Err, reader.ErrIoTimeout) {
		t.Fatalf("expected ErrIoTimeout, got %v", results[0].Err)
	}
	if results[0].Bytes != 1 {
		t.Fatalf("expected the byte sent before stalling, got %d", results[0].Bytes)
	}
	if s := stats.Snapshot(); s.Timeouts != 1 {
		t.Fatalf("expected one timeout in stats, got %+v", s)
	}
}

func TestRunner_Count_StopsEarly(t *testing.T) {
	target, _ := ParseTarget(serveTCP(t, []byte("abc"), true))
	var out bytes.Buffer
	r, _ := newTestRunner(testConfig(2000), Options{Count: 1}, &out)

	results, err := r.Run(context.Background(), []Target{target})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Reads != 1 || results[0].EOF {
		t.Fatalf("unexpected result %+v", results[0])
	}
}

func TestRunner_AggregatesFailures(t *testing.T) {
	ln, err := nettest.NewLocalListener("tcp")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	refused := "tcp://" + ln.Addr().String()
	_ = ln.Close()

	good, _ := ParseTarget(serveTCP(t, []byte("ok"), false))
	bad, _ := ParseTarget(refused)
	var out bytes.Buffer
	r, _ := newTestRunner(testConfig(2000), Options{Parallel: 1}, &out)

	results, err := r.Run(context.Background(), []Target{good, bad})
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected *multierror.Error, got %T (%v)", err, err)
	}
	if len(merr.Errors) != 1 || !strings.Contains(merr.Errors[0].Error(), refused) {
		t.Fatalf("unexpected aggregated errors: %v", merr.Errors)
	}
	if results[0].Err != nil || !results[0].EOF {
		t.Fatalf("good target affected by bad one: %+v", results[0])
	}
}

func TestRunner_WebSocket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := websocket.Accept(w, req, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		_ = conn.Write(req.Context(), websocket.MessageBinary, []byte("one"))
		_ = conn.Write(req.Context(), websocket.MessageText, []byte("skipped"))
		_ = conn.Write(req.Context(), websocket.MessageBinary, []byte("two"))
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}))
	defer srv.Close()

	target, err := ParseTarget("ws" + strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("ParseTarget: %v", err)
	}
	var out bytes.Buffer
	r, _ := newTestRunner(testConfig(2000), Options{}, &out)

	results, err := r.Run(context.Background(), []Target{target})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Bytes != len("onetwo") || !results[0].EOF {
		t.Fatalf("unexpected result %+v", results[0])
	}
}

type unsupportedDialer struct{}

func (unsupportedDialer) Dial(context.Context, Target) (Conn, error) {
	return nil, net.UnknownNetworkError("test")
}

func TestRunner_DialError(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(10)
	r := NewRunner(cfg, Options{}, unsupportedDialer{}, &fakeLogger{}, readstats.NewCollector(time.Second, 0), &out)

	results, err := r.Run(context.Background(), []Target{{Scheme: SchemeTCP, Address: "x:1", Raw: "tcp://x:1"}})
	if err == nil || results[0].Err == nil {
		t.Fatal("expected dial error")
	}
	if !strings.Contains(out.String(), "error:") {
		t.Fatalf("dial error not reported: %q", out.String())
	}
}

func TestRunner_StopsSamplerBeforeReturning(t *testing.T) {
	target, _ := ParseTarget(serveTCP(t, []byte("hi"), false))
	var out bytes.Buffer
	r, stats := newTestRunner(testConfig(2000), Options{}, &out)

	if _, err := r.Run(context.Background(), []Target{target}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	before := stats.Snapshot().Rate

	stats.RecordRead(1 << 20)
	time.Sleep(50 * time.Millisecond)
	if got := stats.Snapshot().Rate; got != before {
		t.Fatalf("rate sampler still running after Run returned: %d -> %d", before, got)
	}
}
