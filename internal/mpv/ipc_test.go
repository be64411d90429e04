package mpv

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

// fakeMpv answers mpv's JSON IPC protocol on a unix socket.
type fakeMpv struct {
	path string
	ln   net.Listener

	mu       sync.Mutex
	props    map[string]any
	conn     net.Conn
	observes int
}

func newFakeMpv(t *testing.T, props map[string]any) *fakeMpv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix sockets")
	}
	// t.TempDir paths can exceed the unix socket path limit.
	dir, err := os.MkdirTemp("", "mpvctl")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMpv{path: path, ln: ln, props: props}
	go f.serve()
	t.Cleanup(func() {
		ln.Close()
		f.hangUp()
		os.RemoveAll(dir)
	})
	return f
}

func (f *fakeMpv) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req struct {
			Command   []any `json:"command"`
			RequestID int64 `json:"request_id"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil || len(req.Command) == 0 {
			continue
		}

		reply := map[string]any{"request_id": req.RequestID, "error": "success", "data": nil}
		f.mu.Lock()
		switch req.Command[0] {
		case "get_property":
			name, _ := req.Command[1].(string)
			if v, ok := f.props[name]; ok {
				reply["data"] = v
			} else {
				reply["error"] = "property unavailable"
			}
		case "observe_property":
			f.observes++
		}
		f.mu.Unlock()
		f.send(reply)
	}
}

func (f *fakeMpv) send(v any) {
	data, _ := json.Marshal(v)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		f.conn.Write(append(data, '\n'))
	}
}

func (f *fakeMpv) observed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.observes
}

// hangUp drops the client connection without a shutdown event, as a crashed
// mpv would.
func (f *fakeMpv) hangUp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		f.conn.Close()
		f.conn = nil
	}
}

func connectFake(t *testing.T, props map[string]any) (*Engine, *fakeMpv) {
	t.Helper()
	if props == nil {
		props = map[string]any{}
	}
	props["mpv-version"] = "mpv 0.38.0"
	f := newFakeMpv(t, props)

	e := New(Options{SocketPath: f.path})
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(e.Close)

	waitFor(t, "observe_property calls", func() bool { return f.observed() == len(observed) })
	return e, f
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestConnectReadsInitialProps(t *testing.T) {
	e, _ := connectFake(t, map[string]any{
		"playlist-count": 2.0,
		"pause":          true,
		"media-title":    "clip.webm",
		"duration":       90.0,
	})

	if !e.Connected() {
		t.Fatal("Connected() = false after Connect")
	}
	p := e.Props()
	if p.PlaylistCount != 2 || !p.Pause || p.Title != "clip.webm" || p.Duration != 90 {
		t.Errorf("Props() = %+v", p)
	}
	if isClosed(e.Done()) {
		t.Error("Done() closed while connected")
	}
	select {
	case <-e.Updates():
	default:
		t.Error("Connect should signal Updates")
	}
}

func TestPropertyChangeEventSignalsUpdates(t *testing.T) {
	e, f := connectFake(t, map[string]any{"playlist-count": 1.0})

	// Drain the signal from the connect itself.
	select {
	case <-e.Updates():
	default:
	}

	// The event listener registers asynchronously; repeat until it lands.
	waitFor(t, "pause to apply", func() bool {
		f.send(map[string]any{"event": "property-change", "id": 1, "name": "pause", "data": true})
		return e.Props().Pause
	})

	select {
	case <-e.Updates():
	case <-time.After(time.Second):
		t.Fatal("property change did not signal Updates")
	}
	if e.Snapshot().PlayWhenReady {
		t.Error("snapshot should not play when ready while paused")
	}
}

func TestShutdownEventClosesDone(t *testing.T) {
	e, f := connectFake(t, nil)

	waitFor(t, "Done after shutdown", func() bool {
		f.send(map[string]any{"event": "shutdown"})
		return isClosed(e.Done())
	})
	if e.Connected() {
		t.Error("Connected() = true after shutdown")
	}
}

func TestSocketEOFClosesDone(t *testing.T) {
	e, f := connectFake(t, map[string]any{"playlist-count": 1.0})
	done := e.Done()

	f.hangUp()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Done() not closed after the IPC socket died")
	}
	if e.Connected() {
		t.Error("Connected() = true after EOF")
	}
	if p := e.Props(); p.PlaylistCount != 0 {
		t.Errorf("Props() = %+v, want cleared", p)
	}
	if err := e.TogglePause(); err == nil {
		t.Error("TogglePause() should fail once disconnected")
	}
}

func TestCloseClosesDone(t *testing.T) {
	e, _ := connectFake(t, nil)
	done := e.Done()

	e.Close()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Done() not closed after Close")
	}
}
