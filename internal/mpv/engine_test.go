package mpv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ygelfand/mpvctl/internal/media"
)

func TestEngineNotConnected(t *testing.T) {
	e := New(Options{SocketPath: filepath.Join(t.TempDir(), "mpv.sock")})

	if e.Connected() {
		t.Error("new engine should not be connected")
	}
	if err := e.TogglePause(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("TogglePause() error = %v, want ErrNotConnected", err)
	}
	if err := e.Load("a.mkv"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Load() error = %v, want ErrNotConnected", err)
	}
	select {
	case <-e.Done():
	default:
		t.Error("Done() should be closed while disconnected")
	}

	want := media.Snapshot{TimelineEmpty: true, PlaybackState: media.StateReady, PlayWhenReady: true}
	if got := e.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestConnectMissingSocket(t *testing.T) {
	e := New(Options{SocketPath: filepath.Join(t.TempDir(), "missing.sock")})
	err := e.Connect()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Connect() error = %v, want ErrNotExist", err)
	}
}

func TestLaunchWithoutMpv(t *testing.T) {
	e := New(Options{
		SocketPath: filepath.Join(t.TempDir(), "mpv.sock"),
		MpvPath:    "mpvctl-test-no-such-binary",
	})
	if err := e.Launch(context.Background()); err == nil {
		t.Error("Launch() should fail when mpv is not installed")
	}
}

func TestPropertyChangePublishes(t *testing.T) {
	e := New(Options{})

	var got []media.Snapshot
	unsubscribe := e.Subscribe(func(s media.Snapshot) { got = append(got, s) })

	e.handlePropertyChange(5, float64(1)) // playlist-count
	e.handlePropertyChange(5, float64(1))
	e.handlePropertyChange(1, true) // pause
	e.handlePropertyChange(99, true)
	unsubscribe()
	e.handlePropertyChange(1, false)

	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2: %+v", len(got), got)
	}
	if got[1].PlayWhenReady || got[1].TimelineEmpty {
		t.Errorf("last snapshot = %+v", got[1])
	}

	select {
	case <-e.Updates():
	default:
		t.Error("Updates() should hold a pending signal")
	}
}

func TestSpawnArgs(t *testing.T) {
	e := New(Options{SocketPath: "/tmp/x.sock", Window: true, Args: []string{"--volume=50"}})
	args := e.spawnArgs()

	want := []string{"--idle=yes", "--no-terminal", "--input-ipc-server=/tmp/x.sock", "--force-window=yes", "--volume=50"}
	if len(args) != len(want) {
		t.Fatalf("spawnArgs() = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestSocketExists(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("named pipes")
	}
	path := filepath.Join(t.TempDir(), "mpv.sock")
	e := New(Options{SocketPath: path})
	if e.socketExists() {
		t.Error("socket should not exist yet")
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if !e.socketExists() {
		t.Error("socket should exist")
	}
	e.removeSocket()
	if e.socketExists() {
		t.Error("socket should be removed")
	}
}
