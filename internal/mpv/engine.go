package mpv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/dexterlb/mpvipc"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/media"
)

var ErrNotConnected = errors.New("not connected to mpv")

// callTimeout bounds every IPC request. mpvipc never answers a request whose
// connection drops mid-flight.
const callTimeout = 2 * time.Second

// Options configures how an Engine reaches mpv.
type Options struct {
	SocketPath string
	MpvPath    string
	// Args are appended to the mpv command line when the engine spawns mpv.
	Args []string
	// Window asks a spawned mpv to open its video window even when idle.
	Window bool
}

// Engine is a connection to one mpv process over its JSON IPC socket.
//
// It implements media.Player. Subscribers are called from the engine's event
// goroutine; UI code should instead wait on Updates and read Props or
// Snapshot from its own goroutine.
type Engine struct {
	opts Options

	mu       sync.RWMutex
	conn     *mpvipc.Connection
	props    Props
	stopChan chan struct{}
	done     chan struct{}

	subsMu sync.Mutex
	subs   map[int]func(media.Snapshot)
	nextID int

	updates chan struct{}
}

func New(opts Options) *Engine {
	if opts.MpvPath == "" {
		opts.MpvPath = "mpv"
	}
	return &Engine{
		opts:    opts,
		subs:    make(map[int]func(media.Snapshot)),
		updates: make(chan struct{}, 1),
		done:    closedChan(),
	}
}

// Lifecycle Methods

// Attach connects to a running mpv, spawning one when nothing answers on the
// socket.
func (e *Engine) Attach(ctx context.Context) error {
	err := e.Connect()
	if err == nil {
		return nil
	}
	slog.Debug("mpv: no running instance, spawning", "socket", e.opts.SocketPath, "error", err)
	return e.Launch(ctx)
}

// Connect opens the IPC socket of an already running mpv.
func (e *Engine) Connect() error {
	if e.Connected() {
		return nil
	}
	if !e.socketExists() {
		return fmt.Errorf("mpv socket %s: %w", e.opts.SocketPath, os.ErrNotExist)
	}

	c := mpvipc.NewConnection(e.opts.SocketPath)
	if err := c.Open(); err != nil {
		slog.Debug("mpv: could not open socket, removing", "error", err)
		e.removeSocket()
		return fmt.Errorf("open mpv socket: %w", err)
	}
	if !verify(c) {
		c.Close()
		return fmt.Errorf("mpv socket %s: IPC not responding", e.opts.SocketPath)
	}

	e.start(c)
	return nil
}

// Connected reports whether the engine holds a responsive connection.
func (e *Engine) Connected() bool {
	e.mu.RLock()
	c := e.conn
	e.mu.RUnlock()
	return c != nil && verify(c)
}

// Done is closed when the connection to mpv ends, either because mpv exited
// or because Close was called.
func (e *Engine) Done() <-chan struct{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.done
}

// Close drops the connection without stopping mpv.
func (e *Engine) Close() {
	e.mu.Lock()
	stop := e.stopChan
	e.stopChan = nil
	e.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	e.cleanup()
}

func (e *Engine) start(c *mpvipc.Connection) {
	e.mu.Lock()
	e.conn = c
	e.props = Props{}
	e.stopChan = make(chan struct{})
	e.done = make(chan struct{})
	stop, done := e.stopChan, e.done
	e.mu.Unlock()

	e.refresh()
	go e.monitorEvents(c, stop, done)
	e.publish()
}

func (e *Engine) cleanup() {
	e.mu.Lock()
	c := e.conn
	e.conn = nil
	e.props = Props{}
	e.mu.Unlock()

	if c != nil {
		c.Close()
	}
}

// Player state

// Props returns the latest known property values.
func (e *Engine) Props() Props {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.props
}

func (e *Engine) Snapshot() media.Snapshot {
	return e.Props().Snapshot()
}

func (e *Engine) Subscribe(fn func(media.Snapshot)) func() {
	e.subsMu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.subsMu.Unlock()

	return func() {
		e.subsMu.Lock()
		delete(e.subs, id)
		e.subsMu.Unlock()
	}
}

// Updates delivers a signal whenever the properties change. Signals are
// coalesced; read Props after each one.
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}

func (e *Engine) publish() {
	select {
	case e.updates <- struct{}{}:
	default:
	}

	snap := e.Snapshot()
	e.subsMu.Lock()
	fns := make([]func(media.Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Commands

func (e *Engine) call(args ...any) (any, error) {
	e.mu.RLock()
	c := e.conn
	e.mu.RUnlock()
	if c == nil {
		return nil, ErrNotConnected
	}
	res, err := callWithTimeout(c, callTimeout, args...)
	if err != nil {
		return nil, fmt.Errorf("mpv %v: %w", args[0], err)
	}
	return res, nil
}

// Load replaces the playlist with paths and starts playing the first one.
func (e *Engine) Load(paths ...string) error {
	for i, p := range paths {
		mode := "append-play"
		if i == 0 {
			mode = "replace"
		}
		slog.Debug("mpv: loadfile", "path", p, "mode", mode)
		if _, err := e.call("loadfile", p, mode); err != nil {
			return err
		}
	}
	_, err := e.call("set_property", "pause", false)
	return err
}

func (e *Engine) TogglePause() error {
	_, err := e.call("cycle", "pause")
	return err
}

// Seek moves the playback position by seconds relative to the current one.
func (e *Engine) Seek(seconds float64) error {
	_, err := e.call("seek", seconds, "relative")
	return err
}

// Stop clears the playlist; mpv stays running and goes idle.
func (e *Engine) Stop() error {
	_, err := e.call("stop")
	return err
}

// Quit terminates mpv.
func (e *Engine) Quit() error {
	_, err := e.call("quit")
	if err == nil {
		e.Close()
	}
	return err
}

// ShowText displays msg on mpv's on-screen display for d.
func (e *Engine) ShowText(msg string, d time.Duration) error {
	_, err := e.call("show-text", msg, d.Milliseconds())
	return err
}

// Internal Helpers

func verify(c *mpvipc.Connection) bool {
	_, err := callWithTimeout(c, 200*time.Millisecond, "get_property", "mpv-version")
	if err != nil {
		slog.Debug("mpv: connection check failed", "error", err)
		return false
	}
	return true
}

func callWithTimeout(c *mpvipc.Connection, d time.Duration, args ...any) (any, error) {
	type result struct {
		data any
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := c.Call(args...)
		done <- result{data, err}
	}()

	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(d):
		return nil, fmt.Errorf("mpv %v: no reply within %s", args[0], d)
	}
}

func (e *Engine) refresh() {
	e.mu.RLock()
	c := e.conn
	e.mu.RUnlock()
	if c == nil {
		return
	}

	var p Props
	for _, name := range observed {
		v, err := callWithTimeout(c, callTimeout, "get_property", name)
		if err != nil {
			slog.Log(context.Background(), config.LevelTrace, "mpv: property unavailable", "name", name, "error", err)
			continue
		}
		p.apply(name, v)
	}

	e.mu.Lock()
	e.props = p
	e.mu.Unlock()
}

func (e *Engine) monitorEvents(c *mpvipc.Connection, stopChan <-chan struct{}, done chan struct{}) {
	// Registered before observing so no property-change is lost. The buffer
	// keeps mpvipc's hub from stalling while this loop shuts down.
	events := make(chan *mpvipc.Event, 64)
	stop := make(chan struct{})
	go c.ListenForEvents(events, stop)

	// mpvipc only closes the connection when the socket reaches EOF; the
	// events channel stays open.
	connClosed := make(chan struct{})
	go func() {
		c.WaitUntilClosed()
		close(connClosed)
	}()

	defer func() {
		close(stop)
		e.mu.Lock()
		if e.conn == c {
			e.conn = nil
			e.props = Props{}
			e.stopChan = nil
		}
		e.mu.Unlock()
		c.Close()
		close(done)
		e.publish()
	}()

	for i, name := range observed {
		if _, err := callWithTimeout(c, callTimeout, "observe_property", i+1, name); err != nil {
			slog.Debug("mpv: observe failed", "name", name, "error", err)
		}
	}

	for {
		select {
		case <-stopChan:
			return
		case <-connClosed:
			slog.Debug("mpv: IPC connection closed")
			return
		case ev, ok := <-events:
			if !ok || ev.Name == "shutdown" {
				slog.Debug("mpv: shutdown detected")
				return
			}
			switch ev.Name {
			case "property-change":
				slog.Log(context.Background(), config.LevelTrace, "mpv: property change", "id", ev.ID, "data", ev.Data)
				e.handlePropertyChange(int(ev.ID), ev.Data)
			case "end-file":
				slog.Debug("mpv: playback finished (end-file)")
			}
		}
	}
}

func (e *Engine) handlePropertyChange(id int, data any) {
	name := observedName(id)
	if name == "" {
		return
	}
	e.mu.Lock()
	changed := e.props.apply(name, data)
	e.mu.Unlock()
	if changed {
		e.publish()
	}
}

func (e *Engine) socketExists() bool {
	if runtime.GOOS == "windows" {
		_, err := os.OpenFile(e.opts.SocketPath, os.O_RDWR, 0)
		if err != nil {
			if pe, ok := err.(*os.PathError); ok {
				if errno, ok := pe.Err.(syscall.Errno); ok && errno == 2 {
					return false
				}
			}
		}
		return true
	}
	_, err := os.Stat(e.opts.SocketPath)
	return err == nil
}

func (e *Engine) removeSocket() {
	if runtime.GOOS != "windows" {
		os.Remove(e.opts.SocketPath)
	}
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}
