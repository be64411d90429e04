package mpv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dexterlb/mpvipc"
)

// Launch starts a new mpv in idle mode listening on the engine's socket and
// connects to it. The mpv process outlives the engine.
func (e *Engine) Launch(ctx context.Context) error {
	path, err := exec.LookPath(e.opts.MpvPath)
	if err != nil {
		return fmt.Errorf("mpv command not found. please install mpv: %w", err)
	}

	if runtime.GOOS != "windows" {
		_ = os.MkdirAll(filepath.Dir(e.opts.SocketPath), 0o755)
		e.removeSocket()
	}

	args := e.spawnArgs()
	slog.Debug("mpv: spawning", "path", path, "args", args)
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start mpv: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()

	// Wait for the socket to appear and respond to IPC
	for i := 0; i < 50; i++ {
		if e.socketExists() {
			c := mpvipc.NewConnection(e.opts.SocketPath)
			if err := c.Open(); err == nil {
				if verify(c) {
					e.start(c)
					return nil
				}
				c.Close()
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return fmt.Errorf("failed to connect to mpv IPC after spawning")
}

func (e *Engine) spawnArgs() []string {
	args := []string{
		"--idle=yes",
		"--no-terminal",
		fmt.Sprintf("--input-ipc-server=%s", e.opts.SocketPath),
	}
	if e.opts.Window {
		args = append(args, "--force-window=yes")
	}
	return append(args, e.opts.Args...)
}
