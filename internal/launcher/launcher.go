// Package launcher supervises the Joplin desktop application for the
// ensure_running tool: detect it, start it, and wait for the Data API to
// answer. Nothing else in the core launches processes or retries.
package launcher

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	// ReadyTimeout bounds the wait for the API after a launch. AppImage
	// cold starts are slow.
	ReadyTimeout = 25 * time.Second
	// LaunchWait gives a freshly spawned Joplin time to bring up the Web
	// Clipper service before the first poll.
	LaunchWait = 2 * time.Second

	pollInterval = time.Second
	pgrepTimeout = 5 * time.Second
)

// IsRunning checks for a Joplin desktop process.
func IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), pgrepTimeout)
	defer cancel()
	return exec.CommandContext(ctx, "pgrep", "-f", "joplin").Run() == nil
}

// candidates returns the executable locations to try, most specific first.
func candidates() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return []string{
		filepath.Join(home, ".joplin", "Joplin.AppImage"),
		"joplin-desktop",
		"joplin",
		"/usr/bin/joplin-desktop",
		"/usr/bin/joplin",
		"/snap/bin/joplin-desktop",
		"/opt/Joplin/joplin",
	}
}

// Launch starts the Joplin desktop application in the background. It
// reports whether a launch command was issued, not whether Joplin is ready;
// pair it with WaitReady.
func Launch() bool {
	env := launchEnv()

	for _, candidate := range candidates() {
		path := candidate
		if !filepath.IsAbs(path) {
			resolved, err := exec.LookPath(path)
			if err != nil {
				continue
			}
			path = resolved
		} else if _, err := os.Stat(path); err != nil {
			continue
		}
		if start(path, nil, env) {
			return true
		}
	}

	// Flatpak installs don't put an executable on PATH.
	if _, err := exec.LookPath("flatpak"); err == nil {
		return start("flatpak", []string{"run", "net.cozic.joplin_desktop"}, env)
	}
	return false
}

// launchEnv builds the child environment. GUI apps need a display; default
// to the primary X display when launched from a headless-looking context.
func launchEnv() []string {
	env := os.Environ()
	if os.Getenv("DISPLAY") == "" {
		env = append(env, "DISPLAY=:0")
	}
	return env
}

func start(path string, args []string, env []string) bool {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return false
	}
	// Detach: the desktop app outlives this process.
	_ = cmd.Process.Release()
	return true
}

// WaitReady polls ping until it succeeds or the timeout passes. The ping
// function is the API client's Ping; it is injected so this package stays
// free of HTTP concerns (and trivially testable).
func WaitReady(ctx context.Context, ping func(context.Context) error, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := ping(pingCtx)
		cancel()
		if err == nil {
			return true
		}

		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(pollInterval):
		}
	}
}
