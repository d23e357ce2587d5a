//go:build !windows

package launch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLaunchSpawnsDetached(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")

	// A stand-in "terminal": a shell script that records its argv.
	script := filepath.Join(dir, "faketerm")
	body := "#!/bin/sh\necho \"$@\" > " + marker + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	handle, err := NewInvoker().Launch(SpawnPlan{
		Path: script,
		Args: []string{"-e", "game", "--level", "3"},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if handle.PID <= 0 || handle.ID == "" {
		t.Errorf("handle = %+v", handle)
	}

	// The invoker does not wait for the child; poll for the marker.
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(marker)
		if err == nil {
			if got := string(data); got != "-e game --level 3\n" {
				t.Errorf("spawned argv = %q", got)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("spawned process never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLaunchMissingExecutable(t *testing.T) {
	_, err := NewInvoker().Launch(SpawnPlan{Path: filepath.Join(t.TempDir(), "absent")})
	if !errors.Is(err, ErrSpawnFailed) {
		t.Errorf("err = %v, want ErrSpawnFailed", err)
	}
}

func TestLaunchPermissionDenied(t *testing.T) {
	script := filepath.Join(t.TempDir(), "noexec")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	_, err := NewInvoker().Launch(SpawnPlan{Path: script})
	if !errors.Is(err, ErrSpawnFailed) {
		t.Errorf("err = %v, want ErrSpawnFailed", err)
	}
}

func TestEnsureTerminalNoOpInsideTerminal(t *testing.T) {
	// The test process may or may not own a TTY; force the marker so
	// the outcome is deterministic either way.
	t.Setenv(relaunchMarker, "1")
	t.Setenv("TERM", "xterm-256color")

	relaunched, err := EnsureTerminal(EnsureOptions{})
	if err != nil {
		t.Fatalf("EnsureTerminal failed: %v", err)
	}
	if relaunched {
		t.Error("relaunched inside a terminal")
	}
}
