package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)
	ctx := context.Background()

	log.DebugContext(ctx, "dbg", "a", 1)
	log.InfoContext(ctx, "inf", "b", 2)
	log.With("component", "auth").WarnContext(ctx, "wrn")

	out := buf.String()
	if strings.Contains(out, "msg=dbg") {
		t.Fatalf("debug line written at info level:\n%s", out)
	}
	for _, want := range []string{"level=INFO", "msg=inf", "b=2", "level=WARN", "component=auth"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestOpen_CreatesFileAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "passgate.log")

	for i, msg := range []string{"first", "second"} {
		log, closer, err := Open(path, slog.LevelDebug)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		log.Info(msg)
		if err := closer.Close(); err != nil {
			t.Fatalf("close #%d: %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "msg=first") || !strings.Contains(out, "msg=second") {
		t.Fatalf("expected both runs in log:\n%s", out)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("log file mode = %o, want 600", perm)
	}
}

func TestOpen_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	_, closer, err := Open("", slog.LevelInfo)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closer.Close()

	if _, err := os.Stat(filepath.Join(dir, "passgate", "passgate.log")); err != nil {
		t.Fatalf("default log file not created: %v", err)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("discard logger should not be enabled")
	}
}
