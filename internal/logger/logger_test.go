package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInit_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "q.log")
	closer, err := Init(Options{Mode: ModeFile, Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Str("activity_code", "ABC123").Msg("submission saved")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"activity_code":"ABC123"`) || !strings.Contains(line, `"message":"submission saved"`) {
		t.Errorf("unexpected log line %q", line)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", zerolog.GlobalLevel())
	}
}

func TestInit_BadLevel(t *testing.T) {
	if _, err := Init(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestDefaultLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath: %v", err)
	}
	if want := filepath.Join(dir, "quizdesk", "quizdesk.log"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
