package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/princess-guard/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")

	log, err := New(config.LogConfig{Level: "debug", Format: "json", Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("enemy killed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "enemy killed") {
		t.Fatalf("log file missing entry: %q", data)
	}
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")

	log, err := New(config.LogConfig{Level: "loud", Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("debug entry written at info level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("info entry missing")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
}
