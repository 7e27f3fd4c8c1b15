package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesToRotatedFileUnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := Setup(dir, false); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	Warn("slot press refused", "date", "2030-01-07")

	data, err := os.ReadFile(filepath.Join(dir, "logs", logFileName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "slot press refused") {
		t.Errorf("message missing from log file: %q", string(data))
	}
}

func TestSetup_DebugLowersTheLevel(t *testing.T) {
	dir := t.TempDir()
	if err := Setup(dir, false); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Debug("quiet")

	logPath := filepath.Join(dir, "logs", logFileName)
	if data, _ := os.ReadFile(logPath); strings.Contains(string(data), "quiet") {
		t.Error("debug lines must be dropped at the default level")
	}

	if err := Setup(dir, true); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Debug("loud")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "loud") {
		t.Error("debug lines must be kept in debug mode")
	}
}

func TestWrappers_TolerateMissingSetup(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	Debug("a")
	Info("b")
	Warn("c")
	Error("d")
}
