package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_DisabledIsNoop(t *testing.T) {
	SetLogger(nil)
	if Enabled() {
		t.Fatal("nop logger should disable debug output")
	}
	Log("ignored %d", 1)
	LogTiming("ignored", time.Millisecond)
	LogEnterExit("ignored")()
}

func TestLog_WritesThroughLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Log("loaded %d rows", 3)
	LogTiming("load", 2*time.Millisecond)
	LogEnterExit("reload")()

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("got %d entries; want 4", len(entries))
	}
	if entries[0].Message != "loaded 3 rows" {
		t.Errorf("first message = %q", entries[0].Message)
	}
	if entries[1].ContextMap()["op"] != "load" {
		t.Errorf("timing entry missing op field: %v", entries[1].ContextMap())
	}
	if !strings.HasPrefix(entries[3].Message, "<- reload") {
		t.Errorf("exit message = %q", entries[3].Message)
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "debug.log")
	flush, err := Setup(Options{Enabled: true, Path: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer SetLogger(nil)

	Log("hello %s", "file")
	flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file missing message: %q", data)
	}
}
