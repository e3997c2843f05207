package main

import (
	"log"
	"os"
	"testing"

	"github.com/a3tai/mcp-report-extractor/internal/config"
)

func restoreLogState(t *testing.T) {
	t.Helper()
	writer := log.Writer()
	flags := log.Flags()
	t.Cleanup(func() {
		log.SetOutput(writer)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_StdioQuiet(t *testing.T) {
	restoreLogState(t)

	cfg := &config.Config{Mode: config.ModeStdio, LogLevel: "info"}
	setupLogging(cfg)

	f, ok := log.Writer().(*os.File)
	if !ok {
		t.Fatalf("expected log writer to be a file, got %T", log.Writer())
	}
	if f.Name() != os.DevNull {
		t.Errorf("expected logs discarded to %s, got %s", os.DevNull, f.Name())
	}
	// A writable handle on the null device, not a relabeled stdin
	if f.Fd() == os.Stdin.Fd() {
		t.Error("quiet stdio logging must not write to stdin's descriptor")
	}
}

func TestSetupLogging_StdioDebug(t *testing.T) {
	restoreLogState(t)

	cfg := &config.Config{Mode: config.ModeStdio, LogLevel: "debug"}
	setupLogging(cfg)

	if log.Writer() != os.Stderr {
		t.Errorf("debug stdio logging should go to stderr, got %T", log.Writer())
	}
}

func TestSetupLogging_ServerMode(t *testing.T) {
	restoreLogState(t)

	cfg := &config.Config{Mode: config.ModeServer, LogLevel: "info"}
	setupLogging(cfg)

	if log.Flags()&log.Lshortfile == 0 {
		t.Error("server mode logging should include file locations")
	}
}
