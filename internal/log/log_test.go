package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategories(t *testing.T) {
	type tc struct {
		write    func(string, ...any)
		category string
	}

	tests := map[string]tc{
		"scan":     {write: Scan, category: "scan"},
		"compile":  {write: Compile, category: "compile"},
		"emit":     {write: Emit, category: "emit"},
		"generate": {write: Generate, category: "generate"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf, slog.LevelDebug)
			defer SetOutput(nil, slog.LevelDebug)

			tt.write("hello", "file", "app.jsx")

			out := buf.String()
			if !strings.Contains(out, "category="+tt.category) {
				t.Errorf("missing category in %q", out)
			}
			if !strings.Contains(out, "file=app.jsx") {
				t.Errorf("missing attribute in %q", out)
			}
		})
	}
}

func TestDisabledByDefault(t *testing.T) {
	SetOutput(nil, slog.LevelDebug)
	if Enabled() {
		t.Fatal("expected logging to be disabled")
	}
	Compile("dropped")

	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelInfo)
	defer SetOutput(nil, slog.LevelDebug)
	if !Enabled() {
		t.Fatal("expected logging to be enabled")
	}
	Compile("below level")
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}
	Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warning not written: %q", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	t.Setenv(EnvVar, path)

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	defer SetOutput(nil, slog.LevelDebug)

	Emit("to file", "templates", 2)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "category=emit") || !strings.Contains(string(data), "templates=2") {
		t.Errorf("unexpected log contents: %q", data)
	}
}

func TestFromEnv_Unset(t *testing.T) {
	t.Setenv(EnvVar, "")
	SetOutput(nil, slog.LevelDebug)

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if Enabled() {
		t.Error("logging should stay disabled")
	}
}
