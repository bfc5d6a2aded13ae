package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Initialize(Config{Level: "debug", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer InitializeDefault()

	Named("engine").Debug("plan computed", PlanID("plan-1"), Location("Cali"), RequestID("req-1"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	for _, want := range []string{`"logger":"grocery-cost.engine"`, `"plan_id":"plan-1"`, `"location":"Cali"`, `"request_id":"req-1"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %s", line, want)
		}
	}
}

func TestInitializeLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Initialize(Config{Level: "warn", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer InitializeDefault()

	Info("dropped")
	Warn("kept")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Errorf("unexpected log output %q", data)
	}
}

func TestConsoleFileHasNoColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Initialize(Config{Level: "warning", Format: "console", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer InitializeDefault()

	Info("dropped")
	Named("api").Warn("kept")
	Sync()

	data, _ := os.ReadFile(path)
	line := string(data)
	if strings.Contains(line, "\x1b[") {
		t.Errorf("file output contains color codes: %q", line)
	}
	if strings.Contains(line, "dropped") || !strings.Contains(line, "WARN") || !strings.Contains(line, "grocery-cost.api") {
		t.Errorf("unexpected log output %q", line)
	}
}

func TestForRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Initialize(Config{Level: "info", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer InitializeDefault()

	base := Named("api")
	if ForRequest(base, "") != base {
		t.Error("expected the base logger for an empty request ID")
	}
	ForRequest(base, "req-42").Info("served")
	Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"request_id":"req-42"`) {
		t.Errorf("missing request ID in %q", data)
	}
}

func TestInitializeBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Initialize(Config{Level: "loud", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer InitializeDefault()

	Debug("dropped")
	Info("kept")
	Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Errorf("unexpected log output %q", data)
	}
}

func TestInitializeBadOutput(t *testing.T) {
	err := Initialize(Config{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "app.log")})
	if err == nil {
		t.Error("expected an error for an unwritable output path")
	}
}

func TestSilence(t *testing.T) {
	Silence()
	defer InitializeDefault()

	// must not panic
	Info("nothing")
	With(PlanID("x")).Warn("nothing")
}
