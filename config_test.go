package morphic

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
)

// --- Config ---

func TestParseConfigEmptyIsDefault(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedDefaultMatchesDefaultConfig(t *testing.T) {
	cfg, err := ParseConfig(defaultConfigYAML)
	if err != nil {
		t.Fatalf("ParseConfig(embedded): %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("embedded default drifted (-want +got):\n%s", diff)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	data := []byte(`
grab_threshold: 8
step_budget: 4ms
double_click_interval: 250ms
show_holes: true
log_level: debug
background: {r: 1, g: 0, b: 0, a: 1}
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := DefaultConfig()
	want.GrabThreshold = 8
	want.StepBudget = 4 * time.Millisecond
	want.DoubleClickInterval = 250 * time.Millisecond
	want.ShowHoles = true
	want.LogLevel = "debug"
	want.Background = Color{R: 1, A: 1}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative threshold", "grab_threshold: -1"},
		{"negative proximity", "damage_proximity: -3"},
		{"zero collapse limit", "damage_collapse_limit: 0"},
		{"negative budget", "step_budget: -1ms"},
		{"unknown level", "log_level: chatty"},
	}
	for _, tt := range tests {
		_, err := ParseConfig([]byte(tt.yaml))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
}

func TestParseConfigMalformed(t *testing.T) {
	_, err := ParseConfig([]byte("grab_threshold: [1, 2"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("syntax errors should not be reported as invalid settings")
	}
}

func TestLoadConfigCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "morphic.yaml")
	if err := os.WriteFile(path, []byte("damage_proximity: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DamageProximity != 5 {
		t.Errorf("DamageProximity = %v, want 5", cfg.DamageProximity)
	}
	if cfg.GrabThreshold != 5 {
		t.Errorf("GrabThreshold = %v, want default 5", cfg.GrabThreshold)
	}
}

func TestLoadConfigMissingCustomPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

// --- Logging ---

func TestLoggerRenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, slog.LevelInfo)
	l.Error("failed", "error", errors.New("boom"))
	l.Debug("hidden")
	out := buf.String()
	if !strings.Contains(out, "err=boom") {
		t.Errorf("output %q should contain err=boom", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
}

func TestWidgetFailureIsLogged(t *testing.T) {
	w, _ := newTestWorld(t)
	var buf bytes.Buffer
	w.SetLogger(newLogger(&buf, slog.LevelInfo))
	m := NewMorph("flaky")
	m.OnStep = func(*Morph) { panic("step boom") }
	w.Add(m)
	w.DoOneCycle()

	out := buf.String()
	for _, want := range []string{"widget failed", "phase=step", "morph=flaky", "err=\"step boom\""} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

// --- Metrics ---

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic registering the collectors twice")
		}
	}()
	NewMetrics(reg)
}

func TestNewMetricsNilRegisterer(t *testing.T) {
	m := NewMetrics(nil)
	if m.Cycles == nil || m.WidgetFailures == nil || m.Drops == nil {
		t.Error("collectors should be created without a registerer")
	}
}
