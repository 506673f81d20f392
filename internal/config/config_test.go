package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Data.SkillsFile != "data/skills.yaml" {
		t.Errorf("skills file = %s, want data/skills.yaml", cfg.Data.SkillsFile)
	}
	if cfg.Heartbeat.IntervalSeconds != 10 {
		t.Errorf("heartbeat = %d, want 10", cfg.Heartbeat.IntervalSeconds)
	}
	if cfg.Progression.PulseBaselineSeconds != 300 {
		t.Errorf("pulse baseline = %d, want 300", cfg.Progression.PulseBaselineSeconds)
	}
	if cfg.Progression.OfflineDrainRate != 0.6 {
		t.Errorf("drain rate = %f, want 0.6", cfg.Progression.OfflineDrainRate)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Data.ClassesDir != "data/classes" {
		t.Errorf("classes dir = %s, want default", cfg.Data.ClassesDir)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	content := `heartbeat:
  interval_seconds: 5
progression:
  pulse_baseline_seconds: 60
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Heartbeat.IntervalSeconds != 5 {
		t.Errorf("heartbeat = %d, want 5", cfg.Heartbeat.IntervalSeconds)
	}
	if cfg.Progression.PulseBaselineSeconds != 60 {
		t.Errorf("pulse baseline = %d, want 60", cfg.Progression.PulseBaselineSeconds)
	}
	// Untouched sections keep their defaults.
	if cfg.Progression.OfflineDrainDelayHours != 8 {
		t.Errorf("drain delay = %d, want 8", cfg.Progression.OfflineDrainDelayHours)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg.Heartbeat.IntervalSeconds != 10 {
		t.Error("bad YAML should fall back to defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MUD_SKILLS_FILE", "/srv/mud/skills.yaml")
	t.Setenv("MUD_HEARTBEAT_SECONDS", "3")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Data.SkillsFile != "/srv/mud/skills.yaml" {
		t.Errorf("skills file = %s, want env override", cfg.Data.SkillsFile)
	}
	if cfg.Heartbeat.IntervalSeconds != 3 {
		t.Errorf("heartbeat = %d, want 3", cfg.Heartbeat.IntervalSeconds)
	}
}

func TestParamsConversion(t *testing.T) {
	cfg := DefaultConfig()
	params := cfg.Progression.Params()

	if params.PulseBaseline != 5*time.Minute {
		t.Errorf("baseline = %v, want 5m", params.PulseBaseline)
	}
	if params.PulseMinimum != 2*time.Minute {
		t.Errorf("minimum = %v, want 2m", params.PulseMinimum)
	}
	if params.OfflineDrainDelay != 8*time.Hour {
		t.Errorf("delay = %v, want 8h", params.OfflineDrainDelay)
	}
}

func TestParamsMinimumNeverExceedsBaseline(t *testing.T) {
	cfg := ProgressionConfig{PulseBaselineSeconds: 60, PulseMinimumSeconds: 90}
	params := cfg.Params()

	if params.PulseMinimum != params.PulseBaseline {
		t.Errorf("minimum %v should clamp to baseline %v", params.PulseMinimum, params.PulseBaseline)
	}
}

func TestIntervalHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HeartbeatInterval() != 10*time.Second {
		t.Errorf("heartbeat interval = %v, want 10s", cfg.HeartbeatInterval())
	}
	if cfg.SaveInterval() != 5*time.Minute {
		t.Errorf("save interval = %v, want 5m", cfg.SaveInterval())
	}

	cfg.Heartbeat.SaveIntervalSeconds = 0
	if cfg.SaveInterval() != 0 {
		t.Error("zero save interval should disable periodic saves")
	}
}
