package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
)

// ServerConfig holds server-wide configuration settings.
type ServerConfig struct {
	Data        DataConfig        `yaml:"data"`
	Heartbeat   HeartbeatConfig   `yaml:"heartbeat"`
	Progression ProgressionConfig `yaml:"progression"`
}

// DataConfig points the server at its game data files.
type DataConfig struct {
	// SkillsFile is the path to the skill catalog YAML.
	SkillsFile string `yaml:"skills_file"`

	// ClassesDir is the directory of class definition YAML files.
	ClassesDir string `yaml:"classes_dir"`
}

// HeartbeatConfig controls the main game loop cadence.
type HeartbeatConfig struct {
	// IntervalSeconds is how often resident characters are ticked.
	IntervalSeconds int `yaml:"interval_seconds"`

	// SaveIntervalSeconds is how often resident characters are flushed
	// to the database. 0 disables periodic saves (shutdown still saves).
	SaveIntervalSeconds int `yaml:"save_interval_seconds"`
}

// ProgressionConfig holds the experience engine's tunable constants. The
// defaults are the values the game balance was built around; they are
// exposed here for test shards and private servers, not for live tweaking.
type ProgressionConfig struct {
	// PulseBaselineSeconds is the pulse interval with baseline attributes.
	PulseBaselineSeconds int `yaml:"pulse_baseline_seconds"`

	// PulseMinimumSeconds is the interval floor at full attribute bonus.
	PulseMinimumSeconds int `yaml:"pulse_minimum_seconds"`

	// OfflineDrainDelayHours is how long a character must be offline
	// before the login catch-up drain applies at all.
	OfflineDrainDelayHours int `yaml:"offline_drain_delay_hours"`

	// OfflineDrainRate scales the catch-up drain fraction.
	OfflineDrainRate float64 `yaml:"offline_drain_rate"`

	// OfflineDrainWindowHours is the hours-over-delay that reach a full
	// drain at the default rate.
	OfflineDrainWindowHours int `yaml:"offline_drain_window_hours"`
}

// DefaultConfig returns a ServerConfig with the stock game balance.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Data: DataConfig{
			SkillsFile: "data/skills.yaml",
			ClassesDir: "data/classes",
		},
		Heartbeat: HeartbeatConfig{
			IntervalSeconds:     10,
			SaveIntervalSeconds: 300,
		},
		Progression: ProgressionConfig{
			PulseBaselineSeconds:    300,
			PulseMinimumSeconds:     120,
			OfflineDrainDelayHours:  8,
			OfflineDrainRate:        0.6,
			OfflineDrainWindowHours: 6,
		},
	}
}

// LoadConfig loads server configuration from a YAML file, then applies
// environment overrides. A missing file is not an error; the defaults
// stand.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.applyEnvOverrides()
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	config.applyEnvOverrides()
	return config, nil
}

// applyEnvOverrides lets deployment environments override the file
// without editing it.
func (c *ServerConfig) applyEnvOverrides() {
	if v := os.Getenv("MUD_SKILLS_FILE"); v != "" {
		c.Data.SkillsFile = v
	}
	if v := os.Getenv("MUD_CLASSES_DIR"); v != "" {
		c.Data.ClassesDir = v
	}
	if v := os.Getenv("MUD_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Heartbeat.IntervalSeconds = n
		}
	}
}

// HeartbeatInterval returns the game loop cadence as a duration.
func (c *ServerConfig) HeartbeatInterval() time.Duration {
	seconds := c.Heartbeat.IntervalSeconds
	if seconds <= 0 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}

// SaveInterval returns the periodic save cadence, or 0 when disabled.
func (c *ServerConfig) SaveInterval() time.Duration {
	if c.Heartbeat.SaveIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Heartbeat.SaveIntervalSeconds) * time.Second
}

// Params converts the progression section into engine parameters,
// falling back to the stock values for anything unset or nonsense.
func (c *ProgressionConfig) Params() progression.Params {
	params := progression.DefaultParams()
	if c.PulseBaselineSeconds > 0 {
		params.PulseBaseline = time.Duration(c.PulseBaselineSeconds) * time.Second
	}
	if c.PulseMinimumSeconds > 0 {
		params.PulseMinimum = time.Duration(c.PulseMinimumSeconds) * time.Second
	}
	if params.PulseMinimum > params.PulseBaseline {
		params.PulseMinimum = params.PulseBaseline
	}
	if c.OfflineDrainDelayHours > 0 {
		params.OfflineDrainDelay = time.Duration(c.OfflineDrainDelayHours) * time.Hour
	}
	if c.OfflineDrainRate > 0 {
		params.OfflineDrainRate = c.OfflineDrainRate
	}
	if c.OfflineDrainWindowHours > 0 {
		params.OfflineDrainWindow = time.Duration(c.OfflineDrainWindowHours) * time.Hour
	}
	return params
}
