// Package balance provides simulation tools for progression pacing.
package balance

import (
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
)

// TrainingConfig describes one simulated training regimen.
type TrainingConfig struct {
	// Placement is the skill's tier in the simulated class.
	Placement skills.Placement

	// BitsPerMinute is how fast the simulated player earns field
	// experience while training.
	BitsPerMinute int

	// HoursPerDay is how long the player trains each day; the pool keeps
	// draining while they are online but idle.
	HoursPerDay float64

	// Attributes applied to the simulated character. Nil means baseline.
	Attributes map[string]int

	// TargetRank ends the simulation.
	TargetRank int

	// MaxDays bounds the simulation for unreachable targets.
	MaxDays int
}

// TrainingResult reports how the regimen played out.
type TrainingResult struct {
	Days        float64
	Pulses      int
	BitsEarned  int
	FinalRank   float64
	TDPEarned   int
	HitMaxDays  bool
}

// SimulateTraining steps a single-skill character through the regimen
// minute by minute and reports time to the target rank. The simulated
// player banks experience during training hours and stays online for the
// rest of the day so pulses keep draining the pool.
func SimulateTraining(cfg TrainingConfig) TrainingResult {
	attrs := stats.NewAttributes()
	for name, value := range cfg.Attributes {
		attrs.Set(name, value)
	}

	group := skills.NewSkillGroup("Simulated "+cfg.Placement.String(), cfg.Placement)
	group.AddSkill("Simulated Skill")
	skill := group.Skill("Simulated Skill")
	groups := map[skills.Placement]*skills.SkillGroup{cfg.Placement: group}
	engine := progression.NewEngine("simulated", groups, attrs, progression.DefaultParams())

	if cfg.MaxDays <= 0 {
		cfg.MaxDays = 365
	}

	var result TrainingResult
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := now.Add(time.Duration(cfg.MaxDays) * 24 * time.Hour)

	for skill.IntRank() < cfg.TargetRank {
		if !now.Before(end) {
			result.HitMaxDays = true
			break
		}

		minuteOfDay := now.Hour()*60 + now.Minute()
		training := float64(minuteOfDay) < cfg.HoursPerDay*60
		if training && cfg.BitsPerMinute > 0 {
			engine.AddFieldExp(now, skill.Name, cfg.BitsPerMinute, "simulation")
			result.BitsEarned += cfg.BitsPerMinute
		}

		before := skill.Rank
		deltas := engine.Tick(now)
		if skill.Rank > before {
			result.Pulses++
		}
		for _, delta := range deltas {
			result.TDPEarned += progression.TDPForRankGain(delta.OldRank, delta.NewRank)
		}

		now = now.Add(time.Minute)
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	result.Days = now.Sub(start).Hours() / 24
	result.FinalRank = skill.Rank
	return result
}
