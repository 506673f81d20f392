// Package character defines the character entity: an explicit composition
// of attributes, a TDP pool, the experience engine, and the level ladder.
package character

import (
	"fmt"
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/class"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/leveling"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
)

// Character owns all progression state for one player or NPC. Each
// character's state is touched only by the game loop, so no locking is
// needed here.
type Character struct {
	Name       string
	ClassName  string
	Attributes *stats.Attributes
	TDP        stats.Pool
	Engine     *progression.Engine
	Ladder     *leveling.Ladder
}

// New creates a character of the given class. Skill groups and the level
// ladder derive from the class config, validated against the catalog.
func New(name string, cfg *class.Config, catalog *skills.Catalog, params progression.Params) (*Character, error) {
	if name == "" {
		return nil, fmt.Errorf("character needs a name")
	}
	if cfg == nil {
		return nil, fmt.Errorf("character %s needs a class config", name)
	}

	c := &Character{
		Name:       name,
		ClassName:  cfg.ClassName,
		Attributes: stats.NewAttributes(),
	}
	groups := class.BuildGroups(cfg, catalog)
	c.Engine = progression.NewEngine(name, groups, c.Attributes, params)
	c.Ladder = class.BuildLadder(name, cfg)

	logger.Info("Character progression initialized",
		"character", name, "class", cfg.ClassName, "groups", len(groups))
	return c, nil
}

// AddFieldExp banks field experience on a skill. Returns false when the
// character's class never placed the skill.
func (c *Character) AddFieldExp(skillName string, amount int, source string) bool {
	return c.Engine.AddFieldExp(time.Now(), skillName, amount, source)
}

// Tick runs the character's due pulses, pays TDP for any whole ranks
// gained, and checks for level advancement. Called once per server
// heartbeat.
func (c *Character) Tick(now time.Time) []skills.RankDelta {
	deltas := c.Engine.Tick(now)
	c.applyMilestones(deltas)
	return deltas
}

// OnLogin applies the offline catch-up drain, then feeds its rank gains
// through the same TDP and level pipeline as a normal pulse.
func (c *Character) OnLogin(now time.Time) []skills.RankDelta {
	deltas := c.Engine.OnLogin(now)
	c.applyMilestones(deltas)
	return deltas
}

// OnLogout records the logout time for the next login's catch-up.
func (c *Character) OnLogout(now time.Time) {
	c.Engine.OnLogout(now)
}

// applyMilestones credits TDP for integer ranks crossed and runs the
// cascade check once for the batch.
func (c *Character) applyMilestones(deltas []skills.RankDelta) {
	for _, delta := range deltas {
		tdp := progression.TDPForRankGain(delta.OldRank, delta.NewRank)
		if tdp > 0 {
			c.TDP.CreditTDP(tdp)
			logger.Always("Skill ranked up",
				"character", c.Name, "skill", delta.Skill,
				"old_rank", delta.OldRank, "new_rank", delta.NewRank, "tdp", tdp)
		}
	}
	if len(deltas) > 0 {
		c.CheckAdvance()
	}
}

// CheckAdvance runs the cascading level check against current ranks.
func (c *Character) CheckAdvance() bool {
	return c.Ladder.CheckAdvance(c.Engine.IntRank, &c.TDP)
}

// SkillRank returns a skill's full rank, 0 for skills the class never
// placed.
func (c *Character) SkillRank(name string) float64 {
	return c.Engine.SkillRank(name)
}

// IntRank returns a skill's whole-rank part.
func (c *Character) IntRank(name string) int {
	return c.Engine.IntRank(name)
}

// PoolStatus returns a skill's pool bucket for display.
func (c *Character) PoolStatus(name string) (skills.PoolBucket, bool) {
	return c.Engine.PoolStatus(name)
}

// Level returns the character's current level.
func (c *Character) Level() int {
	return c.Ladder.CurrentLevel()
}

// LevelProgress returns the percentage toward the next level and its unmet
// requirements.
func (c *Character) LevelProgress() (float64, []leveling.Unmet) {
	return c.Ladder.Progress(c.Engine.IntRank)
}

// TotalRanks sums the integer ranks across every skill.
func (c *Character) TotalRanks() int {
	return c.Engine.TotalRanks()
}
