// Package leveling implements the class-derived level ladder: skill-rank
// requirements per level and the cascading advancement check.
package leveling

import (
	"sort"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
)

// Level bounds. Level 250 is terminal; CheckAdvance is a permanent no-op
// there.
const (
	MinLevel = 1
	MaxLevel = 250
)

// RankLookup resolves a skill name to the character's current integer rank,
// returning 0 for skills the character has never trained.
type RankLookup func(skillName string) int

// Requirement is one skill-rank gate on a level. Bonus requirements still
// gate advancement but don't count toward the progress percentage.
type Requirement struct {
	Skill string
	Rank  int
	Bonus bool
}

// Met reports whether the character's rank satisfies this requirement.
func (r Requirement) Met(actualRank int) bool {
	return actualRank >= r.Rank
}

// Unmet describes a requirement the character has not satisfied yet.
type Unmet struct {
	Skill    string
	Required int
	Actual   int
}

// Definition is one level's requirements and reward.
type Definition struct {
	Level        int
	Requirements []Requirement
	TDPReward    int
}

// Met evaluates every requirement. The unmet list is ordered the way the
// requirements were defined.
func (d *Definition) Met(ranks RankLookup) (bool, []Unmet) {
	var unmet []Unmet
	for _, req := range d.Requirements {
		actual := ranks(req.Skill)
		if !req.Met(actual) {
			unmet = append(unmet, Unmet{Skill: req.Skill, Required: req.Rank, Actual: actual})
		}
	}
	return len(unmet) == 0, unmet
}

// Progress returns how close the character is to this level as a
// percentage: met ranks capped at each requirement, over total required.
// Bonus requirements are excluded from both sides.
func (d *Definition) Progress(ranks RankLookup) float64 {
	totalRequired := 0
	metRanks := 0
	for _, req := range d.Requirements {
		if req.Bonus {
			continue
		}
		totalRequired += req.Rank
		actual := ranks(req.Skill)
		if actual > req.Rank {
			actual = req.Rank
		}
		metRanks += actual
	}

	if totalRequired <= 0 {
		return 100.0
	}
	return float64(metRanks) / float64(totalRequired) * 100.0
}

// Ladder is one character's level state and level table.
type Ladder struct {
	characterName string
	currentLevel  int
	definitions   map[int]*Definition
}

// NewLadder creates a ladder at level 1 over the given definitions.
// Definitions outside [MinLevel, MaxLevel] are dropped with a warning.
func NewLadder(characterName string, definitions []*Definition) *Ladder {
	l := &Ladder{
		characterName: characterName,
		currentLevel:  MinLevel,
		definitions:   make(map[int]*Definition, len(definitions)),
	}
	for _, def := range definitions {
		if def.Level < MinLevel || def.Level > MaxLevel {
			logger.Warning("Level definition out of range dropped",
				"character", characterName, "level", def.Level)
			continue
		}
		l.definitions[def.Level] = def
	}
	return l
}

// CurrentLevel returns the character's level.
func (l *Ladder) CurrentLevel() int {
	return l.currentLevel
}

// Definition returns the level definition for a level number, or nil.
func (l *Ladder) Definition(level int) *Definition {
	return l.definitions[level]
}

// Levels returns every defined level number, sorted.
func (l *Ladder) Levels() []int {
	levels := make([]int, 0, len(l.definitions))
	for level := range l.definitions {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// CheckAdvance advances the character while the next level's requirements
// are all met, crediting each gained level's TDP reward. A single call can
// cascade through several levels when ranks already exceed multiple
// thresholds, as after a large offline drain. Returns true if at least one
// level was gained.
func (l *Ladder) CheckAdvance(ranks RankLookup, ledger stats.TDPLedger) bool {
	advanced := false

	for {
		next := l.currentLevel + 1
		if next > MaxLevel {
			break
		}
		def, ok := l.definitions[next]
		if !ok {
			break
		}
		met, _ := def.Met(ranks)
		if !met {
			break
		}

		l.currentLevel = next
		advanced = true
		if def.TDPReward > 0 && ledger != nil {
			ledger.CreditTDP(def.TDPReward)
		}
		logger.Always("Level advanced",
			"character", l.characterName, "level", next, "tdp_reward", def.TDPReward)
	}

	return advanced
}

// Progress returns the percentage toward the next level and its unmet
// requirements. A character at the cap, or with no next definition, reads
// 100% with nothing unmet.
func (l *Ladder) Progress(ranks RankLookup) (float64, []Unmet) {
	next := l.currentLevel + 1
	if next > MaxLevel {
		return 100.0, nil
	}
	def, ok := l.definitions[next]
	if !ok {
		return 100.0, nil
	}

	_, unmet := def.Met(ranks)
	return def.Progress(ranks), unmet
}

// SetLevel sets the level directly, clamped to the valid range. Admin use
// only; normal play never lowers a level.
func (l *Ladder) SetLevel(level int) {
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	l.currentLevel = level
}

// Snapshot is the persisted ladder state. Definitions are rebuilt from
// class configuration at load, so only the level survives.
type Snapshot struct {
	CurrentLevel int `json:"current_level"`
}

// Snapshot serializes the ladder's persistent state.
func (l *Ladder) Snapshot() Snapshot {
	return Snapshot{CurrentLevel: l.currentLevel}
}

// RestoreSnapshot applies a saved level, clamped to the valid range.
func (l *Ladder) RestoreSnapshot(snap Snapshot) {
	l.SetLevel(snap.CurrentLevel)
}
