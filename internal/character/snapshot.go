package character

import (
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/leveling"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
)

// Snapshot is everything the storage layer needs to bring a character
// back exactly as it left: skills, group pulse timers, level, TDP
// counters, attributes, and the logout stamp the catch-up drain reads.
type Snapshot struct {
	Name         string                 `json:"name"`
	Class        string                 `json:"class"`
	Level        int                    `json:"level"`
	TDPAvailable int                    `json:"tdp_available"`
	TDPSpent     int                    `json:"tdp_spent"`
	Attributes   map[string]int         `json:"attributes"`
	LastLogout   *time.Time             `json:"last_logout,omitempty"`
	Groups       []skills.GroupSnapshot `json:"groups"`
}

// Snapshot serializes the character's persistent state.
func (c *Character) Snapshot() Snapshot {
	snap := Snapshot{
		Name:         c.Name,
		Class:        c.ClassName,
		Level:        c.Ladder.CurrentLevel(),
		TDPAvailable: c.TDP.Available,
		TDPSpent:     c.TDP.Spent,
		Attributes:   c.Attributes.All(),
	}
	if c.Engine.LastLogout != nil {
		t := *c.Engine.LastLogout
		snap.LastLogout = &t
	}
	for _, group := range c.Engine.Groups() {
		snap.Groups = append(snap.Groups, group.Snapshot())
	}
	return snap
}

// Restore rebuilds a character from a snapshot. The class config supplies
// the level ladder; group and skill state comes entirely from the
// snapshot so ranks survive class file edits.
func Restore(snap Snapshot, ladder *leveling.Ladder, params progression.Params) *Character {
	c := &Character{
		Name:       snap.Name,
		ClassName:  snap.Class,
		Attributes: stats.NewAttributes(),
	}
	for name, value := range snap.Attributes {
		c.Attributes.Set(name, value)
	}
	c.TDP = stats.Pool{Available: snap.TDPAvailable, Spent: snap.TDPSpent}

	groups := make(map[skills.Placement]*skills.SkillGroup)
	for _, groupSnap := range snap.Groups {
		group := skills.RestoreGroup(groupSnap)
		groups[group.Placement] = group
	}
	c.Engine = progression.NewEngine(snap.Name, groups, c.Attributes, params)
	if snap.LastLogout != nil {
		t := *snap.LastLogout
		c.Engine.LastLogout = &t
	}

	c.Ladder = ladder
	if c.Ladder == nil {
		c.Ladder = leveling.NewLadder(snap.Name, nil)
	}
	c.Ladder.SetLevel(snap.Level)
	return c
}
