package skills

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Placement is the tier a class assigns a skill group: it controls how large
// the group's pools grow and how fast they drain.
type Placement string

const (
	PlacementPrimary   Placement = "primary"
	PlacementSecondary Placement = "secondary"
	PlacementTertiary  Placement = "tertiary"
	PlacementOther     Placement = "other"
)

// AllPlacements returns every placement tier in precedence order.
func AllPlacements() []Placement {
	return []Placement{PlacementPrimary, PlacementSecondary, PlacementTertiary, PlacementOther}
}

// IsValid returns true if the placement is a known tier.
func (p Placement) IsValid() bool {
	switch p {
	case PlacementPrimary, PlacementSecondary, PlacementTertiary, PlacementOther:
		return true
	default:
		return false
	}
}

// String returns the display name of the placement.
func (p Placement) String() string {
	switch p {
	case PlacementPrimary:
		return "Primary"
	case PlacementSecondary:
		return "Secondary"
	case PlacementTertiary:
		return "Tertiary"
	case PlacementOther:
		return "Other"
	default:
		return string(p)
	}
}

// ParsePlacement parses a string into a Placement, case-insensitive.
// "else" is accepted as a legacy spelling of the other tier.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return PlacementPrimary, nil
	case "secondary":
		return PlacementSecondary, nil
	case "tertiary":
		return PlacementTertiary, nil
	case "other", "else":
		return PlacementOther, nil
	default:
		return "", fmt.Errorf("unknown placement: %s", s)
	}
}

// DrainFraction returns the base fraction of each pool a pulse converts for
// this tier.
func (p Placement) DrainFraction() float64 {
	switch p {
	case PlacementPrimary:
		return 0.05
	case PlacementSecondary:
		return 0.04
	case PlacementTertiary:
		return 0.03
	default:
		return 0.02
	}
}

// RankDelta reports one skill's rank change from a pulse or offline drain.
type RankDelta struct {
	Skill   string
	OldRank float64
	NewRank float64
}

// SkillGroup bundles the skills that share one pulse timer and one
// placement tier. A skill belongs to exactly one group per character.
type SkillGroup struct {
	Name          string
	Placement     Placement
	LastPulseTime *time.Time

	skills map[string]*Skill
}

// NewSkillGroup creates an empty group. LastPulseTime starts nil: the group
// never drains until the first field experience arms its timer.
func NewSkillGroup(name string, placement Placement) *SkillGroup {
	return &SkillGroup{
		Name:      name,
		Placement: placement,
		skills:    make(map[string]*Skill),
	}
}

// AddSkill adds a skill to the group. Returns false if the name is already
// present. Validation against the catalog belongs to the caller assembling
// the character's skill set.
func (g *SkillGroup) AddSkill(name string) bool {
	if _, exists := g.skills[name]; exists {
		return false
	}
	g.skills[name] = NewSkill(name)
	return true
}

// Skill returns the named skill, or nil if the group doesn't own it.
func (g *SkillGroup) Skill(name string) *Skill {
	return g.skills[name]
}

// Skills returns the group's skills sorted by name.
func (g *SkillGroup) Skills() []*Skill {
	names := make([]string, 0, len(g.skills))
	for name := range g.skills {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]*Skill, len(names))
	for i, name := range names {
		result[i] = g.skills[name]
	}
	return result
}

// Len returns the number of skills in the group.
func (g *SkillGroup) Len() int {
	return len(g.skills)
}

// ArmPulseTimer starts the pulse cadence at the given time if it is not
// already running. Called on the first field experience so an idle group
// doesn't owe pulses dating back to character creation.
func (g *SkillGroup) ArmPulseTimer(now time.Time) {
	if g.LastPulseTime == nil {
		t := now
		g.LastPulseTime = &t
	}
}

// ShouldPulse reports whether the group's pulse is due. A group whose timer
// was never armed never pulses.
func (g *SkillGroup) ShouldPulse(now time.Time, interval time.Duration) bool {
	if g.LastPulseTime == nil {
		return false
	}
	return now.Sub(*g.LastPulseTime) >= interval
}

// PulseFraction returns the fraction of each pool this pulse converts:
// the tier's base rate scaled by the attribute-derived drain bonus.
func (g *SkillGroup) PulseFraction(drainBonus float64) float64 {
	return g.Placement.DrainFraction() * (1.0 + drainBonus*0.5)
}

// Pulse converts a bounded fraction of every nonzero pool into rank and
// returns the positive rank deltas. The timer is stamped even when every
// pool is empty, so an idle group does not owe a burst pulse later.
// The caller decides whether the pulse is due; Pulse itself only checks the
// armed timer.
func (g *SkillGroup) Pulse(now time.Time, drainBonus float64) []RankDelta {
	if g.LastPulseTime == nil {
		return nil
	}

	fraction := g.PulseFraction(drainBonus)
	var deltas []RankDelta

	for _, skill := range g.Skills() {
		if skill.FieldExp <= 0 {
			continue
		}
		bitsToDrain := int(fraction * float64(skill.FieldExp))
		oldRank := skill.Rank
		skill.ConvertExperienceToRank(bitsToDrain)
		if skill.Rank > oldRank {
			deltas = append(deltas, RankDelta{Skill: skill.Name, OldRank: oldRank, NewRank: skill.Rank})
		}
	}

	t := now
	g.LastPulseTime = &t
	return deltas
}
