package skills

import "time"

// SkillSnapshot is the logical field set the storage layer persists for one
// skill. The byte layout belongs to storage; this is the contract.
type SkillSnapshot struct {
	Name        string     `json:"name"`
	Rank        float64    `json:"rank"`
	FieldExp    int        `json:"field_exp"`
	LastTrained *time.Time `json:"last_trained,omitempty"`
}

// GroupSnapshot captures a skill group for persistence.
type GroupSnapshot struct {
	Name          string          `json:"name"`
	Placement     string          `json:"placement"`
	LastPulseTime *time.Time      `json:"last_pulse_time,omitempty"`
	Skills        []SkillSnapshot `json:"skills"`
}

// Snapshot serializes the skill's persistent fields.
func (s *Skill) Snapshot() SkillSnapshot {
	return SkillSnapshot{
		Name:        s.Name,
		Rank:        s.Rank,
		FieldExp:    s.FieldExp,
		LastTrained: copyTime(s.LastTrained),
	}
}

// RestoreSkill rebuilds a skill from its snapshot.
func RestoreSkill(snap SkillSnapshot) *Skill {
	s := NewSkill(snap.Name)
	s.Rank = snap.Rank
	if s.Rank < MinRank {
		s.Rank = MinRank
	}
	if s.Rank > MaxRank {
		s.Rank = MaxRank
	}
	s.FieldExp = snap.FieldExp
	if s.FieldExp < 0 {
		s.FieldExp = 0
	}
	s.LastTrained = copyTime(snap.LastTrained)
	return s
}

// Snapshot serializes the group and every skill it owns.
func (g *SkillGroup) Snapshot() GroupSnapshot {
	snap := GroupSnapshot{
		Name:          g.Name,
		Placement:     string(g.Placement),
		LastPulseTime: copyTime(g.LastPulseTime),
	}
	for _, skill := range g.Skills() {
		snap.Skills = append(snap.Skills, skill.Snapshot())
	}
	return snap
}

// RestoreGroup rebuilds a group from its snapshot. Unknown placements fall
// back to the other tier rather than failing the load.
func RestoreGroup(snap GroupSnapshot) *SkillGroup {
	placement, err := ParsePlacement(snap.Placement)
	if err != nil {
		placement = PlacementOther
	}

	g := NewSkillGroup(snap.Name, placement)
	g.LastPulseTime = copyTime(snap.LastPulseTime)
	for _, skillSnap := range snap.Skills {
		g.skills[skillSnap.Name] = RestoreSkill(skillSnap)
	}
	return g
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
