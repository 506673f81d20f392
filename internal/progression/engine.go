// Package progression implements the per-character experience engine: field
// experience accrual, pool sizing, pulse conversion, and the offline
// catch-up drain applied at login.
package progression

import (
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
)

// Params holds the progression tuning constants. The offline drain values
// are deliberate design parameters rather than derived numbers, so they are
// configuration, not code.
type Params struct {
	// PulseBaseline is the pulse interval for a baseline character.
	PulseBaseline time.Duration
	// PulseMinimum is the floor the interval shrinks toward with high
	// wisdom and discipline.
	PulseMinimum time.Duration
	// OfflineDrainDelay is how long a character must be offline before the
	// login catch-up drain applies at all.
	OfflineDrainDelay time.Duration
	// OfflineDrainRate is the fraction of each pool drained per
	// OfflineDrainWindow of offline time beyond the delay.
	OfflineDrainRate float64
	// OfflineDrainWindow is the time span the drain rate is expressed over.
	OfflineDrainWindow time.Duration
}

// DefaultParams returns the stock tuning: 5 minute pulses down to 2, and an
// offline drain of 60% per 6 hours starting 8 hours after logout.
func DefaultParams() Params {
	return Params{
		PulseBaseline:      5 * time.Minute,
		PulseMinimum:       2 * time.Minute,
		OfflineDrainDelay:  8 * time.Hour,
		OfflineDrainRate:   0.6,
		OfflineDrainWindow: 6 * time.Hour,
	}
}

// poolCurve holds the per-tier constants of the pool capacity formula
// scale*rank/(rank+divisor) + offset.
type poolCurve struct {
	scale   float64
	divisor float64
	offset  float64
}

var poolCurves = map[skills.Placement]poolCurve{
	skills.PlacementPrimary:   {scale: 15000, divisor: 900, offset: 1000},
	skills.PlacementSecondary: {scale: 12750, divisor: 900, offset: 850},
	skills.PlacementTertiary:  {scale: 10500, divisor: 900, offset: 700},
	skills.PlacementOther:     {scale: 8000, divisor: 900, offset: 500},
}

// Engine drives one character's progression. It owns the character's skill
// groups and is invoked synchronously from the game loop; nothing here
// blocks or spawns work.
type Engine struct {
	characterName string
	groups        map[skills.Placement]*skills.SkillGroup
	attrs         stats.AttributeSource
	params        Params

	// LastLogout is set on logout and consumed (cleared) by the next
	// OnLogin, so one offline interval can never drain twice.
	LastLogout *time.Time
}

// NewEngine creates an engine over the character's skill groups. attrs may
// be nil; every attribute-derived modifier then degrades to its baseline.
func NewEngine(characterName string, groups map[skills.Placement]*skills.SkillGroup, attrs stats.AttributeSource, params Params) *Engine {
	if groups == nil {
		groups = make(map[skills.Placement]*skills.SkillGroup)
	}
	return &Engine{
		characterName: characterName,
		groups:        groups,
		attrs:         attrs,
		params:        params,
	}
}

// Params returns the engine's tuning constants.
func (e *Engine) Params() Params {
	return e.params
}

// Group returns the skill group at a placement tier, or nil.
func (e *Engine) Group(placement skills.Placement) *skills.SkillGroup {
	return e.groups[placement]
}

// Groups returns the engine's groups in tier precedence order.
func (e *Engine) Groups() []*skills.SkillGroup {
	var result []*skills.SkillGroup
	for _, placement := range skills.AllPlacements() {
		if g, ok := e.groups[placement]; ok {
			result = append(result, g)
		}
	}
	return result
}

// FindSkill locates a skill across all groups. The second return is the
// owning group's placement tier.
func (e *Engine) FindSkill(name string) (*skills.Skill, skills.Placement, bool) {
	for _, placement := range skills.AllPlacements() {
		g, ok := e.groups[placement]
		if !ok {
			continue
		}
		if skill := g.Skill(name); skill != nil {
			return skill, placement, true
		}
	}
	return nil, "", false
}

// AddFieldExp adds field experience to a skill's pool. Returns false when
// the character's class never placed the skill. The owning group's pulse
// timer is armed on first activity so the cadence starts from the moment of
// training, not character creation.
func (e *Engine) AddFieldExp(now time.Time, skillName string, amount int, source string) bool {
	skill, placement, ok := e.FindSkill(skillName)
	if !ok {
		logger.Warning("Field experience for unknown skill",
			"character", e.characterName, "skill", skillName, "source", source)
		return false
	}

	skill.AddFieldExp(amount)
	t := now
	skill.LastTrained = &t
	e.groups[placement].ArmPulseTimer(now)

	logger.Debug("Field experience added",
		"character", e.characterName, "skill", skillName, "bits", amount, "source", source)
	return true
}

// attrCurve maps an attribute score onto [0,1]: no effect at or below the
// baseline of 10, full effect at 100.
func (e *Engine) attrCurve(name string) float64 {
	value := stats.BaselineAttribute
	if e.attrs != nil {
		if v, ok := e.attrs.Attribute(name); ok {
			value = v
		}
	}

	mod := float64(value-stats.BaselineAttribute) / 90.0
	if mod < 0 {
		return 0
	}
	if mod > 1 {
		return 1
	}
	return mod
}

// PoolCapacity returns the maximum bits a skill's pool holds before it mind
// locks. Base capacity is a saturating function of rank scaled by tier;
// intelligence adds up to 30% and discipline a tenth of that.
func (e *Engine) PoolCapacity(skill *skills.Skill, placement skills.Placement) int {
	curve, ok := poolCurves[placement]
	if !ok {
		curve = poolCurves[skills.PlacementTertiary]
	}

	rank := float64(skill.IntRank())
	base := curve.scale*rank/(rank+curve.divisor) + curve.offset

	intBonus := e.attrCurve(stats.Intelligence) * 0.3
	discBonus := e.attrCurve(stats.Discipline) * 0.3 * 0.1

	return int(base * (1.0 + intBonus + discBonus))
}

// PulseInterval returns the time between pool pulses: 5 minutes at
// baseline, shrinking toward 2 with wisdom (full weight) and discipline
// (10% weight).
func (e *Engine) PulseInterval() time.Duration {
	modifier := e.attrCurve(stats.Wisdom) + e.attrCurve(stats.Discipline)*0.1
	if modifier > 1 {
		modifier = 1
	}

	span := e.params.PulseBaseline - e.params.PulseMinimum
	interval := e.params.PulseBaseline - time.Duration(modifier*float64(span))

	if interval < e.params.PulseMinimum {
		interval = e.params.PulseMinimum
	}
	if interval > e.params.PulseBaseline {
		interval = e.params.PulseBaseline
	}
	return interval
}

// drainBonus is the attribute modifier applied to the per-tier drain
// fraction. Same wisdom/discipline weighting as PulseInterval.
func (e *Engine) drainBonus() float64 {
	return e.attrCurve(stats.Wisdom) + e.attrCurve(stats.Discipline)*0.1
}

// Tick runs every due pulse and returns the positive rank deltas. Interval
// and drain bonus are computed once for the whole pass. Calling Tick twice
// at the same instant is a no-op the second time: every pulsed group's
// timer was just stamped.
func (e *Engine) Tick(now time.Time) []skills.RankDelta {
	interval := e.PulseInterval()
	bonus := e.drainBonus()

	var deltas []skills.RankDelta
	for _, placement := range skills.AllPlacements() {
		group, ok := e.groups[placement]
		if !ok {
			continue
		}
		if !group.ShouldPulse(now, interval) {
			continue
		}
		pulsed := group.Pulse(now, bonus)
		if len(pulsed) > 0 {
			deltas = append(deltas, pulsed...)
			logger.Debug("Skill group pulsed",
				"character", e.characterName, "group", group.Name, "deltas", len(pulsed))
		}
	}
	return deltas
}

// OnLogin applies the offline catch-up drain and returns any rank deltas.
// Characters offline less than the drain delay get nothing; beyond it, a
// bounded fraction of every pool converts directly, bypassing the tier
// drain rates. The recorded logout is consumed immediately so the same
// offline interval can never drain twice.
func (e *Engine) OnLogin(now time.Time) []skills.RankDelta {
	if e.LastLogout == nil {
		return nil
	}

	elapsed := now.Sub(*e.LastLogout)
	e.LastLogout = nil

	if elapsed < e.params.OfflineDrainDelay {
		return nil
	}

	hoursOver := (elapsed - e.params.OfflineDrainDelay).Hours()
	windowHours := e.params.OfflineDrainWindow.Hours()
	fraction := e.params.OfflineDrainRate * (hoursOver / windowHours)
	if fraction > 1.0 {
		fraction = 1.0
	}

	var deltas []skills.RankDelta
	for _, group := range e.Groups() {
		for _, skill := range group.Skills() {
			if skill.FieldExp <= 0 {
				continue
			}
			bitsToDrain := int(fraction * float64(skill.FieldExp))
			oldRank := skill.Rank
			skill.ConvertExperienceToRank(bitsToDrain)
			if skill.Rank > oldRank {
				deltas = append(deltas, skills.RankDelta{Skill: skill.Name, OldRank: oldRank, NewRank: skill.Rank})
			}
		}
	}

	logger.Always("Offline drain applied",
		"character", e.characterName,
		"offline_hours", elapsed.Hours(),
		"fraction", fraction,
		"rank_ups", len(deltas))
	return deltas
}

// OnLogout records the logout time for the next login's catch-up drain.
func (e *Engine) OnLogout(now time.Time) {
	t := now
	e.LastLogout = &t
}

// PoolStatus returns the display bucket for a skill's pool.
func (e *Engine) PoolStatus(skillName string) (skills.PoolBucket, bool) {
	skill, placement, ok := e.FindSkill(skillName)
	if !ok {
		return "", false
	}
	capacity := e.PoolCapacity(skill, placement)
	return skills.BucketForPool(skill.FieldExp, capacity), true
}

// SkillRank returns a skill's full rank, or 0 if the character's class
// never placed it.
func (e *Engine) SkillRank(name string) float64 {
	if skill, _, ok := e.FindSkill(name); ok {
		return skill.Rank
	}
	return 0
}

// FieldExp returns a skill's current pool, 0 for unplaced skills.
func (e *Engine) FieldExp(name string) int {
	if skill, _, ok := e.FindSkill(name); ok {
		return skill.FieldExp
	}
	return 0
}

// IntRank returns a skill's whole-rank part, 0 for unplaced skills.
func (e *Engine) IntRank(name string) int {
	return int(e.SkillRank(name))
}

// TotalRanks sums the integer ranks of every skill the character has.
func (e *Engine) TotalRanks() int {
	total := 0
	for _, group := range e.Groups() {
		for _, skill := range group.Skills() {
			total += skill.IntRank()
		}
	}
	return total
}
