package skills

import "time"

// Rank bounds. Rank is a real number whose integer part is the earned whole
// rank and whose fraction is partial progress toward the next one.
const (
	MinRank = 0
	MaxRank = 3000
)

// BaseRankCost is the bit cost of the very first rank; each further rank
// costs one bit more, so the cumulative cost curve is convex.
const BaseRankCost = 200

// Skill is one skill's per-character state: permanent rank plus the
// field-experience pool waiting to be absorbed into it. Placement is not
// stored here; the character's class decides which group owns the skill.
type Skill struct {
	Name        string
	Rank        float64
	FieldExp    int
	LastTrained *time.Time
}

// NewSkill creates a skill at rank 0 with an empty pool.
func NewSkill(name string) *Skill {
	return &Skill{Name: name}
}

// BitsToNextRank returns the marginal bit cost to advance one whole rank
// from the current integer rank.
func (s *Skill) BitsToNextRank() int {
	return BaseRankCost + int(s.Rank)
}

// bitsToRankFrom returns the marginal cost at an arbitrary integer rank,
// used while stepping through multi-rank conversions.
func bitsToRankFrom(rank int) int {
	return BaseRankCost + rank
}

// TotalBitsToRank returns the cumulative bits needed to climb from rank 0
// to the target integer rank.
func (s *Skill) TotalBitsToRank(target int) int {
	total := 0
	for n := 0; n < target; n++ {
		total += bitsToRankFrom(n)
	}
	return total
}

// AddFieldExp adds bits to the field-experience pool. Negative amounts are
// allowed for administrative correction but the pool never goes below zero.
func (s *Skill) AddFieldExp(bits int) {
	s.FieldExp += bits
	if s.FieldExp < 0 {
		s.FieldExp = 0
	}
}

// ConvertExperienceToRank consumes up to bitsToConvert bits from the pool
// and turns them into rank. Whole ranks are bought at their marginal cost in
// order; leftover bits become fractional progress toward the next rank.
// Returns the bits actually consumed. Insufficient bits yield zero rank gain
// and no error.
func (s *Skill) ConvertExperienceToRank(bitsToConvert int) int {
	if s.FieldExp <= 0 || bitsToConvert <= 0 {
		return 0
	}

	bitsConverted := bitsToConvert
	if bitsConverted > s.FieldExp {
		bitsConverted = s.FieldExp
	}
	s.FieldExp -= bitsConverted

	remaining := bitsConverted
	ranksGained := 0
	testRank := int(s.Rank)

	for remaining >= bitsToRankFrom(testRank) {
		remaining -= bitsToRankFrom(testRank)
		ranksGained++
		testRank++
	}

	s.Rank += float64(ranksGained)

	// Leftover bits count as partial progress at the new rank's cost
	if cost := bitsToRankFrom(int(s.Rank)); cost > 0 {
		s.Rank += float64(remaining) / float64(cost)
	}

	if s.Rank > MaxRank {
		s.Rank = MaxRank
	}

	return bitsConverted
}

// PercentToNextRank returns the pool as a percentage of the next rank's
// cost. Display helper only.
func (s *Skill) PercentToNextRank() int {
	bitsToNext := s.BitsToNextRank()
	if bitsToNext <= 0 {
		return 0
	}
	return int(float64(s.FieldExp) / float64(bitsToNext) * 100)
}

// IntRank returns the whole-rank part of the skill's rank.
func (s *Skill) IntRank() int {
	return int(s.Rank)
}
