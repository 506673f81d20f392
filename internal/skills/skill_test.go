package skills

import (
	"testing"
	"time"
)

func TestBitsToNextRank(t *testing.T) {
	tests := []struct {
		rank     float64
		expected int
	}{
		{0, 200},
		{0.99, 200},
		{1, 201},
		{49, 249},
		{50, 250},
		{100, 300},
		{1000, 1200},
	}

	for _, tt := range tests {
		s := NewSkill("Climbing")
		s.Rank = tt.rank
		if got := s.BitsToNextRank(); got != tt.expected {
			t.Errorf("BitsToNextRank at rank %.2f = %d, want %d", tt.rank, got, tt.expected)
		}
	}
}

func TestTotalBitsToRank(t *testing.T) {
	s := NewSkill("Climbing")
	if got := s.TotalBitsToRank(0); got != 0 {
		t.Errorf("TotalBitsToRank(0) = %d, want 0", got)
	}
	if got := s.TotalBitsToRank(1); got != 200 {
		t.Errorf("TotalBitsToRank(1) = %d, want 200", got)
	}
	// 200 + 201 + 202
	if got := s.TotalBitsToRank(3); got != 603 {
		t.Errorf("TotalBitsToRank(3) = %d, want 603", got)
	}
}

func TestAddFieldExpFloorsAtZero(t *testing.T) {
	s := NewSkill("Climbing")
	s.AddFieldExp(100)
	if s.FieldExp != 100 {
		t.Errorf("FieldExp = %d, want 100", s.FieldExp)
	}

	s.AddFieldExp(-500)
	if s.FieldExp != 0 {
		t.Errorf("FieldExp after oversized negative = %d, want 0", s.FieldExp)
	}
}

func TestConvertExactRankCost(t *testing.T) {
	// Training with exactly BitsToNextRank at rank R yields exactly R+1
	for _, rank := range []int{0, 1, 49, 50, 74, 75, 100} {
		s := NewSkill("Climbing")
		s.Rank = float64(rank)
		cost := s.BitsToNextRank()
		s.AddFieldExp(cost)

		consumed := s.ConvertExperienceToRank(cost)
		if consumed != cost {
			t.Errorf("rank %d: consumed %d bits, want %d", rank, consumed, cost)
		}
		if s.Rank != float64(rank+1) {
			t.Errorf("rank %d: new rank = %v, want %d exactly", rank, s.Rank, rank+1)
		}
		if s.FieldExp != 0 {
			t.Errorf("rank %d: pool = %d, want 0", rank, s.FieldExp)
		}
	}
}

func TestConvertBitsConservation(t *testing.T) {
	tests := []struct {
		name    string
		pool    int
		convert int
	}{
		{"convert less than pool", 500, 300},
		{"convert more than pool", 100, 9999},
		{"convert exactly pool", 250, 250},
		{"zero convert", 250, 0},
		{"negative convert", 250, -50},
		{"empty pool", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSkill("Climbing")
			s.AddFieldExp(tt.pool)
			before := s.FieldExp

			consumed := s.ConvertExperienceToRank(tt.convert)

			if consumed < 0 {
				t.Errorf("consumed %d bits, want >= 0", consumed)
			}
			if tt.convert > 0 && consumed > tt.convert {
				t.Errorf("consumed %d bits, want <= %d requested", consumed, tt.convert)
			}
			if consumed > before {
				t.Errorf("consumed %d bits, want <= %d in pool", consumed, before)
			}
			if s.FieldExp != before-consumed {
				t.Errorf("pool = %d, want %d - %d", s.FieldExp, before, consumed)
			}
		})
	}
}

func TestConvertMultipleRanks(t *testing.T) {
	s := NewSkill("Climbing")
	// Enough for ranks 0->1 (200) and 1->2 (201), plus 100 left over
	s.AddFieldExp(501)

	s.ConvertExperienceToRank(501)

	if s.IntRank() != 2 {
		t.Fatalf("integer rank = %d, want 2", s.IntRank())
	}
	// Remainder becomes fractional progress at the rank-2 cost of 202
	wantFraction := 100.0 / 202.0
	gotFraction := s.Rank - 2
	if diff := gotFraction - wantFraction; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("fractional rank = %v, want %v", gotFraction, wantFraction)
	}
}

func TestConvertInsufficientBits(t *testing.T) {
	s := NewSkill("Climbing")
	s.AddFieldExp(50)

	s.ConvertExperienceToRank(50)

	if s.IntRank() != 0 {
		t.Errorf("integer rank = %d, want 0", s.IntRank())
	}
	if s.Rank <= 0 {
		t.Error("fractional progress expected from partial conversion")
	}
	if s.FieldExp != 0 {
		t.Errorf("pool = %d, want 0", s.FieldExp)
	}
}

func TestConvertRankMonotonic(t *testing.T) {
	s := NewSkill("Climbing")
	last := s.Rank
	for i := 0; i < 50; i++ {
		s.AddFieldExp(137)
		s.ConvertExperienceToRank(100)
		if s.Rank < last {
			t.Fatalf("rank decreased from %v to %v at step %d", last, s.Rank, i)
		}
		last = s.Rank
	}
}

func TestConvertRankCap(t *testing.T) {
	s := NewSkill("Climbing")
	s.Rank = MaxRank - 1
	s.AddFieldExp(1000000)

	s.ConvertExperienceToRank(1000000)

	if s.Rank > MaxRank {
		t.Errorf("rank = %v, want capped at %d", s.Rank, MaxRank)
	}
}

func TestPercentToNextRank(t *testing.T) {
	s := NewSkill("Climbing")
	s.AddFieldExp(100)
	if got := s.PercentToNextRank(); got != 50 {
		t.Errorf("PercentToNextRank = %d, want 50", got)
	}

	s.AddFieldExp(-100)
	if got := s.PercentToNextRank(); got != 0 {
		t.Errorf("PercentToNextRank with empty pool = %d, want 0", got)
	}
}

func TestShouldPulse(t *testing.T) {
	g := NewSkillGroup("Warrior Primary", PlacementPrimary)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	interval := 5 * time.Minute

	if g.ShouldPulse(now, interval) {
		t.Error("group with nil timer should never pulse")
	}

	g.ArmPulseTimer(now)
	if g.ShouldPulse(now, interval) {
		t.Error("group should not pulse immediately after arming")
	}
	if !g.ShouldPulse(now.Add(5*time.Minute), interval) {
		t.Error("group should pulse once the interval elapses")
	}
	if !g.ShouldPulse(now.Add(time.Hour), interval) {
		t.Error("group should pulse after a long gap")
	}
}

func TestArmPulseTimerOnce(t *testing.T) {
	g := NewSkillGroup("Warrior Primary", PlacementPrimary)
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g.ArmPulseTimer(t0)
	g.ArmPulseTimer(t0.Add(time.Hour))

	if !g.LastPulseTime.Equal(t0) {
		t.Errorf("timer re-armed to %v, want kept at %v", g.LastPulseTime, t0)
	}
}

func TestPulseFraction(t *testing.T) {
	tests := []struct {
		placement Placement
		bonus     float64
		expected  float64
	}{
		{PlacementPrimary, 0, 0.05},
		{PlacementSecondary, 0, 0.04},
		{PlacementTertiary, 0, 0.03},
		{PlacementOther, 0, 0.02},
		{PlacementPrimary, 1.0, 0.075},
		{PlacementOther, 0.5, 0.025},
	}

	for _, tt := range tests {
		g := NewSkillGroup("test", tt.placement)
		got := g.PulseFraction(tt.bonus)
		if diff := got - tt.expected; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("%s with bonus %.2f: fraction = %v, want %v", tt.placement, tt.bonus, got, tt.expected)
		}
	}
}

func TestPulseDrainsBoundedFraction(t *testing.T) {
	g := NewSkillGroup("Warrior Primary", PlacementPrimary)
	g.AddSkill("Long Blades")
	g.Skill("Long Blades").AddFieldExp(250)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g.ArmPulseTimer(now)
	pulseAt := now.Add(10 * time.Minute)

	g.Pulse(pulseAt, 0)

	// floor(0.05 * 250) = 12 of 250 bits drained, not the whole pool
	skill := g.Skill("Long Blades")
	if skill.FieldExp != 238 {
		t.Errorf("pool after pulse = %d, want 238", skill.FieldExp)
	}
	if skill.IntRank() != 0 {
		t.Errorf("integer rank = %d, want 0 (12 bits cannot buy rank 1)", skill.IntRank())
	}
	if !g.LastPulseTime.Equal(pulseAt) {
		t.Errorf("LastPulseTime = %v, want %v", g.LastPulseTime, pulseAt)
	}
}

func TestPulseStampsTimerWhenIdle(t *testing.T) {
	g := NewSkillGroup("Warrior Primary", PlacementPrimary)
	g.AddSkill("Long Blades")

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g.ArmPulseTimer(now)
	pulseAt := now.Add(10 * time.Minute)

	deltas := g.Pulse(pulseAt, 0)

	if len(deltas) != 0 {
		t.Errorf("idle pulse produced %d deltas, want 0", len(deltas))
	}
	if !g.LastPulseTime.Equal(pulseAt) {
		t.Error("idle pulse must still reset the timer")
	}
}

func TestPulseReportsDeltas(t *testing.T) {
	g := NewSkillGroup("Warrior Primary", PlacementPrimary)
	g.AddSkill("Long Blades")
	g.AddSkill("Shields")
	g.Skill("Long Blades").AddFieldExp(10000)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g.ArmPulseTimer(now)

	deltas := g.Pulse(now.Add(10*time.Minute), 0)

	if len(deltas) != 1 {
		t.Fatalf("got %d deltas, want 1", len(deltas))
	}
	if deltas[0].Skill != "Long Blades" {
		t.Errorf("delta skill = %q, want Long Blades", deltas[0].Skill)
	}
	if deltas[0].NewRank <= deltas[0].OldRank {
		t.Error("delta must report a rank increase")
	}
}

func TestBucketForPool(t *testing.T) {
	tests := []struct {
		fieldExp int
		capacity int
		expected PoolBucket
	}{
		{0, 1000, BucketClear},
		{100, 0, BucketClear},
		{1, 1000, BucketLow},
		{249, 1000, BucketLow},
		{250, 1000, BucketMedium},
		{499, 1000, BucketMedium},
		{500, 1000, BucketHigh},
		{749, 1000, BucketHigh},
		{750, 1000, BucketVeryHigh},
		{999, 1000, BucketVeryHigh},
		{1000, 1000, BucketMindLock},
		{5000, 1000, BucketMindLock},
	}

	for _, tt := range tests {
		if got := BucketForPool(tt.fieldExp, tt.capacity); got != tt.expected {
			t.Errorf("BucketForPool(%d, %d) = %q, want %q", tt.fieldExp, tt.capacity, got, tt.expected)
		}
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		input    string
		expected Placement
		wantErr  bool
	}{
		{"primary", PlacementPrimary, false},
		{"Secondary", PlacementSecondary, false},
		{" TERTIARY ", PlacementTertiary, false},
		{"other", PlacementOther, false},
		{"else", PlacementOther, false},
		{"quaternary", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePlacement(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePlacement(%q) should fail", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePlacement(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParsePlacement(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := NewSkillGroup("Warrior Primary", PlacementPrimary)
	g.AddSkill("Long Blades")
	g.AddSkill("Shields")
	g.Skill("Long Blades").Rank = 12.31
	g.Skill("Long Blades").AddFieldExp(450)
	trained := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g.Skill("Long Blades").LastTrained = &trained
	g.ArmPulseTimer(trained)

	restored := RestoreGroup(g.Snapshot())

	if restored.Name != g.Name || restored.Placement != g.Placement {
		t.Errorf("restored group %s/%s, want %s/%s", restored.Name, restored.Placement, g.Name, g.Placement)
	}
	if restored.Len() != 2 {
		t.Fatalf("restored %d skills, want 2", restored.Len())
	}
	blade := restored.Skill("Long Blades")
	if blade.Rank != 12.31 || blade.FieldExp != 450 {
		t.Errorf("restored rank=%v exp=%d, want 12.31/450", blade.Rank, blade.FieldExp)
	}
	if blade.LastTrained == nil || !blade.LastTrained.Equal(trained) {
		t.Error("LastTrained not preserved")
	}
	if restored.LastPulseTime == nil || !restored.LastPulseTime.Equal(trained) {
		t.Error("LastPulseTime not preserved")
	}
}

func TestRestoreGroupUnknownPlacement(t *testing.T) {
	restored := RestoreGroup(GroupSnapshot{Name: "mystery", Placement: "bogus"})
	if restored.Placement != PlacementOther {
		t.Errorf("unknown placement restored as %q, want other", restored.Placement)
	}
}
