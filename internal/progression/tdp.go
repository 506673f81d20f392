package progression

// TDPForRank returns the TDP awarded for crossing one specific integer
// rank. Higher rank bands pay more per rank.
func TDPForRank(rank int) int {
	switch {
	case rank < 100:
		return 1
	case rank < 200:
		return 2
	case rank < 500:
		return 3
	case rank < 1000:
		return 4
	default:
		return 5
	}
}

// TDPForRankGain sums the per-rank reward across every integer rank
// boundary crossed between the old and new rank. Fractional-only gains
// award nothing.
func TDPForRankGain(oldRank, newRank float64) int {
	total := 0
	for rank := int(oldRank); rank < int(newRank); rank++ {
		total += TDPForRank(rank)
	}
	return total
}
