package skills

// PoolBucket is the player-facing description of how full a skill's
// field-experience pool is relative to its capacity.
type PoolBucket string

const (
	BucketClear    PoolBucket = "clear"
	BucketLow      PoolBucket = "low"
	BucketMedium   PoolBucket = "medium"
	BucketHigh     PoolBucket = "high"
	BucketVeryHigh PoolBucket = "very high"
	BucketMindLock PoolBucket = "mind lock"
)

// BucketForPool maps pool fill against capacity onto a display bucket.
// Thresholds are percent-of-capacity: 0, 25, 50, 75, 100. A zero capacity
// always reads clear.
func BucketForPool(fieldExp, capacity int) PoolBucket {
	if capacity <= 0 || fieldExp <= 0 {
		return BucketClear
	}

	percent := float64(fieldExp) / float64(capacity) * 100

	switch {
	case percent < 25:
		return BucketLow
	case percent < 50:
		return BucketMedium
	case percent < 75:
		return BucketHigh
	case percent < 100:
		return BucketVeryHigh
	default:
		return BucketMindLock
	}
}
