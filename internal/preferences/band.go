package preferences

// Band buckets a match score for display.
type Band string

const (
	BandStrong Band = "strong"
	BandGood   Band = "good"
	BandFair   Band = "fair"
	BandLow    Band = "low"
)

func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandLow
	}
}
