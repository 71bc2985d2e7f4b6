package derive

// InfluenceGrade bands a 0-100 influence score into a letter grade.
// Bands are evaluated in descending order; scores outside [0,100] are
// clamped before banding so the function is total.
func InfluenceGrade(score float64) string {
	score = sanitize(score)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	switch {
	case score >= 90:
		return "S+"
	case score >= 80:
		return "S"
	case score >= 70:
		return "A"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}
