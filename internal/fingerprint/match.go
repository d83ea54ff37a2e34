package fingerprint

// DefaultMinScore is the confidence floor below which the best candidate is
// rejected as unmatched.
const DefaultMinScore = 0.5

// BestMatch returns the candidate with the maximum confidence score, or nil
// when there is none at or above minScore. Equal maxima keep the candidate
// encountered first, so the pick is stable in input order.
func BestMatch(matches []Match, minScore float64) *Match {
	if len(matches) == 0 {
		return nil
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	best := 0
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[best].Score {
			best = i
		}
	}
	if matches[best].Score < minScore {
		return nil
	}
	selected := matches[best]
	return &selected
}
