package assessment

// Band thresholds on the 0-4 scale. Each is closed on the right: a score
// equal to a threshold belongs to the lower band.
const (
	lowCeiling      = 1.0
	moderateCeiling = 2.0
	highCeiling     = 3.0
)

// OverallBands labels the pooled score across all categories.
var OverallBands = Bands{
	Low:      "No Burnout",
	Moderate: "Mild Burnout",
	High:     "Moderate Burnout",
	Severe:   "Severe Burnout",
}

// LevelFor places a score on the four-tier threshold.
func LevelFor(score float64) Level {
	switch {
	case score <= lowCeiling:
		return LevelLow
	case score <= moderateCeiling:
		return LevelModerate
	case score <= highCeiling:
		return LevelHigh
	default:
		return LevelSevere
	}
}

// BandFor returns the label in bands matching score.
func BandFor(score float64, bands Bands) string {
	switch LevelFor(score) {
	case LevelLow:
		return bands.Low
	case LevelModerate:
		return bands.Moderate
	case LevelHigh:
		return bands.High
	default:
		return bands.Severe
	}
}

// ScoreCategory averages the answered questions of one category.
// Unanswered questions count in neither the sum nor the divisor; with no
// answers the score is 0 and the band is the category's Low label.
func ScoreCategory(c Category, answers *AnswerSet) Result {
	sum, answered := tally(c, answers)
	res := Result{Answered: answered, Total: len(c.Questions)}
	if answered == 0 {
		res.Band = c.Bands.Low
		return res
	}
	res.Score = float64(sum) / float64(answered)
	res.Band = BandFor(res.Score, c.Bands)
	return res
}

// ScoreOverall pools every answered question across categories into one
// mean. Raw sums and counts are pooled, so categories with more answers
// weigh more; this is not the mean of the per-category scores.
func ScoreOverall(categories []Category, answers *AnswerSet, bands Bands) Result {
	var sum, answered, total int
	for _, c := range categories {
		s, n := tally(c, answers)
		sum += s
		answered += n
		total += len(c.Questions)
	}
	res := Result{Answered: answered, Total: total}
	if answered == 0 {
		res.Band = bands.Low
		return res
	}
	res.Score = float64(sum) / float64(answered)
	res.Band = BandFor(res.Score, bands)
	return res
}

// ScoreAll returns the per-category results keyed by category id.
func ScoreAll(categories []Category, answers *AnswerSet) map[string]Result {
	out := make(map[string]Result, len(categories))
	for _, c := range categories {
		out[c.ID] = ScoreCategory(c, answers)
	}
	return out
}

func tally(c Category, answers *AnswerSet) (sum, answered int) {
	for _, q := range c.Questions {
		if s, ok := answers.Get(q.ID); ok {
			sum += s
			answered++
		}
	}
	return sum, answered
}
