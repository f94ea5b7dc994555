package assessment

// Mood temperature thresholds on the 1-5 scale.
const (
	moodGreenCeiling  = 2.0
	moodYellowCeiling = 3.5
)

// MoodZone classifies a mood temperature.
type MoodZone string

const (
	MoodUnmeasured MoodZone = "unmeasured"
	MoodGreen      MoodZone = "green"
	MoodYellow     MoodZone = "yellow"
	MoodRed        MoodZone = "red"
)

// MoodQuestion is a quick-check question with its own option scores (1-5).
type MoodQuestion struct {
	ID      int
	Text    string
	Options []Option
}

// MoodQuestions is the dashboard's mood temperature check.
var MoodQuestions = []MoodQuestion{
	{
		ID:   1,
		Text: "How would you rate your current stress level?",
		Options: []Option{
			{Label: "I feel calm and relaxed", Score: 1},
			{Label: "Slightly stressed", Score: 2},
			{Label: "Moderately stressed", Score: 3},
			{Label: "Very stressed", Score: 4},
			{Label: "Extremely stressed", Score: 5},
		},
	},
	{
		ID:   2,
		Text: "How well did you sleep last night?",
		Options: []Option{
			{Label: "Very well", Score: 1},
			{Label: "Fairly well", Score: 2},
			{Label: "Average", Score: 3},
			{Label: "Poorly", Score: 4},
			{Label: "Very poorly", Score: 5},
		},
	},
	{
		ID:   3,
		Text: "How easy is it to concentrate today?",
		Options: []Option{
			{Label: "Very easy", Score: 1},
			{Label: "Somewhat easy", Score: 2},
			{Label: "Neutral", Score: 3},
			{Label: "Somewhat difficult", Score: 4},
			{Label: "Very difficult", Score: 5},
		},
	},
	{
		ID:   4,
		Text: "How would you describe your energy level?",
		Options: []Option{
			{Label: "Very energetic", Score: 1},
			{Label: "Somewhat energetic", Score: 2},
			{Label: "Neutral", Score: 3},
			{Label: "Somewhat tired", Score: 4},
			{Label: "Very tired", Score: 5},
		},
	},
}

// MoodResult is a computed mood temperature.
type MoodResult struct {
	Temperature float64
	Zone        MoodZone
	Label       string
}

// MoodTemperature averages the given option scores. An empty slice is
// reported as unmeasured.
func MoodTemperature(scores []int) MoodResult {
	if len(scores) == 0 {
		return MoodResult{Zone: MoodUnmeasured, Label: MoodLabel(MoodUnmeasured)}
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	t := float64(sum) / float64(len(scores))
	z := MoodZoneFor(t)
	return MoodResult{Temperature: t, Zone: z, Label: MoodLabel(z)}
}

// MoodZoneFor classifies a temperature. Zero means nothing was measured.
func MoodZoneFor(t float64) MoodZone {
	switch {
	case t == 0:
		return MoodUnmeasured
	case t <= moodGreenCeiling:
		return MoodGreen
	case t <= moodYellowCeiling:
		return MoodYellow
	default:
		return MoodRed
	}
}

// MoodLabel returns the display text for a zone.
func MoodLabel(z MoodZone) string {
	switch z {
	case MoodGreen:
		return "Green - Managing Well"
	case MoodYellow:
		return "Yellow - Moderate Stress"
	case MoodRed:
		return "Red - High Stress"
	default:
		return "Not measured yet"
	}
}

// StressAlert is shown alongside a red mood temperature.
const StressAlert = "Your stress levels are high. Consider taking a break, doing a breathing exercise, " +
	"or reaching out to someone you trust. Remember, it's okay to take time for yourself."
