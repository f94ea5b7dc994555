package assessment

// Score bounds for a single Likert answer.
const (
	MinScore = 0
	MaxScore = 4
)

// Question is a single Likert-scale statement.
type Question struct {
	ID   string
	Text string
}

// Bands holds the four interpretation labels for a score range.
type Bands struct {
	Low      string
	Moderate string
	High     string
	Severe   string
}

// Category is a fixed grouping of questions sharing one interpretation.
type Category struct {
	ID          string
	Title       string
	Description string
	Questions   []Question
	Bands       Bands
}

// QuestionIDs returns the ids of the category's questions in order.
func (c Category) QuestionIDs() []string {
	ids := make([]string, len(c.Questions))
	for i, q := range c.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Result is a derived score and its band label. It is used for both
// per-category and overall results.
type Result struct {
	Score    float64
	Band     string
	Answered int
	Total    int
}

// Level is the position of a score on the four-tier threshold.
type Level int

const (
	LevelLow Level = iota
	LevelModerate
	LevelHigh
	LevelSevere
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelModerate:
		return "moderate"
	case LevelHigh:
		return "high"
	case LevelSevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Option is one selectable answer on the Likert scale.
type Option struct {
	Label string
	Score int
}

// LikertOptions are the five answers offered for every burnout question.
var LikertOptions = []Option{
	{Label: "Never", Score: 0},
	{Label: "Rarely", Score: 1},
	{Label: "Sometimes", Score: 2},
	{Label: "Often", Score: 3},
	{Label: "Always", Score: 4},
}
