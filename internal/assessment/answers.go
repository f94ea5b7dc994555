package assessment

// AnswerSet maps question ids to scores in [MinScore, MaxScore]. It
// remembers the order in which questions were first answered so a UI can
// resume navigation; the order never affects scoring.
type AnswerSet struct {
	scores map[string]int
	order  []string
}

// NewAnswerSet creates an empty AnswerSet.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{scores: make(map[string]int)}
}

// AnswerSetFrom builds an AnswerSet from a plain map. Iteration order of
// the map is not preserved.
func AnswerSetFrom(m map[string]int) *AnswerSet {
	a := NewAnswerSet()
	for id, score := range m {
		a.Record(id, score)
	}
	return a
}

// Record stores a score for a question, clamping it into range.
// Re-answering a question keeps its original position.
func (a *AnswerSet) Record(questionID string, score int) {
	if a.scores == nil {
		a.scores = make(map[string]int)
	}
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	if _, ok := a.scores[questionID]; !ok {
		a.order = append(a.order, questionID)
	}
	a.scores[questionID] = score
}

// Get returns the score for a question and whether it was answered.
func (a *AnswerSet) Get(questionID string) (int, bool) {
	if a == nil {
		return 0, false
	}
	s, ok := a.scores[questionID]
	return s, ok
}

// Len returns the number of answered questions.
func (a *AnswerSet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.scores)
}

// Order returns question ids in first-answered order.
func (a *AnswerSet) Order() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Map returns a copy of the answers as a plain map.
func (a *AnswerSet) Map() map[string]int {
	out := make(map[string]int, a.Len())
	if a == nil {
		return out
	}
	for k, v := range a.scores {
		out[k] = v
	}
	return out
}

// Clear removes every answer.
func (a *AnswerSet) Clear() {
	a.scores = make(map[string]int)
	a.order = nil
}

// ResumeIndex returns the index of the first unanswered question in ids,
// or len(ids) when every question has an answer.
func (a *AnswerSet) ResumeIndex(ids []string) int {
	for i, id := range ids {
		if _, ok := a.Get(id); !ok {
			return i
		}
	}
	return len(ids)
}
