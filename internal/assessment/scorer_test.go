package assessment

import (
	"math"
	"testing"
)

func testCategory(id string, n int) Category {
	c := Category{
		ID:    id,
		Title: id,
		Bands: Bands{Low: id + "-low", Moderate: id + "-moderate", High: id + "-high", Severe: id + "-severe"},
	}
	for i := 0; i < n; i++ {
		c.Questions = append(c.Questions, Question{ID: id + string(rune('a'+i))})
	}
	return c
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBandFor_Thresholds(t *testing.T) {
	bands := OverallBands
	tests := []struct {
		score float64
		want  string
	}{
		{0, "No Burnout"},
		{0.5, "No Burnout"},
		{1.0, "No Burnout"},
		{1.01, "Mild Burnout"},
		{2.0, "Mild Burnout"},
		{2.5, "Moderate Burnout"},
		{3.0, "Moderate Burnout"},
		{3.01, "Severe Burnout"},
		{4.0, "Severe Burnout"},
	}

	for _, tt := range tests {
		got := BandFor(tt.score, bands)
		if got != tt.want {
			t.Errorf("BandFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{1, LevelLow},
		{1.5, LevelModerate},
		{2, LevelModerate},
		{3, LevelHigh},
		{3.5, LevelSevere},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestScoreCategory_Empty(t *testing.T) {
	c := testCategory("x", 4)
	res := ScoreCategory(c, NewAnswerSet())

	if res.Score != 0 {
		t.Errorf("Score = %v, want 0", res.Score)
	}
	if res.Band != c.Bands.Low {
		t.Errorf("Band = %q, want %q", res.Band, c.Bands.Low)
	}
	if res.Answered != 0 || res.Total != 4 {
		t.Errorf("Answered/Total = %d/%d, want 0/4", res.Answered, res.Total)
	}
}

func TestScoreCategory_NilAnswers(t *testing.T) {
	c := testCategory("x", 2)
	res := ScoreCategory(c, nil)
	if res.Score != 0 || res.Band != c.Bands.Low {
		t.Errorf("ScoreCategory(nil) = %+v, want zero score with low band", res)
	}
}

func TestScoreCategory_PartialAnswers(t *testing.T) {
	c := testCategory("x", 4)
	a := NewAnswerSet()
	a.Record("xa", 3)
	a.Record("xb", 4)

	res := ScoreCategory(c, a)
	if !approx(res.Score, 3.5) {
		t.Errorf("Score = %v, want 3.5 (unanswered questions excluded)", res.Score)
	}
	if res.Band != c.Bands.Severe {
		t.Errorf("Band = %q, want %q", res.Band, c.Bands.Severe)
	}
	if res.Answered != 2 {
		t.Errorf("Answered = %d, want 2", res.Answered)
	}
}

func TestScoreCategory_IgnoresOtherCategories(t *testing.T) {
	c := testCategory("x", 2)
	a := AnswerSetFrom(map[string]int{"xa": 1, "ya": 4, "yb": 4})

	res := ScoreCategory(c, a)
	if !approx(res.Score, 1) {
		t.Errorf("Score = %v, want 1", res.Score)
	}
}

func TestScoreOverall_PooledNotMeanOfMeans(t *testing.T) {
	a := testCategory("a", 2)
	b := testCategory("b", 1)
	answers := AnswerSetFrom(map[string]int{"aa": 4, "ab": 4, "ba": 0})

	res := ScoreOverall([]Category{a, b}, answers, OverallBands)

	// (4+4+0)/3, not mean(4, 0) = 2.
	if !approx(res.Score, 8.0/3.0) {
		t.Errorf("Score = %v, want %v", res.Score, 8.0/3.0)
	}
	if res.Band != "Moderate Burnout" {
		t.Errorf("Band = %q, want Moderate Burnout", res.Band)
	}
	if res.Answered != 3 || res.Total != 3 {
		t.Errorf("Answered/Total = %d/%d, want 3/3", res.Answered, res.Total)
	}
}

func TestScoreOverall_Empty(t *testing.T) {
	res := ScoreOverall(BurnoutCategories(), NewAnswerSet(), OverallBands)
	if res.Score != 0 || res.Band != "No Burnout" {
		t.Errorf("ScoreOverall(empty) = %+v, want 0 / No Burnout", res)
	}
	if res.Total != 33 {
		t.Errorf("Total = %d, want 33", res.Total)
	}
}

func TestScoreOverall_AllMax(t *testing.T) {
	cats := BurnoutCategories()
	a := NewAnswerSet()
	for _, c := range cats {
		for _, q := range c.Questions {
			a.Record(q.ID, MaxScore)
		}
	}

	res := ScoreOverall(cats, a, OverallBands)
	if !approx(res.Score, 4) {
		t.Errorf("Score = %v, want 4", res.Score)
	}
	if res.Band != "Severe Burnout" {
		t.Errorf("Band = %q, want Severe Burnout", res.Band)
	}
}

func TestScoreAll_InRange(t *testing.T) {
	cats := BurnoutCategories()
	a := NewAnswerSet()
	for i, c := range cats {
		for j, q := range c.Questions {
			a.Record(q.ID, (i+j)%5)
		}
	}

	results := ScoreAll(cats, a)
	if len(results) != len(cats) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(cats))
	}
	for id, r := range results {
		if r.Score < MinScore || r.Score > MaxScore {
			t.Errorf("%s: Score = %v out of [0,4]", id, r.Score)
		}
		if r.Band == "" {
			t.Errorf("%s: empty band", id)
		}
	}
}

func TestAnswerSet_ClampsAndOrders(t *testing.T) {
	a := NewAnswerSet()
	a.Record("q2", 9)
	a.Record("q1", -3)
	a.Record("q2", 1)

	if s, _ := a.Get("q2"); s != 1 {
		t.Errorf("q2 = %d, want 1", s)
	}
	if s, _ := a.Get("q1"); s != MinScore {
		t.Errorf("q1 = %d, want %d", s, MinScore)
	}
	order := a.Order()
	if len(order) != 2 || order[0] != "q2" || order[1] != "q1" {
		t.Errorf("Order() = %v, want [q2 q1]", order)
	}

	a.Record("q3", 9)
	if s, _ := a.Get("q3"); s != MaxScore {
		t.Errorf("q3 = %d, want %d", s, MaxScore)
	}
}

func TestAnswerSet_ResumeIndex(t *testing.T) {
	ids := []string{"q1", "q2", "q3"}
	a := NewAnswerSet()
	if got := a.ResumeIndex(ids); got != 0 {
		t.Errorf("ResumeIndex(empty) = %d, want 0", got)
	}
	a.Record("q1", 2)
	a.Record("q3", 2)
	if got := a.ResumeIndex(ids); got != 1 {
		t.Errorf("ResumeIndex = %d, want 1", got)
	}
	a.Record("q2", 2)
	if got := a.ResumeIndex(ids); got != 3 {
		t.Errorf("ResumeIndex(all) = %d, want 3", got)
	}

	a.Clear()
	if a.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", a.Len())
	}
}
