package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range Tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table.Name,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table.Name, err)
		}
	}
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestKVRepo(t *testing.T) {
	s := openTestStore(t)
	kv := s.KVRepo()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want false/nil", ok, err)
	}

	if err := kv.Set(ctx, "mindora_token", "a"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "mindora_token", "b"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "mindora_token")
	if err != nil || !ok || v != "b" {
		t.Fatalf("Get = %q, %v, %v; want b, true, nil", v, ok, err)
	}

	if err := kv.Delete(ctx, "mindora_token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "mindora_token"); ok {
		t.Error("key still present after delete")
	}
	if err := kv.Delete(ctx, "mindora_token"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestAssessmentEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendAssessmentEvent(ctx, AssessmentEventData{
		Scope:      ScopeFull,
		Score:      2.67,
		Band:       "Moderate Burnout",
		Answered:   3,
		Total:      33,
		Categories: map[string]float64{"exhaustion": 4, "mental-distance": 0},
		Answers:    map[string]int{"q1": 4, "q2": 4, "q9": 0},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryAssessmentEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d, want 1", len(events))
	}
	e := events[0]
	if e.Scope != ScopeFull || e.Band != "Moderate Burnout" || e.Answered != 3 {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Answers["q1"] != 4 || len(e.Answers) != 3 {
		t.Errorf("answers = %v", e.Answers)
	}
	if e.Categories["exhaustion"] != 4 {
		t.Errorf("categories = %v", e.Categories)
	}
	if e.Sequence != 1 {
		t.Errorf("sequence = %d, want 1", e.Sequence)
	}
}

func TestMoodEvents_LatestAndOrdering(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	latest, err := repo.LatestMood(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if latest != nil {
		t.Fatal("expected nil mood when none exist")
	}

	for _, temp := range []float64{1.5, 3.0, 4.25} {
		if err := repo.AppendMoodEvent(ctx, MoodEventData{Temperature: temp, Zone: "x", Answers: []int{1, 2}}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	latest, err = repo.LatestMood(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Temperature != 4.25 {
		t.Errorf("latest temperature = %v, want 4.25", latest.Temperature)
	}

	events, err := repo.QueryMoodEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Sequence < events[1].Sequence {
		t.Errorf("expected 2 events newest first, got %+v", events)
	}
	if len(events[0].Answers) != 2 {
		t.Errorf("answers = %v", events[0].Answers)
	}
}

func TestQueryOpts_TimeWindow(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.AddDate(0, 0, i)
		repo.now = func() time.Time { return at }
		if err := repo.AppendMoodEvent(ctx, MoodEventData{Temperature: float64(i + 1)}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryMoodEvents(ctx, QueryOpts{From: base.AddDate(0, 0, 1), To: base.AddDate(0, 0, 2)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Temperature != 2 {
		t.Fatalf("window query = %+v, want the single middle event", events)
	}
	if !events[0].Timestamp.Equal(base.AddDate(0, 0, 1)) {
		t.Errorf("timestamp = %v", events[0].Timestamp)
	}
}

func TestExerciseSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []ExerciseEventData{
		{SessionID: "s1", ExerciseID: "box-breathing", Action: ActionStart},
		{SessionID: "s1", ExerciseID: "box-breathing", Action: ActionComplete, ElapsedSecs: 240},
		{SessionID: "s2", ExerciseID: "body-scan", Action: ActionStart},
		{SessionID: "s2", ExerciseID: "body-scan", Action: ActionAbandon, ElapsedSecs: 30},
		{SessionID: "s3", ExerciseID: "desk-stretches", Action: ActionStart},
	}
	for _, a := range appends {
		if err := repo.AppendExerciseEvent(ctx, a); err != nil {
			t.Fatalf("append %+v: %v", a, err)
		}
	}

	sessions, err := repo.QueryExerciseSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("len = %d, want 3", len(sessions))
	}
	if sessions[0].SessionID != "s3" || sessions[0].Completed || !sessions[0].EndedAt.IsZero() {
		t.Errorf("sessions[0] = %+v, want in-progress s3", sessions[0])
	}
	if sessions[1].SessionID != "s2" || sessions[1].Completed || sessions[1].ElapsedSecs != 30 {
		t.Errorf("sessions[1] = %+v, want abandoned s2", sessions[1])
	}
	if sessions[2].SessionID != "s1" || !sessions[2].Completed || sessions[2].ElapsedSecs != 240 {
		t.Errorf("sessions[2] = %+v, want completed s1", sessions[2])
	}

	limited, err := repo.QueryExerciseSessions(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "s3" {
		t.Errorf("limited = %+v", limited)
	}

	if err := repo.AppendExerciseEvent(ctx, ExerciseEventData{SessionID: "s4", Action: "teleport"}); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "daily-tip", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "anthropic", Model: "m1", Purpose: "daily-tip", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "m2", Purpose: "journal-prompt", Success: false, ErrorMessage: "boom"},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	if events[0].ErrorMessage != "boom" || events[0].Success {
		t.Errorf("newest event = %+v", events[0])
	}

	first, err := repo.GetLLMEvent(ctx, events[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "req" || first.ResponseBody != "resp" {
		t.Errorf("get = %+v", first)
	}
	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("byPurpose = %+v", byPurpose)
	}
	tip := byPurpose[0]
	if tip.Purpose != "daily-tip" || tip.Calls != 2 || tip.InputTokens != 30 || tip.AvgLatencyMs != 200 {
		t.Errorf("daily-tip usage = %+v", tip)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" {
		t.Errorf("byModel = %+v", byModel)
	}
}

func TestJournalRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.JournalRepo()
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	older := &JournalEntry{Title: "Monday", Body: "Long day", CreatedAt: base}
	newer := &JournalEntry{Title: "Tuesday", Body: "Better", CreatedAt: base.Add(24 * time.Hour)}
	for _, e := range []*JournalEntry{older, newer} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
		if e.ID == 0 {
			t.Fatal("expected id to be set")
		}
	}

	list, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Tuesday" {
		t.Fatalf("list = %+v, want newest first", list)
	}

	older.Body = "Long day, but a good walk"
	if err := repo.Update(ctx, older); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Body != older.Body {
		t.Errorf("body = %q", got.Body)
	}

	if err := repo.Delete(ctx, older.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, older.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, older.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete twice = %v, want ErrNotFound", err)
	}
	if err := repo.Create(ctx, &JournalEntry{}); err == nil {
		t.Error("expected error for untitled entry")
	}
}

func TestJournalEntryExcerpt(t *testing.T) {
	e := JournalEntry{Body: "abcdef"}
	if got := e.Excerpt(3); got != "abc..." {
		t.Errorf("Excerpt(3) = %q", got)
	}
	if got := e.Excerpt(10); got != "abcdef" {
		t.Errorf("Excerpt(10) = %q", got)
	}
}

func TestCalendarRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.CalendarRepo()
	ctx := context.Background()

	events := []*CalendarEvent{
		{Day: "2026-04-10", Time: "14:00", Title: "Team Meeting"},
		{Day: "2026-04-10", Time: "09:30", Title: "Meditation"},
		{Day: "2026-04-30", Title: "Review"},
		{Day: "2026-05-01", Time: "10:00", Title: "Therapy"},
	}
	for _, e := range events {
		if err := repo.Add(ctx, e); err != nil {
			t.Fatalf("add %q: %v", e.Title, err)
		}
	}

	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.Local)
	got, err := repo.ForDay(ctx, day)
	if err != nil {
		t.Fatalf("for day: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Meditation" {
		t.Errorf("ForDay = %+v, want 2 events ordered by time", got)
	}

	month, err := repo.ForMonth(ctx, day)
	if err != nil {
		t.Fatalf("for month: %v", err)
	}
	if len(month) != 3 {
		t.Errorf("ForMonth = %d events, want 3", len(month))
	}

	if err := repo.Delete(ctx, events[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, events[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete twice = %v, want ErrNotFound", err)
	}

	bad := []*CalendarEvent{
		{Day: "2026-13-01", Title: "x"},
		{Day: "2026-04-01", Time: "25:00", Title: "x"},
		{Day: "2026-04-01"},
	}
	for _, e := range bad {
		if err := repo.Add(ctx, e); err == nil {
			t.Errorf("Add(%+v) succeeded, want error", e)
		}
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.KVRepo().Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendMoodEvent(ctx, MoodEventData{Temperature: 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.JournalRepo().Create(ctx, &JournalEntry{Title: "t"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, ok, _ := s.KVRepo().Get(ctx, "k"); ok {
		t.Error("kv survived reset")
	}
	moods, _ := s.EventRepo().QueryMoodEvents(ctx, QueryOpts{})
	if len(moods) != 0 {
		t.Error("mood events survived reset")
	}
	entries, _ := s.JournalRepo().List(ctx, 0)
	if len(entries) != 0 {
		t.Error("journal entries survived reset")
	}

	// Sequence keeps increasing after reset.
	if err := s.EventRepo().AppendMoodEvent(ctx, MoodEventData{Temperature: 3}); err != nil {
		t.Fatal(err)
	}
	moods, _ = s.EventRepo().QueryMoodEvents(ctx, QueryOpts{})
	if len(moods) != 1 || moods[0].Sequence != 2 {
		t.Errorf("after reset = %+v, want sequence 2", moods)
	}
}
