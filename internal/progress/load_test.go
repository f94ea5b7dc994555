package progress

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mindora-app/mindora/internal/store"
)

func TestLoad(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	events := s.EventRepo()
	if err := events.AppendMoodEvent(ctx, store.MoodEventData{Temperature: 2, Zone: "green"}); err != nil {
		t.Fatal(err)
	}
	for _, action := range []string{store.ActionStart, store.ActionComplete} {
		if err := events.AppendExerciseEvent(ctx, store.ExerciseEventData{
			SessionID: "s1", ExerciseID: "quick-breathing", Action: action, ElapsedSecs: 120,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.JournalRepo().Create(ctx, &store.JournalEntry{Title: "Monday"}); err != nil {
		t.Fatal(err)
	}

	in, err := Load(ctx, events, s.JournalRepo())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(in.Moods) != 1 || len(in.Sessions) != 1 || len(in.Journal) != 1 || len(in.Assessments) != 0 {
		t.Errorf("loaded %d moods, %d sessions, %d entries, %d assessments",
			len(in.Moods), len(in.Sessions), len(in.Journal), len(in.Assessments))
	}

	in, err = Load(ctx, events, nil)
	if err != nil {
		t.Fatalf("Load without journal: %v", err)
	}
	if in.Journal != nil {
		t.Errorf("journal = %v, want nil", in.Journal)
	}
}
