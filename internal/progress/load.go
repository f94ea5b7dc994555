package progress

import (
	"context"
	"fmt"

	"github.com/mindora-app/mindora/internal/store"
)

// JournalLister lists journal entries, newest first.
type JournalLister interface {
	List(ctx context.Context, limit int) ([]store.JournalEntry, error)
}

// Load reads the whole history an Input needs. journal may be nil.
func Load(ctx context.Context, events store.EventRepo, journal JournalLister) (Input, error) {
	var (
		in  Input
		err error
	)
	if in.Moods, err = events.QueryMoodEvents(ctx, store.QueryOpts{}); err != nil {
		return Input{}, fmt.Errorf("query moods: %w", err)
	}
	if in.Sessions, err = events.QueryExerciseSessions(ctx, store.QueryOpts{}); err != nil {
		return Input{}, fmt.Errorf("query sessions: %w", err)
	}
	if in.Assessments, err = events.QueryAssessmentEvents(ctx, store.QueryOpts{}); err != nil {
		return Input{}, fmt.Errorf("query assessments: %w", err)
	}
	if journal != nil {
		if in.Journal, err = journal.List(ctx, 0); err != nil {
			return Input{}, fmt.Errorf("list journal: %w", err)
		}
	}
	return in, nil
}
