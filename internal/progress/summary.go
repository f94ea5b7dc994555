package progress

import (
	"time"

	"github.com/mindora-app/mindora/internal/store"
)

// Input is the slice of history a Summary is computed from.
type Input struct {
	Moods       []store.MoodEvent
	Sessions    []store.ExerciseSession
	Assessments []store.AssessmentEvent
	Journal     []store.JournalEntry
}

// Summary is the headline numbers on the progress screen.
type Summary struct {
	MoodChecks        int
	Assessments       int
	SessionsCompleted int
	SessionsThisMonth int
	MinutesPracticed  int
	JournalEntries    int
	Streak            int

	// CurrentStress is this week's average stress level (0-100), or -1
	// without data.
	CurrentStress float64
	// Improvement is the drop in stress from last week to this week in
	// percentage points. Positive means less stress.
	Improvement float64
	// HasTrend reports whether both weeks had data for Improvement.
	HasTrend bool

	LatestBurnout *store.AssessmentEvent
}

// Summarize computes the Summary as of now.
func Summarize(in Input, now time.Time) Summary {
	s := Summary{
		MoodChecks:     len(in.Moods),
		Assessments:    len(in.Assessments),
		JournalEntries: len(in.Journal),
		CurrentStress:  -1,
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var activity []time.Time
	for _, sess := range in.Sessions {
		if !sess.Completed {
			continue
		}
		s.SessionsCompleted++
		s.MinutesPracticed += sess.ElapsedSecs / 60
		if !sess.EndedAt.Before(monthStart) {
			s.SessionsThisMonth++
		}
		activity = append(activity, sess.EndedAt)
	}
	for _, m := range in.Moods {
		activity = append(activity, m.Timestamp)
	}
	for _, a := range in.Assessments {
		activity = append(activity, a.Timestamp)
		if a.Scope == store.ScopeFull && (s.LatestBurnout == nil || a.Sequence > s.LatestBurnout.Sequence) {
			s.LatestBurnout = &a
		}
	}
	for _, j := range in.Journal {
		activity = append(activity, j.CreatedAt)
	}
	s.Streak = Streak(activity, now)

	weeks := WeeklyStress(in.Moods, now, 2)
	if weeks[1].Count > 0 {
		s.CurrentStress = weeks[1].Value
	}
	if weeks[0].Count > 0 && weeks[1].Count > 0 {
		s.HasTrend = true
		s.Improvement = weeks[0].Value - weeks[1].Value
	}
	return s
}
