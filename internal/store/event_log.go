package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// EventLog implements EventRepo on the ent SQL driver.
type EventLog struct {
	drv *entsql.Driver
	seq *sequenceCounter

	// now is overridden in tests.
	now func() time.Time
}

func (r *EventLog) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// insert appends one row to table with the shared event columns filled in.
func (r *EventLog) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := r.builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seq, ts}, vals...)...).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// selectEvents returns a selector over table honoring opts, newest first.
func (r *EventLog) selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	b := r.builder()
	sel := b.Select(append([]string{"id", "sequence", "timestamp"}, cols...)...).
		From(b.Table(table)).
		OrderBy(entsql.Desc("sequence"))
	if ps := opts.where(); len(ps) > 0 {
		sel.Where(entsql.And(ps...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// query runs sel and calls scan once per row.
func (r *EventLog) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	q, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeJSON(s sql.NullString, v any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), v)
}

func (r *EventLog) AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error {
	cats, err := encodeJSON(data.Categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	answers, err := encodeJSON(data.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return r.insert(ctx, "assessment_events",
		[]string{"scope", "score", "band", "answered", "total", "categories", "answers"},
		[]any{data.Scope, data.Score, data.Band, data.Answered, data.Total, cats, answers},
	)
}

func (r *EventLog) QueryAssessmentEvents(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	sel := r.selectEvents("assessment_events", opts,
		"scope", "score", "band", "answered", "total", "categories", "answers")

	var out []AssessmentEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e             AssessmentEvent
			cats, answers sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.Scope, &e.Score, &e.Band, &e.Answered, &e.Total, &cats, &answers); err != nil {
			return err
		}
		if err := decodeJSON(cats, &e.Categories); err != nil {
			return fmt.Errorf("decode categories: %w", err)
		}
		if err := decodeJSON(answers, &e.Answers); err != nil {
			return fmt.Errorf("decode answers: %w", err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	return out, nil
}

func (r *EventLog) AppendMoodEvent(ctx context.Context, data MoodEventData) error {
	answers, err := encodeJSON(data.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return r.insert(ctx, "mood_events",
		[]string{"temperature", "zone", "answers"},
		[]any{data.Temperature, data.Zone, answers},
	)
}

func (r *EventLog) QueryMoodEvents(ctx context.Context, opts QueryOpts) ([]MoodEvent, error) {
	sel := r.selectEvents("mood_events", opts, "temperature", "zone", "answers")

	var out []MoodEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e       MoodEvent
			answers sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Temperature, &e.Zone, &answers); err != nil {
			return err
		}
		if err := decodeJSON(answers, &e.Answers); err != nil {
			return fmt.Errorf("decode answers: %w", err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query mood events: %w", err)
	}
	return out, nil
}

// LatestMood returns the most recent mood check, or nil if there is none.
func (r *EventLog) LatestMood(ctx context.Context) (*MoodEvent, error) {
	events, err := r.QueryMoodEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *EventLog) AppendExerciseEvent(ctx context.Context, data ExerciseEventData) error {
	switch data.Action {
	case ActionStart, ActionComplete, ActionAbandon:
	default:
		return fmt.Errorf("unknown exercise action %q", data.Action)
	}
	return r.insert(ctx, "exercise_events",
		[]string{"session_id", "exercise_id", "action", "elapsed_secs"},
		[]any{data.SessionID, data.ExerciseID, data.Action, data.ElapsedSecs},
	)
}

func (r *EventLog) queryExerciseEvents(ctx context.Context, opts QueryOpts) ([]ExerciseEvent, error) {
	sel := r.selectEvents("exercise_events", opts, "session_id", "exercise_id", "action", "elapsed_secs")

	var out []ExerciseEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e ExerciseEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.ExerciseID, &e.Action, &e.ElapsedSecs); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query exercise events: %w", err)
	}
	return out, nil
}

// QueryExerciseSessions folds exercise events into one entry per player
// session, newest first. Limit applies to sessions, not events.
func (r *EventLog) QueryExerciseSessions(ctx context.Context, opts QueryOpts) ([]ExerciseSession, error) {
	limit := opts.Limit
	opts.Limit = 0
	events, err := r.queryExerciseEvents(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Events arrive newest first; walk oldest first so start precedes end.
	index := make(map[string]int)
	var sessions []ExerciseSession
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		idx, ok := index[e.SessionID]
		if !ok {
			idx = len(sessions)
			index[e.SessionID] = idx
			sessions = append(sessions, ExerciseSession{
				SessionID:  e.SessionID,
				ExerciseID: e.ExerciseID,
				StartedAt:  e.Timestamp,
			})
		}
		s := &sessions[idx]
		switch e.Action {
		case ActionStart:
			s.StartedAt = e.Timestamp
		case ActionComplete:
			s.Completed = true
			s.EndedAt = e.Timestamp
			s.ElapsedSecs = e.ElapsedSecs
		case ActionAbandon:
			s.EndedAt = e.Timestamp
			s.ElapsedSecs = e.ElapsedSecs
		}
	}

	out := make([]ExerciseSession, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		out = append(out, sessions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
