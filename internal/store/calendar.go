package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// DayLayout is the storage format of calendar days.
const DayLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CalendarEvent is a titled event on a day, optionally at a time (HH:MM).
type CalendarEvent struct {
	ID    int
	Day   string
	Time  string
	Title string
}

// Date parses Day in the local zone.
func (e CalendarEvent) Date() (time.Time, error) {
	return time.ParseInLocation(DayLayout, e.Day, time.Local)
}

// CalendarRepo manages calendar events.
type CalendarRepo struct {
	drv *entsql.Driver
}

// Add stores an event on day and fills in its id.
func (r *CalendarRepo) Add(ctx context.Context, e *CalendarEvent) error {
	if e.Title == "" {
		return fmt.Errorf("calendar event needs a title")
	}
	if _, err := time.Parse(DayLayout, e.Day); err != nil {
		return fmt.Errorf("invalid day %q: %w", e.Day, err)
	}
	if e.Time != "" && !clockPattern.MatchString(e.Time) {
		return fmt.Errorf("invalid time %q, want HH:MM", e.Time)
	}

	q, args := entsql.Dialect(dialect.SQLite).Insert("calendar_events").
		Columns("day", "time", "title").
		Values(e.Day, e.Time, e.Title).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("add calendar event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("calendar event id: %w", err)
	}
	e.ID = int(id)
	return nil
}

// Delete removes an event.
func (r *CalendarRepo) Delete(ctx context.Context, id int) error {
	q, args := entsql.Dialect(dialect.SQLite).Delete("calendar_events").
		Where(entsql.EQ("id", id)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("delete calendar event %d: %w", id, err)
	}
	return requireAffected(res, "calendar event", id)
}

// ForDay returns the events on day ordered by time.
func (r *CalendarRepo) ForDay(ctx context.Context, day time.Time) ([]CalendarEvent, error) {
	return r.between(ctx, day.Format(DayLayout), day.AddDate(0, 0, 1).Format(DayLayout))
}

// ForMonth returns every event in the month containing t.
func (r *CalendarRepo) ForMonth(ctx context.Context, t time.Time) ([]CalendarEvent, error) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return r.between(ctx, first.Format(DayLayout), first.AddDate(0, 1, 0).Format(DayLayout))
}

func (r *CalendarRepo) between(ctx context.Context, from, to string) ([]CalendarEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	q, args := b.Select("id", "day", "time", "title").
		From(b.Table("calendar_events")).
		Where(entsql.And(entsql.GTE("day", from), entsql.LT("day", to))).
		OrderBy("day", "time", "id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("query calendar events: %w", err)
	}
	defer rows.Close()

	var out []CalendarEvent
	for rows.Next() {
		var e CalendarEvent
		if err := rows.Scan(&e.ID, &e.Day, &e.Time, &e.Title); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
