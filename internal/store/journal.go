package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// JournalEntry is one reflective journal note.
type JournalEntry struct {
	ID        int
	Title     string
	Body      string
	Mood      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Excerpt returns the first n runes of the body, with an ellipsis when
// truncated.
func (e JournalEntry) Excerpt(n int) string {
	r := []rune(e.Body)
	if len(r) <= n {
		return e.Body
	}
	return string(r[:n]) + "..."
}

// JournalRepo manages journal entries.
type JournalRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

var journalColumns = []string{"id", "title", "body", "mood", "created_at", "updated_at"}

func (r *JournalRepo) clock() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

// Create stores a new entry and fills in its id and timestamps.
func (r *JournalRepo) Create(ctx context.Context, e *JournalEntry) error {
	if e.Title == "" {
		return fmt.Errorf("journal entry needs a title")
	}
	now := r.clock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	q, args := entsql.Dialect(dialect.SQLite).Insert("journal_entries").
		Columns("title", "body", "mood", "created_at", "updated_at").
		Values(e.Title, e.Body, e.Mood, e.CreatedAt.UTC(), e.UpdatedAt).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("journal entry id: %w", err)
	}
	e.ID = int(id)
	return nil
}

// Update rewrites the title, body and mood of an existing entry.
func (r *JournalRepo) Update(ctx context.Context, e *JournalEntry) error {
	e.UpdatedAt = r.clock()
	q, args := entsql.Dialect(dialect.SQLite).Update("journal_entries").
		Set("title", e.Title).
		Set("body", e.Body).
		Set("mood", e.Mood).
		Set("updated_at", e.UpdatedAt).
		Where(entsql.EQ("id", e.ID)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("update journal entry %d: %w", e.ID, err)
	}
	return requireAffected(res, "journal entry", e.ID)
}

// Delete removes an entry.
func (r *JournalRepo) Delete(ctx context.Context, id int) error {
	q, args := entsql.Dialect(dialect.SQLite).Delete("journal_entries").
		Where(entsql.EQ("id", id)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("delete journal entry %d: %w", id, err)
	}
	return requireAffected(res, "journal entry", id)
}

// Get returns one entry or ErrNotFound.
func (r *JournalRepo) Get(ctx context.Context, id int) (*JournalEntry, error) {
	entries, err := r.list(ctx, entsql.EQ("id", id), 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("journal entry %d: %w", id, ErrNotFound)
	}
	return &entries[0], nil
}

// List returns entries newest first. limit <= 0 returns all.
func (r *JournalRepo) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	return r.list(ctx, nil, limit)
}

func (r *JournalRepo) list(ctx context.Context, where *entsql.Predicate, limit int) ([]JournalEntry, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(journalColumns...).
		From(b.Table("journal_entries")).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if where != nil {
		sel.Where(where)
	}
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Body, &e.Mood, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result, what string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
