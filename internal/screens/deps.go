// Package screens holds what every screen of the terminal UI shares. The
// screens themselves live in the subpackages.
package screens

import (
	"context"
	"time"

	"github.com/mindora-app/mindora/internal/auth"
	"github.com/mindora-app/mindora/internal/exercises"
	"github.com/mindora-app/mindora/internal/selfupdate"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/tips"
)

// JournalStore is the journal persistence the screens use.
type JournalStore interface {
	Create(ctx context.Context, e *store.JournalEntry) error
	Update(ctx context.Context, e *store.JournalEntry) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, limit int) ([]store.JournalEntry, error)
}

// CalendarStore is the calendar persistence the screens use.
type CalendarStore interface {
	Add(ctx context.Context, e *store.CalendarEvent) error
	Delete(ctx context.Context, id int) error
	ForMonth(ctx context.Context, t time.Time) ([]store.CalendarEvent, error)
}

// Deps carries the services screens are built from. Any repository may
// be nil, in which case the screen runs without persistence.
type Deps struct {
	Session  *auth.Session
	Events   store.EventRepo
	Journal  JournalStore
	Calendar CalendarStore
	Catalog  *exercises.Catalog
	Tips     *tips.Service
	Now      func() time.Time

	// Version is the running build; Updates, when set, is asked once per
	// run whether a newer release exists.
	Version string
	Updates UpdateChecker
}

// UpdateChecker reports whether a newer release is available.
type UpdateChecker interface {
	Check(ctx context.Context, in *selfupdate.CheckInput) (*selfupdate.CheckResult, error)
}

// Clock returns the current time from Now, or time.Now when unset.
func (d *Deps) Clock() time.Time {
	if d != nil && d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// UserName is the signed-in user's display name, or "".
func (d *Deps) UserName() string {
	if d == nil || d.Session == nil || !d.Session.SignedIn() {
		return ""
	}
	return d.Session.User.DisplayName()
}

// StatusMsg updates the header's right-hand side.
type StatusMsg struct {
	Streak int
}

var (
	_ JournalStore  = (*store.JournalRepo)(nil)
	_ CalendarStore = (*store.CalendarRepo)(nil)
	_ UpdateChecker = (*selfupdate.Checker)(nil)
)
