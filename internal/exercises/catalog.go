// Package exercises holds the guided exercise catalog shown on the
// exercises screen and played back by the exercise player.
package exercises

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/mindora-app/mindora/internal/sequencer"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is a validated, ordered set of exercises.
type Catalog struct {
	categories []Category
	exercises  []Exercise
	byID       map[string]int
}

// Default returns the built-in catalog. It panics if the embedded YAML is
// malformed, which a test guards against.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("exercises: embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		categories: f.Categories,
		exercises:  f.Exercises,
		byID:       make(map[string]int, len(f.Exercises)),
	}
	for i := range c.exercises {
		e := &c.exercises[i]
		d, err := ParseDuration(e.RawDuration)
		if err != nil {
			return nil, fmt.Errorf("exercise %q: %w", e.ID, err)
		}
		e.Duration = d
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	for i, e := range c.exercises {
		c.byID[e.ID] = i
	}
	return c, nil
}

func (c *Catalog) validate() error {
	cats := make(map[string]bool, len(c.categories))
	for _, cat := range c.categories {
		if cat.ID == "" || cat.ID == AllCategories {
			return fmt.Errorf("invalid category id %q", cat.ID)
		}
		if cats[cat.ID] {
			return fmt.Errorf("duplicate category %q", cat.ID)
		}
		cats[cat.ID] = true
	}

	seen := make(map[string]bool, len(c.exercises))
	for _, e := range c.exercises {
		switch {
		case e.ID == "":
			return fmt.Errorf("exercise %q has no id", e.Title)
		case seen[e.ID]:
			return fmt.Errorf("duplicate exercise %q", e.ID)
		case len(e.Steps) == 0:
			return fmt.Errorf("exercise %q has no steps", e.ID)
		case e.Duration < time.Second:
			return fmt.Errorf("exercise %q has non-positive duration", e.ID)
		case !cats[e.Category]:
			return fmt.Errorf("exercise %q has unknown category %q", e.ID, e.Category)
		}
		seen[e.ID] = true
	}
	return nil
}

// Categories returns the catalog categories in display order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// CategoryName returns the display name for a category id.
func (c *Catalog) CategoryName(id string) string {
	if id == AllCategories {
		return "All"
	}
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}

// All returns every exercise in catalog order.
func (c *Catalog) All() []Exercise {
	return append([]Exercise(nil), c.exercises...)
}

// Quick returns the exercises flagged for the dashboard.
func (c *Catalog) Quick() []Exercise {
	var out []Exercise
	for _, e := range c.exercises {
		if e.Quick {
			out = append(out, e)
		}
	}
	return out
}

// Get looks up an exercise by id.
func (c *Catalog) Get(id string) (Exercise, error) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %q", ErrUnknownExercise, id)
	}
	return c.exercises[i], nil
}

// Filter returns exercises in categoryID (or every category for "all" or
// "") whose title or description contains search, ignoring case.
func (c *Catalog) Filter(categoryID, search string) []Exercise {
	needle := strings.ToLower(strings.TrimSpace(search))
	var out []Exercise
	for _, e := range c.exercises {
		if categoryID != "" && categoryID != AllCategories && e.Category != categoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NewSequencer builds a step sequencer for the exercise.
func (e Exercise) NewSequencer() (*sequencer.Sequencer, error) {
	return sequencer.New(e.TotalSeconds(), e.Steps, e.StepSeconds)
}

// ParseDuration accepts the catalog's human forms ("5 min", "90 sec",
// "1 hour", "2m") as well as anything time.ParseDuration understands.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	var unit time.Duration
	switch strings.TrimSpace(s[i:]) {
	case "s", "sec", "secs", "second", "seconds":
		unit = time.Second
	case "m", "min", "mins", "minute", "minutes":
		unit = time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		unit = time.Hour
	default:
		return 0, fmt.Errorf("invalid duration unit in %q", s)
	}
	return time.Duration(n) * unit, nil
}

// FormatDuration renders a duration the way the catalog writes it.
func FormatDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}
	return fmt.Sprintf("%d sec", int(d/time.Second))
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
