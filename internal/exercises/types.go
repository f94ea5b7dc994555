package exercises

import (
	"errors"
	"time"
)

// ErrUnknownExercise is returned when an id is not in the catalog.
var ErrUnknownExercise = errors.New("unknown exercise")

// AllCategories matches every category in Filter.
const AllCategories = "all"

// Category groups exercises on the browse screen.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Exercise is an immutable catalog entry.
type Exercise struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	RawDuration string   `yaml:"duration"`
	Steps       []string `yaml:"steps"`
	StepSeconds []int    `yaml:"step_seconds,omitempty"`
	Quick       bool     `yaml:"quick,omitempty"`

	// Computed on load.
	Duration time.Duration `yaml:"-"`
}

// TotalSeconds returns the nominal duration in whole seconds.
func (e Exercise) TotalSeconds() int {
	return int(e.Duration / time.Second)
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
	Exercises  []Exercise `yaml:"exercises"`
}
