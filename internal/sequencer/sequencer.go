// Package sequencer maps elapsed time onto a list of timed steps. It owns
// no clock: a caller ticks it once per elapsed second.
package sequencer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned by New when there are no steps or the
// total duration is not positive.
var ErrInvalidConfiguration = errors.New("sequencer: invalid configuration")

// State is the sequencer's lifecycle position.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Sequencer tracks a countdown across named steps. It is not safe for
// concurrent use.
type Sequencer struct {
	total       int
	steps       []string
	durations   []int
	checkpoints []int

	state         State
	remaining     int
	current       int
	stepRemaining int
}

// New builds a Sequencer. stepDurations is kept only when it has one
// positive entry per step and sums to totalSeconds; otherwise the
// total is split equally with the remainder given to the first step.
func New(totalSeconds int, steps []string, stepDurations []int) (*Sequencer, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidConfiguration)
	}
	if totalSeconds <= 0 {
		return nil, fmt.Errorf("%w: total duration %ds", ErrInvalidConfiguration, totalSeconds)
	}

	durations := stepDurations
	if !validDurations(totalSeconds, len(steps), durations) {
		durations = EqualSplit(totalSeconds, len(steps))
	} else {
		durations = append([]int(nil), durations...)
	}

	checkpoints := make([]int, len(durations))
	acc := 0
	for i, d := range durations {
		acc += d
		checkpoints[i] = acc
	}

	s := &Sequencer{
		total:       totalSeconds,
		steps:       append([]string(nil), steps...),
		durations:   durations,
		checkpoints: checkpoints,
	}
	s.Reset()
	return s, nil
}

// EqualSplit divides total into n parts; part 0 absorbs the remainder.
func EqualSplit(total, n int) []int {
	if n <= 0 {
		return nil
	}
	base, rem := total/n, total%n
	out := make([]int, n)
	for i := range out {
		out[i] = base
	}
	out[0] += rem
	return out
}

func validDurations(total, n int, durations []int) bool {
	if len(durations) != n {
		return false
	}
	sum := 0
	for _, d := range durations {
		if d <= 0 {
			return false
		}
		sum += d
	}
	return sum == total
}

// Start moves Idle to Running. It reports whether the transition happened.
func (s *Sequencer) Start() bool {
	if s.state != Idle {
		return false
	}
	s.remaining = s.total
	s.current = 0
	s.stepRemaining = s.durations[0]
	s.state = Running
	return true
}

// Pause moves Running to Paused.
func (s *Sequencer) Pause() bool {
	if s.state != Running {
		return false
	}
	s.state = Paused
	return true
}

// Resume moves Paused to Running.
func (s *Sequencer) Resume() bool {
	if s.state != Paused {
		return false
	}
	s.state = Running
	return true
}

// Toggle starts, pauses or resumes depending on the current state. It is
// a no-op once Completed.
func (s *Sequencer) Toggle() {
	switch s.state {
	case Idle:
		s.Start()
	case Running:
		s.Pause()
	case Paused:
		s.Resume()
	}
}

// Reset returns to Idle from any state and discards progress.
func (s *Sequencer) Reset() {
	s.state = Idle
	s.remaining = s.total
	s.current = 0
	s.stepRemaining = s.durations[0]
}

// Tick advances one second. Outside Running it does nothing. It reports
// whether the current step changed.
func (s *Sequencer) Tick() bool {
	if s.state != Running {
		return false
	}
	s.remaining--
	idx := s.StepAt(s.total - s.remaining)

	changed := idx != s.current
	if changed {
		s.current = idx
		s.stepRemaining = s.durations[idx]
	} else if s.stepRemaining > 0 {
		s.stepRemaining--
	}

	if s.remaining <= 0 {
		s.remaining = 0
		s.stepRemaining = 0
		s.state = Completed
	}
	return changed
}

// StepAt returns the index of the first step whose checkpoint is strictly
// greater than elapsed, clamped to the last step. At an exact boundary the
// next step is current.
func (s *Sequencer) StepAt(elapsed int) int {
	for i, cp := range s.checkpoints {
		if elapsed < cp {
			return i
		}
	}
	return len(s.checkpoints) - 1
}

// State returns the lifecycle state.
func (s *Sequencer) State() State { return s.state }

// Total returns the configured total in seconds.
func (s *Sequencer) Total() int { return s.total }

// TotalRemaining returns seconds left overall.
func (s *Sequencer) TotalRemaining() int { return s.remaining }

// Elapsed returns seconds consumed so far.
func (s *Sequencer) Elapsed() int { return s.total - s.remaining }

// CurrentStep returns the index of the active step.
func (s *Sequencer) CurrentStep() int { return s.current }

// CurrentStepName returns the label of the active step.
func (s *Sequencer) CurrentStepName() string { return s.steps[s.current] }

// CurrentStepRemaining returns seconds left in the active step.
func (s *Sequencer) CurrentStepRemaining() int { return s.stepRemaining }

// Steps returns a copy of the step labels.
func (s *Sequencer) Steps() []string { return append([]string(nil), s.steps...) }

// Durations returns a copy of the per-step durations.
func (s *Sequencer) Durations() []int { return append([]int(nil), s.durations...) }

// Checkpoints returns a copy of the cumulative step end times.
func (s *Sequencer) Checkpoints() []int { return append([]int(nil), s.checkpoints...) }

// Progress returns the completed fraction in [0, 1].
func (s *Sequencer) Progress() float64 {
	return float64(s.Elapsed()) / float64(s.total)
}
