package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp < To
}

// where builds the predicates for opts.
func (o QueryOpts) where() []*entsql.Predicate {
	var ps []*entsql.Predicate
	if o.After > 0 {
		ps = append(ps, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		ps = append(ps, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		ps = append(ps, entsql.GTE("timestamp", o.From.UTC()))
	}
	if !o.To.IsZero() {
		ps = append(ps, entsql.LT("timestamp", o.To.UTC()))
	}
	return ps
}

// EventMeta is carried by every stored event.
type EventMeta struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// AssessmentEventData records one scored assessment. Scope is a category
// id or ScopeFull for the complete questionnaire.
type AssessmentEventData struct {
	Scope      string
	Score      float64
	Band       string
	Answered   int
	Total      int
	Categories map[string]float64
	Answers    map[string]int
}

// ScopeFull marks an assessment that covered every category.
const ScopeFull = "full"

// AssessmentEvent is a stored AssessmentEventData.
type AssessmentEvent struct {
	EventMeta
	AssessmentEventData
}

// MoodEventData records one mood temperature check.
type MoodEventData struct {
	Temperature float64
	Zone        string
	Answers     []int
}

// MoodEvent is a stored MoodEventData.
type MoodEvent struct {
	EventMeta
	MoodEventData
}

// Exercise session actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// ExerciseEventData records a player lifecycle transition.
type ExerciseEventData struct {
	SessionID   string
	ExerciseID  string
	Action      string
	ElapsedSecs int
}

// ExerciseEvent is a stored ExerciseEventData.
type ExerciseEvent struct {
	EventMeta
	ExerciseEventData
}

// ExerciseSession folds the events of one player session.
type ExerciseSession struct {
	SessionID   string
	ExerciseID  string
	StartedAt   time.Time
	EndedAt     time.Time
	Completed   bool
	ElapsedSecs int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	EventMeta
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the activity log.
type EventRepo interface {
	AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error
	QueryAssessmentEvents(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	AppendMoodEvent(ctx context.Context, data MoodEventData) error
	QueryMoodEvents(ctx context.Context, opts QueryOpts) ([]MoodEvent, error)
	LatestMood(ctx context.Context) (*MoodEvent, error)

	AppendExerciseEvent(ctx context.Context, data ExerciseEventData) error
	QueryExerciseSessions(ctx context.Context, opts QueryOpts) ([]ExerciseSession, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// LLMEventAppender is the slice of EventRepo the LLM logging decorator
// needs.
type LLMEventAppender interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

var _ EventRepo = (*EventLog)(nil)
