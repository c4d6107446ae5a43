// Package normalize sanitizes tasks coming from untrusted sources into valid
// domain values and re-derives the computed fields.
package normalize

import (
	"crypto/rand"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
)

// NormalizerConfig is the configuration for the normalizer.
type NormalizerConfig struct {
	// Now returns the current time, used to fill missing finish times.
	Now func() time.Time
	// NewID returns a new unique ID for tasks and subtasks without one.
	NewID  func() string
	Logger log.Logger
}

func (c *NormalizerConfig) defaults() error {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = NewID
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "normalize.Normalizer"})
	return nil
}

// Normalizer converts possibly invalid tasks into valid ones. Normalizing is
// idempotent and never fails, invalid values degrade to their defaults.
type Normalizer struct {
	now    func() time.Time
	newID  func() string
	logger log.Logger
}

// NewNormalizer returns a new normalizer.
func NewNormalizer(cfg NormalizerConfig) (*Normalizer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Normalizer{
		now:    cfg.Now,
		newID:  cfg.NewID,
		logger: cfg.Logger,
	}, nil
}

// NewID returns a new ULID based identifier.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Now returns the normalizer current time with second precision.
func (n *Normalizer) Now() time.Time {
	return n.now().Truncate(time.Second)
}

// NewID returns a new identifier using the configured generator.
func (n *Normalizer) NewID() string {
	return n.newID()
}

// Task returns a normalized copy of the task.
func (n *Normalizer) Task(t model.Task) model.Task {
	t = t.Copy()

	if t.ID == "" {
		t.ID = n.newID()
		n.logger.Debugf("Task %q without ID, assigned %s", t.Title, t.ID)
	}

	if !t.Priority.Valid() {
		n.logger.Debugf("Task %s has unknown priority %q, using %s", t.ID, t.Priority, model.DefaultPriority)
		t.Priority = model.DefaultPriority
	}

	if !t.Status.Valid() {
		n.logger.Debugf("Task %s has unknown status %q, using %s", t.ID, t.Status, model.StatusToDo)
		t.Status = model.StatusToDo
	}
	t.FinishedAt = truncate(t.FinishedAt)

	for i, s := range t.Subtasks {
		t.Subtasks[i] = n.Subtask(s)
	}

	return Aggregate(t, n.Now())
}

// Subtask returns a normalized copy of the subtask.
func (n *Normalizer) Subtask(s model.Subtask) model.Subtask {
	s = s.Copy()

	if s.ID == "" {
		s.ID = n.newID()
		n.logger.Debugf("Subtask %q without ID, assigned %s", s.Title, s.ID)
	}

	if !s.Status.Valid() {
		n.logger.Debugf("Subtask %s has unknown status %q, using %s", s.ID, s.Status, model.StatusToDo)
		s.Status = model.StatusToDo
	}

	switch {
	case s.Status != model.StatusDone:
		s.FinishedAt = nil
	case s.FinishedAt == nil:
		now := n.Now()
		s.FinishedAt = &now
	default:
		s.FinishedAt = truncate(s.FinishedAt)
	}

	if !validHours(s.EstimatedHours) {
		n.logger.Debugf("Subtask %s has invalid estimated hours %v, using 0", s.ID, s.EstimatedHours)
		s.EstimatedHours = 0
	}

	if s.ActualHours != nil && !validHours(*s.ActualHours) {
		n.logger.Debugf("Subtask %s has invalid actual hours %v, dropping", s.ID, *s.ActualHours)
		s.ActualHours = nil
	}

	return s
}

func validHours(h float64) bool {
	return h >= 0 && !math.IsNaN(h) && !math.IsInf(h, 0)
}

func truncate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	tt := t.Truncate(time.Second)
	return &tt
}
