package list

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
)

// TaskGetter returns the live task collection.
type TaskGetter interface {
	Tasks() []model.Task
}

// TaskGetterFunc is a helper to implement TaskGetter with functions.
type TaskGetterFunc func() []model.Task

func (f TaskGetterFunc) Tasks() []model.Task { return f() }

// ServiceConfig is the configuration for the list service.
type ServiceConfig struct {
	Tasks  TaskGetter
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Tasks == nil {
		return fmt.Errorf("task getter is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists tasks with optional filtering and sorting.
type Service struct {
	tasks  TaskGetter
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		tasks:  cfg.Tasks,
		logger: cfg.Logger,
	}, nil
}

// SortBy is the field used to sort the listed tasks.
type SortBy string

const (
	// SortByNone keeps the insertion order.
	SortByNone     SortBy = ""
	SortByPriority SortBy = "priority"
	SortByStatus   SortBy = "status"
	SortByTitle    SortBy = "title"
	SortByFinished SortBy = "finished"
)

// SortFields are the supported sort fields.
var SortFields = []SortBy{SortByPriority, SortByStatus, SortByTitle, SortByFinished}

// Request represents the list request parameters.
type Request struct {
	// StatusFilter is an optional filter to only show tasks with this status.
	StatusFilter *model.Status
	// PriorityFilter is an optional filter to only show tasks with this priority.
	PriorityFilter *model.Priority
	// GroupFilter is an optional filter to only show tasks whose status is in the group.
	GroupFilter *model.WaitingGroup
	// Query matches case insensitive on the title and description.
	Query      string
	SortBy     SortBy
	Descending bool
}

func (r Request) validate() error {
	if r.StatusFilter != nil && !r.StatusFilter.Valid() {
		return model.NewValidationError("status", fmt.Sprintf("unknown status %q", *r.StatusFilter))
	}
	if r.PriorityFilter != nil && !r.PriorityFilter.Valid() {
		return model.NewValidationError("priority", fmt.Sprintf("unknown priority %q", *r.PriorityFilter))
	}
	if r.GroupFilter != nil && !r.GroupFilter.Valid() {
		return model.NewValidationError("group", fmt.Sprintf("unknown group %q", *r.GroupFilter))
	}

	switch r.SortBy {
	case SortByNone, SortByPriority, SortByStatus, SortByTitle, SortByFinished:
	default:
		return model.NewValidationError("sort", fmt.Sprintf("unknown sort field %q", r.SortBy))
	}

	return nil
}

// Run lists the tasks matching every filter of the request, sorted if requested.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	s.logger.Debugf("listing tasks with request: %+v", req)

	query := strings.ToLower(strings.TrimSpace(req.Query))
	tasks := s.tasks.Tasks()
	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if req.StatusFilter != nil && t.Status != *req.StatusFilter {
			continue
		}
		if req.PriorityFilter != nil && t.Priority != *req.PriorityFilter {
			continue
		}
		if req.GroupFilter != nil && t.Status.Group() != *req.GroupFilter {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Title), query) && !strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		filtered = append(filtered, t)
	}

	if less := lessFunc(req.SortBy); less != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			if req.Descending {
				return less(filtered[j], filtered[i])
			}
			return less(filtered[i], filtered[j])
		})
	}

	s.logger.Debugf("found %d tasks", len(filtered))
	return filtered, nil
}

func lessFunc(by SortBy) func(a, b model.Task) bool {
	switch by {
	case SortByPriority:
		return func(a, b model.Task) bool { return a.Priority.Index() < b.Priority.Index() }
	case SortByStatus:
		return func(a, b model.Task) bool { return a.Status.Index() < b.Status.Index() }
	case SortByTitle:
		return func(a, b model.Task) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortByFinished:
		// Unfinished tasks go first.
		return func(a, b model.Task) bool {
			switch {
			case a.FinishedAt == nil:
				return b.FinishedAt != nil
			case b.FinishedAt == nil:
				return false
			}
			return a.FinishedAt.Before(*b.FinishedAt)
		}
	}
	return nil
}
