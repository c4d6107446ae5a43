package lib

import (
	"time"

	"github.com/slok/tasktrack/internal/conventions"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/report"
)

// StoreKind identifies the task store implementation.
type StoreKind string

const (
	// StoreJSON stores the tasks in an indented JSON file.
	StoreJSON StoreKind = conventions.StoreJSON
	// StoreYAML stores the tasks in a YAML file.
	StoreYAML StoreKind = conventions.StoreYAML
	// StoreSQLite stores the tasks in a SQLite database.
	StoreSQLite StoreKind = conventions.StoreSQLite
)

// Status represents the lifecycle stage of a task or subtask.
//
// Statuses are ordered from the least to the most blocking:
//
//	ToDo -> WaitingForOtherWorkday -> WaitingForEmail -> WaitingForReply -> MeetingScheduled -> OnHold -> Done
type Status string

const (
	StatusToDo                   Status = Status(model.StatusToDo)
	StatusWaitingForOtherWorkday Status = Status(model.StatusWaitingForOtherWorkday)
	StatusWaitingForEmail        Status = Status(model.StatusWaitingForEmail)
	StatusWaitingForReply        Status = Status(model.StatusWaitingForReply)
	StatusMeetingScheduled       Status = Status(model.StatusMeetingScheduled)
	StatusOnHold                 Status = Status(model.StatusOnHold)
	StatusDone                   Status = Status(model.StatusDone)
)

// Priority represents the importance of a task.
type Priority string

const (
	PriorityLow      Priority = Priority(model.PriorityLow)
	PriorityMedium   Priority = Priority(model.PriorityMedium)
	PriorityHigh     Priority = Priority(model.PriorityHigh)
	PriorityCritical Priority = Priority(model.PriorityCritical)
)

// WaitingGroup is a coarse classification of statuses.
type WaitingGroup string

const (
	// WaitingGroupToDo is the [StatusToDo] group.
	WaitingGroupToDo WaitingGroup = WaitingGroup(model.WaitingGroupToDo)
	// WaitingGroupWaiting groups the waiting and meeting statuses.
	WaitingGroupWaiting WaitingGroup = WaitingGroup(model.WaitingGroupWaiting)
	// WaitingGroupOnHold is the [StatusOnHold] group.
	WaitingGroupOnHold WaitingGroup = WaitingGroup(model.WaitingGroupOnHold)
	// WaitingGroupDone is the [StatusDone] group.
	WaitingGroupDone WaitingGroup = WaitingGroup(model.WaitingGroupDone)
)

// Task represents a task returned by the SDK.
//
// This is a read-only copy of the task at the time of the API call.
type Task struct {
	// ID is the unique identifier (ULID) assigned at creation or first load.
	ID          string
	Title       string
	Description string
	Priority    Priority
	// Status is derived from the subtasks when the task has any.
	Status Status
	// FinishedAt is set only when the task is done.
	FinishedAt *time.Time
	Subtasks   []Subtask
}

// Subtask represents a unit of work of a task.
type Subtask struct {
	ID          string
	Title       string
	Description string
	Status      Status
	// FinishedAt is set only when the subtask is done.
	FinishedAt     *time.Time
	EstimatedHours float64
	// ActualHours is nil until recorded, done subtasks always have it.
	ActualHours *float64
}

// AddTaskOpts configures task creation. Title is required.
type AddTaskOpts struct {
	Title       string
	Description string
	// Priority defaults to [PriorityMedium].
	Priority Priority
	// Status defaults to [StatusToDo].
	Status Status
}

// EditTaskOpts sets the task fields to change, nil fields are left unchanged.
type EditTaskOpts struct {
	Title       *string
	Description *string
	Priority    *Priority
	// Status can only be changed on tasks without subtasks.
	Status *Status
}

// AddSubtaskOpts configures subtask creation. Title is required.
type AddSubtaskOpts struct {
	Title       string
	Description string
	// Status defaults to [StatusToDo].
	Status         Status
	EstimatedHours float64
	// ActualHours is required when Status is [StatusDone].
	ActualHours *float64
}

// EditSubtaskOpts sets the subtask fields to change, nil fields are left unchanged.
type EditSubtaskOpts struct {
	Title          *string
	Description    *string
	Status         *Status
	EstimatedHours *float64
	ActualHours    *float64
}

// Stats are the statistics of the task collection.
type Stats struct {
	// TaskStatuses and SubtaskStatuses count every status, including the zero ones.
	TaskStatuses    map[Status]int
	SubtaskStatuses map[Status]int
	// WeeklyDone counts the done tasks by ISO week, sorted by week ascending.
	WeeklyDone []WeekCount
	// EstimatedHours and ActualHours are the totals of the done subtasks.
	EstimatedHours float64
	ActualHours    float64
}

// WeekCount is the number of tasks finished in an ISO week.
type WeekCount struct {
	// Label is the ISO week label, e.g. 2025-W01.
	Label string
	Year  int
	Week  int
	Count int
}

// MonthReport is the work finished in a calendar month.
type MonthReport struct {
	Year    int
	Month   time.Month
	Entries []MonthEntry
}

// MonthEntry is a task with work finished in the report month.
type MonthEntry struct {
	TaskID      string
	Title       string
	Description string
	Priority    Priority
	// TaskFinishedAt is set only when the task itself was finished in the month.
	TaskFinishedAt *time.Time
	Subtasks       []MonthSubtask
}

// MonthSubtask is a subtask finished in the report month.
type MonthSubtask struct {
	SubtaskID   string
	Title       string
	Description string
	FinishedAt  time.Time
}

// Hours is a helper to set optional hours.
func Hours(h float64) *float64 { return &h }

// --- Conversion helpers ---

func fromInternalTask(t model.Task) Task {
	task := Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    Priority(t.Priority),
		Status:      Status(t.Status),
		FinishedAt:  t.FinishedAt,
		Subtasks:    make([]Subtask, 0, len(t.Subtasks)),
	}
	for _, s := range t.Subtasks {
		task.Subtasks = append(task.Subtasks, fromInternalSubtask(s))
	}
	return task
}

func fromInternalTaskList(ts []model.Task) []Task {
	tasks := make([]Task, 0, len(ts))
	for _, t := range ts {
		tasks = append(tasks, fromInternalTask(t))
	}
	return tasks
}

func fromInternalSubtask(s model.Subtask) Subtask {
	return Subtask{
		ID:             s.ID,
		Title:          s.Title,
		Description:    s.Description,
		Status:         Status(s.Status),
		FinishedAt:     s.FinishedAt,
		EstimatedHours: s.EstimatedHours,
		ActualHours:    s.ActualHours,
	}
}

func fromInternalSummary(s report.Summary) Stats {
	stats := Stats{
		TaskStatuses:    map[Status]int{},
		SubtaskStatuses: map[Status]int{},
		WeeklyDone:      make([]WeekCount, 0, len(s.Weekly)),
		EstimatedHours:  s.Totals.EstimatedHours,
		ActualHours:     s.Totals.ActualHours,
	}
	for _, st := range model.StatusOrder {
		stats.TaskStatuses[Status(st)] = s.Distribution.Tasks[st]
		stats.SubtaskStatuses[Status(st)] = s.Distribution.Subtasks[st]
	}
	for _, w := range s.Weekly {
		stats.WeeklyDone = append(stats.WeeklyDone, WeekCount{
			Label: w.Label(),
			Year:  w.Year,
			Week:  w.Week,
			Count: w.Count,
		})
	}
	return stats
}

func fromInternalMonthReport(r report.MonthReport) *MonthReport {
	mr := &MonthReport{
		Year:    r.Year,
		Month:   r.Month,
		Entries: make([]MonthEntry, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		entry := MonthEntry{
			TaskID:         e.TaskID,
			Title:          e.Title,
			Description:    e.Description,
			Priority:       Priority(e.Priority),
			TaskFinishedAt: e.TaskFinishedAt,
			Subtasks:       make([]MonthSubtask, 0, len(e.Subtasks)),
		}
		for _, s := range e.Subtasks {
			entry.Subtasks = append(entry.Subtasks, MonthSubtask(s))
		}
		mr.Entries = append(mr.Entries, entry)
	}
	return mr
}

func toInternalStatus(s *Status) *model.Status {
	if s == nil {
		return nil
	}
	st := model.Status(*s)
	return &st
}

func toInternalGroup(g *WaitingGroup) *model.WaitingGroup {
	if g == nil {
		return nil
	}
	wg := model.WaitingGroup(*g)
	return &wg
}

func toInternalPriority(p *Priority) *model.Priority {
	if p == nil {
		return nil
	}
	pr := model.Priority(*p)
	return &pr
}
