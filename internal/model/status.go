package model

// Status is the lifecycle stage of a task or subtask.
type Status string

const (
	StatusToDo                   Status = "ToDo"
	StatusWaitingForOtherWorkday Status = "WaitingForOtherWorkday"
	StatusWaitingForEmail        Status = "WaitingForEmail"
	StatusWaitingForReply        Status = "WaitingForReply"
	StatusMeetingScheduled       Status = "MeetingScheduled"
	StatusOnHold                 Status = "OnHold"
	StatusDone                   Status = "Done"
)

// StatusOrder is the fixed urgency order of the statuses, the lower the index the
// less blocking the status is.
var StatusOrder = []Status{
	StatusToDo,
	StatusWaitingForOtherWorkday,
	StatusWaitingForEmail,
	StatusWaitingForReply,
	StatusMeetingScheduled,
	StatusOnHold,
	StatusDone,
}

// Valid returns true if the status is one of the known statuses.
func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Index returns the position of the status in StatusOrder, -1 if unknown.
func (s Status) Index() int {
	for i, st := range StatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Group returns the waiting group classification of the status.
func (s Status) Group() WaitingGroup {
	switch s {
	case StatusDone:
		return WaitingGroupDone
	case StatusOnHold:
		return WaitingGroupOnHold
	case StatusWaitingForReply, StatusWaitingForOtherWorkday, StatusWaitingForEmail, StatusMeetingScheduled:
		return WaitingGroupWaiting
	default:
		return WaitingGroupToDo
	}
}

// WaitingGroup is a coarse classification of statuses used for display grouping.
type WaitingGroup string

const (
	WaitingGroupToDo    WaitingGroup = "todo"
	WaitingGroupWaiting WaitingGroup = "waiting"
	WaitingGroupOnHold  WaitingGroup = "onhold"
	WaitingGroupDone    WaitingGroup = "done"
)

// Valid returns true if the group is a known waiting group.
func (g WaitingGroup) Valid() bool {
	switch g {
	case WaitingGroupToDo, WaitingGroupWaiting, WaitingGroupOnHold, WaitingGroupDone:
		return true
	}
	return false
}

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// DefaultPriority is the priority used when none (or an unknown one) is set.
const DefaultPriority = PriorityMedium

// Priorities are all the priorities ordered from the lowest to the highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Valid returns true if the priority is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Index() >= 0
}

// Index returns the position of the priority in Priorities, -1 if unknown.
func (p Priority) Index() int {
	for i, pr := range Priorities {
		if pr == p {
			return i
		}
	}
	return -1
}
