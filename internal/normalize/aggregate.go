package normalize

import (
	"time"

	"github.com/slok/tasktrack/internal/model"
)

// Aggregate returns a copy of the task with its status and finish time derived
// from its subtasks. Tasks without subtasks keep their status and only get the
// finish time fixed to match it.
func Aggregate(t model.Task, now time.Time) model.Task {
	t = t.Copy()
	t.Status, t.FinishedAt = derive(t, now)
	return t
}

func derive(t model.Task, now time.Time) (model.Status, *time.Time) {
	if !t.HasSubtasks() {
		if t.Status != model.StatusDone {
			return t.Status, nil
		}
		if t.FinishedAt == nil {
			return t.Status, &now
		}
		return t.Status, t.FinishedAt
	}

	seen := map[model.Status]bool{}
	for _, s := range t.Subtasks {
		seen[s.Status] = true
	}

	switch {
	case len(seen) == 1 && seen[model.StatusDone]:
		return model.StatusDone, latestFinish(t.Subtasks, now)
	case len(seen) == 1 && seen[model.StatusToDo]:
		return model.StatusToDo, nil
	case onlyToDoOrDone(seen):
		// Mixed todo and done work is still todo, never an intermediate status.
		return model.StatusToDo, nil
	}

	return dominant(seen), nil
}

func onlyToDoOrDone(seen map[model.Status]bool) bool {
	for st := range seen {
		if st != model.StatusToDo && st != model.StatusDone {
			return false
		}
	}
	return true
}

// dominant returns the most blocking status that is not todo or done.
func dominant(seen map[model.Status]bool) model.Status {
	dom := model.StatusToDo
	domIdx := -1
	for st := range seen {
		if st == model.StatusToDo || st == model.StatusDone {
			continue
		}
		if idx := st.Index(); idx > domIdx {
			dom, domIdx = st, idx
		}
	}
	return dom
}

func latestFinish(subtasks []model.Subtask, now time.Time) *time.Time {
	var latest *time.Time
	for _, s := range subtasks {
		if s.FinishedAt == nil {
			continue
		}
		if latest == nil || s.FinishedAt.After(*latest) {
			f := *s.FinishedAt
			latest = &f
		}
	}

	if latest == nil {
		return &now
	}
	return latest
}
