package service

import "workflowhub/internal/model"

// TransitionPolicy lists, per source status, the statuses a task may move to.
// A nil policy or a missing source status permits every move.
type TransitionPolicy map[model.TaskStatus][]model.TaskStatus

// AllowAll is the kanban default: any column may be dropped onto any other.
func AllowAll() TransitionPolicy {
	return nil
}

func (p TransitionPolicy) Allows(from, to model.TaskStatus) bool {
	if from == to {
		return true
	}
	targets, ok := p[from]
	if !ok {
		return true
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}
