package model

// TaskStatus is both the lifecycle state of a task and its kanban column.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInPlanning TaskStatus = "IN_PLANNING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskStatuses lists the statuses in kanban column order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInPlanning,
	TaskStatusInProgress,
	TaskStatusBlocked,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
	PriorityNone     Priority = "NONE"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusActive,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Role of a user within the workspace.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleGuest  Role = "GUEST"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

// EntityType names the kind of record an audit entry describes.
type EntityType string

const (
	EntityTask    EntityType = "TASK"
	EntityProject EntityType = "PROJECT"
)

func (e EntityType) Valid() bool {
	return e == EntityTask || e == EntityProject
}

type AuditAction string

const (
	ActionCreated       AuditAction = "CREATED"
	ActionUpdated       AuditAction = "UPDATED"
	ActionDeleted       AuditAction = "DELETED"
	ActionStatusChanged AuditAction = "STATUS_CHANGED"
	ActionAssigned      AuditAction = "ASSIGNED"
	ActionCommented     AuditAction = "COMMENTED"
)

func (a AuditAction) Valid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionDeleted, ActionStatusChanged, ActionAssigned, ActionCommented:
		return true
	}
	return false
}
