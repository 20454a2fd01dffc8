package service

import (
	"testing"

	"workflowhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransitionPolicy_AllowAll(t *testing.T) {
	policy := AllowAll()
	for _, from := range model.TaskStatuses {
		for _, to := range model.TaskStatuses {
			assert.True(t, policy.Allows(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionPolicy_Restricted(t *testing.T) {
	policy := TransitionPolicy{
		model.TaskStatusCompleted: {model.TaskStatusInProgress},
	}

	assert.True(t, policy.Allows(model.TaskStatusCompleted, model.TaskStatusInProgress))
	assert.False(t, policy.Allows(model.TaskStatusCompleted, model.TaskStatusPending))
	assert.True(t, policy.Allows(model.TaskStatusCompleted, model.TaskStatusCompleted))
	// statuses without an entry stay unrestricted
	assert.True(t, policy.Allows(model.TaskStatusPending, model.TaskStatusCancelled))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 100))
	assert.Equal(t, "héllo", excerpt("héllo wörld", 5))
}

func TestError_Format(t *testing.T) {
	err := NewNotFound("task", uuid.Nil)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Contains(t, err.Error(), "[NOT_FOUND]")
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeValidation))
}
