package tasks

import (
	"time"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
)

// AddTaskInput describes the task to create for the session user
type AddTaskInput struct {
	Title      string
	Difficulty entities.Difficulty

	// Deadline is optional; tasks without one never go overdue.
	Deadline *time.Time
}

// AddTaskOutput returns the created task
type AddTaskOutput struct {
	Task *entities.Task
}

// CompleteTaskInput identifies the task to complete
type CompleteTaskInput struct {
	TaskID string
}

// CompleteTaskOutput returns the completed task, the reward applied,
// and the user after the reward
type CompleteTaskOutput struct {
	Task   *entities.Task
	Reward engine.Reward
	User   *entities.User
}

// DeleteTaskInput identifies the task to remove
type DeleteTaskInput struct {
	TaskID string
}

// DeleteTaskOutput is empty
type DeleteTaskOutput struct{}

// ListTasksInput is empty; listing acts on the session user
type ListTasksInput struct{}

// ListTasksOutput returns the session user's tasks in creation order
type ListTasksOutput struct {
	Tasks []*entities.Task
}

// SweepInput is empty
type SweepInput struct{}

// SweepOutput reports what the deadline sweep did
type SweepOutput struct {
	PenaltiesApplied  int
	PenaltyTasksAdded int
}
