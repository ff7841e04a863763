package entities

import "time"

// Difficulty tiers a task or party task
type Difficulty string

// Difficulty tiers
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known tier
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Task is a personal quest. Completed is terminal: once set it never
// reverts. PenaltyApplied gates the deadline penalty to at most one
// application per task.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Difficulty     Difficulty `json:"difficulty"`
	Completed      bool       `json:"completed"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	PenaltyApplied bool       `json:"penaltyApplied"`
	IsPenalty      bool       `json:"isPenalty"`
}

// GetID implements core.Entity
func (t *Task) GetID() string { return t.ID }

// GetType implements core.Entity
func (t *Task) GetType() string { return "task" }

// Overdue reports whether the task has a deadline in the past and is
// still incomplete
func (t *Task) Overdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && now.After(*t.Deadline)
}

// Clone returns a deep copy
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Deadline != nil {
		d := *t.Deadline
		cp.Deadline = &d
	}
	return &cp
}
