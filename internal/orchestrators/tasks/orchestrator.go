// Package tasks implements the task orchestrator: personal task CRUD,
// completion rewards, and the deadline sweep.
package tasks

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/pkg/clock"
	"github.com/questforge/questforge/internal/pkg/idgen"
	"github.com/questforge/questforge/internal/repositories/world"
)

// PenaltyTaskDeadline is how long a remedial task stays open before it
// goes overdue itself.
const PenaltyTaskDeadline = 24 * time.Hour

// Service defines the interface for task operations
type Service interface {
	AddTask(ctx context.Context, input *AddTaskInput) (*AddTaskOutput, error)
	CompleteTask(ctx context.Context, input *CompleteTaskInput) (*CompleteTaskOutput, error)
	DeleteTask(ctx context.Context, input *DeleteTaskInput) (*DeleteTaskOutput, error)
	ListTasks(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error)

	// Sweep applies deadline penalties for every overdue task that has
	// not been penalized yet.
	Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error)

	// RunSweeper sweeps on a fixed interval until ctx is cancelled.
	RunSweeper(ctx context.Context, interval time.Duration)
}

// Config holds the dependencies for the task orchestrator
type Config struct {
	Repo        *world.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Notifier    notify.Sink
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     *world.Repository
	idGen    idgen.Generator
	clock    clock.Clock
	notifier notify.Sink
	log      *slog.Logger
}

// NewOrchestrator creates a new task orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &orchestrator{
		repo:     cfg.Repo,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
		notifier: cfg.Notifier,
		log:      log,
	}, nil
}

// AddTask appends a task to the session user's list
func (o *orchestrator) AddTask(ctx context.Context, input *AddTaskInput) (*AddTaskOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Title == "" {
		vb.RequiredField("Title")
	}
	if !input.Difficulty.Valid() {
		vb.InvalidField("Difficulty", "must be easy, medium, or hard")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	task := &entities.Task{
		ID:         o.idGen.Generate(),
		Title:      input.Title,
		Difficulty: input.Difficulty,
	}
	if input.Deadline != nil {
		d := *input.Deadline
		task.Deadline = &d
	}

	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		s.Tasks[u.Username] = append(s.Tasks[u.Username], task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "task added", "task_id", task.ID, "difficulty", task.Difficulty)
	o.sweepAfterChange(ctx)
	return &AddTaskOutput{Task: task.Clone()}, nil
}

// CompleteTask marks the task done and pays out its reward. Completing
// before the deadline earns the early bonus; completing late still pays
// the base reward.
func (o *orchestrator) CompleteTask(ctx context.Context, input *CompleteTaskInput) (*CompleteTaskOutput, error) {
	if input == nil || input.TaskID == "" {
		return nil, errors.InvalidArgument("task id is required")
	}

	now := o.clock.Now()
	out := &CompleteTaskOutput{}
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		task := s.TaskByID(u.Username, input.TaskID)
		if task == nil {
			return errors.NotFoundf("task %s not found", input.TaskID)
		}
		if task.Completed {
			return errors.FailedPreconditionf("task %s is already completed", input.TaskID)
		}

		task.Completed = true
		onTime := task.Deadline != nil && !now.After(*task.Deadline)
		out.Reward = engine.ApplyTaskReward(u, task.Difficulty, onTime)
		out.Task = task.Clone()
		out.User = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	coins := out.Reward.Coins + out.Reward.BonusCoins
	o.notifier.Push(notify.Success("Task complete!", coins, out.Reward.Exp))
	if out.Reward.BonusCoins > 0 {
		o.notifier.Push(notify.Infof("Early completion bonus: +%d coins", out.Reward.BonusCoins))
	}
	if out.Reward.LevelsGained > 0 {
		o.notifier.Push(notify.LevelUpf("Level up! You reached level %d", out.User.Level))
	}
	o.log.InfoContext(ctx, "task completed",
		"task_id", input.TaskID, "coins", coins, "exp", out.Reward.Exp, "levels", out.Reward.LevelsGained)
	o.sweepAfterChange(ctx)
	return out, nil
}

// DeleteTask removes the task without any reward or penalty
func (o *orchestrator) DeleteTask(ctx context.Context, input *DeleteTaskInput) (*DeleteTaskOutput, error) {
	if input == nil || input.TaskID == "" {
		return nil, errors.InvalidArgument("task id is required")
	}

	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		list := s.Tasks[u.Username]
		for i, t := range list {
			if t.ID == input.TaskID {
				s.Tasks[u.Username] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
		return errors.NotFoundf("task %s not found", input.TaskID)
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "task deleted", "task_id", input.TaskID)
	o.sweepAfterChange(ctx)
	return &DeleteTaskOutput{}, nil
}

// ListTasks returns copies of the session user's tasks in creation order
func (o *orchestrator) ListTasks(_ context.Context, _ *ListTasksInput) (*ListTasksOutput, error) {
	var list []*entities.Task
	var loggedIn bool
	o.repo.View(func(s *world.State) {
		u := s.Current()
		if u == nil {
			return
		}
		loggedIn = true
		for _, t := range s.Tasks[u.Username] {
			list = append(list, t.Clone())
		}
	})
	if !loggedIn {
		return nil, errors.Unauthenticated("nobody is logged in")
	}
	return &ListTasksOutput{Tasks: list}, nil
}

// Sweep walks every user's tasks and penalizes the overdue ones. Each
// missed deadline costs HP and EXP by difficulty and spawns a remedial
// task due in 24 hours. A task is penalized at most once.
//
// Notifications go to the session user only; everyone else finds out
// next time they look at their character.
func (o *orchestrator) Sweep(ctx context.Context, _ *SweepInput) (*SweepOutput, error) {
	now := o.clock.Now()
	out := &SweepOutput{}
	var notes []notify.Notification

	err := o.repo.Update(func(s *world.State) error {
		for username, list := range s.Tasks {
			u := s.Users[username]
			if u == nil {
				continue
			}
			for _, task := range list {
				if !task.Overdue(now) || task.PenaltyApplied {
					continue
				}

				engine.ApplyDeadlinePenalty(u, task.Difficulty)
				task.PenaltyApplied = true
				out.PenaltiesApplied++

				remedial := o.newPenaltyTask(now)
				s.Tasks[username] = append(s.Tasks[username], remedial)
				out.PenaltyTasksAdded++

				o.log.InfoContext(ctx, "deadline penalty applied",
					"username", username, "task_id", task.ID,
					"hp_lost", engine.PenaltyHP(task.Difficulty),
					"exp_lost", engine.PenaltyExp(task.Difficulty))

				if username == s.CurrentUser {
					notes = append(notes,
						notify.Errorf("Deadline missed for %q! -%d HP, -%d EXP",
							task.Title, engine.PenaltyHP(task.Difficulty), engine.PenaltyExp(task.Difficulty)),
						notify.Infof("Remedial task added: %q", remedial.Title))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range notes {
		o.notifier.Push(n)
	}
	return out, nil
}

// sweepAfterChange runs a sweep right after a task-set mutation so a
// deadline missed meanwhile is penalized immediately, not at the next
// ticker tick.
func (o *orchestrator) sweepAfterChange(ctx context.Context) {
	if _, err := o.Sweep(ctx, &SweepInput{}); err != nil {
		o.log.ErrorContext(ctx, "sweep after task change failed", "error", err)
	}
}

// RunSweeper sweeps on every tick until ctx is cancelled
func (o *orchestrator) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := o.Sweep(ctx, &SweepInput{}); err != nil {
				o.log.ErrorContext(ctx, "sweep failed", "error", err)
			}
		}
	}
}

func (o *orchestrator) newPenaltyTask(now time.Time) *entities.Task {
	title := entities.PenaltyTaskTitles[rand.IntN(len(entities.PenaltyTaskTitles))]
	deadline := now.Add(PenaltyTaskDeadline)
	return &entities.Task{
		ID:         o.idGen.Generate(),
		Title:      title,
		Difficulty: entities.DifficultyEasy,
		Deadline:   &deadline,
		IsPenalty:  true,
	}
}
