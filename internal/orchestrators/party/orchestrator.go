// Package party implements the party orchestrator: shared task groups
// with a leader, per-member completion, and party-tier rewards.
package party

import (
	"context"
	"log/slog"
	"sort"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/pkg/idgen"
	"github.com/questforge/questforge/internal/repositories/world"
)

// Service defines the interface for party operations
type Service interface {
	CreateParty(ctx context.Context, input *CreatePartyInput) (*CreatePartyOutput, error)
	JoinParty(ctx context.Context, input *JoinPartyInput) (*JoinPartyOutput, error)
	AddPartyTask(ctx context.Context, input *AddPartyTaskInput) (*AddPartyTaskOutput, error)
	CompletePartyTask(ctx context.Context, input *CompletePartyTaskInput) (*CompletePartyTaskOutput, error)
	GetParty(ctx context.Context, input *GetPartyInput) (*GetPartyOutput, error)
	ListParties(ctx context.Context, input *ListPartiesInput) (*ListPartiesOutput, error)
}

// Config holds the dependencies for the party orchestrator
type Config struct {
	Repo        *world.Repository
	IDGenerator idgen.Generator
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
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     *world.Repository
	idGen    idgen.Generator
	notifier notify.Sink
	log      *slog.Logger
}

// NewOrchestrator creates a new party orchestrator with the provided dependencies
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
		notifier: cfg.Notifier,
		log:      log,
	}, nil
}

// CreateParty creates a party with the session user as leader and sole member
func (o *orchestrator) CreateParty(ctx context.Context, input *CreatePartyInput) (*CreatePartyOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("party name is required")
	}

	var created *entities.Party
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		p := &entities.Party{
			ID:      o.idGen.Generate(),
			Name:    input.Name,
			Leader:  u.Username,
			Members: []string{u.Username},
		}
		s.Parties[p.ID] = p
		created = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "party created", "party_id", created.ID, "leader", created.Leader)
	o.notifier.Push(notify.Successf("Party %q created. Share its id so others can join.", created.Name))
	return &CreatePartyOutput{Party: created}, nil
}

// JoinParty adds the session user to the party. Joining twice is an error.
func (o *orchestrator) JoinParty(ctx context.Context, input *JoinPartyInput) (*JoinPartyOutput, error) {
	if input == nil || input.PartyID == "" {
		return nil, errors.InvalidArgument("party id is required")
	}

	var joined *entities.Party
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		p := s.Parties[input.PartyID]
		if p == nil {
			return errors.NotFoundf("party %s not found", input.PartyID)
		}
		if p.HasMember(u.Username) {
			return errors.AlreadyExistsf("already a member of %q", p.Name)
		}
		p.Members = append(p.Members, u.Username)
		joined = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "party joined", "party_id", input.PartyID)
	o.notifier.Push(notify.Successf("You joined %q!", joined.Name))
	return &JoinPartyOutput{Party: joined}, nil
}

// AddPartyTask creates a shared task. Only the leader may add tasks.
func (o *orchestrator) AddPartyTask(ctx context.Context, input *AddPartyTaskInput) (*AddPartyTaskOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.PartyID == "" {
		vb.RequiredField("PartyID")
	}
	if input.Title == "" {
		vb.RequiredField("Title")
	}
	if !input.Difficulty.Valid() {
		vb.InvalidField("Difficulty", "must be easy, medium, or hard")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	task := &entities.PartyTask{
		ID:         o.idGen.Generate(),
		Title:      input.Title,
		Difficulty: input.Difficulty,
	}
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		p := s.Parties[input.PartyID]
		if p == nil {
			return errors.NotFoundf("party %s not found", input.PartyID)
		}
		if !p.IsLeader(u.Username) {
			return errors.PermissionDeniedf("only the leader of %q can add tasks", p.Name)
		}
		p.Tasks = append(p.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "party task added", "party_id", input.PartyID, "task_id", task.ID)
	taskCopy := *task
	taskCopy.CompletedBy = append([]string(nil), task.CompletedBy...)
	return &AddPartyTaskOutput{Task: &taskCopy}, nil
}

// CompletePartyTask records the session user's completion and pays the
// party-tier reward immediately. Each member completes independently; a
// member completes a given task at most once.
func (o *orchestrator) CompletePartyTask(ctx context.Context, input *CompletePartyTaskInput) (*CompletePartyTaskOutput, error) {
	if input == nil || input.PartyID == "" || input.TaskID == "" {
		return nil, errors.InvalidArgument("party id and task id are required")
	}

	out := &CompletePartyTaskOutput{}
	var partyName string
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		p := s.Parties[input.PartyID]
		if p == nil {
			return errors.NotFoundf("party %s not found", input.PartyID)
		}
		if !p.HasMember(u.Username) {
			return errors.PermissionDeniedf("not a member of %q", p.Name)
		}
		task := p.TaskByID(input.TaskID)
		if task == nil {
			return errors.NotFoundf("party task %s not found", input.TaskID)
		}
		if task.HasCompleted(u.Username) {
			return errors.FailedPreconditionf("you already completed %q", task.Title)
		}

		task.CompletedBy = append(task.CompletedBy, u.Username)
		out.Reward = engine.ApplyPartyTaskReward(u, task.Difficulty)
		out.FullyComplete = p.FullyComplete(task)
		out.User = u.Clone()
		partyName = p.Name

		tc := *task
		tc.CompletedBy = append([]string(nil), task.CompletedBy...)
		out.Task = &tc
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.notifier.Push(notify.Success("Party task complete!", out.Reward.Coins, out.Reward.Exp))
	if out.Reward.LevelsGained > 0 {
		o.notifier.Push(notify.LevelUpf("Level up! You reached level %d", out.User.Level))
	}
	if out.FullyComplete {
		o.notifier.Push(notify.Infof("Everyone in %q finished %q!", partyName, out.Task.Title))
	}
	o.log.InfoContext(ctx, "party task completed",
		"party_id", input.PartyID, "task_id", input.TaskID, "fully_complete", out.FullyComplete)
	return out, nil
}

// GetParty returns a copy of the party
func (o *orchestrator) GetParty(_ context.Context, input *GetPartyInput) (*GetPartyOutput, error) {
	if input == nil || input.PartyID == "" {
		return nil, errors.InvalidArgument("party id is required")
	}

	var p *entities.Party
	o.repo.View(func(s *world.State) {
		p = s.Parties[input.PartyID].Clone()
	})
	if p == nil {
		return nil, errors.NotFoundf("party %s not found", input.PartyID)
	}
	return &GetPartyOutput{Party: p}, nil
}

// ListParties returns every party, ordered by id for stable output
func (o *orchestrator) ListParties(_ context.Context, _ *ListPartiesInput) (*ListPartiesOutput, error) {
	var list []*entities.Party
	o.repo.View(func(s *world.State) {
		for _, p := range s.Parties {
			list = append(list, p.Clone())
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return &ListPartiesOutput{Parties: list}, nil
}
