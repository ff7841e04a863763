// Package dungeon implements the boss encounter orchestrator. An
// encounter is a transient quest: stat combat trades blows until one
// side drops, riddle combat trades wrong answers for hit points.
package dungeon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/pkg/clock"
	"github.com/questforge/questforge/internal/pkg/idgen"
	"github.com/questforge/questforge/internal/repositories/world"
)

// HintThreshold is how many failed attempts it takes before the riddle's
// hint is revealed.
const HintThreshold = 2

// Service defines the interface for dungeon operations
type Service interface {
	StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error)
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)
	Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error)
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	Repo        *world.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Roller      dice.Roller
	Notifier    notify.Sink
	Logger      *slog.Logger

	// CounterDelay is how long the boss waits before retaliating. Zero
	// runs the counter-attack synchronously inside Attack, which is
	// what tests want.
	CounterDelay time.Duration
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
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}

	return vb.Build()
}

type orchestrator struct {
	repo         *world.Repository
	idGen        idgen.Generator
	clock        clock.Clock
	roller       dice.Roller
	notifier     notify.Sink
	log          *slog.Logger
	counterDelay time.Duration

	// timers holds the pending counter-attack per quest so a terminal
	// transition can cancel it.
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewOrchestrator creates a new dungeon orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &orchestrator{
		repo:         cfg.Repo,
		idGen:        cfg.IDGenerator,
		clock:        cfg.Clock,
		roller:       cfg.Roller,
		notifier:     cfg.Notifier,
		log:          log,
		counterDelay: cfg.CounterDelay,
		timers:       make(map[string]*time.Timer),
	}, nil
}

// StartEncounter copies the chosen boss out of the catalog into a fresh
// quest. A user fights one encounter at a time.
func (o *orchestrator) StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.BossKey == "" {
		vb.RequiredField("BossKey")
	}
	if !input.Mode.Valid() {
		vb.InvalidField("Mode", "must be combat or riddle")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	boss, ok := entities.BossByKey(input.BossKey)
	if !ok {
		return nil, errors.NotFoundf("boss %s not found", input.BossKey)
	}

	quest := &entities.Quest{
		ID:        o.idGen.Generate(),
		Boss:      boss,
		Active:    true,
		CreatedAt: o.clock.Now().UnixMilli(),
	}
	if input.Mode == ModeRiddle {
		puzzle, ok := entities.PuzzleByKey(input.BossKey)
		if !ok {
			return nil, errors.NotFoundf("boss %s has no riddle", input.BossKey)
		}
		quest.Puzzle = &puzzle
	}

	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		if activeQuestFor(s, u.Username) != nil {
			return errors.FailedPrecondition("already in an encounter; flee or finish it first")
		}
		quest.Participants = []string{u.Username}
		s.Quests[quest.ID] = quest
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "encounter started",
		"quest_id", quest.ID, "boss", boss.Name, "mode", string(input.Mode))
	o.notifier.Push(notify.Infof("Battle started against %s!", boss.Name))

	out := &StartEncounterOutput{Quest: quest.Clone()}
	if quest.Puzzle != nil {
		out.Question = quest.Puzzle.Question
	}
	return out, nil
}

// Attack lands the player's blow and, unless that ends the fight,
// queues the boss counter-attack.
func (o *orchestrator) Attack(ctx context.Context, _ *AttackInput) (*AttackOutput, error) {
	bonus, err := o.rollBonus(engine.PlayerDamageDie)
	if err != nil {
		return nil, err
	}

	out := &AttackOutput{Outcome: OutcomeOngoing}
	var questID string
	err = o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		q := activeQuestFor(s, u.Username)
		if q == nil {
			return errors.FailedPrecondition("no active encounter")
		}
		if q.Puzzle != nil {
			return errors.FailedPrecondition("this boss is fought with answers, not swords")
		}
		questID = q.ID

		dmg := engine.PlayerDamage(u.Attack, q.Boss.Defense, bonus)
		fell := engine.ApplyDamageToBoss(&q.Boss, dmg)
		out.PlayerDamage = dmg
		out.BossHP = q.Boss.HP
		out.Log = append(out.Log, fmt.Sprintf("%s attacks for %d damage!", u.Username, dmg))

		if fell {
			reward := engine.ApplyBossReward(u, q.Boss)
			out.Reward = &reward
			out.Outcome = OutcomeVictory
			out.Log = append(out.Log,
				fmt.Sprintf("%s defeated!", q.Boss.Name),
				fmt.Sprintf("Rewards: %d coins + %d XP", reward.Coins, reward.Exp))
			delete(s.Quests, q.ID)
		}
		out.UserHP = u.HP
		out.User = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Outcome == OutcomeVictory {
		o.cancelCounter(questID)
		o.notifier.Push(notify.Success("Boss defeated! Victory!", out.Reward.Coins, out.Reward.Exp))
		if out.Reward.LevelsGained > 0 {
			o.notifier.Push(notify.LevelUpf("Level up! You reached level %d", out.User.Level))
		}
		o.log.InfoContext(ctx, "encounter won", "quest_id", questID,
			"coins", out.Reward.Coins, "exp", out.Reward.Exp)
		return out, nil
	}

	if o.counterDelay == 0 {
		counter := o.counterAttack(ctx, questID)
		out.CounterDamage = counter.damage
		out.UserHP = counter.userHP
		out.User = counter.user
		if counter.defeated {
			out.Outcome = OutcomeDefeat
		}
		out.Log = append(out.Log, counter.log...)
		return out, nil
	}

	o.mu.Lock()
	o.timers[questID] = time.AfterFunc(o.counterDelay, func() {
		o.cancelCounter(questID)
		o.counterAttack(context.Background(), questID)
	})
	o.mu.Unlock()
	return out, nil
}

type counterResult struct {
	damage   int
	userHP   int
	defeated bool
	user     *entities.User
	log      []string
}

// counterAttack is the boss's reply. It no-ops if the quest ended in
// the meantime.
func (o *orchestrator) counterAttack(ctx context.Context, questID string) counterResult {
	bonus, err := o.rollBonus(engine.BossDamageDie)
	if err != nil {
		o.log.ErrorContext(ctx, "counter-attack roll failed", "quest_id", questID, "error", err)
		return counterResult{}
	}

	var res counterResult
	err = o.repo.Update(func(s *world.State) error {
		q := s.Quests[questID]
		if q == nil || !q.Active || len(q.Participants) == 0 {
			return nil
		}
		u := s.Users[q.Participants[0]]
		if u == nil {
			return nil
		}

		dmg := engine.BossDamage(q.Boss.Attack, u.Defense, bonus)
		fell := engine.ApplyDamageToUser(u, dmg)
		res.damage = dmg
		res.userHP = u.HP
		res.user = u.Clone()
		res.log = append(res.log, fmt.Sprintf("%s counterattacks for %d damage!", q.Boss.Name, dmg))

		if fell {
			res.defeated = true
			res.log = append(res.log, "You have been defeated...")
			delete(s.Quests, questID)
		}
		return nil
	})
	if err != nil {
		o.log.ErrorContext(ctx, "counter-attack failed", "quest_id", questID, "error", err)
		return res
	}

	if res.damage > 0 {
		o.notifier.Push(notify.Infof("The boss counterattacks for %d damage!", res.damage))
	}
	if res.defeated {
		o.notifier.Push(notify.Error("Defeated! Heal up and try again!"))
		o.log.InfoContext(ctx, "encounter lost", "quest_id", questID)
	}
	return res
}

// SubmitAnswer handles one riddle attempt. A match wins the encounter
// outright; a miss costs a fixed fraction of the boss's attack.
func (o *orchestrator) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &SubmitAnswerOutput{Outcome: OutcomeOngoing}
	var questID string
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		q := activeQuestFor(s, u.Username)
		if q == nil {
			return errors.FailedPrecondition("no active encounter")
		}
		if q.Puzzle == nil {
			return errors.FailedPrecondition("this boss is fought with swords, not answers")
		}
		questID = q.ID

		q.Attempts++
		out.Attempts = q.Attempts

		if engine.AnswerMatches(*q.Puzzle, input.Answer) {
			out.Correct = true
			q.Boss.HP = 0
			reward := engine.ApplyBossReward(u, q.Boss)
			out.Reward = &reward
			out.Outcome = OutcomeVictory
			out.Log = append(out.Log,
				fmt.Sprintf("Correct! %s is vanquished!", q.Boss.Name),
				fmt.Sprintf("Rewards: %d coins + %d XP", reward.Coins, reward.Exp))
			delete(s.Quests, q.ID)
		} else {
			dmg := engine.RiddleDamage(q.Boss.Attack)
			fell := engine.ApplyDamageToUser(u, dmg)
			out.DamageTaken = dmg
			out.Log = append(out.Log, fmt.Sprintf("Wrong! %s punishes you for %d damage!", q.Boss.Name, dmg))
			if fell {
				out.Outcome = OutcomeDefeat
				out.Log = append(out.Log, "You have been defeated...")
				delete(s.Quests, q.ID)
			} else if q.Attempts > HintThreshold {
				out.Hint = q.Puzzle.Hint
			}
		}
		out.UserHP = u.HP
		out.User = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch out.Outcome {
	case OutcomeVictory:
		o.cancelCounter(questID)
		o.notifier.Push(notify.Success("Boss defeated! Victory!", out.Reward.Coins, out.Reward.Exp))
		if out.Reward.LevelsGained > 0 {
			o.notifier.Push(notify.LevelUpf("Level up! You reached level %d", out.User.Level))
		}
		o.log.InfoContext(ctx, "encounter won", "quest_id", questID, "attempts", out.Attempts)
	case OutcomeDefeat:
		o.cancelCounter(questID)
		o.notifier.Push(notify.Error("Defeated! Heal up and try again!"))
		o.log.InfoContext(ctx, "encounter lost", "quest_id", questID, "attempts", out.Attempts)
	default:
		o.notifier.Push(notify.Errorf("Wrong answer! You take %d damage.", out.DamageTaken))
	}
	return out, nil
}

// Flee abandons the encounter: no reward, no refund, and the pending
// counter-attack is cancelled.
func (o *orchestrator) Flee(ctx context.Context, _ *FleeInput) (*FleeOutput, error) {
	var questID string
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		q := activeQuestFor(s, u.Username)
		if q == nil {
			return errors.FailedPrecondition("no active encounter")
		}
		questID = q.ID
		delete(s.Quests, q.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.cancelCounter(questID)
	o.log.InfoContext(ctx, "encounter fled", "quest_id", questID)
	o.notifier.Push(notify.Info("Fled from battle!"))
	return &FleeOutput{Outcome: OutcomeFled}, nil
}

// GetEncounter returns the session user's active quest, if any
func (o *orchestrator) GetEncounter(_ context.Context, _ *GetEncounterInput) (*GetEncounterOutput, error) {
	out := &GetEncounterOutput{}
	var loggedIn bool
	o.repo.View(func(s *world.State) {
		u := s.Current()
		if u == nil {
			return
		}
		loggedIn = true
		out.Quest = activeQuestFor(s, u.Username).Clone()
	})
	if !loggedIn {
		return nil, errors.Unauthenticated("nobody is logged in")
	}
	return out, nil
}

func (o *orchestrator) rollBonus(die int) (int, error) {
	v, err := o.roller.Roll(die)
	if err != nil {
		return 0, errors.Wrap(err, "dice roll failed")
	}
	return v - 1, nil
}

func (o *orchestrator) cancelCounter(questID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if t, ok := o.timers[questID]; ok {
		t.Stop()
		delete(o.timers, questID)
	}
}

func activeQuestFor(s *world.State, username string) *entities.Quest {
	for _, q := range s.Quests {
		if !q.Active {
			continue
		}
		for _, p := range q.Participants {
			if p == username {
				return q
			}
		}
	}
	return nil
}
