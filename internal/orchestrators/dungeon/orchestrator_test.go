package dungeon_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/orchestrators/dungeon"
	"github.com/questforge/questforge/internal/pkg/clock"
	"github.com/questforge/questforge/internal/pkg/idgen"
	"github.com/questforge/questforge/internal/repositories/world"
	"github.com/questforge/questforge/internal/storage"
	"github.com/questforge/questforge/internal/testutils"
)

// minRoller always rolls 1, so damage bonuses are zero and every
// exchange is deterministic.
type minRoller struct{}

func (minRoller) Roll(_ int) (int, error) { return 1, nil }
func (minRoller) RollN(n, _ int) ([]int, error) {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

type DungeonOrchestratorTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *world.Repository
	recorder *notify.Recorder
	svc      dungeon.Service
}

func (s *DungeonOrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()

	client := testutils.CreateTestRedisClient(s.T())
	store, err := storage.NewRedis(&storage.Config{Client: client})
	s.Require().NoError(err)

	s.repo, err = world.New(&world.Config{Store: store})
	s.Require().NoError(err)

	s.recorder = notify.NewRecorder()
	s.svc = s.newService(0)

	err = s.repo.Update(func(st *world.State) error {
		u := entities.NewUser("alice", "pw")
		st.Users[u.Username] = u
		st.CurrentUser = u.Username
		return nil
	})
	s.Require().NoError(err)
}

func (s *DungeonOrchestratorTestSuite) newService(counterDelay time.Duration) dungeon.Service {
	svc, err := dungeon.NewOrchestrator(&dungeon.Config{
		Repo:         s.repo,
		IDGenerator:  idgen.NewSequential("quest"),
		Clock:        clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Roller:       minRoller{},
		Notifier:     s.recorder,
		CounterDelay: counterDelay,
	})
	s.Require().NoError(err)
	return svc
}

func (s *DungeonOrchestratorTestSuite) TearDownTest() {
	s.repo.Close(s.ctx)
}

func (s *DungeonOrchestratorTestSuite) user() *entities.User {
	var u *entities.User
	s.repo.View(func(st *world.State) {
		u = st.User("alice").Clone()
	})
	return u
}

func (s *DungeonOrchestratorTestSuite) TestStartEncounterSnapshotsBoss() {
	out, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin,
		Mode:    dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	s.Equal("Goblin Warrior", out.Quest.Boss.Name)
	s.Equal(50, out.Quest.Boss.HP)
	s.True(out.Quest.Active)
	s.Equal([]string{"alice"}, out.Quest.Participants)
	s.Nil(out.Quest.Puzzle, "combat mode has no riddle")
	s.Empty(out.Question)

	// Damaging the quest's boss must not touch the catalog.
	_, err = s.svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().NoError(err)
	fresh, _ := entities.BossByKey(entities.BossGoblin)
	s.Equal(50, fresh.HP)
}

func (s *DungeonOrchestratorTestSuite) TestStartEncounterValidation() {
	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{BossKey: "", Mode: "melee"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: "slime", Mode: dungeon.ModeCombat,
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *DungeonOrchestratorTestSuite) TestOneEncounterAtATime() {
	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	_, err = s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossOrc, Mode: dungeon.ModeCombat,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *DungeonOrchestratorTestSuite) TestAttackExchangesBlows() {
	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	out, err := s.svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().NoError(err)

	// With minimum rolls: player 10-2+0=8, goblin counter 8-5+0=3.
	s.Equal(8, out.PlayerDamage)
	s.Equal(42, out.BossHP)
	s.Equal(3, out.CounterDamage)
	s.Equal(entities.StartingHP-3, out.UserHP)
	s.Equal(dungeon.OutcomeOngoing, out.Outcome)
	s.Nil(out.Reward)
}

func (s *DungeonOrchestratorTestSuite) TestFightToVictory() {
	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	var out *dungeon.AttackOutput
	for i := 0; i < 20; i++ {
		out, err = s.svc.Attack(s.ctx, &dungeon.AttackInput{})
		s.Require().NoError(err)
		if out.Outcome == dungeon.OutcomeVictory {
			break
		}
	}
	s.Require().Equal(dungeon.OutcomeVictory, out.Outcome)
	s.Equal(0, out.BossHP)
	s.Require().NotNil(out.Reward)
	s.Equal(30, out.Reward.Coins)
	s.Equal(50, out.Reward.Exp)
	s.Equal(entities.StartingCoins+30, out.User.Coins)

	// 7 player hits of 8, 6 counters of 3, then the +20 victory heal
	// capped at max hp.
	s.Equal(50, out.User.HP)

	got, err := s.svc.GetEncounter(s.ctx, &dungeon.GetEncounterInput{})
	s.Require().NoError(err)
	s.Nil(got.Quest, "victory deletes the quest")

	// The reward is granted exactly once.
	_, err = s.svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(entities.StartingCoins+30, s.user().Coins)
}

func (s *DungeonOrchestratorTestSuite) TestDefeatEndsEncounterWithoutReward() {
	s.Require().NoError(s.repo.Update(func(st *world.State) error {
		st.User("alice").HP = 2
		return nil
	}))

	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	out, err := s.svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().NoError(err)
	s.Equal(dungeon.OutcomeDefeat, out.Outcome)
	s.Equal(0, out.UserHP)
	s.Nil(out.Reward)

	u := s.user()
	s.Equal(0, u.HP, "defeat leaves the player at zero hp")
	s.Equal(entities.StartingCoins, u.Coins)

	got, err := s.svc.GetEncounter(s.ctx, &dungeon.GetEncounterInput{})
	s.Require().NoError(err)
	s.Nil(got.Quest)
}

func (s *DungeonOrchestratorTestSuite) TestAttackWrongMode() {
	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeRiddle,
	})
	s.Require().NoError(err)

	_, err = s.svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	s.Require().NoError(s.repo.Update(func(st *world.State) error {
		st.Quests = make(map[string]*entities.Quest)
		return nil
	}))
	_, err = s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	_, err = s.svc.SubmitAnswer(s.ctx, &dungeon.SubmitAnswerInput{Answer: "echo"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *DungeonOrchestratorTestSuite) TestRiddleCorrectAnswerWins() {
	start, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeRiddle,
	})
	s.Require().NoError(err)
	s.NotEmpty(start.Question)

	answer := "  " + start.Quest.Puzzle.Answer + "  "
	out, err := s.svc.SubmitAnswer(s.ctx, &dungeon.SubmitAnswerInput{Answer: answer})
	s.Require().NoError(err)

	s.True(out.Correct)
	s.Equal(1, out.Attempts)
	s.Equal(dungeon.OutcomeVictory, out.Outcome)
	s.Zero(out.DamageTaken, "a correct answer costs nothing")
	s.Equal(entities.StartingHP, out.UserHP)
	s.Require().NotNil(out.Reward)
	s.Equal(30, out.Reward.Coins)
}

func (s *DungeonOrchestratorTestSuite) TestRiddleWrongAnswersRevealHint() {
	start, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeRiddle,
	})
	s.Require().NoError(err)

	// Goblin attack 8 makes each miss cost floor(8*0.3)=2.
	missDamage := engine.RiddleDamage(start.Quest.Boss.Attack)
	s.Equal(2, missDamage)

	for attempt := 1; attempt <= 3; attempt++ {
		out, err := s.svc.SubmitAnswer(s.ctx, &dungeon.SubmitAnswerInput{Answer: "wrong"})
		s.Require().NoError(err)
		s.False(out.Correct)
		s.Equal(attempt, out.Attempts)
		s.Equal(missDamage, out.DamageTaken)
		s.Equal(entities.StartingHP-attempt*missDamage, out.UserHP)
		s.Equal(dungeon.OutcomeOngoing, out.Outcome)

		if attempt <= dungeon.HintThreshold {
			s.Empty(out.Hint)
		} else {
			s.Equal(start.Quest.Puzzle.Hint, out.Hint)
		}
	}
}

func (s *DungeonOrchestratorTestSuite) TestRiddleDefeat() {
	s.Require().NoError(s.repo.Update(func(st *world.State) error {
		st.User("alice").HP = 3
		return nil
	}))

	_, err := s.svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeRiddle,
	})
	s.Require().NoError(err)

	out, err := s.svc.SubmitAnswer(s.ctx, &dungeon.SubmitAnswerInput{Answer: "wrong"})
	s.Require().NoError(err)
	s.Equal(dungeon.OutcomeOngoing, out.Outcome)
	s.Equal(1, out.UserHP)

	out, err = s.svc.SubmitAnswer(s.ctx, &dungeon.SubmitAnswerInput{Answer: "still wrong"})
	s.Require().NoError(err)
	s.Equal(dungeon.OutcomeDefeat, out.Outcome)
	s.Equal(0, out.UserHP)
	s.Nil(out.Reward)
}

func (s *DungeonOrchestratorTestSuite) TestFleeCancelsPendingCounter() {
	svc := s.newService(30 * time.Millisecond)

	_, err := svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	out, err := svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().NoError(err)
	s.Zero(out.CounterDamage, "counter is deferred")
	s.Equal(entities.StartingHP, out.UserHP)

	fled, err := svc.Flee(s.ctx, &dungeon.FleeInput{})
	s.Require().NoError(err)
	s.Equal(dungeon.OutcomeFled, fled.Outcome)

	time.Sleep(80 * time.Millisecond)
	s.Equal(entities.StartingHP, s.user().HP, "cancelled counter must not land")
}

func (s *DungeonOrchestratorTestSuite) TestDeferredCounterLands() {
	svc := s.newService(10 * time.Millisecond)

	_, err := svc.StartEncounter(s.ctx, &dungeon.StartEncounterInput{
		BossKey: entities.BossGoblin, Mode: dungeon.ModeCombat,
	})
	s.Require().NoError(err)

	_, err = svc.Attack(s.ctx, &dungeon.AttackInput{})
	s.Require().NoError(err)

	s.Eventually(func() bool {
		return s.user().HP == entities.StartingHP-3
	}, time.Second, 5*time.Millisecond)
}

func (s *DungeonOrchestratorTestSuite) TestFleeWithoutEncounter() {
	_, err := s.svc.Flee(s.ctx, &dungeon.FleeInput{})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func TestDungeonOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(DungeonOrchestratorTestSuite))
}
