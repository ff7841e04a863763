package world_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/repositories/world"
	"github.com/questforge/questforge/internal/storage"
	storagemock "github.com/questforge/questforge/internal/storage/mock"
	"github.com/questforge/questforge/internal/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	store storage.Store
	repo  *world.Repository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	client := testutils.CreateTestRedisClient(s.T())
	store, err := storage.NewRedis(&storage.Config{Client: client})
	s.Require().NoError(err)
	s.store = store

	repo, err := world.New(&world.Config{Store: store})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.repo.Close(s.ctx)
}

func (s *RepositoryTestSuite) TestLoadEmptyStore() {
	s.repo.Load(s.ctx)

	s.repo.View(func(st *world.State) {
		s.Empty(st.Users)
		s.Empty(st.Tasks)
		s.Empty(st.Parties)
		s.Empty(st.Quests)
		s.Empty(st.CurrentUser)
	})
}

func (s *RepositoryTestSuite) TestUpdatePersistsAndReloads() {
	err := s.repo.Update(func(st *world.State) error {
		u := entities.NewUser("alice", "secret")
		st.Users[u.Username] = u
		st.CurrentUser = u.Username
		st.Tasks[u.Username] = []*entities.Task{
			{ID: "task_1", Title: "Laundry", Difficulty: entities.DifficultyEasy},
		}
		return nil
	})
	s.Require().NoError(err)
	s.repo.Flush(s.ctx)

	// A second repository over the same store sees the flushed state.
	other, err := world.New(&world.Config{Store: s.store})
	s.Require().NoError(err)
	defer other.Close(s.ctx)
	other.Load(s.ctx)

	other.View(func(st *world.State) {
		s.Require().NotNil(st.User("alice"))
		s.Equal(entities.StartingHP, st.User("alice").HP)
		s.Equal(entities.StartingCoins, st.User("alice").Coins)
		s.Equal("alice", st.CurrentUser)
		s.Require().Len(st.Tasks["alice"], 1)
		s.Equal("Laundry", st.Tasks["alice"][0].Title)
	})
}

func (s *RepositoryTestSuite) TestCurrentUserKeyIsBareString() {
	err := s.repo.Update(func(st *world.State) error {
		u := entities.NewUser("bob", "pw")
		st.Users[u.Username] = u
		st.CurrentUser = "bob"
		return nil
	})
	s.Require().NoError(err)
	s.repo.Flush(s.ctx)

	val, ok, err := s.store.Get(s.ctx, world.KeyCurrentUser)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("bob", val)
}

func (s *RepositoryTestSuite) TestLogoutDeletesSessionKey() {
	err := s.repo.Update(func(st *world.State) error {
		u := entities.NewUser("bob", "pw")
		st.Users[u.Username] = u
		st.CurrentUser = "bob"
		return nil
	})
	s.Require().NoError(err)
	s.repo.Flush(s.ctx)

	err = s.repo.Update(func(st *world.State) error {
		st.CurrentUser = ""
		return nil
	})
	s.Require().NoError(err)
	s.repo.Flush(s.ctx)

	_, ok, err := s.store.Get(s.ctx, world.KeyCurrentUser)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositoryTestSuite) TestUpdateErrorSkipsPersist() {
	boom := errors.InvalidArgument("nope")
	err := s.repo.Update(func(st *world.State) error {
		u := entities.NewUser("ghost", "pw")
		st.Users[u.Username] = u
		return boom
	})
	s.Require().ErrorIs(err, boom)
	s.repo.Flush(s.ctx)

	_, ok, getErr := s.store.Get(s.ctx, world.KeyUsers)
	s.Require().NoError(getErr)
	s.False(ok, "abandoned update must not reach the store")
}

func (s *RepositoryTestSuite) TestCorruptKeyLoadsEmptyDefault() {
	s.Require().NoError(s.store.Set(s.ctx, world.KeyUsers, "{not json"))
	s.Require().NoError(s.store.Set(s.ctx, world.KeyParties, `{"p1":{"id":"p1","name":"Raiders","leader":"alice","members":["alice"],"tasks":[]}}`))

	s.repo.Load(s.ctx)

	s.repo.View(func(st *world.State) {
		s.Empty(st.Users, "corrupt key falls back to empty")
		s.Require().Contains(st.Parties, "p1", "healthy keys still load")
		s.Equal("Raiders", st.Parties["p1"].Name)
	})
}

func (s *RepositoryTestSuite) TestStaleSessionDropped() {
	s.Require().NoError(s.store.Set(s.ctx, world.KeyCurrentUser, "vanished"))

	s.repo.Load(s.ctx)

	s.repo.View(func(st *world.State) {
		s.Empty(st.CurrentUser)
	})
}

func (s *RepositoryTestSuite) TestCoalescingKeepsLastWrite() {
	for i := 0; i < 10; i++ {
		err := s.repo.Update(func(st *world.State) error {
			st.CurrentUser = "final"
			return nil
		})
		s.Require().NoError(err)
	}
	s.repo.Flush(s.ctx)

	val, ok, err := s.store.Get(s.ctx, world.KeyCurrentUser)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("final", val)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storagemock.NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.Unavailable("redis is down")).AnyTimes()
	store.EXPECT().Delete(gomock.Any(), gomock.Any()).
		Return(errors.Unavailable("redis is down")).AnyTimes()
	store.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return("", false, errors.Unavailable("redis is down")).AnyTimes()

	repo, err := world.New(&world.Config{
		Store:  store,
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer repo.Close(context.Background())

	repo.Load(context.Background())

	err = repo.Update(func(st *world.State) error {
		u := entities.NewUser("alice", "pw")
		st.Users[u.Username] = u
		return nil
	})
	if err != nil {
		t.Fatalf("Update must not surface store errors, got %v", err)
	}
	repo.Flush(context.Background())

	repo.View(func(st *world.State) {
		if st.User("alice") == nil {
			t.Fatal("in-memory state must survive store failures")
		}
	})
}
