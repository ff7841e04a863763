package world

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/storage"
)

// Config holds the repository's dependencies
type Config struct {
	Store  storage.Store
	Logger *slog.Logger
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	return vb.Build()
}

// snapshot is a fully encoded copy of the state, built under the state
// lock and written to the store later. Whole-value writes mean the last
// snapshot flushed always wins, so coalescing is safe.
type snapshot struct {
	users   string
	tasks   string
	parties string
	quests  string

	// currentUser empty means the key is deleted, not written blank.
	currentUser string
}

// Repository owns the State and mirrors it to the store. Mutations go
// through Update, which encodes a snapshot and hands it to a background
// flusher. Only the newest pending snapshot is kept; intermediate ones
// are dropped.
//
// Persistence is best effort: store failures are logged and never
// surfaced to callers. The in-memory state is the source of truth for
// the life of the process.
type Repository struct {
	store storage.Store
	log   *slog.Logger

	mu    sync.RWMutex
	state *State

	// writeMu serializes store writes and guards pending.
	writeMu sync.Mutex
	pending *snapshot

	kick    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

// New creates a repository with an empty state and starts its flusher.
// Call Load to populate the state and Close to drain pending writes.
func New(cfg *Config) (*Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := &Repository{
		store:   cfg.Store,
		log:     log,
		state:   NewState(),
		kick:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go r.run()
	return r, nil
}

// Load replaces the state with whatever the store holds. The five keys
// are fetched concurrently. A missing key, a fetch error, or a decode
// error leaves that slice of state at its empty default; failures are
// logged, never returned. A fresh install therefore loads cleanly.
func (r *Repository) Load(ctx context.Context) {
	next := NewState()

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		loadJSON(ctx, r, KeyUsers, &next.Users)
	}()
	go func() {
		defer wg.Done()
		loadJSON(ctx, r, KeyTasks, &next.Tasks)
	}()
	go func() {
		defer wg.Done()
		loadJSON(ctx, r, KeyParties, &next.Parties)
	}()
	go func() {
		defer wg.Done()
		loadJSON(ctx, r, KeyQuests, &next.Quests)
	}()
	go func() {
		defer wg.Done()
		val, ok, err := r.store.Get(ctx, KeyCurrentUser)
		if err != nil {
			r.log.Warn("failed to load key, starting empty", "key", KeyCurrentUser, "error", err)
			return
		}
		if ok {
			next.CurrentUser = val
		}
	}()
	wg.Wait()

	// A session for a user that no longer exists is stale.
	if next.CurrentUser != "" && next.Users[next.CurrentUser] == nil {
		r.log.Warn("dropping stale session", "username", next.CurrentUser)
		next.CurrentUser = ""
	}

	r.mu.Lock()
	r.state = next
	r.mu.Unlock()
}

// loadJSON fetches key and decodes it into out, logging and leaving out
// untouched on any failure.
func loadJSON[T any](ctx context.Context, r *Repository, key string, out *T) {
	val, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.log.Warn("failed to load key, starting empty", "key", key, "error", err)
		return
	}
	if !ok {
		return
	}
	var decoded T
	if err := json.Unmarshal([]byte(val), &decoded); err != nil {
		r.log.Warn("corrupt value for key, starting empty", "key", key, "error", err)
		return
	}
	*out = decoded
}

// Update runs fn against the state under the write lock. If fn returns
// an error the mutation is assumed abandoned and nothing is persisted;
// otherwise a snapshot of the whole state is queued for flushing.
func (r *Repository) Update(fn func(s *State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(r.state); err != nil {
		return err
	}

	snap, err := r.encode()
	if err != nil {
		// Should not happen with these types; keep the mutation,
		// skip the persist.
		r.log.Error("failed to encode state", "error", err)
		return nil
	}
	r.enqueue(snap)
	return nil
}

// View runs fn against the state under the read lock. fn must not
// mutate the state or retain references past its return; copy what you
// need out.
func (r *Repository) View(fn func(s *State)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.state)
}

// Flush writes the newest pending snapshot, if any, and waits for it.
// It also waits out any write the flusher has in flight. Call this
// before process exit so the last mutation reaches the store.
func (r *Repository) Flush(ctx context.Context) {
	r.flushPending(ctx)
}

// Close stops the flusher and drains the final pending snapshot
func (r *Repository) Close(ctx context.Context) {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
	<-r.stopped
	r.flushPending(ctx)
}

func (r *Repository) encode() (*snapshot, error) {
	users, err := json.Marshal(r.state.Users)
	if err != nil {
		return nil, err
	}
	tasks, err := json.Marshal(r.state.Tasks)
	if err != nil {
		return nil, err
	}
	parties, err := json.Marshal(r.state.Parties)
	if err != nil {
		return nil, err
	}
	quests, err := json.Marshal(r.state.Quests)
	if err != nil {
		return nil, err
	}
	return &snapshot{
		users:       string(users),
		tasks:       string(tasks),
		parties:     string(parties),
		quests:      string(quests),
		currentUser: r.state.CurrentUser,
	}, nil
}

func (r *Repository) enqueue(snap *snapshot) {
	r.writeMu.Lock()
	r.pending = snap
	r.writeMu.Unlock()

	select {
	case r.kick <- struct{}{}:
	default:
	}
}

func (r *Repository) run() {
	defer close(r.stopped)
	for {
		select {
		case <-r.stop:
			return
		case <-r.kick:
			r.flushPending(context.Background())
		}
	}
}

func (r *Repository) flushPending(ctx context.Context) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	snap := r.pending
	r.pending = nil
	if snap == nil {
		return
	}
	r.write(ctx, snap)
}

// write pushes all five keys concurrently. Each key fails or succeeds
// on its own; a failure is logged and the in-memory state stays as is.
func (r *Repository) write(ctx context.Context, snap *snapshot) {
	var wg sync.WaitGroup
	set := func(key, value string) {
		defer wg.Done()
		if err := r.store.Set(ctx, key, value); err != nil {
			r.log.Warn("failed to persist key", "key", key, "error", err)
		}
	}

	wg.Add(5)
	go set(KeyUsers, snap.users)
	go set(KeyTasks, snap.tasks)
	go set(KeyParties, snap.parties)
	go set(KeyQuests, snap.quests)
	go func() {
		defer wg.Done()
		if snap.currentUser == "" {
			if err := r.store.Delete(ctx, KeyCurrentUser); err != nil {
				r.log.Warn("failed to clear key", "key", KeyCurrentUser, "error", err)
			}
			return
		}
		if err := r.store.Set(ctx, KeyCurrentUser, snap.currentUser); err != nil {
			r.log.Warn("failed to persist key", "key", KeyCurrentUser, "error", err)
		}
	}()
	wg.Wait()
}
