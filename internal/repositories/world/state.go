// Package world is the entity repository: the in-memory maps behind
// every operation, mirrored to the persistent store as five keys after
// each mutation.
package world

import (
	"github.com/questforge/questforge/internal/entities"
)

// Persisted keys. Each holds a JSON encoding of its map, except
// KeyCurrentUser which holds a bare username string.
const (
	KeyUsers       = "users"
	KeyTasks       = "tasks"
	KeyParties     = "parties"
	KeyQuests      = "quests"
	KeyCurrentUser = "currentUser"
)

// State is the full mutable game state. It is only ever touched inside
// Repository.Update or Repository.View, which serialize access.
type State struct {
	// Users keyed by username.
	Users map[string]*entities.User

	// Tasks keyed by username, creation-ordered.
	Tasks map[string][]*entities.Task

	// Parties keyed by party id.
	Parties map[string]*entities.Party

	// Quests (boss encounters) keyed by quest id.
	Quests map[string]*entities.Quest

	// CurrentUser is the logged-in username, empty when logged out.
	CurrentUser string
}

// NewState returns an empty state with all maps allocated
func NewState() *State {
	return &State{
		Users:   make(map[string]*entities.User),
		Tasks:   make(map[string][]*entities.Task),
		Parties: make(map[string]*entities.Party),
		Quests:  make(map[string]*entities.Quest),
	}
}

// User returns the user for username, or nil
func (s *State) User(username string) *entities.User {
	return s.Users[username]
}

// Current returns the logged-in user, or nil when nobody is logged in
func (s *State) Current() *entities.User {
	if s.CurrentUser == "" {
		return nil
	}
	return s.Users[s.CurrentUser]
}

// TaskByID finds a task in username's list, or nil
func (s *State) TaskByID(username, taskID string) *entities.Task {
	for _, t := range s.Tasks[username] {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}
