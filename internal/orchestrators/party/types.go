package party

import (
	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
)

// CreatePartyInput names the party; the session user becomes leader
type CreatePartyInput struct {
	Name string
}

// CreatePartyOutput returns the created party
type CreatePartyOutput struct {
	Party *entities.Party
}

// JoinPartyInput identifies the party to join
type JoinPartyInput struct {
	PartyID string
}

// JoinPartyOutput returns the party after joining
type JoinPartyOutput struct {
	Party *entities.Party
}

// AddPartyTaskInput describes the shared task. Only the leader may add.
type AddPartyTaskInput struct {
	PartyID    string
	Title      string
	Difficulty entities.Difficulty
}

// AddPartyTaskOutput returns the created task
type AddPartyTaskOutput struct {
	Task *entities.PartyTask
}

// CompletePartyTaskInput identifies the task the session user completed
type CompletePartyTaskInput struct {
	PartyID string
	TaskID  string
}

// CompletePartyTaskOutput returns the member's reward and whether every
// member has now completed the task
type CompletePartyTaskOutput struct {
	Task          *entities.PartyTask
	Reward        engine.Reward
	User          *entities.User
	FullyComplete bool
}

// GetPartyInput identifies the party to fetch
type GetPartyInput struct {
	PartyID string
}

// GetPartyOutput returns a copy of the party
type GetPartyOutput struct {
	Party *entities.Party
}

// ListPartiesInput is empty; every party is visible to everyone
type ListPartiesInput struct{}

// ListPartiesOutput returns all parties
type ListPartiesOutput struct {
	Parties []*entities.Party
}
