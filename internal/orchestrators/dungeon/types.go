package dungeon

import (
	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
)

// Mode selects how an encounter is fought
type Mode string

// Encounter modes
const (
	// ModeCombat is turn-based: attack, then eat the counter-attack.
	ModeCombat Mode = "combat"

	// ModeRiddle is puzzle combat: answer correctly or take damage.
	ModeRiddle Mode = "riddle"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeCombat || m == ModeRiddle
}

// Outcome is where an encounter stands after an action
type Outcome string

// Encounter outcomes
const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// StartEncounterInput picks the boss and the way to fight it
type StartEncounterInput struct {
	BossKey string
	Mode    Mode
}

// StartEncounterOutput returns the created quest. Question is set in
// riddle mode.
type StartEncounterOutput struct {
	Quest    *entities.Quest
	Question string
}

// AttackInput is empty; the attack targets the session user's active
// encounter
type AttackInput struct{}

// AttackOutput reports the player's hit and, when the counter-attack
// runs synchronously, the boss's answer. Reward is set on victory.
type AttackOutput struct {
	PlayerDamage  int
	BossHP        int
	CounterDamage int
	UserHP        int
	Outcome       Outcome
	Reward        *engine.Reward
	User          *entities.User
	Log           []string
}

// SubmitAnswerInput carries the player's answer to the riddle
type SubmitAnswerInput struct {
	Answer string
}

// SubmitAnswerOutput reports the attempt. Hint is revealed after more
// than two failed attempts. Reward is set on victory.
type SubmitAnswerOutput struct {
	Correct     bool
	Attempts    int
	DamageTaken int
	UserHP      int
	Hint        string
	Outcome     Outcome
	Reward      *engine.Reward
	User        *entities.User
	Log         []string
}

// FleeInput is empty
type FleeInput struct{}

// FleeOutput confirms the encounter ended without reward
type FleeOutput struct {
	Outcome Outcome
}

// GetEncounterInput is empty
type GetEncounterInput struct{}

// GetEncounterOutput returns a copy of the session user's active quest,
// or a nil Quest when none is running
type GetEncounterOutput struct {
	Quest *entities.Quest
}
