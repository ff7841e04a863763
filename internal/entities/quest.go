package entities

// Boss is a stat snapshot copied from the catalog when an encounter
// starts, so HP mutation never touches the catalog entry.
type Boss struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"maxHp"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	XPReward   int    `json:"xpReward"`
	CoinReward int    `json:"coinReward"`
	Sprite     string `json:"sprite"`
}

// Puzzle is the riddle attached to a riddle-mode encounter. Answer
// matching is trimmed and case-insensitive; the hint unlocks after more
// than two failed attempts.
type Puzzle struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Hint     string `json:"hint"`
}

// Quest is a transient boss-encounter session. At most one quest is
// active per session; it is deleted on victory, defeat or flee.
type Quest struct {
	ID           string   `json:"id"`
	Boss         Boss     `json:"boss"`
	Puzzle       *Puzzle  `json:"puzzle,omitempty"`
	Attempts     int      `json:"attempts"`
	Participants []string `json:"participants"`
	Active       bool     `json:"active"`
	CreatedAt    int64    `json:"createdAt"`
}

// GetID implements core.Entity
func (q *Quest) GetID() string { return q.ID }

// GetType implements core.Entity
func (q *Quest) GetType() string { return "quest" }

// Clone returns a deep copy
func (q *Quest) Clone() *Quest {
	if q == nil {
		return nil
	}
	cp := *q
	cp.Participants = append([]string(nil), q.Participants...)
	if q.Puzzle != nil {
		p := *q.Puzzle
		cp.Puzzle = &p
	}
	return &cp
}
