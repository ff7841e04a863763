// Package entities holds the core data types persisted by the world
// repository. JSON tags match the stored snapshot format.
package entities

// Starting stats for a freshly created user.
const (
	StartingHP      = 50
	StartingCoins   = 100
	StartingLevel   = 1
	StartingAttack  = 10
	StartingDefense = 5
)

// User is a player account plus its RPG stats. Passwords are stored in
// plaintext; hardening credentials is explicitly out of scope.
type User struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"maxHp"`
	Coins     int      `json:"coins"`
	Level     int      `json:"level"`
	Exp       int      `json:"exp"`
	Attack    int      `json:"attack"`
	Defense   int      `json:"defense"`
	Inventory []string `json:"inventory"`
}

// NewUser creates a user with the fixed starting stats
func NewUser(username, password string) *User {
	return &User{
		Username:  username,
		Password:  password,
		HP:        StartingHP,
		MaxHP:     StartingHP,
		Coins:     StartingCoins,
		Level:     StartingLevel,
		Exp:       0,
		Attack:    StartingAttack,
		Defense:   StartingDefense,
		Inventory: []string{},
	}
}

// GetID implements core.Entity
func (u *User) GetID() string { return u.Username }

// GetType implements core.Entity
func (u *User) GetType() string { return "user" }

// Clone returns a deep copy, used when snapshotting state for persistence
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	// An empty inventory stays [] rather than nil so it encodes as an
	// empty JSON array in the stored snapshot.
	if u.Inventory != nil {
		cp.Inventory = append([]string{}, u.Inventory...)
	}
	return &cp
}
