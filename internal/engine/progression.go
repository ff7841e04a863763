// Package engine holds the pure progression math: reward tables,
// leveling, deadline penalties, purchases and combat damage. Nothing in
// here touches storage or does I/O; callers mutate entities through
// these functions and persist afterwards.
package engine

import (
	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
)

// Leveling constants. Experience rolls over in a loop, so a single large
// gain can cross several thresholds.
const (
	LevelThreshold   = 100
	LevelMaxHPGain   = 10
	LevelDefenseGain = 1

	// Attack grows faster when the level came from boss combat.
	TaskAttackGain = 2
	BossAttackGain = 3

	// Flat heal on boss victory, capped at max HP.
	VictoryHeal = 20
)

var (
	taskCoins  = map[entities.Difficulty]int{entities.DifficultyEasy: 10, entities.DifficultyMedium: 20, entities.DifficultyHard: 30}
	taskExp    = map[entities.Difficulty]int{entities.DifficultyEasy: 5, entities.DifficultyMedium: 10, entities.DifficultyHard: 20}
	partyCoins = map[entities.Difficulty]int{entities.DifficultyEasy: 15, entities.DifficultyMedium: 30, entities.DifficultyHard: 50}
	partyExp   = map[entities.Difficulty]int{entities.DifficultyEasy: 10, entities.DifficultyMedium: 20, entities.DifficultyHard: 30}

	penaltyHP  = map[entities.Difficulty]int{entities.DifficultyEasy: 5, entities.DifficultyMedium: 10, entities.DifficultyHard: 15}
	penaltyExp = map[entities.Difficulty]int{entities.DifficultyEasy: 3, entities.DifficultyMedium: 5, entities.DifficultyHard: 10}
)

// CoinReward returns the personal-task coin reward for d
func CoinReward(d entities.Difficulty) int { return taskCoins[d] }

// ExpReward returns the personal-task experience reward for d
func ExpReward(d entities.Difficulty) int { return taskExp[d] }

// PartyCoinReward returns the party-task coin reward for d
func PartyCoinReward(d entities.Difficulty) int { return partyCoins[d] }

// PartyExpReward returns the party-task experience reward for d
func PartyExpReward(d entities.Difficulty) int { return partyExp[d] }

// PenaltyHP returns the HP cost of missing a deadline on a task of
// difficulty d
func PenaltyHP(d entities.Difficulty) int { return penaltyHP[d] }

// PenaltyExp returns the experience cost of missing a deadline
func PenaltyExp(d entities.Difficulty) int { return penaltyExp[d] }

// GainExp adds exp to the user and resolves leveling: while the total is
// at or above the threshold, consume it for a level, raise max HP, fully
// heal, and raise attack and defense. Returns the number of levels
// gained.
func GainExp(u *entities.User, exp, attackPerLevel int) int {
	u.Exp += exp

	levels := 0
	for u.Exp >= LevelThreshold {
		u.Level++
		u.Exp -= LevelThreshold
		u.MaxHP += LevelMaxHPGain
		u.HP = u.MaxHP
		u.Attack += attackPerLevel
		u.Defense += LevelDefenseGain
		levels++
	}
	return levels
}

// Reward reports what a completion paid out. BonusCoins is the
// early-completion bonus, kept separate so callers can surface it
// distinctly.
type Reward struct {
	Coins        int
	Exp          int
	BonusCoins   int
	LevelsGained int
}

// ApplyTaskReward pays out a personal-task completion. onTime marks a
// task completed while its deadline is still in the future, which earns
// half the coin reward again.
func ApplyTaskReward(u *entities.User, d entities.Difficulty, onTime bool) Reward {
	r := Reward{
		Coins: taskCoins[d],
		Exp:   taskExp[d],
	}
	if onTime {
		r.BonusCoins = taskCoins[d] / 2
	}

	u.Coins += r.Coins + r.BonusCoins
	r.LevelsGained = GainExp(u, r.Exp, TaskAttackGain)
	return r
}

// ApplyPartyTaskReward pays out a party-task completion to one member
func ApplyPartyTaskReward(u *entities.User, d entities.Difficulty) Reward {
	r := Reward{
		Coins: partyCoins[d],
		Exp:   partyExp[d],
	}

	u.Coins += r.Coins
	r.LevelsGained = GainExp(u, r.Exp, TaskAttackGain)
	return r
}

// ApplyBossReward pays out a boss victory: coins, experience, the flat
// victory heal, and boss-rate leveling.
func ApplyBossReward(u *entities.User, boss entities.Boss) Reward {
	r := Reward{
		Coins: boss.CoinReward,
		Exp:   boss.XPReward,
	}

	u.Coins += r.Coins
	u.HP = min(u.HP+VictoryHeal, u.MaxHP)
	r.LevelsGained = GainExp(u, r.Exp, BossAttackGain)
	return r
}

// ApplyDeadlinePenalty charges the user for a missed deadline. HP and
// experience are clamped at zero; the task's PenaltyApplied guard is the
// caller's responsibility.
func ApplyDeadlinePenalty(u *entities.User, d entities.Difficulty) {
	u.HP = max(u.HP-penaltyHP[d], 0)
	u.Exp = max(u.Exp-penaltyExp[d], 0)
}

// ApplyPurchase resolves a shop purchase. Insufficient coins rejects
// with ResourceExhausted and leaves the user untouched. Otherwise
// exactly one effect applies; equipment also lands in the inventory as
// the purchase record.
func ApplyPurchase(u *entities.User, item entities.Item) error {
	if u.Coins < item.Cost {
		return errors.ResourceExhaustedf("not enough coins: %s costs %d, you have %d", item.Name, item.Cost, u.Coins)
	}

	switch item.Effect {
	case entities.EffectRestoreHP, entities.EffectBoostAttack, entities.EffectBoostDefense:
	default:
		return errors.Internalf("unknown item effect: %q", item.Effect)
	}

	u.Coins -= item.Cost
	switch item.Effect {
	case entities.EffectRestoreHP:
		u.HP = min(u.HP+item.Value, u.MaxHP)
	case entities.EffectBoostAttack:
		u.Attack += item.Value
	case entities.EffectBoostDefense:
		u.Defense += item.Value
	}

	if item.Equipment() {
		u.Inventory = append(u.Inventory, item.Name)
	}
	return nil
}
