package engine

import (
	"strings"

	"github.com/questforge/questforge/internal/entities"
)

// Die sizes for combat variance. A roll of 1dN contributes 0..N-1 bonus
// damage.
const (
	PlayerDamageDie = 8
	BossDamageDie   = 6
)

// PlayerDamage is the damage one player attack deals to the boss.
// bonus is the 0..7 variance from the player damage die.
func PlayerDamage(playerAttack, bossDefense, bonus int) int {
	return max(1, playerAttack-bossDefense+bonus)
}

// BossDamage is the damage a boss counter-attack deals to the player.
// bonus is the 0..5 variance from the boss damage die.
func BossDamage(bossAttack, playerDefense, bonus int) int {
	return max(1, bossAttack-playerDefense+bonus)
}

// RiddleDamage is the fixed damage a wrong riddle answer deals to the
// player: floor(bossAttack * 0.3), no variance.
func RiddleDamage(bossAttack int) int {
	return bossAttack * 3 / 10
}

// ApplyDamageToBoss reduces boss HP, clamped at zero, and reports
// whether the boss fell
func ApplyDamageToBoss(b *entities.Boss, damage int) bool {
	b.HP = max(b.HP-damage, 0)
	return b.HP == 0
}

// ApplyDamageToUser reduces user HP, clamped at zero, and reports
// whether the user fell
func ApplyDamageToUser(u *entities.User, damage int) bool {
	u.HP = max(u.HP-damage, 0)
	return u.HP == 0
}

// AnswerMatches compares a riddle answer, trimmed and case-insensitive
func AnswerMatches(puzzle entities.Puzzle, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(puzzle.Answer))
}
