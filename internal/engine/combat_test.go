package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
)

func TestPlayerDamageRange(t *testing.T) {
	// attack 10 vs defense 2 with bonus 0..7 lands in [8,15].
	for bonus := 0; bonus <= 7; bonus++ {
		dmg := engine.PlayerDamage(10, 2, bonus)
		assert.Equal(t, 8+bonus, dmg)
		assert.GreaterOrEqual(t, dmg, 8)
		assert.LessOrEqual(t, dmg, 15)
	}
}

func TestPlayerDamageFloor(t *testing.T) {
	assert.Equal(t, 1, engine.PlayerDamage(1, 15, 0), "damage never drops below 1")
	assert.Equal(t, 1, engine.BossDamage(3, 20, 2))
}

func TestBossDamage(t *testing.T) {
	assert.Equal(t, 13, engine.BossDamage(15, 5, 3))
}

func TestRiddleDamage(t *testing.T) {
	testCases := []struct {
		attack int
		want   int
	}{
		{8, 2},   // goblin
		{15, 4},  // orc
		{25, 7},  // dragon
		{35, 10}, // demon
		{0, 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, engine.RiddleDamage(tc.attack))
	}
}

func TestApplyDamageClamps(t *testing.T) {
	boss := entities.Boss{HP: 5, MaxHP: 50}
	assert.True(t, engine.ApplyDamageToBoss(&boss, 12))
	assert.Equal(t, 0, boss.HP)

	u := entities.NewUser("ada", "hunter2")
	assert.False(t, engine.ApplyDamageToUser(u, 49))
	assert.Equal(t, 1, u.HP)
	assert.True(t, engine.ApplyDamageToUser(u, 10))
	assert.Equal(t, 0, u.HP)
}

func TestAnswerMatches(t *testing.T) {
	puzzle := entities.Puzzle{Answer: "echo"}

	assert.True(t, engine.AnswerMatches(puzzle, "echo"))
	assert.True(t, engine.AnswerMatches(puzzle, "  ECHO  "))
	assert.True(t, engine.AnswerMatches(puzzle, "Echo"))
	assert.False(t, engine.AnswerMatches(puzzle, "echoes"))
	assert.False(t, engine.AnswerMatches(puzzle, ""))
}
