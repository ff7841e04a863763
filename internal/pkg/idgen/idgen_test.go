package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge/internal/pkg/idgen"
)

func TestPrefixedGeneratorIsOrderedAndUnique(t *testing.T) {
	gen := idgen.NewPrefixed("task")

	a := gen.Generate()
	b := gen.Generate()

	assert.True(t, strings.HasPrefix(a, "task_"))
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, a, b, "timestamp component keeps ids creation-ordered")
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("task")
	assert.Equal(t, "task_1", gen.Generate())
	assert.Equal(t, "task_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("quest")

	id := gen.Generate()
	require.True(t, strings.HasPrefix(id, "quest_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "quest_"))
	require.NoError(t, err)

	assert.NotEqual(t, id, gen.Generate())
}
