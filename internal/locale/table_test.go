package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Table_StageName(t *testing.T) {
	table := NewTable(
		map[string]string{"stage-1": "Spawning Grounds"},
		map[string]string{"weapon-1": "Splattershot"},
	)

	name, err := table.StageName("stage-1")
	require.NoError(t, err)
	assert.Equal(t, "Spawning Grounds", name)

	name, err = table.StageName("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, name)
}

func Test_Table_WeaponName(t *testing.T) {
	table := NewTable(
		map[string]string{"stage-1": "Spawning Grounds"},
		map[string]string{"weapon-1": "Splattershot"},
	)

	name, err := table.WeaponName("weapon-1")
	require.NoError(t, err)
	assert.Equal(t, "Splattershot", name)

	// Stage ids do not resolve as weapons.
	_, err = table.WeaponName("stage-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_NewTable_CopiesInput(t *testing.T) {
	stages := map[string]string{"stage-1": "Spawning Grounds"}
	table := NewTable(stages, nil)

	stages["stage-1"] = "mutated"

	name, err := table.StageName("stage-1")
	require.NoError(t, err)
	assert.Equal(t, "Spawning Grounds", name)
}
