package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/iconshift/internal/engine"
	"github.com/Sumatoshi-tech/iconshift/internal/mapping"
)

func testTable(t *testing.T) *mapping.Table {
	t.Helper()

	table, err := mapping.New(
		map[string]string{
			"AlertCircle": "CircleAlert",
			"Home":        "House",
			"Edit":        "Pencil",
		},
		[]string{"BarChart", "LucideIcon"},
	)
	require.NoError(t, err)

	return table
}

func TestPartitionOrderPreserved(t *testing.T) {
	t.Parallel()

	specs := []engine.Specifier{
		{Name: "Home"},
		{Name: "BarChart"},
		{Name: "Clock"},
		{Name: "AlertCircle"},
		{Name: "LucideIcon"},
	}

	part := engine.PartitionSpecifiers(specs, testTable(t))

	require.Len(t, part.Migratable, 3)
	assert.Equal(t, "House", part.Migratable[0].Name)
	assert.Equal(t, "Clock", part.Migratable[1].Name)
	assert.Equal(t, "CircleAlert", part.Migratable[2].Name)

	require.Len(t, part.Excluded, 2)
	assert.Equal(t, "BarChart", part.Excluded[0].Name)
	assert.Equal(t, "LucideIcon", part.Excluded[1].Name)
}

func TestPartitionIdentityMappingProducesNoRename(t *testing.T) {
	t.Parallel()

	part := engine.PartitionSpecifiers([]engine.Specifier{{Name: "Clock"}}, testTable(t))

	require.Len(t, part.Migratable, 1)
	assert.Equal(t, "Clock", part.Migratable[0].Name)
	assert.Empty(t, part.Renames)
}

func TestPartitionRenameSubstitution(t *testing.T) {
	t.Parallel()

	part := engine.PartitionSpecifiers(
		[]engine.Specifier{{Name: "Home"}, {Name: "Clock"}},
		testTable(t),
	)

	assert.Equal(t, map[string]string{"Home": "House"}, part.Renames)
}

func TestPartitionAliasedRenameKeepsAliasAndSkipsBody(t *testing.T) {
	t.Parallel()

	part := engine.PartitionSpecifiers(
		[]engine.Specifier{{Name: "Home", Alias: "HomeIcon"}},
		testTable(t),
	)

	require.Len(t, part.Migratable, 1)
	assert.Equal(t, "House", part.Migratable[0].Name)
	assert.Equal(t, "HomeIcon", part.Migratable[0].Alias)
	assert.Empty(t, part.Renames, "aliased specifiers keep their local name")
}

func TestPartitionLocalNames(t *testing.T) {
	t.Parallel()

	part := engine.PartitionSpecifiers(
		[]engine.Specifier{
			{Name: "Home", Alias: "HomeIcon"},
			{Name: "BarChart"},
			{Name: "Edit"},
		},
		testTable(t),
	)

	assert.Equal(t, []string{"HomeIcon", "Pencil", "BarChart"}, part.LocalNames())
}
