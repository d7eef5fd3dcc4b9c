package wad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupNames(g NamedGroup) []string {
	names := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		names[i] = e.Name
	}
	return names
}

func TestMarkerGroups(t *testing.T) {
	data := buildWAD(t,
		marker("F_START"),
		testLump{name: "FLAT1", data: make([]byte, 64)},
		testLump{name: "FLAT2", data: make([]byte, 64)},
		marker("F_END"),
		marker("S_START"),
		testLump{name: "TROOA1", data: []byte{1}},
		marker("S_END"),
	)
	a, err := Decode(data)
	require.NoError(t, err)

	groups, warnings := a.MarkerGroups()
	assert.Empty(t, warnings)
	require.Len(t, groups, 2)

	assert.Equal(t, "F", groups[0].Prefix)
	assert.Equal(t, []string{"FLAT1", "FLAT2"}, groupNames(groups[0]))
	assert.Equal(t, "S", groups[1].Prefix)
	assert.Equal(t, []string{"TROOA1"}, groupNames(groups[1]))
}

func TestMarkerGroupsZeroSizeMembers(t *testing.T) {
	// Zero-size entries between markers still belong to the group.
	data := buildWAD(t,
		marker("P_START"),
		marker("P1_START"),
		marker("P1_END"),
		marker("P_END"),
	)
	a, err := Decode(data)
	require.NoError(t, err)

	groups, warnings := a.MarkerGroups()
	assert.Empty(t, warnings)
	require.Len(t, groups, 2)
	assert.Equal(t, "P1", groups[0].Prefix)
	assert.Empty(t, groups[0].Entries)
	assert.Equal(t, "P", groups[1].Prefix)
}

func TestMarkerGroupsUnterminated(t *testing.T) {
	data := buildWAD(t,
		marker("F_START"),
		testLump{name: "FLAT1", data: make([]byte, 64)},
	)
	a, err := Decode(data)
	require.NoError(t, err)

	groups, warnings := a.MarkerGroups()
	require.Len(t, warnings, 1)
	var unterminated *UnterminatedGroupError
	require.ErrorAs(t, warnings[0], &unterminated)
	assert.Equal(t, "F", unterminated.Name)

	// The group still holds what it collected before the directory ended.
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"FLAT1"}, groupNames(groups[0]))
}

func TestMapsGreedyRun(t *testing.T) {
	data := buildWAD(t,
		marker("E1M1"),
		testLump{name: LumpThings, data: nil},
		testLump{name: LumpLinedefs, data: nil},
		testLump{name: LumpSidedefs, data: nil},
		testLump{name: LumpVertexes, data: nil},
		testLump{name: LumpSectors, data: nil},
		testLump{name: "SOMELUMP", data: []byte{1}},
	)
	a, err := Decode(data)
	require.NoError(t, err)

	units, warnings := a.Maps()
	assert.Empty(t, warnings)
	require.Len(t, units, 1)
	assert.Equal(t, "E1M1", units[0].Marker)
	assert.Len(t, units[0].Lumps, 5)

	_, ok := units[0].Entry("SOMELUMP")
	assert.False(t, ok)
	_, ok = units[0].Entry(LumpSectors)
	assert.True(t, ok)
	_, ok = units[0].Entry(LumpNodes)
	assert.False(t, ok)
}

func TestMapsMissingRequiredRole(t *testing.T) {
	data := buildWAD(t,
		marker("MAP01"),
		testLump{name: LumpThings, data: nil},
		testLump{name: LumpLinedefs, data: nil},
		testLump{name: LumpVertexes, data: nil},
	)
	a, err := Decode(data)
	require.NoError(t, err)

	units, warnings := a.Maps()
	require.Len(t, units, 1)
	require.Len(t, warnings, 2)

	missing := map[string]bool{}
	for _, w := range warnings {
		var incomplete *IncompleteMapError
		require.ErrorAs(t, w, &incomplete)
		assert.Equal(t, "MAP01", incomplete.Marker)
		missing[incomplete.Role] = true
	}
	assert.True(t, missing[LumpSidedefs])
	assert.True(t, missing[LumpSectors])
}

func TestMapsMultiple(t *testing.T) {
	data := buildWAD(t,
		testLump{name: "DEHACKED", data: []byte{1}},
		marker("E1M1"),
		testLump{name: LumpThings, data: nil},
		testLump{name: LumpLinedefs, data: nil},
		testLump{name: LumpSidedefs, data: nil},
		testLump{name: LumpVertexes, data: nil},
		testLump{name: LumpSectors, data: nil},
		marker("E1M2"),
		testLump{name: LumpThings, data: nil},
		testLump{name: LumpLinedefs, data: nil},
		testLump{name: LumpSidedefs, data: nil},
		testLump{name: LumpVertexes, data: nil},
		testLump{name: LumpSegs, data: nil},
		testLump{name: LumpSubSectors, data: nil},
		testLump{name: LumpNodes, data: nil},
		testLump{name: LumpSectors, data: nil},
		testLump{name: LumpReject, data: nil},
		testLump{name: LumpBlockmap, data: nil},
	)
	a, err := Decode(data)
	require.NoError(t, err)

	units, warnings := a.Maps()
	assert.Empty(t, warnings)
	require.Len(t, units, 2)
	assert.Equal(t, "E1M1", units[0].Marker)
	assert.Equal(t, "E1M2", units[1].Marker)
	assert.Len(t, units[1].Lumps, 10)
}

func TestMapsMarkerNotConfusedWithGroups(t *testing.T) {
	// F_START is a group marker, not a map marker, even when a role name
	// follows it in the directory.
	data := buildWAD(t,
		marker("F_START"),
		testLump{name: LumpThings, data: nil},
		marker("F_END"),
	)
	a, err := Decode(data)
	require.NoError(t, err)

	units, _ := a.Maps()
	assert.Empty(t, units)
}
