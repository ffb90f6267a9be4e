// internal/entityid/entityid_test.go
package entityid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Structure(t *testing.T) {
	id, err := Generate(Node, "AU", "CLIP")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "NAUCLIP"))
	assert.Len(t, id, Length)
	assert.Equal(t, byte('-'), id[7])
	assert.True(t, IsValid(id))
	assert.True(t, IsSpecies(id, Node))
	assert.False(t, IsSpecies(id, Pipeline))
}

func TestGenerate_Padding(t *testing.T) {
	testCases := []struct {
		name      string
		typ       string
		archetype string
		prefix    string
	}{
		{name: "full width", typ: "VI", archetype: "CAMR", prefix: "NVICAMR"},
		{name: "short type", typ: "V", archetype: "CAMR", prefix: "NV0CAMR"},
		{name: "short archetype", typ: "AU", archetype: "MX", prefix: "NAUMX00"},
		{name: "both short", typ: "a", archetype: "b", prefix: "Na0b000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := GenerateNode(tc.typ, tc.archetype)
			require.NoError(t, err)
			assert.Equal(t, tc.prefix, id[:7])
			assert.True(t, IsValid(id))
		})
	}
}

func TestGenerate_InvalidArguments(t *testing.T) {
	testCases := []struct {
		name      string
		species   Species
		typ       string
		archetype string
	}{
		{name: "empty type", species: Node, typ: "", archetype: "CLIP"},
		{name: "type too long", species: Node, typ: "ABC", archetype: "CLIP"},
		{name: "empty archetype", species: Node, typ: "AU", archetype: ""},
		{name: "archetype too long", species: Node, typ: "AU", archetype: "CLIPS"},
		{name: "non alphanumeric type", species: Node, typ: "A-", archetype: "CLIP"},
		{name: "non alphanumeric archetype", species: Node, typ: "AU", archetype: "CL P"},
		{name: "unknown species", species: Species('z'), typ: "AU", archetype: "CLIP"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Generate(tc.species, tc.typ, tc.archetype)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Empty(t, id)
		})
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := GenerateEdge("CN", "LINK")
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerateHelpers_Species(t *testing.T) {
	pipe, err := GeneratePipeline("MN", "MAIN")
	require.NoError(t, err)
	assert.True(t, IsPipelineID(pipe))

	settings, err := GenerateSettings("GL", "CONF")
	require.NoError(t, err)
	assert.True(t, IsSpecies(settings, Settings))

	edge, err := GenerateEdge("CN", "LINK")
	require.NoError(t, err)
	assert.True(t, IsEdgeID(edge))
	assert.False(t, IsNodeID(edge))

	ctrl, err := GenerateController("RC")
	require.NoError(t, err)
	assert.Equal(t, "CRC0000", ctrl[:7])
}

func TestParse_RoundTrip(t *testing.T) {
	id, err := Generate(Media, "VI", "FEED")
	require.NoError(t, err)

	parsed, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, Media, parsed.Species)
	assert.Equal(t, "VI", parsed.Type)
	assert.Equal(t, "FEED", parsed.Archetype)
	assert.Len(t, parsed.UUID, 36)
	assert.Equal(t, id, parsed.String())
}

func TestParseFields(t *testing.T) {
	const id = "NAUCLIP-550e8400-e29b-41d4-a716-446655440000"

	s, err := ParseSpecies(id)
	require.NoError(t, err)
	assert.Equal(t, Node, s)

	typ, err := ParseType(id)
	require.NoError(t, err)
	assert.Equal(t, "AU", typ)

	arch, err := ParseArchetype(id)
	require.NoError(t, err)
	assert.Equal(t, "CLIP", arch)

	u, err := ParseUUID(id)
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u)
}

func TestParseFields_TooShort(t *testing.T) {
	_, err := ParseSpecies("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseType("NA")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseArchetype("NAUCLI")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseUUID("NAUCLIP")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseUUID("NAUCLIPX550e8400")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestIsValid(t *testing.T) {
	testCases := []struct {
		name  string
		id    string
		valid bool
	}{
		{name: "canonical", id: "NAUCLIP-550e8400-e29b-41d4-a716-446655440000", valid: true},
		{name: "extension species", id: "7AUCLIP-550e8400-e29b-41d4-a716-446655440000", valid: true},
		{name: "empty", id: "", valid: false},
		{name: "too short", id: "NAUCLIP-550e8400", valid: false},
		{name: "dash missing", id: "NAUCLIPX550e8400-e29b-41d4-a716-446655440000", valid: false},
		{name: "unknown species", id: "xAUCLIP-550e8400-e29b-41d4-a716-446655440000", valid: false},
		{name: "non alphanumeric header", id: "NA_CLIP-550e8400-e29b-41d4-a716-446655440000", valid: false},
		{name: "uuid punctuation wrong", id: "NAUCLIP-550e8400xe29b-41d4-a716-446655440000", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValid(tc.id))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not-an-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestIsSpecies_Empty(t *testing.T) {
	assert.False(t, IsSpecies("", Node))
}

func TestSpecies_String(t *testing.T) {
	assert.Equal(t, "Node", Node.String())
	assert.Equal(t, "Extension", Extension.String())
	assert.Equal(t, "?", Species('?').String())
	assert.True(t, Extension.Valid())
	assert.False(t, Species('?').Valid())
}
