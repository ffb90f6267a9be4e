// internal/port/port_test.go
package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType_Compatible(t *testing.T) {
	testCases := []struct {
		name       string
		a, b       DataType
		compatible bool
	}{
		{name: "identical", a: MediaTexture, b: MediaTexture, compatible: true},
		{name: "same category different subtype", a: MediaTexture, b: MediaAudio, compatible: false},
		{name: "same subtype different category", a: DataType{Category: Data, Subtype: "Texture"}, b: MediaTexture, compatible: false},
		{name: "custom subtype", a: DataType{Category: Reference, Subtype: "Path"}, b: DataType{Category: Reference, Subtype: "Path"}, compatible: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.compatible, tc.a.Compatible(tc.b))
			assert.Equal(t, tc.compatible, tc.b.Compatible(tc.a))
		})
	}
}

func TestParseDataType(t *testing.T) {
	dt, err := ParseDataType("Media/Audio")
	require.NoError(t, err)
	assert.Equal(t, MediaAudio, dt)
	assert.Equal(t, "Media/Audio", dt.String())

	for _, bad := range []string{"", "Media", "Media/", "Bogus/Texture"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseDataType(bad)
			assert.ErrorIs(t, err, ErrInvalidDataType)
		})
	}
}

func TestSet_Lookup(t *testing.T) {
	s := Set{
		{Name: "video_in", Label: "Video In", Type: MediaTexture},
		{Name: "stmap", Label: "ST Map", Type: MediaTexture},
	}

	p, ok := s.Lookup("stmap")
	require.True(t, ok)
	assert.Equal(t, "ST Map", p.Label)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"video_in", "stmap"}, s.Names())
}

func TestTexture_WithPass(t *testing.T) {
	src := Texture{Source: "cam", Tick: 3}
	a := src.WithPass("blur")
	b := a.WithPass("grade")

	assert.Empty(t, src.Passes)
	assert.Equal(t, []string{"blur"}, a.Passes)
	assert.Equal(t, []string{"blur", "grade"}, b.Passes)
}
