package pngchunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTypeFromBytes(t *testing.T) {
	typ, err := ChunkTypeFromBytes([4]byte{82, 117, 83, 116}) // "RuSt"
	require.NoError(t, err)
	assert.Equal(t, [4]byte{82, 117, 83, 116}, typ.Bytes())
	assert.Equal(t, "RuSt", typ.String())
}

func TestParseChunkType(t *testing.T) {
	expected, err := ChunkTypeFromBytes([4]byte{82, 117, 83, 116})
	require.NoError(t, err)

	actual, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestParseChunkTypeRejectsBadTags(t *testing.T) {
	tests := []struct {
		name string
		tag  string
	}{
		{"lowercase reserved bit", "Rust"},
		{"digit in tag", "Ru1t"},
		{"too short", "RuS"},
		{"too long", "RuStX"},
		{"empty", ""},
		{"space", "Ru t"},
		{"non-ascii", "Ru\xc3\xa9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChunkType(tt.tag)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidChunkType)
		})
	}
}

func TestChunkTypeProperties(t *testing.T) {
	mustParse := func(s string) ChunkType {
		t.Helper()
		typ, err := ParseChunkType(s)
		require.NoError(t, err)
		return typ
	}

	assert.True(t, mustParse("RuSt").IsCritical())
	assert.False(t, mustParse("ruSt").IsCritical())

	assert.True(t, mustParse("RUSt").IsPublic())
	assert.False(t, mustParse("RuSt").IsPublic())

	assert.True(t, mustParse("RuSt").IsReservedBitValid())

	assert.True(t, mustParse("RuSt").IsSafeToCopy())
	assert.False(t, mustParse("RuST").IsSafeToCopy())
}

func TestChunkTypeValidity(t *testing.T) {
	typ, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	assert.True(t, typ.IsValid())

	// The unconditional constructor admits anything; only IsValid and the
	// parse constructors judge it.
	lowercase := NewChunkType('R', 'u', 's', 't')
	assert.False(t, lowercase.IsValid())
	assert.False(t, lowercase.IsReservedBitValid())

	garbage := NewChunkType(0x00, 0xFF, 'S', '!')
	assert.False(t, garbage.IsValid())
	// Property predicates stay computable on invalid tags.
	assert.False(t, garbage.IsCritical())
	assert.True(t, garbage.IsReservedBitValid())
}

// Parse must succeed exactly when the resulting bytes would satisfy IsValid.
func TestParseAgreesWithIsValid(t *testing.T) {
	tags := []string{"RuSt", "Rust", "rust", "RUST", "ruSt", "Ru1t", "IHDR", "tEXt", "teXt", "text", "aAAa", "zZZz", "AbCd"}
	for _, tag := range tags {
		typ := NewChunkType(tag[0], tag[1], tag[2], tag[3])
		_, err := ParseChunkType(tag)
		if typ.IsValid() {
			assert.NoError(t, err, "tag %q", tag)
		} else {
			assert.ErrorIs(t, err, ErrInvalidChunkType, "tag %q", tag)
		}
	}
}

func TestChunkTypeEquality(t *testing.T) {
	a, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	b, err := ChunkTypeFromBytes([4]byte{'R', 'u', 'S', 't'})
	require.NoError(t, err)
	c, err := ParseChunkType("RuST")
	require.NoError(t, err)

	assert.True(t, a == b)
	assert.False(t, a == c)
}
