package pngchunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		expected string
	}{
		{"utf-8", []byte("héllo"), "UTF-8", "héllo"},
		{"ascii", []byte("hello"), "ASCII", "hello"},
		{"latin-1 accents", []byte{'c', 'a', 'f', 0xE9}, "ISO-8859-1", "café"},
		{"latin-1 alias", []byte{0xE9}, "LATIN-1", "é"},
		{"utf-16be", []byte{0x00, 'H', 0x00, 'i'}, "UTF-16BE", "Hi"},
		{"utf-16le", []byte{'H', 0x00, 'i', 0x00}, "UTF-16LE", "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeText(tt.data, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decoded)
		})
	}
}

func TestDecodeTextErrors(t *testing.T) {
	_, err := DecodeText([]byte{0xFF, 0xFE}, "UTF-8")
	assert.ErrorIs(t, err, ErrNotText)

	_, err = DecodeText([]byte{0xC9}, "ASCII")
	assert.Error(t, err)

	_, err = DecodeText([]byte("x"), "EBCDIC")
	assert.ErrorContains(t, err, "unsupported encoding")
}

// Latin-1 maps every byte to a character, so tEXt payloads always decode.
func TestDecodeTextLatin1Total(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	decoded, err := DecodeText(data, "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, 256, len([]rune(decoded)))
}
