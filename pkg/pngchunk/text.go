package pngchunk

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DecodeText decodes chunk data under the named character encoding. The
// format's own text chunks are Latin-1 (tEXt, zTXt) or UTF-8 (iTXt), so both
// are supported alongside ASCII and UTF-16. Unknown encoding names and bytes
// invalid under the requested encoding return an error.
func DecodeText(data []byte, encodingName string) (string, error) {
	var enc encoding.Encoding

	switch encodingName {
	case "ASCII":
		for _, b := range data {
			if b > 127 {
				return "", fmt.Errorf("invalid ASCII character: %d", b)
			}
		}
		return string(data), nil
	case "UTF-8", "UTF8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("decoding UTF-8: %w", ErrNotText)
		}
		return string(data), nil
	case "ISO-8859-1", "LATIN-1", "LATIN1":
		enc = charmap.ISO8859_1
	case "UTF-16LE":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "UTF-16BE":
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		return "", fmt.Errorf("unsupported encoding: %s", encodingName)
	}

	decoded, err := enc.NewDecoder().String(string(data))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", encodingName, err)
	}
	return decoded, nil
}
