package ini

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to a Go string.
//
// Files with a byte order mark are decoded as the marked Unicode encoding.
// Files that are valid UTF-8 are taken as is. Anything else is treated as
// ISO-8859-1, which is what older organ definitions were written in.
func Decode(data []byte) (string, error) {
	var decoder transform.Transformer
	switch {
	case bytes.HasPrefix(data, utf8BOM) || utf8.Valid(data):
		decoder = unicode.UTF8BOM.NewDecoder()
	default:
		decoder = unicode.BOMOverride(charmap.ISO8859_1.NewDecoder())
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
	if err != nil {
		return "", fmt.Errorf("decode configuration text: %w", err)
	}
	return string(out), nil
}

// Encode converts text to UTF-8 bytes, optionally prefixed with a BOM.
func Encode(text string, bom bool) ([]byte, error) {
	if !bom {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode configuration text: %w", err)
	}
	return out, nil
}
