// Package source turns raw spec file bytes into text the parser can use.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNotText is returned for content that is not valid text.
var ErrNotText = errors.New("content is not valid text")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Encoding is the byte layout of a file's text.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

// Sniff reports the encoding Decode would read data with.
func Sniff(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	default:
		return UTF8
	}
}

// Encode converts text back to enc, writing the byte order mark that
// Sniff detected it by.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case UTF8BOM:
		return append(append([]byte{}, bomUTF8...), text...), nil
	case UTF16LE:
		return encodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), text)
	case UTF16BE:
		return encodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), text)
	default:
		return []byte(text), nil
	}
}

func encodeWith(e encoding.Encoding, text string) ([]byte, error) {
	out, _, err := transform.Bytes(e.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding: %w", err)
	}
	return out, nil
}

// Decode converts file content to a UTF-8 string. A leading byte order
// mark selects UTF-8 or UTF-16 and is stripped. Content without a BOM must
// be valid UTF-8. NUL bytes mark the content as binary.
func Decode(data []byte) (string, error) {
	utf16 := bytes.HasPrefix(data, bomUTF16BE) || bytes.HasPrefix(data, bomUTF16LE)
	if !utf16 && !utf8.Valid(data) {
		return "", ErrNotText
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decoding: %w", err)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return "", ErrNotText
	}
	return string(out), nil
}

// Ident returns the NFC form of an identifier, so that visually identical
// names compare equal.
func Ident(s string) string {
	return norm.NFC.String(s)
}
