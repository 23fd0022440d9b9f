// Package analyzer inspects raw file bytes to determine encoding, likely
// delimiters, and corruption indicators before any table parsing is
// attempted.
package analyzer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names, tried in fixed priority order.
const (
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingCandidates is the fixed priority order. Latin-1 accepts any byte
// sequence, so Windows-1252 is a last resort that is rarely reached; the
// order is preserved from the legacy behavior.
var encodingCandidates = []string{
	EncodingUTF8BOM,
	EncodingUTF8,
	EncodingLatin1,
	EncodingWindows1252,
}

// DetectEncoding returns the first candidate encoding that decodes a leading
// sample of the data without error.
func DetectEncoding(data []byte) string {
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}

	for _, enc := range encodingCandidates {
		switch enc {
		case EncodingUTF8BOM:
			if bytes.HasPrefix(data, utf8BOM) {
				return EncodingUTF8BOM
			}
		case EncodingUTF8:
			if utf8.Valid(sample) {
				return EncodingUTF8
			}
		case EncodingLatin1:
			if _, err := charmap.ISO8859_1.NewDecoder().Bytes(sample); err == nil {
				return EncodingLatin1
			}
		case EncodingWindows1252:
			if _, err := charmap.Windows1252.NewDecoder().Bytes(sample); err == nil {
				return EncodingWindows1252
			}
		}
	}
	return EncodingUTF8
}

// Decode converts raw bytes to a string using the named encoding, stripping
// any leading byte-order mark.
func Decode(data []byte, encoding string) (string, error) {
	switch encoding {
	case EncodingUTF8BOM:
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	case EncodingUTF8, "":
		return string(data), nil
	case EncodingLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("latin-1 decode: %w", err)
		}
		return string(decoded), nil
	case EncodingWindows1252:
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("windows-1252 decode: %w", err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unknown encoding %q", encoding)
	}
}
