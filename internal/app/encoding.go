package app

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the on-disk encoding of a document. Text is always UTF-8 in
// memory; the encoding is kept so saving writes the file back the same way.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
	// EncodingWindows1252 is assumed for files that are not valid UTF-8.
	EncodingWindows1252
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF8BOM:
		return "utf-8-bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	case EncodingWindows1252:
		return "windows-1252"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectEncoding guesses the encoding of data from its byte order mark,
// falling back to Windows-1252 when data is not valid UTF-8.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	case !utf8.Valid(data):
		return EncodingWindows1252
	default:
		return EncodingUTF8
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EncodingWindows1252:
		return charmap.Windows1252
	default:
		return nil
	}
}

// Decode converts data in encoding e to UTF-8 text, dropping any byte
// order mark.
func Decode(data []byte, e Encoding) (string, error) {
	switch e {
	case EncodingUTF8:
		return string(data), nil
	case EncodingUTF8BOM:
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	out, _, err := transform.Bytes(e.codec().NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", e, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to encoding e, writing a byte order mark for
// the encodings that carry one.
func Encode(text string, e Encoding) ([]byte, error) {
	switch e {
	case EncodingUTF8:
		return []byte(text), nil
	case EncodingUTF8BOM:
		return append(append([]byte{}, utf8BOM...), text...), nil
	}
	out, _, err := transform.Bytes(e.codec().NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}
	return out, nil
}
