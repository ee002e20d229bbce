package app

import (
	"bytes"
	"testing"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Encoding
	}{
		{"plain", []byte("hello"), EncodingUTF8},
		{"empty", nil, EncodingUTF8},
		{"utf-8 bom", []byte("\xEF\xBB\xBFhi"), EncodingUTF8BOM},
		{"utf-16le", []byte{0xFF, 0xFE, 'h', 0}, EncodingUTF16LE},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'h'}, EncodingUTF16BE},
		{"latin", []byte("caf\xe9"), EncodingWindows1252},
	}
	for _, tt := range tests {
		if got := DetectEncoding(tt.data); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  Encoding
		want string
	}{
		{"utf-8 bom", []byte("\xEF\xBB\xBFhi"), EncodingUTF8BOM, "hi"},
		{"utf-16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, EncodingUTF16LE, "hi"},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, EncodingUTF16BE, "hi"},
		{"windows-1252", []byte("caf\xe9"), EncodingWindows1252, "café"},
	}
	for _, tt := range tests {
		got, err := Decode(tt.data, tt.enc)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{EncodingUTF8, EncodingUTF8BOM, EncodingUTF16LE, EncodingUTF16BE, EncodingWindows1252} {
		data, err := Encode("café\n", enc)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", enc, err)
		}
		if DetectEncoding(data) != enc {
			t.Errorf("%v: encoded bytes detected as %v", enc, DetectEncoding(data))
		}
		text, err := Decode(data, enc)
		if err != nil || text != "café\n" {
			t.Errorf("%v: round trip gave %q, %v", enc, text, err)
		}
	}
}

func TestEncodeUTF16WritesBOM(t *testing.T) {
	data, err := Encode("h", EncodingUTF16LE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, []byte{0xFF, 0xFE, 'h', 0}) {
		t.Errorf("unexpected bytes % x", data)
	}
}

func TestEncodeUnrepresentable(t *testing.T) {
	if _, err := Encode("日本", EncodingWindows1252); err == nil {
		t.Error("expected error for characters outside windows-1252")
	}
}
