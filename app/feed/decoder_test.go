package feed

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeBody_Latin1(t *testing.T) {
	// "Børn" encoded as iso-8859-1
	body := []byte{0x42, 0xF8, 0x72, 0x6E}

	decoded := DecodeBody(body, "text/xml; charset=iso-8859-1")
	if decoded != "Børn" {
		t.Errorf("Expected 'Børn', got %q", decoded)
	}
}

func TestDecodeBody_DefaultsToLatin1(t *testing.T) {
	body := []byte{0xD8, 0x72, 0x65, 0x70, 0x72, 0x6F, 0x70, 0x70, 0x65, 0x72}

	// No charset parameter at all
	if got := DecodeBody(body, "text/xml"); got != "Ørepropper" {
		t.Errorf("Expected 'Ørepropper' for missing charset, got %q", got)
	}

	// Empty Content-Type header
	if got := DecodeBody(body, ""); got != "Ørepropper" {
		t.Errorf("Expected 'Ørepropper' for empty content type, got %q", got)
	}
}

func TestDecodeBody_Utf8(t *testing.T) {
	body := []byte("Børn på rejse")

	decoded := DecodeBody(body, "application/xml; charset=utf-8")
	if decoded != "Børn på rejse" {
		t.Errorf("Expected UTF-8 passthrough, got %q", decoded)
	}
}

func TestDecodeBody_InvalidUtf8Tolerated(t *testing.T) {
	// A lone continuation byte is not valid UTF-8
	body := []byte{0x4F, 0x4B, 0x80}

	decoded := DecodeBody(body, "text/xml; charset=utf-8")
	if !utf8.ValidString(decoded) {
		t.Error("Expected decoded output to be valid UTF-8")
	}
	if !strings.HasPrefix(decoded, "OK") {
		t.Errorf("Expected valid prefix to survive, got %q", decoded)
	}
}

func TestExtractCharset(t *testing.T) {
	tests := []struct {
		contentType string
		expected    string
	}{
		{"text/xml; charset=iso-8859-1", "iso-8859-1"},
		{"text/xml; charset=UTF-8", "utf-8"},
		{"text/xml; charset=\"utf-8\"", "utf-8"},
		{"text/xml; charset=utf-8; boundary=x", "utf-8"},
		{"text/xml", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := extractCharset(tt.contentType); got != tt.expected {
			t.Errorf("extractCharset(%q) = %q, expected %q", tt.contentType, got, tt.expected)
		}
	}
}
