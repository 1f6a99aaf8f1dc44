package feed

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// The Partner-ads feeds are inconsistent about encodings: most serve
// Latin-1, some UTF-8, and the Content-Type charset parameter is not
// always present. Absent a declaration the network's default is
// iso-8859-1.

// DecodeBody decodes raw response bytes into a string given the
// response's Content-Type header. It never fails: unknown charsets fall
// back to tolerant UTF-8 decoding with invalid sequences replaced.
func DecodeBody(body []byte, contentType string) string {
	charset := extractCharset(contentType)
	if charset == "" {
		charset = "iso-8859-1"
	}

	if strings.Contains(charset, "8859-1") || strings.Contains(charset, "latin1") {
		// Latin-1 decoding cannot fail: every byte maps to a code point
		decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(body)
		return string(decoded)
	}

	return strings.ToValidUTF8(string(body), string(utf8.RuneError))
}

func extractCharset(contentType string) string {
	ct := strings.ToLower(contentType)

	i := strings.Index(ct, "charset=")
	if i < 0 {
		return ""
	}

	charset := ct[i+len("charset="):]
	if j := strings.Index(charset, ";"); j >= 0 {
		charset = charset[:j]
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(charset), `"`))
}
