// Package filetype classifies uploaded binary content by inspecting its
// leading bytes. Client-declared content types and filenames are untrusted
// hints; a file served back with its own content headers must be labeled
// from what it actually contains.
package filetype

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// FileType pairs a MIME content type with a filename extension.
type FileType struct {
	ContentType string
	Extension   string
}

var (
	PDF    = FileType{ContentType: "application/pdf", Extension: ".pdf"}
	PNG    = FileType{ContentType: "image/png", Extension: ".png"}
	JPEG   = FileType{ContentType: "image/jpeg", Extension: ".jpg"}
	Zip    = FileType{ContentType: "application/zip", Extension: ".zip"}
	Text   = FileType{ContentType: "text/plain", Extension: ".txt"}
	Binary = FileType{ContentType: "application/octet-stream", Extension: ".bin"}
)

var (
	sigPDF  = []byte{0x25, 0x50, 0x44, 0x46}
	sigPNG  = []byte{0x89, 0x50, 0x4E, 0x47}
	sigJPEG = []byte{0xFF, 0xD8}
	sigZip  = []byte{0x50, 0x4B, 0x03, 0x04}

	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect never fails: input matching no signature and failing the text
// heuristic classifies as opaque binary. The ZIP signature also covers
// office documents (docx, xlsx); those are reported as application/zip
// since the signature alone only proves a zip container.
func Detect(data []byte) FileType {
	switch {
	case bytes.HasPrefix(data, sigPDF):
		return PDF
	case bytes.HasPrefix(data, sigPNG):
		return PNG
	case bytes.HasPrefix(data, sigJPEG):
		return JPEG
	case bytes.HasPrefix(data, sigZip):
		return Zip
	case IsLikelyText(data):
		return Text
	default:
		return Binary
	}
}

// IsLikelyText reports whether data looks like a plain text file. A leading
// byte-order mark settles it immediately. Otherwise the content must decode
// as UTF-8 and contain only letters, digits, punctuation, whitespace, or
// symbols; control characters other than CR, LF, and TAB disqualify. More
// than three consecutive NUL bytes anywhere in the raw input is treated as
// a binary-content signal regardless of decodability.
func IsLikelyText(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	if bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		return true
	}

	if !utf8.Valid(data) {
		return false
	}

	for _, r := range string(data) {
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) ||
			unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		return false
	}

	consecutiveNulls := 0
	for _, b := range data {
		if b == 0x00 {
			consecutiveNulls++
			if consecutiveNulls > 3 {
				return false
			}
		} else {
			consecutiveNulls = 0
		}
	}

	return true
}
