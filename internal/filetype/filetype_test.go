package filetype

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want FileType
	}{
		{name: "pdf", data: []byte("%PDF-1.7 ..."), want: PDF},
		{name: "png", data: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, want: PNG},
		{name: "jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, want: JPEG},
		{name: "zip container", data: []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}, want: Zip},
		{name: "docx reports as zip", data: append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("[Content_Types].xml")...), want: Zip},
		{name: "plain text", data: []byte("hello world\nsecond line\n"), want: Text},
		{name: "signature beats text heuristic", data: []byte("%PDF looks like text too"), want: PDF},
		{name: "utf8 bom", data: []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, want: Text},
		{name: "empty", data: nil, want: Binary},
		{name: "control bytes", data: []byte{0x01, 0x02, 0x03, 0x04}, want: Binary},
		{name: "all zeros", data: bytes.Repeat([]byte{0x00}, 10), want: Binary},
		{name: "invalid utf8", data: []byte{0xC3, 0x28, 0xA0, 0xA1}, want: Binary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.data))
		})
	}
}

func TestIsLikelyText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "empty is not text", data: nil, want: false},
		{name: "ascii prose", data: []byte("The quick brown fox.\r\n\tDone."), want: true},
		{name: "unicode letters", data: []byte("héllo wörld"), want: true},
		{name: "symbols and punctuation", data: []byte("total = $1,500 (approx. 75%)"), want: true},
		{name: "utf8 bom settles it", data: []byte{0xEF, 0xBB, 0xBF, 0x01}, want: true},
		{name: "utf16le bom settles it", data: []byte{0xFF, 0xFE, 0x00, 0x68}, want: true},
		{name: "utf16be bom settles it", data: []byte{0xFE, 0xFF, 0x00, 0x68}, want: true},
		{name: "bell character disqualifies", data: []byte("ding\x07"), want: false},
		{name: "escape character disqualifies", data: []byte("\x1b[31mred"), want: false},
		{name: "nul byte disqualifies", data: []byte("abc\x00def"), want: false},
		{name: "invalid utf8", data: []byte{0x80, 0x81}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyText(tt.data))
		})
	}
}
