// Package ingest loads input bytes and turns them into clean display text:
// binary refusal, encoding detection and decode, ANSI stripping and tab
// expansion.
package ingest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"mat/internal/errs"
	"mat/internal/util/logx"
)

const (
	binarySampleSize = 8 * 1024
	tabWidth         = 4
)

var markdownExts = map[string]bool{
	".md": true, ".markdown": true, ".mdown": true, ".mkd": true, ".mkdn": true,
}

// Options control how raw input is turned into text.
type Options struct {
	// ForceBinary skips the binary-content refusal.
	ForceBinary bool
	// KeepANSI leaves escape sequences in the text instead of stripping them.
	KeepANSI bool
}

// Content is decoded, cleaned input ready to become a document.
type Content struct {
	Text       string
	SourceName string
	Extension  string
	IsMarkdown bool
	Encoding   string
}

// LoadFile reads and prepares a file from disk.
func LoadFile(path string, opt Options) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.IO{Path: path, Err: err}
	}
	c, err := prepare(data, path, opt)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	c.Extension = strings.TrimPrefix(ext, ".")
	c.IsMarkdown = markdownExts[ext]
	return c, nil
}

// LoadStdin reads and prepares piped standard input.
func LoadStdin(r io.Reader, opt Options) (*Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &errs.IO{Path: "stdin", Err: err}
	}
	return prepare(data, "stdin", opt)
}

func prepare(data []byte, name string, opt Options) (*Content, error) {
	if !opt.ForceBinary && IsBinary(data) {
		return nil, &errs.BinaryFile{Path: name}
	}
	text, enc, err := Decode(data)
	if err != nil {
		return nil, &errs.Encoding{Path: name}
	}
	logx.Debugf("ingest: %s decoded as %s (%d bytes)", name, enc, len(data))
	if !opt.KeepANSI {
		text = StripANSI(text)
	}
	text = ExpandTabs(text)
	return &Content{Text: text, SourceName: name, Encoding: enc}, nil
}

// IsBinary samples the first 8 KiB and reports whether the content looks
// like binary data: any NUL byte, or more than 30% non-printable bytes.
// Empty input is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	nonPrintable := 0
	for _, b := range sample {
		if b == 0x00 {
			return true
		}
		if !printableByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*10 > len(sample)*3
}

func printableByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r':
		return true
	case b >= 0x20 && b <= 0x7e:
		return true
	case b >= 0x80:
		return true
	}
	return false
}

// Decode detects the input encoding and returns UTF-8 text plus the
// encoding's display name. BOMs decide UTF-16 and are stripped; valid
// UTF-8 passes through; everything else decodes as Windows-1252 and is
// reported as Latin-1.
func Decode(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}):
		return string(data[3:]), "UTF-8-BOM", nil
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data[2:])
		if err != nil {
			return "", "", err
		}
		return string(out), "UTF-16LE", nil
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data[2:])
		if err != nil {
			return "", "", err
		}
		return string(out), "UTF-16BE", nil
	case utf8.Valid(data):
		return string(data), "UTF-8", nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", "", err
		}
		return string(out), "Latin-1", nil
	}
}

// StripANSI removes escape sequences: CSI sequences (ESC [ ... final byte)
// and two-byte ESC sequences. Everything else passes through untouched.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != 0x1b {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			if j < len(s) {
				j++ // consume the final byte
			}
			i = j
			continue
		}
		// ESC plus one character
		i += 2
		if i > len(s) {
			i = len(s)
		}
	}
	return b.String()
}

// ExpandTabs replaces tabs with spaces up to the next 4-column stop,
// tracking display columns with rune widths. Newlines reset the column.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
	}
	return b.String()
}
