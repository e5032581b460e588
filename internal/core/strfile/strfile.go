// Package strfile reads and writes the plain-text fortune format used by
// the Unix fortune(6)/strfile(8) tools: UTF-8 entries separated by a line
// holding a single "%".
package strfile

import (
	"bytes"
	"strings"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
)

// Delimiter separates two entries in a decoded file.
const Delimiter = "\n%\n"

const separator = "%\n"

// Encode writes the entries in order, separated by "%" lines. Every entry
// is terminated by a newline. Entries that are empty or a lone newline are
// skipped since Decode would drop them anyway.
func Encode(entries []string) []byte {
	var buf bytes.Buffer
	first := true
	for _, e := range entries {
		if Blank(e) {
			continue
		}
		if !first {
			buf.WriteString(separator)
		}
		first = false

		buf.WriteString(e)
		if !strings.HasSuffix(e, "\n") {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// Blank reports whether e has no content that survives a round trip.
func Blank(e string) bool {
	return e == "" || e == "\n"
}

// EncodeDocument writes comments followed by fortunes as one sequence. The
// format has no notion of categories, so the distinction is lost.
func EncodeDocument(s omidoc.Snapshot) []byte {
	entries := make([]string, 0, len(s.Comments)+len(s.Fortunes))
	entries = append(entries, s.Comments...)
	entries = append(entries, s.Fortunes...)
	return Encode(entries)
}

// Decode splits data on Delimiter. Each delimited entry keeps the newline
// preceding the delimiter and is dropped when it holds nothing but that
// newline. Text after the last delimiter becomes the final entry when it is
// non-empty.
func Decode(data []byte) []string {
	text := strings.ToValidUTF8(string(data), "\uFFFD")

	var entries []string
	for {
		idx := strings.Index(text, Delimiter)
		if idx < 0 {
			break
		}
		if entry := text[:idx+1]; len(entry) > 1 {
			entries = append(entries, entry)
		}
		text = text[idx+len(Delimiter):]
	}
	if text != "" {
		entries = append(entries, text)
	}
	return entries
}

// DecodeDocument decodes data into a new document. All entries become
// fortunes.
func DecodeDocument(data []byte) *omidoc.Document {
	return omidoc.FromSnapshot(omidoc.Snapshot{Fortunes: Decode(data)})
}
