package strfile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    string
	}{
		{name: "adds missing newline", entries: []string{"alpha", "beta\n"}, want: "alpha\n%\nbeta\n"},
		{name: "skips empty entries", entries: []string{"", "one", "", "two", ""}, want: "one\n%\ntwo\n"},
		{name: "skips lone newlines", entries: []string{"\n", "one", "\n"}, want: "one\n"},
		{name: "nothing to write", entries: []string{"", ""}, want: ""},
		{name: "nil", entries: nil, want: ""},
		{name: "multi line", entries: []string{"a\nb", "c"}, want: "a\nb\n%\nc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Encode(tt.entries)))
		})
	}
}

func TestEncodeDecode_BlankEntriesAreDroppedBothWays(t *testing.T) {
	entries := []string{"\n", "a\n", "\n", "b\n", "\n"}
	assert.Equal(t, []string{"a\n", "b\n"}, Decode(Encode(entries)))
}

func TestEncodeDocument_CommentsFirst(t *testing.T) {
	got := EncodeDocument(omidoc.Snapshot{
		Comments: []string{"c1"},
		Fortunes: []string{"f1", "f2"},
	})
	assert.Equal(t, "c1\n%\nf1\n%\nf2\n", string(got))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{name: "keeps trailing newlines", data: "alpha\n%\nbeta\n", want: []string{"alpha\n", "beta\n"}},
		{name: "tail without newline", data: "alpha\n%\nbeta", want: []string{"alpha\n", "beta"}},
		{name: "classic trailing delimiter", data: "a\n%\nb\n%\n", want: []string{"a\n", "b\n"}},
		{name: "drops blank entries", data: "a\n%\n\n%\nb\n", want: []string{"a\n", "b\n"}},
		{name: "single entry", data: "only one\n", want: []string{"only one\n"}},
		{name: "empty", data: "", want: nil},
		{name: "percent inside text", data: "100%\n%\nx\n", want: []string{"100%\n", "x\n"}},
		{name: "non ascii", data: "大吉\n%\n凶\n", want: []string{"大吉\n", "凶\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode([]byte(tt.data)))
		})
	}
}

func TestDecodeDocument_FortunesOnly(t *testing.T) {
	doc := DecodeDocument([]byte("c1\n%\nf1\n"))
	assert.Equal(t, 0, doc.CommentCount())
	assert.Equal(t, []string{"c1\n", "f1\n"}, doc.Entries(omidoc.Fortunes))
}

func TestEncodeDecode_RoundTripOfTerminatedEntries(t *testing.T) {
	entries := []string{"one\n", "two\nlines\n", "three\n"}
	assert.Equal(t, entries, Decode(Encode(entries)))
}
