// Package omifile encodes and decodes the omikuji binary container.
//
// Layout (all integers big-endian u32):
//
//	offset 0   7 bytes  magic "omikuji"
//	offset 7   1 byte   version (0)
//	offset 8   comment table descriptor (offset, length)
//	offset 16  fortune table descriptor (offset, length)
//	[comment table]  length entries of (offset, length), only when non-empty
//	[fortune table]  length entries of (offset, length), only when non-empty
//	[payload]        UTF-8 comments in order, then fortunes in order
//
// A descriptor of (0, 0) marks an empty list with no table.
package omifile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
)

const (
	// Signature is the 7-byte magic at the start of every omifile.
	Signature = "omikuji"
	// Version is the only format version defined.
	Version byte = 0
	// HeaderSize is the fixed size of the file header.
	HeaderSize = 24
	// EntrySize is the size of one table entry.
	EntrySize = 8
)

var (
	// ErrTooShort is returned when the buffer is smaller than the header.
	ErrTooShort = errors.New("omifile: data shorter than header")
	// ErrBadSignature is returned when the magic does not match.
	ErrBadSignature = errors.New("omifile: bad signature")
	// ErrUnsupportedVersion is returned for any version other than 0.
	ErrUnsupportedVersion = errors.New("omifile: unsupported version")
	// ErrCorruptEntry is returned by strict decoding when a table slot or
	// the span it describes is out of bounds.
	ErrCorruptEntry = errors.New("omifile: corrupt table entry")
	// ErrTooLarge is returned when a document does not fit 32-bit offsets.
	ErrTooLarge = errors.New("omifile: document too large for format")
)

// TableEntry describes a byte span within an encoded file.
type TableEntry struct {
	Offset uint32 `json:"offset"`
	Length uint32 `json:"length"`
}

// IsZero reports whether the entry is the (0, 0) "no table" marker.
func (e TableEntry) IsZero() bool {
	return e.Offset == 0 && e.Length == 0
}

// Header is the fixed 24-byte file header.
type Header struct {
	Signature [7]byte    `json:"-"`
	Version   byte       `json:"version"`
	Comments  TableEntry `json:"comments"`
	Fortunes  TableEntry `json:"fortunes"`
}

// Table returns the descriptor for list.
func (h Header) Table(list omidoc.List) TableEntry {
	if list == omidoc.Comments {
		return h.Comments
	}
	return h.Fortunes
}

func (h Header) appendTo(b []byte) []byte {
	b = append(b, h.Signature[:]...)
	b = append(b, h.Version)
	b = appendEntry(b, h.Comments)
	b = appendEntry(b, h.Fortunes)
	return b
}

func appendEntry(b []byte, e TableEntry) []byte {
	b = binary.BigEndian.AppendUint32(b, e.Offset)
	return binary.BigEndian.AppendUint32(b, e.Length)
}

func readEntry(data []byte, at int) TableEntry {
	return TableEntry{
		Offset: binary.BigEndian.Uint32(data[at:]),
		Length: binary.BigEndian.Uint32(data[at+4:]),
	}
}

// ParseHeader reads and checks the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, ErrTooShort
	}

	copy(h.Signature[:], data[:7])
	h.Version = data[7]
	h.Comments = readEntry(data, 8)
	h.Fortunes = readEntry(data, 16)

	if string(h.Signature[:]) != Signature {
		return h, ErrBadSignature
	}
	if h.Version != Version {
		return h, ErrUnsupportedVersion
	}
	return h, nil
}

// Encode serializes a document snapshot into omifile bytes.
func Encode(s omidoc.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes s to w and returns the number of bytes written.
func Write(w io.Writer, s omidoc.Snapshot) (int64, error) {
	comments := encodeTexts(s.Comments)
	fortunes := encodeTexts(s.Fortunes)

	total := uint64(HeaderSize) + uint64(len(comments)+len(fortunes))*EntrySize
	for _, p := range comments {
		total += uint64(len(p))
	}
	for _, p := range fortunes {
		total += uint64(len(p))
	}
	if total > math.MaxUint32 {
		return 0, ErrTooLarge
	}

	h := Header{Version: Version}
	copy(h.Signature[:], Signature)

	offset := uint32(HeaderSize)
	if n := uint32(len(comments)); n > 0 {
		h.Comments = TableEntry{Offset: offset, Length: n}
		offset += n * EntrySize
	}
	if n := uint32(len(fortunes)); n > 0 {
		h.Fortunes = TableEntry{Offset: offset, Length: n}
		offset += n * EntrySize
	}

	out := make([]byte, 0, total)
	out = h.appendTo(out)
	out, offset = appendTable(out, comments, offset)
	out, _ = appendTable(out, fortunes, offset)
	for _, p := range comments {
		out = append(out, p...)
	}
	for _, p := range fortunes {
		out = append(out, p...)
	}

	n, err := w.Write(out)
	return int64(n), err
}

// appendTable emits one table entry per payload, starting payload offsets
// at offset, and returns the offset following the last payload.
func appendTable(b []byte, payloads [][]byte, offset uint32) ([]byte, uint32) {
	for _, p := range payloads {
		b = appendEntry(b, TableEntry{Offset: offset, Length: uint32(len(p))})
		offset += uint32(len(p))
	}
	return b, offset
}

func encodeTexts(texts []string) [][]byte {
	out := make([][]byte, len(texts))
	for i, t := range texts {
		out[i] = []byte(t)
	}
	return out
}
