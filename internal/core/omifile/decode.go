package omifile

import (
	"fmt"
	"strings"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
)

// SkipReason explains why a table slot was ignored.
type SkipReason string

const (
	// ReasonSlotOutOfBounds means the 8-byte slot itself lies outside the
	// buffer or inside the header.
	ReasonSlotOutOfBounds SkipReason = "slot out of bounds"
	// ReasonSpanOutOfBounds means the payload span described by the slot
	// lies outside the buffer or inside the header.
	ReasonSpanOutOfBounds SkipReason = "payload out of bounds"
	// ReasonTruncated summarizes the slots past the end of the buffer that
	// were not visited individually.
	ReasonTruncated SkipReason = "table runs past end of data"
)

// Skip describes a table slot ignored by a lenient decode.
type Skip struct {
	List   omidoc.List
	Slot   uint32 // index within the table
	Offset uint64 // byte offset of the slot
	Entry  TableEntry
	Reason SkipReason
	// Remaining is set for ReasonTruncated: the number of slots from Slot
	// onwards that were dropped without being visited.
	Remaining uint32
}

func (s Skip) String() string {
	if s.Reason == ReasonTruncated {
		return fmt.Sprintf("%s slots %d..%d: %s", s.List, s.Slot, s.Slot+s.Remaining-1, s.Reason)
	}
	return fmt.Sprintf("%s slot %d at %d: %s", s.List, s.Slot, s.Offset, s.Reason)
}

type decodeOptions struct {
	strict bool
	onSkip func(Skip)
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

// Strict makes Decode fail with ErrCorruptEntry on the first invalid slot
// instead of skipping it.
func Strict() DecodeOption {
	return func(o *decodeOptions) { o.strict = true }
}

// OnSkip registers fn to be called for every slot a lenient decode skips.
func OnSkip(fn func(Skip)) DecodeOption {
	return func(o *decodeOptions) { o.onSkip = fn }
}

// Decode parses omifile bytes into a new document. Invalid table slots are
// skipped unless Strict is given; the header errors ErrTooShort,
// ErrBadSignature and ErrUnsupportedVersion are always fatal.
func Decode(data []byte, opts ...DecodeOption) (*omidoc.Document, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	doc := omidoc.New()
	for _, list := range []omidoc.List{omidoc.Comments, omidoc.Fortunes} {
		rest, err := walkTable(data, h.Table(list), func(slot Slot) error {
			if slot.Valid() {
				doc.Add(list, decodeText(data[slot.Entry.Offset:uint64(slot.Entry.Offset)+uint64(slot.Entry.Length)]))
				return nil
			}

			skip := Skip{List: list, Slot: slot.Index, Offset: slot.Offset, Entry: slot.Entry, Reason: slot.Reason}
			if o.strict {
				return fmt.Errorf("%w: %s", ErrCorruptEntry, skip)
			}
			if o.onSkip != nil {
				o.onSkip(skip)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if rest > 0 && o.onSkip != nil {
			o.onSkip(Skip{List: list, Slot: h.Table(list).Length - rest, Reason: ReasonTruncated, Remaining: rest})
		}
	}

	return doc, nil
}

// Slot is one table slot as seen by the decoder.
type Slot struct {
	Index  uint32     `json:"index"`
	Offset uint64     `json:"offset"`
	Entry  TableEntry `json:"entry"`
	Reason SkipReason `json:"reason,omitempty"`
}

// Valid reports whether the slot and its payload span are in bounds.
func (s Slot) Valid() bool {
	return s.Reason == ""
}

// walkTable visits every slot of the table described by desc and returns
// how many slots were left unvisited. Offsets are tracked in 64 bits so the
// arithmetic cannot wrap. Once a slot starts past the end of data every
// later slot is out of bounds too, so the walk stops there instead of
// looping over a hostile table length.
func walkTable(data []byte, desc TableEntry, visit func(Slot) error) (uint32, error) {
	if desc.IsZero() {
		return 0, nil
	}

	size := uint64(len(data))
	offset := uint64(desc.Offset)
	for i := uint32(0); i < desc.Length; i++ {
		slot := Slot{Index: i, Offset: offset}

		if offset < HeaderSize || offset+EntrySize > size {
			slot.Reason = ReasonSlotOutOfBounds
		} else {
			slot.Entry = readEntry(data, int(offset))
			end := uint64(slot.Entry.Offset) + uint64(slot.Entry.Length)
			if slot.Entry.Offset < HeaderSize || end > size {
				slot.Reason = ReasonSpanOutOfBounds
			}
		}

		if err := visit(slot); err != nil {
			return 0, err
		}

		if offset >= size {
			return desc.Length - i - 1, nil
		}
		offset += EntrySize
	}
	return 0, nil
}

func decodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
