package omifile

import "github.com/hay-kot/omiquji/internal/core/omidoc"

// TableLayout lists every slot of one table.
type TableLayout struct {
	List       omidoc.List `json:"-"`
	Name       string      `json:"list"`
	Descriptor TableEntry  `json:"descriptor"`
	Slots      []Slot      `json:"slots"`
	// Unvisited counts slots past the end of the data that were not listed.
	Unvisited uint32 `json:"unvisited,omitempty"`
}

// Invalid returns the number of listed slots that a decode would skip.
func (t TableLayout) Invalid() int {
	n := 0
	for _, s := range t.Slots {
		if !s.Valid() {
			n++
		}
	}
	return n + int(t.Unvisited)
}

// Layout is a structural view of an omifile.
type Layout struct {
	Size   int           `json:"size"`
	Header Header        `json:"header"`
	Tables []TableLayout `json:"tables"`
}

// Inspect parses the header and walks both tables without decoding any
// payload. Header errors are returned exactly as Decode would return them.
func Inspect(data []byte) (Layout, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Layout{}, err
	}

	layout := Layout{Size: len(data), Header: h}
	for _, list := range []omidoc.List{omidoc.Comments, omidoc.Fortunes} {
		t := TableLayout{List: list, Name: list.String(), Descriptor: h.Table(list)}
		rest, _ := walkTable(data, t.Descriptor, func(s Slot) error {
			t.Slots = append(t.Slots, s)
			return nil
		})
		t.Unvisited = rest
		layout.Tables = append(layout.Tables, t)
	}
	return layout, nil
}
