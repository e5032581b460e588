package docio

import (
	"fmt"
	"strings"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/omifile"
	"github.com/hay-kot/omiquji/internal/core/strfile"
)

// Format is an on-disk document encoding.
type Format int

const (
	// Strfile is the Unix fortune text format. Everything that is not an
	// omifile is read and written as strfile.
	Strfile Format = iota
	// Omikuji is the binary omifile container.
	Omikuji
)

// OmiExt is the file suffix that selects the binary format.
const OmiExt = ".omi"

func (f Format) String() string {
	if f == Omikuji {
		return "omi"
	}
	return "strfile"
}

// FormatFor picks the format for path by its suffix.
func FormatFor(path string) Format {
	if strings.HasSuffix(path, OmiExt) {
		return Omikuji
	}
	return Strfile
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "omi", "omikuji", "binary":
		return Omikuji, nil
	case "strfile", "fortune", "text":
		return Strfile, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want omi or strfile)", s)
	}
}

// Encode serializes snap in format f.
func Encode(f Format, snap omidoc.Snapshot) ([]byte, error) {
	if f == Omikuji {
		return omifile.Encode(snap)
	}
	return strfile.EncodeDocument(snap), nil
}

// Lossy reports whether writing snap as f loses information: strfile has
// no separate comment list, so comments come back as fortunes.
func Lossy(f Format, snap omidoc.Snapshot) bool {
	return f == Strfile && len(snap.Comments) > 0
}
