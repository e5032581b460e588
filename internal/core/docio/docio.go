// Package docio moves documents between disk and memory. It picks the
// codec by file suffix, writes atomically and fingerprints file contents so
// the editor can tell its own saves from outside edits.
package docio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/omiquji/internal/core/logging"
	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/omifile"
	"github.com/hay-kot/omiquji/internal/core/strfile"
)

// Loaded is the result of reading a document from disk.
type Loaded struct {
	Doc     *omidoc.Document
	Format  Format
	Digest  uint64
	Skipped int // corrupt omifile slots ignored by a lenient decode
}

// Files loads and saves documents.
type Files struct {
	log    zerolog.Logger
	strict bool
}

// New returns a Files. When strict is set, omifiles with any corrupt table
// slot fail to load instead of loading the valid entries.
func New(log zerolog.Logger, strict bool) *Files {
	return &Files{
		log:    log.With().Str("cmp", "docio").Logger(),
		strict: strict,
	}
}

// Default returns a lenient Files logging through the global logger.
func Default() *Files {
	return &Files{log: logging.Component("docio")}
}

// Load reads and decodes path. The format is chosen by suffix.
func (f *Files) Load(ctx context.Context, path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, fmt.Errorf("read %s: %w", path, err)
	}

	out := Loaded{Format: FormatFor(path), Digest: Digest(data)}
	if out.Format == Strfile {
		out.Doc = strfile.DecodeDocument(data)
		return out, nil
	}

	var first omifile.Skip
	opts := []omifile.DecodeOption{omifile.OnSkip(func(s omifile.Skip) {
		if out.Skipped == 0 {
			first = s
		}
		out.Skipped++
	})}
	if f.strict {
		opts = append(opts, omifile.Strict())
	}

	doc, err := omifile.Decode(data, opts...)
	if err != nil {
		return Loaded{}, fmt.Errorf("decode %s: %w", path, err)
	}
	out.Doc = doc

	if out.Skipped > 0 {
		f.log.Warn().Ctx(ctx).
			Str("path", path).
			Int("skipped", out.Skipped).
			Stringer("first", first).
			Msg("skipped corrupt table slots")
	}

	f.log.Debug().Ctx(ctx).
		Str("path", path).
		Int("comments", doc.CommentCount()).
		Int("fortunes", doc.FortuneCount()).
		Msg("loaded document")
	return out, nil
}

// Save encodes snap for path and replaces the file atomically through
// path+".tmp". On failure the original file is left as it was. It returns
// the digest of the written bytes.
func (f *Files) Save(ctx context.Context, path string, snap omidoc.Snapshot) (uint64, error) {
	format := FormatFor(path)
	data, err := Encode(format, snap)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}

	if Lossy(format, snap) {
		f.log.Warn().Ctx(ctx).
			Str("path", path).
			Int("comments", len(snap.Comments)).
			Msg("strfile has no comment list; comments will reload as fortunes")
	}

	if format == Strfile {
		if n := blankEntries(snap); n > 0 {
			f.log.Warn().Ctx(ctx).
				Str("path", path).
				Int("entries", n).
				Msg("strfile cannot hold blank entries; they will not be written")
		}
	}

	if err := writeAtomic(path, data); err != nil {
		return 0, err
	}

	f.log.Debug().Ctx(ctx).Str("path", path).Int("bytes", len(data)).Msg("saved document")
	return Digest(data), nil
}

func writeAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func blankEntries(snap omidoc.Snapshot) int {
	n := 0
	for _, list := range [][]string{snap.Comments, snap.Fortunes} {
		for _, e := range list {
			if strfile.Blank(e) {
				n++
			}
		}
	}
	return n
}

// Digest fingerprints file contents.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DigestFile reads path and returns its digest.
func DigestFile(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return Digest(data), nil
}
