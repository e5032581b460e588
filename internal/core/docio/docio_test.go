package docio

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/omifile"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{path: "lucky.omi", want: Omikuji},
		{path: "/a/b/lucky.omi", want: Omikuji},
		{path: "fortunes", want: Strfile},
		{path: "fortunes.txt", want: Strfile},
		{path: "omi", want: Strfile},
		{path: "lucky.OMI", want: Strfile},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("OMI")
	require.NoError(t, err)
	assert.Equal(t, Omikuji, f)

	f, err = ParseFormat("strfile")
	require.NoError(t, err)
	assert.Equal(t, Strfile, f)

	_, err = ParseFormat("zip")
	assert.Error(t, err)
}

func TestFiles_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	files := New(zerolog.Nop(), false)
	snap := omidoc.Snapshot{Comments: []string{"note"}, Fortunes: []string{"大吉", "小吉"}}

	t.Run("omifile keeps both lists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lucky.omi")

		digest, err := files.Save(ctx, path, snap)
		require.NoError(t, err)

		loaded, err := files.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, Omikuji, loaded.Format)
		assert.Equal(t, digest, loaded.Digest)
		assert.Equal(t, snap, loaded.Doc.Snapshot())
		assert.Zero(t, loaded.Skipped)
	})

	t.Run("strfile folds comments into fortunes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lucky")

		_, err := files.Save(ctx, path, snap)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "note\n%\n大吉\n%\n小吉\n", string(data))

		loaded, err := files.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, Strfile, loaded.Format)
		assert.Equal(t, 0, loaded.Doc.CommentCount())
		assert.Equal(t, []string{"note\n", "大吉\n", "小吉\n"}, loaded.Doc.Entries(omidoc.Fortunes))
	})
}

func TestFiles_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.omi")

	_, err := New(zerolog.Nop(), false).Save(context.Background(), path, omidoc.Snapshot{Fortunes: []string{"x"}})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.omi", entries[0].Name())
}

func TestFiles_SaveFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.omi")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	// A directory in the way of the temp file makes the write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	_, err := New(zerolog.Nop(), false).Save(context.Background(), path, omidoc.Snapshot{Fortunes: []string{"x"}})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func corruptOmifile(t *testing.T) string {
	t.Helper()

	data, err := omifile.Encode(omidoc.Snapshot{Fortunes: []string{"ok", "bad"}})
	require.NoError(t, err)
	// Inflate the second fortune length past the end of the file.
	data[len(data)-5-4] = 0xFF

	path := filepath.Join(t.TempDir(), "corrupt.omi")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFiles_LoadLenientCountsSkips(t *testing.T) {
	loaded, err := New(zerolog.Nop(), false).Load(context.Background(), corruptOmifile(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, loaded.Doc.Entries(omidoc.Fortunes))
	assert.Equal(t, 1, loaded.Skipped)
}

func TestFiles_LoadLenientLogsOneSummary(t *testing.T) {
	const slots = 64

	data := []byte("omikuji\x00")
	data = binary.BigEndian.AppendUint32(data, 0)
	data = binary.BigEndian.AppendUint32(data, 0)
	data = binary.BigEndian.AppendUint32(data, omifile.HeaderSize)
	data = binary.BigEndian.AppendUint32(data, slots)
	for range slots {
		// Every payload points back into the header.
		data = binary.BigEndian.AppendUint32(data, 0)
		data = binary.BigEndian.AppendUint32(data, 1)
	}
	path := filepath.Join(t.TempDir(), "hostile.omi")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var buf bytes.Buffer
	loaded, err := New(zerolog.New(&buf), false).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, slots, loaded.Skipped)
	assert.Zero(t, loaded.Doc.FortuneCount())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("skipped corrupt table slots")))
	assert.Contains(t, buf.String(), `"skipped":64`)
}

func TestFiles_SaveStrfileWarnsAboutBlankEntries(t *testing.T) {
	var buf bytes.Buffer
	files := New(zerolog.New(&buf), false)
	path := filepath.Join(t.TempDir(), "lucky")

	_, err := files.Save(context.Background(), path, omidoc.Snapshot{Fortunes: []string{"kichi", "\n"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kichi\n", string(data))
	assert.Contains(t, buf.String(), "strfile cannot hold blank entries")
	assert.Contains(t, buf.String(), `"entries":1`)
}

func TestFiles_LoadStrictFails(t *testing.T) {
	_, err := New(zerolog.Nop(), true).Load(context.Background(), corruptOmifile(t))
	assert.ErrorIs(t, err, omifile.ErrCorruptEntry)
}

func TestFiles_LoadHeaderError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.omi")
	require.NoError(t, os.WriteFile(path, []byte("not an omikuji file at all"), 0o644))

	_, err := Default().Load(context.Background(), path)
	assert.ErrorIs(t, err, omifile.ErrBadSignature)
}

func TestFiles_LoadMissing(t *testing.T) {
	_, err := Default().Load(context.Background(), filepath.Join(t.TempDir(), "missing.omi"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLossy(t *testing.T) {
	withComments := omidoc.Snapshot{Comments: []string{"c"}}

	assert.True(t, Lossy(Strfile, withComments))
	assert.False(t, Lossy(Omikuji, withComments))
	assert.False(t, Lossy(Strfile, omidoc.Snapshot{Fortunes: []string{"f"}}))
}

func TestDigestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	d, err := DigestFile(path)
	require.NoError(t, err)
	assert.Equal(t, Digest([]byte("abc")), d)
	assert.NotEqual(t, Digest([]byte("abd")), d)
}
