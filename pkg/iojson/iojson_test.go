package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"fortunes": 2})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"fortunes\": 2\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, func() {})
	require.NoError(t, err)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestFileReader_Read(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "entries.json")
		require.NoError(t, os.WriteFile(path, []byte(`["a","b"]`), 0o644))

		fr := &FileReader[[]string]{fileFlagValue: path}
		got, err := fr.Read(strings.NewReader("ignored"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("stdin", func(t *testing.T) {
		fr := &FileReader[[]string]{fileFlagValue: "-"}
		got, err := fr.Read(strings.NewReader(`["x"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, got)
	})

	t.Run("bad json", func(t *testing.T) {
		fr := &FileReader[[]string]{fileFlagValue: "-"}
		_, err := fr.Read(strings.NewReader(`{`))
		assert.ErrorContains(t, err, "decode JSON")
	})
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteError(&buf, "open failed", map[string]any{"path": "a.omi"}))
	assert.Contains(t, buf.String(), `"message": "open failed"`)
	assert.Contains(t, buf.String(), `"path": "a.omi"`)
}
