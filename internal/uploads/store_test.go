package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"cat.png":            "cat.png",
		"../../etc/passwd":   "passwd",
		"my photo (1).png":   "my_photo__1_.png",
		"snake_case-ok.jpeg": "snake_case-ok.jpeg",
		"...":                "upload",
		"":                   "upload",
	}

	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestSaveWritesUnderGeneratedName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	data := []byte("not really a png")
	name, err := store.Save("cat.png", data)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, "_cat.png"), "got %q", name)
	assert.NotContains(t, name, string(os.PathSeparator))

	got, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSaveAvoidsCollisions(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("cat.png", []byte("one"))
	require.NoError(t, err)
	second, err := store.Save("cat.png", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
