package filestore

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "marks.csv", Sanitize("marks.csv"))
	assert.Equal(t, "marks.csv", Sanitize("../../etc/marks.csv"))
	assert.Equal(t, "marks.csv", Sanitize("/tmp/marks.csv"))
	assert.Equal(t, "marks.csv", Sanitize("C:\\uploads\\marks.csv"))
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "", Sanitize("."))
}

func TestSaveStatRemove(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	n, err := store.Save("marks.csv", strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	info, err := store.Stat("marks.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size())

	f, err := store.Open("marks.csv")
	require.NoError(t, err)
	f.Close()

	require.NoError(t, store.Remove("marks.csv"))
	_, err = store.Stat("marks.csv")
	assert.True(t, os.IsNotExist(err))

	// Removing again is a no-op.
	assert.NoError(t, store.Remove("marks.csv"))
}

func TestSaveOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("marks.csv", strings.NewReader("first version"))
	require.NoError(t, err)
	_, err = store.Save("marks.csv", strings.NewReader("v2"))
	require.NoError(t, err)

	info, err := store.Stat("marks.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size())
}
