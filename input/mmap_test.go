package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	content := "city,product,price\nA,X,1.50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(m.Bytes()))
	assert.Equal(t, len(content), m.Len())
	assert.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, m.Bytes())
	assert.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}
