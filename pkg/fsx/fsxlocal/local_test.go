package fsxlocal

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Abraxas-365/peoplehub/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystem_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewLocalFileSystem(t.TempDir())

	path := fs.Join("resumes", "u1", "cv.pdf")
	require.NoError(t, fs.WriteFile(ctx, path, []byte("hello")))

	ok, err := fs.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := fs.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, fs.WriteFileStream(ctx, path, strings.NewReader("again")))
	rc, err := fs.ReadFileStream(ctx, path)
	require.NoError(t, err)
	streamed, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "again", string(streamed))

	require.NoError(t, fs.DeleteFile(ctx, path))
	require.NoError(t, fs.DeleteFile(ctx, path))

	_, err = fs.ReadFile(ctx, path)
	assert.ErrorIs(t, err, fsx.ErrNotExist)
}

func TestLocalFileSystem_RejectsEscape(t *testing.T) {
	fs := NewLocalFileSystem(t.TempDir())

	err := fs.WriteFile(context.Background(), "../outside.txt", []byte("x"))
	assert.Error(t, err)
}
