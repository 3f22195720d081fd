// Package fsx abstracts the file storage used for uploaded documents.
package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when a path has no file behind it
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader reads stored files
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores files
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

// FileSystem is the full storage abstraction
type FileSystem interface {
	FileReader
	FileWriter

	DeleteFile(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	Join(elem ...string) string
}
