// Package fsutil reads documents and writes rendered output for blocksel.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrIsDirectory indicates the path is a directory, not a file.
var ErrIsDirectory = errors.New("path is a directory")

// ReadFile reads the document at path. Failures keep the underlying
// *fs.PathError reachable through errors.As.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: ErrIsDirectory}
	}

	return os.ReadFile(path)
}
