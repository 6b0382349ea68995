package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrInvalidUpload rejects an upload before anything is written: missing
// file part, empty filename, or an extension outside the allow-list.
var ErrInvalidUpload = errors.New("images: invalid upload")

// Only these extensions are accepted, matched case-insensitively on the
// suffix after the last dot.
var allowedExt = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// Upload is a file received from a form, not yet stored under its final
// key. Name is the client-provided filename; only its extension is used.
type Upload struct {
	File io.Reader
	Name string
}

// Ext validates name and returns its lowercased extension without the dot.
func Ext(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", ErrInvalidUpload)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: extension %q not allowed", ErrInvalidUpload, ext)
	}
	return ext, nil
}

// Store keeps uploaded images under flat keys like "3-7.png". Keys are
// derived from row ids after the insert, so a key is written at most once.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
