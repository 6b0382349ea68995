package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Dir stores images as plain files under a root directory. This is the
// default driver; the router serves the directory at /uploads/.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("images: create %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory the store writes into.
func (d *Dir) Root() string { return d.root }

func (d *Dir) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("images: bad key %q", key)
	}
	return filepath.Join(d.root, key), nil
}

func (d *Dir) Put(ctx context.Context, key string, r io.Reader) error {
	dst, err := d.path(key)
	if err != nil {
		return err
	}
	// Spool through a temp name so a failed copy never leaves a partial
	// file under the final key.
	tmp := filepath.Join(d.root, "."+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

func (d *Dir) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (d *Dir) Delete(ctx context.Context, key string) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
