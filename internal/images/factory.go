package images

import (
	"context"
	"fmt"
)

// Options selects and configures an image store driver.
type Options struct {
	Driver string // dir|s3|memory (default dir)
	Dir    string // driver=dir: directory root
	Bucket string // driver=s3
	Prefix string // driver=s3: optional key prefix
}

// Open constructs the configured Store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "dir":
		return NewDir(opts.Dir)
	case "s3":
		return NewS3(ctx, S3ConfigFromEnv(opts.Bucket, opts.Prefix))
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("images: unknown driver %q", opts.Driver)
	}
}
