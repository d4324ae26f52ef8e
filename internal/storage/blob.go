package storage

import (
	"context"
	"errors"
	"io"
)

var ErrBadKey = errors.New("storage: bad key")

// BlobStore keeps exported report files.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
