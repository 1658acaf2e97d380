// Package storage holds document bytes in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// PresignTTL is how long download links stay valid.
const PresignTTL = 15 * time.Minute

// ErrObjectNotFound is returned when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the subset of object storage the document flow needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}
