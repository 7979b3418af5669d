package storage

import (
	"context"
	"io"
)

// Uploader stores an object and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader, size int64) (url string, err error)
}

// Deleter removes a stored object. Deleting an absent object is not an error.
type Deleter interface {
	Delete(ctx context.Context, objectName string) error
}

type Store interface {
	Uploader
	Deleter
}
