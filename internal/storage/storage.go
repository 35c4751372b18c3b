// Package storage holds user avatars and exported plan workbooks in object storage.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// DefaultPresignedURLExpiry applies when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrObjectNotFound is returned by backends that report deletes of missing keys.
var ErrObjectNotFound = errors.New("object not found in storage")

// FileStorage is the object store behind avatar uploads and workbook sharing.
type FileStorage interface {
	// GeneratePresignedUploadURL returns a URL the client can PUT the object to directly.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
	// GeneratePresignedDownloadURL returns a time-limited GET URL.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	PutObject(ctx context.Context, objectKey string, contentType string, body io.Reader, size int64) error
	DeleteObject(ctx context.Context, objectKey string) error
}
