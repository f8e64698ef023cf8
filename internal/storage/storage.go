package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// PutObject uploads body under objectKey, replacing any previous object.
	PutObject(ctx context.Context, objectKey, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// TokenStore keeps small secrets (tokens, the current user) between runs.
type TokenStore interface {
	Save(key string, value []byte) error
	// Get returns ErrTokenNotFound when nothing is stored under key.
	Get(key string) ([]byte, error)
	Delete(key string) error
}

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrBadPassphrase = errors.New("token file cannot be decrypted with this passphrase")
)
