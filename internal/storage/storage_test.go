package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/config"
)

func TestTokenStores(t *testing.T) {
	stores := map[string]TokenStore{
		"memory": NewMemoryTokenStore(),
		"file":   NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "tokens"), "s3cret"),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get("access_token"); !errors.Is(err, ErrTokenNotFound) {
				t.Errorf("Expected ErrTokenNotFound on empty store, got %v", err)
			}
			if err := store.Save("access_token", []byte("abc")); err != nil {
				t.Fatalf("Save error = %v", err)
			}
			if err := store.Save("refresh_token", []byte("def")); err != nil {
				t.Fatalf("Save error = %v", err)
			}
			if v, err := store.Get("access_token"); err != nil || string(v) != "abc" {
				t.Errorf("Get = %q, %v", v, err)
			}
			if err := store.Delete("access_token"); err != nil {
				t.Fatalf("Delete error = %v", err)
			}
			if err := store.Delete("access_token"); err != nil {
				t.Errorf("Deleting a missing key should succeed, got %v", err)
			}
			if _, err := store.Get("access_token"); !errors.Is(err, ErrTokenNotFound) {
				t.Errorf("Expected ErrTokenNotFound after delete, got %v", err)
			}
			if v, _ := store.Get("refresh_token"); string(v) != "def" {
				t.Errorf("Other keys must survive a delete, got %q", v)
			}
		})
	}
}

func TestFileTokenStoreIsEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens")
	if err := NewFileTokenStore(path, "s3cret").Save("access_token", []byte("eyJhbGciOi")); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte("eyJhbGciOi")) || bytes.Contains(raw, []byte("access_token")) {
		t.Error("Token file must not contain plaintext")
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}

	// a second instance with the same passphrase reads it back
	if v, err := NewFileTokenStore(path, "s3cret").Get("access_token"); err != nil || string(v) != "eyJhbGciOi" {
		t.Errorf("Get = %q, %v", v, err)
	}
	if _, err := NewFileTokenStore(path, "wrong").Get("access_token"); !errors.Is(err, ErrBadPassphrase) {
		t.Errorf("Expected ErrBadPassphrase, got %v", err)
	}
}

func TestFileTokenStoreTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens")
	if err := os.WriteFile(path, []byte("short"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileTokenStore(path, "x").Get("k")
	if err == nil || !strings.Contains(err.Error(), "truncated") {
		t.Errorf("Expected truncation error, got %v", err)
	}
}

func TestS3PresignWithCustomEndpoint(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "learntrack",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewS3Storage error = %v", err)
	}

	// presigning is local, no request reaches the endpoint
	url, err := fs.GeneratePresignedDownloadURL(context.Background(), "shares/sessions/1/a.txt", time.Hour)
	if err != nil {
		t.Fatalf("Presign error = %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9000/learntrack/shares/sessions/1/a.txt?") || !strings.Contains(url, "X-Amz-Expires=3600") {
		t.Errorf("Unexpected presigned URL %s", url)
	}
}
