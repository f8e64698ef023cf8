package storage

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

// FileTokenStore keeps every entry in one file sealed with secretbox under a
// key derived from a passphrase with Argon2id. Layout: salt | nonce | box.
type FileTokenStore struct {
	path       string
	passphrase []byte

	mu sync.Mutex
}

func NewFileTokenStore(path, passphrase string) *FileTokenStore {
	return &FileTokenStore{path: path, passphrase: []byte(passphrase)}
}

func (s *FileTokenStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.store(entries)
}

func (s *FileTokenStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return v, nil
}

// Delete is a no-op for a missing key.
func (s *FileTokenStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.store(entries)
}

func (s *FileTokenStore) load() (map[string][]byte, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]byte{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) < saltSize+nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("token file %s is truncated", s.path)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[saltSize:saltSize+nonceSize])
	key := s.deriveKey(raw[:saltSize])
	plain, ok := secretbox.Open(nil, raw[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrBadPassphrase
	}

	entries := map[string][]byte{}
	if err := json.Unmarshal(plain, &entries); err != nil {
		return nil, fmt.Errorf("token file %s: %w", s.path, err)
	}
	return entries, nil
}

// store writes a fresh salt and nonce on every save, through a temp file and rename.
func (s *FileTokenStore) store(entries map[string][]byte) error {
	plain, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	header := make([]byte, saltSize+nonceSize)
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], header[saltSize:])
	sealed := secretbox.Seal(header, plain, &nonce, s.deriveKey(header[:saltSize]))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileTokenStore) deriveKey(salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey(s.passphrase, salt, 1, 64*1024, 4, keySize))
	return &key
}

// MemoryTokenStore is a TokenStore that forgets everything on exit.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: map[string][]byte{}}
}

func (s *MemoryTokenStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryTokenStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryTokenStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
