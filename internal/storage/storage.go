// Package storage abstracts the blob store holding submitted screenshots.
package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ErrKeyExists is returned by Put when the key is already taken. Keys are
// generated collision-resistant, so hitting this indicates a replayed upload.
var ErrKeyExists = errors.New("storage key already exists")

// ErrBlobNotFound is returned when a key has no stored blob.
var ErrBlobNotFound = errors.New("blob not found")

// Object describes a stored blob, as returned by List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// BlobStore is the minimal blob interface the intake pipeline and the
// moderation surface need. Put must be non-overwriting.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	PublicURL(key string) string
}

// KeyPrefix is the prefix under which all submission blobs live.
const KeyPrefix = "submissions/"

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewKey generates a collision-resistant storage key: millisecond timestamp
// prefix, 7 random base36 characters, and the original file extension.
func NewKey(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "jpg"
	}

	suffix := make([]byte, 7)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(fmt.Sprintf("storage: random key generation failed: %v", err))
		}
		suffix[i] = base36[n.Int64()]
	}

	return fmt.Sprintf("%s%d-%s.%s", KeyPrefix, time.Now().UnixMilli(), suffix, ext)
}
