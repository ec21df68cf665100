package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

func TestNewKey(t *testing.T) {
	pattern := regexp.MustCompile(`^submissions/\d{13,}-[0-9a-z]{7}\.[a-z0-9]+$`)

	tests := []struct {
		name    string
		ext     string
		wantExt string
	}{
		{"plain extension", "png", ".png"},
		{"dotted extension", ".webp", ".webp"},
		{"uppercase extension", "JPG", ".jpg"},
		{"empty extension defaults to jpg", "", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(tt.ext)
			if !pattern.MatchString(key) {
				t.Errorf("NewKey(%q) = %q, does not match expected shape", tt.ext, key)
			}
			if got := key[len(key)-len(tt.wantExt):]; got != tt.wantExt {
				t.Errorf("NewKey(%q) ends in %q, want %q", tt.ext, got, tt.wantExt)
			}
		})
	}
}

func TestNewKey_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key := NewKey("jpg")
		if seen[key] {
			t.Fatalf("duplicate key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestMemoryStore_PutRejectsOverwrite(t *testing.T) {
	store := NewMemoryStore("http://localhost/blobs")
	ctx := context.Background()

	if err := store.Put(ctx, "submissions/a.jpg", []byte("one"), "image/jpeg"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "submissions/a.jpg", []byte("two"), "image/jpeg"); !errors.Is(err, ErrKeyExists) {
		t.Errorf("expected ErrKeyExists on overwrite, got %v", err)
	}
}

func TestMemoryStore_DeleteAndList(t *testing.T) {
	store := NewMemoryStore("http://localhost/blobs")
	ctx := context.Background()

	store.Put(ctx, "submissions/a.jpg", []byte("a"), "image/jpeg")
	store.Put(ctx, "submissions/b.png", []byte("b"), "image/png")
	store.Put(ctx, "other/c.jpg", []byte("c"), "image/jpeg")

	objects, err := store.List(ctx, "submissions/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects under submissions/, got %d", len(objects))
	}

	if err := store.Delete(ctx, "submissions/a.jpg"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if store.Has("submissions/a.jpg") {
		t.Error("expected blob gone after delete")
	}

	// Deleting an absent key mirrors S3: no error.
	if err := store.Delete(ctx, "submissions/a.jpg"); err != nil {
		t.Errorf("Delete() of absent key returned error: %v", err)
	}
}

func TestMemoryStore_PublicURL(t *testing.T) {
	store := NewMemoryStore("http://localhost/blobs/")
	if got := store.PublicURL("submissions/a.jpg"); got != "http://localhost/blobs/submissions/a.jpg" {
		t.Errorf("PublicURL() = %q", got)
	}
}
