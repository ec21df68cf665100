package jobs

import (
	"context"
	"log"
	"time"

	"badtakes/internal/storage"
)

// PathLister reports the image paths currently referenced by the database.
type PathLister interface {
	ListImagePaths(ctx context.Context) (map[string]struct{}, error)
}

// Sweeper removes uploaded blobs that no submission row references.
// Orphans appear when an upload succeeds but the matching insert fails
// and its compensating delete also fails.
type Sweeper struct {
	db       PathLister
	blobs    storage.BlobStore
	interval time.Duration
	minAge   time.Duration
}

// NewSweeper creates a new orphan blob sweeper. Blobs younger than minAge
// are never touched so an upload in flight cannot be swept between its
// Put and the database insert.
func NewSweeper(database PathLister, blobs storage.BlobStore, interval, minAge time.Duration) *Sweeper {
	return &Sweeper{
		db:       database,
		blobs:    blobs,
		interval: interval,
		minAge:   minAge,
	}
}

// Start begins the background sweep loop.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("Orphan sweeper started (interval: %v, minAge: %v)", s.interval, s.minAge)

	// Run immediately on start
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Orphan sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns the number of blobs deleted.
func (s *Sweeper) Sweep(ctx context.Context) int {
	referenced, err := s.db.ListImagePaths(ctx)
	if err != nil {
		log.Printf("Orphan sweeper: failed to list image paths: %v", err)
		return 0
	}

	objects, err := s.blobs.List(ctx, storage.KeyPrefix)
	if err != nil {
		log.Printf("Orphan sweeper: failed to list blobs: %v", err)
		return 0
	}

	cutoff := time.Now().Add(-s.minAge)
	deleted := 0

	for _, obj := range objects {
		select {
		case <-ctx.Done():
			return deleted
		default:
		}

		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}

		if err := s.blobs.Delete(ctx, obj.Key); err != nil {
			log.Printf("Orphan sweeper: failed to delete %s: %v", obj.Key, err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		log.Printf("Orphan sweeper: removed %d orphaned blobs", deleted)
	}

	return deleted
}
