package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"chroninotes/internal/domain"
)

// DefaultProbeLimit caps the numeric suffixes tried for one name
const DefaultProbeLimit = 10000

// Allocator picks collision-free names inside a directory.
//
// The check and the later create are not atomic: two processes allocating in
// the same directory can still collide. Repository serializes its own callers.
type Allocator struct {
	limit int
}

// NewAllocator creates an allocator that gives up after limit suffixes
func NewAllocator(limit int) *Allocator {
	if limit <= 0 {
		limit = DefaultProbeLimit
	}
	return &Allocator{limit: limit}
}

// Allocate returns base+ext, or base-N+ext for the smallest free N.
// A stem counts as taken when either the bare name or the note file exists,
// so a folder and a note never end up sharing an id.
func (a *Allocator) Allocate(dir, base, ext string) (string, error) {
	for n := 0; n <= a.limit; n++ {
		stem := base
		if n > 0 {
			stem = fmt.Sprintf("%s-%d", base, n)
		}

		taken, err := occupied(dir, stem)
		if err != nil {
			return "", err
		}
		if !taken {
			return stem + ext, nil
		}
	}

	return "", &domain.StorageError{
		Kind: domain.ErrAllocationExhausted,
		Path: filepath.Join(dir, base),
	}
}

func occupied(dir, stem string) (bool, error) {
	for _, name := range []string{stem, stem + domain.NoteExt} {
		path := filepath.Join(dir, name)
		_, err := os.Lstat(path)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false, domain.IOError(path, err)
		}
	}
	return false, nil
}
