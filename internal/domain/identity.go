package domain

import (
	"path/filepath"
	"strings"
)

// ToID derives the id of an entry from its location under root.
// The id is the root-relative path using "/" as separator.
func ToID(absPath, root string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(absPath))
	if err != nil {
		return "", &StorageError{Kind: ErrInvalidPath, Path: absPath, Err: err}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &StorageError{Kind: ErrInvalidPath, Path: absPath}
	}
	return filepath.ToSlash(rel), nil
}

// ParentID returns the id of the containing folder.
// ok is false for root-level ids.
func ParentID(id string) (parent string, ok bool) {
	i := strings.LastIndex(id, "/")
	if i < 0 {
		return "", false
	}
	return id[:i], true
}

// ParentRef is ParentID in the nullable form used by Entry
func ParentRef(id string) *string {
	parent, ok := ParentID(id)
	if !ok {
		return nil
	}
	return &parent
}

// BaseName returns the last segment of an id
func BaseName(id string) string {
	return id[strings.LastIndex(id, "/")+1:]
}
