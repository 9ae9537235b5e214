package domain

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestStorageError_MatchesKindAndCause(t *testing.T) {
	err := IOError("/notes/a.json", fs.ErrPermission)

	if !errors.Is(err, ErrIO) {
		t.Error("expected errors.Is(err, ErrIO)")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is(err, fs.ErrPermission)")
	}
	if errors.Is(err, ErrCorruptMetadata) {
		t.Error("did not expect ErrCorruptMetadata")
	}

	var se *StorageError
	if !errors.As(err, &se) || se.Path != "/notes/a.json" {
		t.Errorf("expected StorageError with path, got %v", err)
	}
	if !strings.Contains(err.Error(), "/notes/a.json") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
}

func TestStorageError_WithoutCause(t *testing.T) {
	err := &StorageError{Kind: ErrInvalidPath, Path: "../x"}

	if !errors.Is(err, ErrInvalidPath) {
		t.Error("expected errors.Is(err, ErrInvalidPath)")
	}
	if err.Error() != "invalid path: ../x" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
