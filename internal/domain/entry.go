package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

const (
	// NoteExt is the extension of a note file on disk
	NoteExt = ".json"

	// FolderMetaName is the reserved sidecar inside a folder. It is never a note.
	FolderMetaName = "_folder.json"

	DefaultNoteIcon    = "◉"
	DefaultFolderIcon  = "◈"
	DefaultNoteTitle   = "Untitled"
	DefaultFolderTitle = "New Folder"

	// TimeLayout matches the ISO-8601 form written into sidecars
	TimeLayout = "2006-01-02T15:04:05.000Z"
)

// EmptyDocument is the content of a freshly created note
var EmptyDocument = json.RawMessage(`{"type":"doc","content":[]}`)

// Entry is a logical note or folder
type Entry struct {
	ID        string          `json:"id"`                 // e.g., "Projects/roadmap"
	Title     string          `json:"title"`
	Icon      string          `json:"icon"`
	IsFolder  bool            `json:"isFolder"`
	ParentID  *string         `json:"parentId"`           // nil for root-level entries
	Content   json.RawMessage `json:"content"`            // nil except on single-note reads
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
	Children  []Entry         `json:"children,omitempty"` // only set by Nest
}

// NoteFile is the on-disk form of a note
type NoteFile struct {
	Title     string          `json:"title"`
	Icon      string          `json:"icon"`
	Content   json.RawMessage `json:"content"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// FolderMeta is the on-disk form of a folder sidecar. Every field is optional.
type FolderMeta struct {
	Title     string `json:"title,omitempty"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Patch carries the fields of an update. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Icon    *string
	Content json.RawMessage
}

// IsEmpty reports whether the patch sets no field
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Icon == nil && len(p.Content) == 0
}

// Timestamp formats t the way sidecars store it
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// IsNoteFileName reports whether a file name is interpreted as a note
func IsNoteFileName(name string) bool {
	return strings.HasSuffix(name, NoteExt) && name != FolderMetaName && !strings.HasPrefix(name, ".")
}

// NoteBaseName strips the note extension from a file name
func NoteBaseName(name string) string {
	return strings.TrimSuffix(name, NoteExt)
}

// SortByID sorts entries by ID in ascending order
func SortByID(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
}
