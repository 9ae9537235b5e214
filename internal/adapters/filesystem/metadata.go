package filesystem

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chroninotes/internal/domain"
)

// MetadataStore reads and writes note files and folder sidecars.
// Writes go through a temp file in the target directory and a rename,
// so a concurrent scan sees either the old or the new file.
type MetadataStore struct{}

// NewMetadataStore creates a new metadata store
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{}
}

// ReadNote parses the note file at path.
// A parse failure is reported as domain.ErrCorruptMetadata.
func (s *MetadataStore) ReadNote(path string) (*domain.NoteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.IOError(path, err)
	}

	if !isObject(data) {
		return nil, domain.CorruptError(path, errNotObject)
	}
	var note domain.NoteFile
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, domain.CorruptError(path, err)
	}

	content, err := compactContent(note.Content)
	if err != nil {
		return nil, domain.CorruptError(path, err)
	}
	note.Content = content

	return &note, nil
}

// WriteNote stores note at path
func (s *MetadataStore) WriteNote(path string, note *domain.NoteFile) error {
	return writeJSON(path, note)
}

// ReadFolderMeta reads the sidecar of the folder at dir.
// A missing sidecar yields an empty FolderMeta.
func (s *MetadataStore) ReadFolderMeta(dir string) (*domain.FolderMeta, error) {
	path := filepath.Join(dir, domain.FolderMetaName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.FolderMeta{}, nil
	}
	if err != nil {
		return nil, domain.IOError(path, err)
	}

	if !isObject(data) {
		return nil, domain.CorruptError(path, errNotObject)
	}
	var meta domain.FolderMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, domain.CorruptError(path, err)
	}
	return &meta, nil
}

// WriteFolderMeta stores the sidecar of the folder at dir
func (s *MetadataStore) WriteFolderMeta(dir string, meta *domain.FolderMeta) error {
	return writeJSON(filepath.Join(dir, domain.FolderMetaName), meta)
}

var errNotObject = errors.New("top-level value is not a JSON object")

func isObject(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// compactContent normalizes stored content so reads are byte-stable.
// JSON null becomes nil.
func compactContent(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	if buf.String() == "null" {
		return nil, nil
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.IOError(path, err)
	}

	// dot prefix keeps the temp file out of scans
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		os.Remove(tmp)
		return domain.IOError(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return domain.IOError(path, err)
	}
	return nil
}
