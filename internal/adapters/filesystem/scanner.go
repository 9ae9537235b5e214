package filesystem

import (
	"cmp"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"chroninotes/internal/domain"
)

// Scanner walks a notes root and derives entries from the files it finds
type Scanner struct {
	meta   *MetadataStore
	logger *zap.Logger
}

// NewScanner creates a scanner reading sidecars through meta
func NewScanner(meta *MetadataStore, logger *zap.Logger) *Scanner {
	return &Scanner{meta: meta, logger: logger}
}

// Scan lists every folder and note under root, depth-first.
// A missing root yields an empty listing. Unreadable subtrees and
// malformed notes are logged and left out instead of failing the scan.
// Listed notes carry no content.
func (s *Scanner) Scan(root string) ([]domain.Entry, *domain.ScanStats, error) {
	start := time.Now()
	stats := &domain.ScanStats{}
	entries := make([]domain.Entry, 0)

	err := s.scanDir(root, root, &entries, stats)
	stats.Duration = time.Since(start)

	if errors.Is(err, fs.ErrNotExist) {
		return entries, stats, nil
	}
	if err != nil {
		return nil, stats, domain.IOError(root, err)
	}
	return entries, stats, nil
}

func (s *Scanner) scanDir(dir, root string, out *[]domain.Entry, stats *domain.ScanStats) error {
	items, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	folders := make(map[string]bool)
	for _, item := range items {
		if item.IsDir() && !hidden(item.Name()) {
			folders[item.Name()] = true
		}
	}

	for _, item := range items {
		name := item.Name()
		if hidden(name) {
			continue
		}
		path := filepath.Join(dir, name)

		switch {
		case item.IsDir():
			info, err := item.Info()
			if err != nil {
				s.logger.Debug("folder vanished during scan", zap.String("path", path))
				continue
			}
			id, err := domain.ToID(path, root)
			if err != nil {
				continue
			}

			meta, err := s.meta.ReadFolderMeta(path)
			if err != nil {
				s.logger.Warn("unreadable folder metadata", zap.String("path", path), zap.Error(err))
				meta = &domain.FolderMeta{}
			}
			*out = append(*out, folderEntry(id, name, meta, info))
			stats.Folders++

			if err := s.scanDir(path, root, out, stats); err != nil {
				s.logger.Warn("skipping unreadable folder", zap.String("path", path), zap.Error(err))
				stats.Skipped++
			}

		case item.Type().IsRegular() && domain.IsNoteFileName(name):
			stem := domain.NoteBaseName(name)
			if folders[stem] {
				s.logger.Warn("note shadowed by folder of the same name", zap.String("path", path))
				stats.Skipped++
				continue
			}

			note, err := s.meta.ReadNote(path)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					s.logger.Warn("skipping malformed note", zap.String("path", path), zap.Error(err))
					stats.Skipped++
				}
				continue
			}
			info, err := item.Info()
			if err != nil {
				continue
			}
			id, err := domain.ToID(filepath.Join(dir, stem), root)
			if err != nil {
				continue
			}

			e := noteEntry(id, stem, note, info)
			e.Content = nil
			*out = append(*out, e)
			stats.Notes++
		}
	}

	return nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// folderEntry fills missing sidecar fields from the directory itself
func folderEntry(id, name string, meta *domain.FolderMeta, info fs.FileInfo) domain.Entry {
	mtime := domain.Timestamp(info.ModTime())
	return domain.Entry{
		ID:        id,
		Title:     cmp.Or(meta.Title, name),
		Icon:      cmp.Or(meta.Icon, domain.DefaultFolderIcon),
		IsFolder:  true,
		ParentID:  domain.ParentRef(id),
		CreatedAt: cmp.Or(meta.CreatedAt, mtime),
		UpdatedAt: cmp.Or(meta.UpdatedAt, mtime),
	}
}

// noteEntry fills missing note fields from the file itself
func noteEntry(id, stem string, note *domain.NoteFile, info fs.FileInfo) domain.Entry {
	mtime := domain.Timestamp(info.ModTime())
	return domain.Entry{
		ID:        id,
		Title:     cmp.Or(note.Title, stem),
		Icon:      cmp.Or(note.Icon, domain.DefaultNoteIcon),
		ParentID:  domain.ParentRef(id),
		Content:   note.Content,
		CreatedAt: cmp.Or(note.CreatedAt, mtime),
		UpdatedAt: cmp.Or(note.UpdatedAt, mtime),
	}
}
