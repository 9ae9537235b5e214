package filesystem

import (
	"cmp"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chroninotes/internal/domain"
	"chroninotes/internal/metrics"
)

// Repository implements ports.NotesRepository using the filesystem.
// All state lives on disk; every List is a fresh scan.
type Repository struct {
	root    string
	alloc   *Allocator
	meta    *MetadataStore
	scanner *Scanner
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	// mu serializes mutations so the allocator probe cannot race with
	// another create from this process
	mu sync.Mutex
}

// Option configures a Repository
type Option func(*Repository)

// WithLogger sets the logger used for scan warnings and mutations
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records operation outcomes into m
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) {
		r.metrics = m
	}
}

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithProbeLimit overrides the allocator's suffix limit
func WithProbeLimit(limit int) Option {
	return func(r *Repository) {
		r.alloc = NewAllocator(limit)
	}
}

// NewRepository creates a new filesystem repository rooted at root
func NewRepository(root string, opts ...Option) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	r := &Repository{
		root:   filepath.Clean(root),
		alloc:  NewAllocator(DefaultProbeLimit),
		meta:   NewMetadataStore(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.scanner = NewScanner(r.meta, r.logger)
	return r
}

// List returns every folder and note under the root
func (r *Repository) List() (entries []domain.Entry, err error) {
	defer r.observe("list", time.Now(), &err)

	entries, stats, err := r.scanner.Scan(r.root)
	r.metrics.ObserveScan(stats)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("scan complete",
		zap.Int("folders", stats.Folders),
		zap.Int("notes", stats.Notes),
		zap.Int("skipped", stats.Skipped),
		zap.Duration("duration", stats.Duration),
	)
	return entries, nil
}

// Get returns the entry with the given id, or nil if it does not exist.
// Notes are returned with their content.
func (r *Repository) Get(id string) (entry *domain.Entry, err error) {
	defer r.observe("get", time.Now(), &err)

	loc, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	switch loc.kind {
	case kindFolder:
		return r.readFolder(loc)
	case kindNote:
		return r.readNote(loc)
	default:
		return nil, nil
	}
}

// Create writes a new empty note under parentID.
// An empty parentID creates the note at the root.
func (r *Repository) Create(parentID, title, icon string) (entry *domain.Entry, err error) {
	defer r.observe("create", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	title = cmp.Or(title, domain.DefaultNoteTitle)
	icon = cmp.Or(icon, domain.DefaultNoteIcon)

	dir, err := r.targetDir(parentID)
	if err != nil {
		return nil, err
	}

	name, err := r.alloc.Allocate(dir, domain.Slugify(title), domain.NoteExt)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)

	now := domain.Timestamp(r.now())
	note := &domain.NoteFile{
		Title:     title,
		Icon:      icon,
		Content:   domain.EmptyDocument,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.meta.WriteNote(path, note); err != nil {
		return nil, err
	}

	id, err := domain.ToID(strings.TrimSuffix(path, domain.NoteExt), r.root)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("note created", zap.String("id", id))

	return &domain.Entry{
		ID:        id,
		Title:     note.Title,
		Icon:      note.Icon,
		ParentID:  domain.ParentRef(id),
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

// CreateFolder makes a new directory with a sidecar under parentID
func (r *Repository) CreateFolder(parentID, title, icon string) (entry *domain.Entry, err error) {
	defer r.observe("create_folder", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	title = cmp.Or(title, domain.DefaultFolderTitle)
	icon = cmp.Or(icon, domain.DefaultFolderIcon)

	dir, err := r.targetDir(parentID)
	if err != nil {
		return nil, err
	}

	name, err := r.alloc.Allocate(dir, domain.Slugify(title), "")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)

	if err := os.Mkdir(path, 0755); err != nil {
		return nil, domain.IOError(path, err)
	}

	now := domain.Timestamp(r.now())
	meta := &domain.FolderMeta{
		Title:     title,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.meta.WriteFolderMeta(path, meta); err != nil {
		// Rollback: remove the directory
		os.RemoveAll(path)
		return nil, err
	}

	id, err := domain.ToID(path, r.root)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("folder created", zap.String("id", id))

	return &domain.Entry{
		ID:        id,
		Title:     meta.Title,
		Icon:      meta.Icon,
		IsFolder:  true,
		ParentID:  domain.ParentRef(id),
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}, nil
}

// Update applies patch to the entry with the given id and stamps updatedAt.
// It returns nil if the id does not exist. The on-disk name never changes.
// Content is ignored for folders.
func (r *Repository) Update(id string, patch domain.Patch) (entry *domain.Entry, err error) {
	defer r.observe("update", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	loc, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	now := domain.Timestamp(r.now())

	switch loc.kind {
	case kindFolder:
		meta, err := r.meta.ReadFolderMeta(loc.path)
		if err != nil {
			return nil, err
		}
		if patch.Title != nil {
			meta.Title = *patch.Title
		}
		if patch.Icon != nil {
			meta.Icon = *patch.Icon
		}
		meta.UpdatedAt = now
		if err := r.meta.WriteFolderMeta(loc.path, meta); err != nil {
			return nil, err
		}

		r.logger.Debug("folder updated", zap.String("id", loc.id))
		return r.readFolder(loc)

	case kindNote:
		note, err := r.meta.ReadNote(loc.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if patch.Title != nil {
			note.Title = *patch.Title
		}
		if patch.Icon != nil {
			note.Icon = *patch.Icon
		}
		if len(patch.Content) > 0 {
			content, err := compactContent(patch.Content)
			if err != nil {
				return nil, domain.CorruptError(loc.path, err)
			}
			note.Content = content
		}
		note.UpdatedAt = now
		if err := r.meta.WriteNote(loc.path, note); err != nil {
			return nil, err
		}

		r.logger.Debug("note updated", zap.String("id", loc.id))
		return r.readNote(loc)

	default:
		return nil, nil
	}
}

// Delete removes the entry with the given id. Folders are removed with
// all their descendants. A missing id is not an error.
func (r *Repository) Delete(id string) (err error) {
	defer r.observe("delete", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	loc, err := r.resolve(id)
	if err != nil {
		return err
	}

	switch loc.kind {
	case kindFolder:
		if err := os.RemoveAll(loc.path); err != nil {
			return domain.IOError(loc.path, err)
		}
	case kindNote:
		if err := os.Remove(loc.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.IOError(loc.path, err)
		}
	default:
		return nil
	}

	r.logger.Debug("entry deleted", zap.String("id", loc.id), zap.Bool("folder", loc.kind == kindFolder))
	return nil
}

// Root returns the notes root, creating it if missing
func (r *Repository) Root() (string, error) {
	if err := os.MkdirAll(r.root, 0755); err != nil {
		return "", domain.IOError(r.root, err)
	}
	return r.root, nil
}

// Path returns the on-disk location of an entry: the directory of a folder
// or the file of a note. A missing id yields an fs.ErrNotExist error.
func (r *Repository) Path(id string) (string, error) {
	loc, err := r.resolve(id)
	if err != nil {
		return "", err
	}
	if loc.kind == kindNone {
		return "", &domain.StorageError{Kind: fs.ErrNotExist, Path: id}
	}
	return loc.path, nil
}

type entryKind int

const (
	kindNone entryKind = iota
	kindFolder
	kindNote
)

// location is an id resolved against the disk
type location struct {
	id   string // canonical id
	path string // directory for folders, note file for notes
	kind entryKind
}

// resolve maps an id to what currently exists on disk.
// Empty ids, hidden segments and the reserved sidecar never resolve.
// An id escaping the root is an ErrInvalidPath.
func (r *Repository) resolve(id string) (location, error) {
	if id == "" {
		return location{}, nil
	}

	base := filepath.Join(r.root, filepath.FromSlash(id))
	if base == r.root {
		return location{}, nil
	}
	canonical, err := domain.ToID(base, r.root)
	if err != nil {
		return location{}, err
	}
	for _, segment := range strings.Split(canonical, "/") {
		if hidden(segment) {
			return location{}, nil
		}
	}

	info, err := os.Lstat(base)
	switch {
	case err == nil && info.IsDir():
		return location{id: canonical, path: base, kind: kindFolder}, nil
	case err != nil && !notExist(err):
		return location{}, domain.IOError(base, err)
	}

	notePath := base + domain.NoteExt
	if !domain.IsNoteFileName(filepath.Base(notePath)) {
		return location{}, nil
	}
	info, err = os.Lstat(notePath)
	switch {
	case err == nil && info.Mode().IsRegular():
		return location{id: canonical, path: notePath, kind: kindNote}, nil
	case err != nil && !notExist(err):
		return location{}, domain.IOError(notePath, err)
	}
	return location{}, nil
}

// targetDir resolves the directory new entries go into and makes sure it exists
func (r *Repository) targetDir(parentID string) (string, error) {
	dir := r.root
	if parentID != "" {
		loc, err := r.resolve(parentID)
		if err != nil {
			return "", err
		}
		switch loc.kind {
		case kindFolder:
			dir = loc.path
		case kindNote:
			return "", &domain.StorageError{Kind: domain.ErrInvalidPath, Path: parentID}
		default:
			if filepath.Join(r.root, filepath.FromSlash(parentID)) == r.root {
				break
			}
			// parent does not exist yet; reject ids that can never resolve
			canonical, err := domain.ToID(filepath.Join(r.root, filepath.FromSlash(parentID)), r.root)
			if err != nil {
				return "", err
			}
			for _, segment := range strings.Split(canonical, "/") {
				if hidden(segment) || segment == domain.FolderMetaName {
					return "", &domain.StorageError{Kind: domain.ErrInvalidPath, Path: parentID}
				}
			}
			dir = filepath.Join(r.root, filepath.FromSlash(canonical))
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", domain.IOError(dir, err)
	}
	return dir, nil
}

func (r *Repository) readFolder(loc location) (*domain.Entry, error) {
	info, err := os.Stat(loc.path)
	if notExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.IOError(loc.path, err)
	}

	meta, err := r.meta.ReadFolderMeta(loc.path)
	if err != nil {
		return nil, err
	}

	entry := folderEntry(loc.id, filepath.Base(loc.path), meta, info)
	return &entry, nil
}

func (r *Repository) readNote(loc location) (*domain.Entry, error) {
	note, err := r.meta.ReadNote(loc.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(loc.path)
	if notExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.IOError(loc.path, err)
	}

	entry := noteEntry(loc.id, domain.BaseName(loc.id), note, info)
	return &entry, nil
}

func (r *Repository) observe(op string, start time.Time, err *error) {
	r.metrics.ObserveOperation(op, start, *err)
	if *err != nil {
		r.logger.Debug("operation failed", zap.String("op", op), zap.Error(*err))
	}
}

// notExist also covers a path segment that is a regular file
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
