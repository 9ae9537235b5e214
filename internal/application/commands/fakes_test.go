package commands

import (
	"errors"
	"io/fs"
	"strings"

	"chroninotes/internal/domain"
)

// fakeRepo is an in-memory ports.NotesRepository
type fakeRepo struct {
	entries map[string]domain.Entry
	root    string
	err     error
	deleted []string
}

func newFakeRepo(entries ...domain.Entry) *fakeRepo {
	r := &fakeRepo{entries: make(map[string]domain.Entry), root: "/notes"}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

func (r *fakeRepo) List() ([]domain.Entry, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	domain.SortByID(out)
	return out, nil
}

func (r *fakeRepo) Get(id string) (*domain.Entry, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeRepo) create(parentID, title, icon string, folder bool) (*domain.Entry, error) {
	if r.err != nil {
		return nil, r.err
	}
	id := domain.Slugify(title)
	if parentID != "" {
		id = parentID + "/" + id
	}
	e := domain.Entry{ID: id, Title: title, Icon: icon, IsFolder: folder, ParentID: domain.ParentRef(id)}
	r.entries[id] = e
	return &e, nil
}

func (r *fakeRepo) Create(parentID, title, icon string) (*domain.Entry, error) {
	return r.create(parentID, title, icon, false)
}

func (r *fakeRepo) CreateFolder(parentID, title, icon string) (*domain.Entry, error) {
	return r.create(parentID, title, icon, true)
}

func (r *fakeRepo) Update(id string, patch domain.Patch) (*domain.Entry, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Icon != nil {
		e.Icon = *patch.Icon
	}
	if len(patch.Content) > 0 && !e.IsFolder {
		e.Content = patch.Content
	}
	r.entries[id] = e
	return &e, nil
}

func (r *fakeRepo) Delete(id string) error {
	if r.err != nil {
		return r.err
	}
	for key := range r.entries {
		if key == id || strings.HasPrefix(key, id+"/") {
			delete(r.entries, key)
		}
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepo) Root() (string, error) {
	return r.root, r.err
}

func (r *fakeRepo) Path(id string) (string, error) {
	if _, ok := r.entries[id]; !ok {
		return "", &domain.StorageError{Kind: fs.ErrNotExist, Path: id}
	}
	return r.root + "/" + id, nil
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) OpenFolder(dir string) error {
	o.opened = append(o.opened, dir)
	return o.err
}

type fakeStore struct {
	settings domain.PomodoroSettings
	err      error
}

func (s *fakeStore) Get() (domain.PomodoroSettings, error) {
	return s.settings, s.err
}

func (s *fakeStore) Set(work, brk int) error {
	if s.err != nil {
		return s.err
	}
	s.settings = domain.PomodoroSettings{WorkMinutes: work, BreakMinutes: brk}
	return nil
}

func (s *fakeStore) Close() error { return nil }

var errDisk = errors.New("disk on fire")
