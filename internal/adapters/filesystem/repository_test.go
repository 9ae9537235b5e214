package filesystem

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"chroninotes/internal/domain"
	"chroninotes/internal/metrics"
)

func setupTestRoot(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "chroninotes-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

func fixedClock(ts string) func() time.Time {
	t, _ := time.Parse(domain.TimeLayout, ts)
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func TestCreate_RoundTrip(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root, WithClock(fixedClock("2024-05-01T10:00:00.000Z")))

	folder, err := repo.CreateFolder("", "Projects", "")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	created, err := repo.Create(folder.ID, "Roadmap", "★")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected note, got nil")
	}

	if got.Title != "Roadmap" || got.Icon != "★" {
		t.Errorf("unexpected title/icon: %q %q", got.Title, got.Icon)
	}
	if string(got.Content) != string(domain.EmptyDocument) {
		t.Errorf("expected empty document, got %s", got.Content)
	}
	if got.ParentID == nil || *got.ParentID != folder.ID {
		t.Errorf("expected parent %s, got %v", folder.ID, got.ParentID)
	}
	if got.CreatedAt != "2024-05-01T10:00:00.000Z" || got.UpdatedAt != got.CreatedAt {
		t.Errorf("unexpected timestamps %s / %s", got.CreatedAt, got.UpdatedAt)
	}
}

func TestCreate_Defaults(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	note, err := repo.Create("", "", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if note.ID != "untitled" || note.Title != domain.DefaultNoteTitle || note.Icon != domain.DefaultNoteIcon {
		t.Errorf("unexpected note defaults %+v", note)
	}
	if note.ParentID != nil {
		t.Errorf("expected root-level note, got parent %v", *note.ParentID)
	}

	folder, err := repo.CreateFolder("", "", "")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if folder.ID != "new-folder" || folder.Title != domain.DefaultFolderTitle || folder.Icon != domain.DefaultFolderIcon {
		t.Errorf("unexpected folder defaults %+v", folder)
	}
	if _, err := os.Stat(filepath.Join(root, "new-folder", domain.FolderMetaName)); err != nil {
		t.Errorf("expected sidecar to be written: %v", err)
	}
}

func TestCreate_UniqueUnderCollision(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	var ids []string
	for range 3 {
		e, err := repo.Create("", "Untitled", "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, e.ID)
	}

	want := []string{"untitled", "untitled-1", "untitled-2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("create %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestCreate_ConcurrentCallsNeverCollide(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	const n = 20
	var wg sync.WaitGroup
	results := make(chan string, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := repo.Create("", "Same", "")
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			results <- e.ID
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for id := range results {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct ids, got %d", n, len(seen))
	}
}

func TestCreate_FolderAndNoteNeverShareID(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	note, err := repo.Create("", "Ideas", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	folder, err := repo.CreateFolder("", "Ideas", "")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	if note.ID == folder.ID {
		t.Fatalf("note and folder share id %s", note.ID)
	}
	if folder.ID != "ideas-1" {
		t.Errorf("expected ideas-1, got %s", folder.ID)
	}
}

func TestCreate_ParentIsNote(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	note, err := repo.Create("", "Leaf", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = repo.Create(note.ID, "Child", "")
	if !errors.Is(err, domain.ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestCreate_MissingParentIsCreated(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	note, err := repo.Create("Inbox", "Quick", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if note.ID != "Inbox/quick" {
		t.Errorf("expected Inbox/quick, got %s", note.ID)
	}
}

func TestCreate_EscapingParent(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	for _, parent := range []string{"../outside", "a/../../outside", ".hidden"} {
		if _, err := repo.Create(parent, "X", ""); !errors.Is(err, domain.ErrInvalidPath) {
			t.Errorf("Create(%q): expected ErrInvalidPath, got %v", parent, err)
		}
	}
}

func TestDelete_Cascade(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	a, _ := repo.CreateFolder("", "A", "")
	if _, err := repo.Create(a.ID, "x", ""); err != nil {
		t.Fatal(err)
	}
	b, _ := repo.CreateFolder(a.ID, "B", "")
	if _, err := repo.Create(b.ID, "y", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create("", "keep", ""); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.ID, a.ID) {
			t.Errorf("entry %s survived cascade delete", e.ID)
		}
	}
	if len(entries) != 1 || entries[0].ID != "keep" {
		t.Errorf("expected only keep, got %v", entries)
	}
}

func TestDelete_Note(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	note, _ := repo.Create("", "Gone", "")
	if err := repo.Delete(note.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "gone.json")); !os.IsNotExist(err) {
		t.Error("expected note file to be removed")
	}
}

func TestList_TolerantScan(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	if _, err := repo.Create("", "Valid", ""); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "broken.json"), "not json at all")

	entries, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "valid" {
		t.Errorf("expected only valid, got %v", entries)
	}

	// direct access surfaces the problem
	if _, err := repo.Get("broken"); !errors.Is(err, domain.ErrCorruptMetadata) {
		t.Errorf("expected ErrCorruptMetadata from Get, got %v", err)
	}
	if _, err := repo.Update("broken", domain.Patch{Title: strPtr("x")}); !errors.Is(err, domain.ErrCorruptMetadata) {
		t.Errorf("expected ErrCorruptMetadata from Update, got %v", err)
	}
}

func TestList_Idempotent(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	p, _ := repo.CreateFolder("", "P", "")
	repo.Create(p.ID, "a", "")
	repo.Create("", "b", "")

	first, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}

	domain.SortByID(first)
	domain.SortByID(second)
	if len(first) != len(second) {
		t.Fatalf("listing changed size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("listing changed at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestList_SeesExternalEdits(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	if _, err := repo.Create("", "First", ""); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(root, "external.json"), `{"title":"From outside"}`)

	entries, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if got := byID(entries)["external"]; got.Title != "From outside" {
		t.Errorf("expected external note to be listed, got %v", entries)
	}
}

func TestList_MissingRoot(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(filepath.Join(root, "later"))
	entries, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty list, got %v", entries)
	}
}

func TestUpdate_PreservesID(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	clock := fixedClock("2024-01-01T00:00:00.000Z")
	repo := NewRepository(root, WithClock(func() time.Time { return clock() }))

	note, _ := repo.Create("", "Old Title", "")

	clock = fixedClock("2024-02-01T00:00:00.000Z")
	updated, err := repo.Update(note.ID, domain.Patch{Title: strPtr("New Title")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != note.ID || updated.Title != "New Title" {
		t.Errorf("unexpected update result %+v", updated)
	}
	if updated.UpdatedAt != "2024-02-01T00:00:00.000Z" || updated.CreatedAt != "2024-01-01T00:00:00.000Z" {
		t.Errorf("unexpected timestamps %s / %s", updated.CreatedAt, updated.UpdatedAt)
	}

	got, err := repo.Get(note.ID)
	if err != nil || got == nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if got.Title != "New Title" {
		t.Errorf("expected new title, got %s", got.Title)
	}
	if _, err := os.Stat(filepath.Join(root, "old-title.json")); err != nil {
		t.Errorf("expected on-disk name to be unchanged: %v", err)
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	note, _ := repo.Create("", "Keep", "K")

	doc := json.RawMessage(`{"type":"doc","content":[{"type":"text","text":"hi"}]}`)
	updated, err := repo.Update(note.ID, domain.Patch{Content: doc})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Keep" || updated.Icon != "K" {
		t.Errorf("unset fields changed: %+v", updated)
	}
	if string(updated.Content) != string(doc) {
		t.Errorf("expected content %s, got %s", doc, updated.Content)
	}
}

func TestUpdate_InvalidContent(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	note, _ := repo.Create("", "N", "")

	_, err := repo.Update(note.ID, domain.Patch{Content: json.RawMessage(`{broken`)})
	if err == nil {
		t.Fatal("expected error for invalid content")
	}

	got, _ := repo.Get(note.ID)
	if string(got.Content) != string(domain.EmptyDocument) {
		t.Errorf("note should be untouched, got %s", got.Content)
	}
}

func TestUpdate_FolderIgnoresContent(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	folder, _ := repo.CreateFolder("", "Docs", "")

	updated, err := repo.Update(folder.ID, domain.Patch{
		Title:   strPtr("Documents"),
		Icon:    strPtr("D"),
		Content: json.RawMessage(`{"type":"doc"}`),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.IsFolder || updated.Title != "Documents" || updated.Icon != "D" || updated.Content != nil {
		t.Errorf("unexpected folder update %+v", updated)
	}
	if _, err := os.Stat(filepath.Join(root, "docs")); err != nil {
		t.Errorf("expected directory name unchanged: %v", err)
	}
}

func TestMissingID(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	got, err := repo.Get("does/not/exist")
	if err != nil || got != nil {
		t.Errorf("Get: expected nil, nil; got %v, %v", got, err)
	}
	updated, err := repo.Update("does/not/exist", domain.Patch{Title: strPtr("x")})
	if err != nil || updated != nil {
		t.Errorf("Update: expected nil, nil; got %v, %v", updated, err)
	}
	if err := repo.Delete("does/not/exist"); err != nil {
		t.Errorf("Delete: expected nil, got %v", err)
	}
	if _, err := repo.Path("does/not/exist"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Path: expected ErrNotExist, got %v", err)
	}
}

func TestGet_UnresolvableIDs(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	folder, _ := repo.CreateFolder("", "F", "")
	note, _ := repo.Create("", "N", "")
	writeFile(t, filepath.Join(root, ".hidden.json"), `{"title":"secret"}`)

	for _, id := range []string{"", folder.ID + "/_folder", note.ID + ".json", note.ID + "/child", ".hidden"} {
		got, err := repo.Get(id)
		if err != nil || got != nil {
			t.Errorf("Get(%q): expected nil, nil; got %v, %v", id, got, err)
		}
	}

	for _, id := range []string{".", "./", folder.ID + "/.."} {
		got, err := repo.Get(id)
		if err != nil || got != nil {
			t.Errorf("Get(%q): expected nil, nil for the root; got %v, %v", id, got, err)
		}
		if err := repo.Delete(id); err != nil {
			t.Errorf("Delete(%q): %v", id, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, folder.ID)); err != nil {
		t.Errorf("deleting the root alias must be a no-op: %v", err)
	}
	if top, err := repo.Create("./", "Top", ""); err != nil || top.ID != "top" || top.ParentID != nil {
		t.Errorf("expected root-level note from root alias parent, got %v, %v", top, err)
	}

	if _, err := repo.Get("../escape"); !errors.Is(err, domain.ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}

	// non-canonical forms resolve to the canonical id
	got, err := repo.Get(folder.ID + "/")
	if err != nil || got == nil || got.ID != folder.ID {
		t.Errorf("expected %s, got %v, %v", folder.ID, got, err)
	}
}

func TestEndToEnd(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)

	p, err := repo.CreateFolder("", "Projects", "")
	if err != nil {
		t.Fatal(err)
	}
	r, err := repo.Create(p.ID, "Roadmap", "")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != p.ID+"/roadmap" {
		t.Errorf("expected %s/roadmap, got %s", p.ID, r.ID)
	}
	if p.ID != "projects" {
		t.Errorf("expected slugged folder id projects, got %s", p.ID)
	}

	entries, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	got := byID(entries)
	if got[p.ID].ParentID != nil {
		t.Error("expected folder at root")
	}
	if got[r.ID].ParentID == nil || *got[r.ID].ParentID != p.ID {
		t.Errorf("expected note parent %s", p.ID)
	}
}

func TestUnreadableFolder(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(root)
	locked, err := repo.CreateFolder("", "Locked", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create("", "Open", ""); err != nil {
		t.Fatal(err)
	}

	lockedDir := filepath.Join(root, locked.ID)
	if err := os.Chmod(lockedDir, 0); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(lockedDir, 0755)

	entries, err := repo.List()
	if err != nil {
		t.Fatalf("List should tolerate an unreadable folder: %v", err)
	}
	got := byID(entries)
	if _, ok := got["open"]; !ok {
		t.Errorf("expected readable note to be listed, got %v", entries)
	}
	if _, ok := got[locked.ID]; !ok {
		t.Errorf("expected unreadable folder to stay listed, got %v", entries)
	}

	_, err = repo.Create(locked.ID, "Inside", "")
	if !errors.Is(err, domain.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected the permission error to be kept, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), lockedDir) {
		t.Errorf("expected error to name %s, got %v", lockedDir, err)
	}
}

func TestRoot_CreatesDirectory(t *testing.T) {
	base, cleanup := setupTestRoot(t)
	defer cleanup()

	repo := NewRepository(filepath.Join(base, "ChroniNotes"))
	root, err := repo.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Errorf("expected root directory to exist: %v", err)
	}
}

func TestNewRepository_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	repo := NewRepository("~/ChroniNotes")
	if repo.root != filepath.Join(home, "ChroniNotes") {
		t.Errorf("expected root under home, got %s", repo.root)
	}
}

func TestRepository_RecordsMetrics(t *testing.T) {
	root, cleanup := setupTestRoot(t)
	defer cleanup()

	reg := prometheus.NewRegistry()
	repo := NewRepository(root, WithMetrics(metrics.New(reg)))

	repo.Create("", "A", "")
	repo.Get("missing")
	repo.List()

	count, err := testutil.GatherAndCount(reg, "chroninotes_operations_total")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 operation series, got %d", count)
	}
}
