package views

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"chroninotes/internal/adapters/filesystem"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// setupBrowser builds a root with a Projects folder holding a Roadmap note
// and a top-level Inbox note, then loads it into a browser.
func setupBrowser(t *testing.T) (*BrowserModel, *filesystem.Repository) {
	t.Helper()

	repo := filesystem.NewRepository(t.TempDir())
	folder, err := repo.CreateFolder("", "Projects", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := repo.Create(folder.ID, "Roadmap", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create("", "Inbox", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	m := NewBrowserModel(repo, nil)
	load(t, m)
	return m, repo
}

func load(t *testing.T, m *BrowserModel) {
	t.Helper()
	msg := m.loadTree()
	if e, ok := msg.(errMsg); ok {
		t.Fatalf("loadTree: %v", e.err)
	}
	m.Update(msg)
}

func press(m *BrowserModel, msg tea.KeyMsg) tea.Msg {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestBrowser_LoadsCollapsedTree(t *testing.T) {
	m, _ := setupBrowser(t)

	if len(m.flat) != 2 {
		t.Fatalf("expected 2 visible rows, got %d", len(m.flat))
	}
	if got := m.Selected().Entry.ID; got != "projects" {
		t.Errorf("expected folder first, got %s", got)
	}
	if !strings.Contains(m.View(), "1 folders, 2 notes") {
		t.Errorf("expected summary in view, got:\n%s", m.View())
	}
}

func TestBrowser_ExpandCollapseAndParent(t *testing.T) {
	m, _ := setupBrowser(t)

	press(m, runes("l"))
	if len(m.flat) != 3 {
		t.Fatalf("expected 3 rows after expand, got %d", len(m.flat))
	}

	press(m, runes("j"))
	if got := m.Selected().Entry.ID; got != "projects/roadmap" {
		t.Fatalf("expected roadmap selected, got %s", got)
	}

	// left on a note jumps to its folder
	press(m, runes("h"))
	if got := m.Selected().Entry.ID; got != "projects" {
		t.Errorf("expected parent selected, got %s", got)
	}

	press(m, runes("h"))
	if len(m.flat) != 2 {
		t.Errorf("expected collapse to hide the note, got %d rows", len(m.flat))
	}
}

func TestBrowser_ReloadKeepsExpansionAndSelection(t *testing.T) {
	m, repo := setupBrowser(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("j"))

	if _, err := repo.Create("", "Another", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	m.Update(m.Reload()())

	if len(m.flat) != 4 {
		t.Fatalf("expected folder to stay expanded, got %d rows", len(m.flat))
	}
	if got := m.Selected().Entry.ID; got != "projects/roadmap" {
		t.Errorf("expected selection kept, got %s", got)
	}
}

func TestBrowser_SelectExpandsAncestors(t *testing.T) {
	m, _ := setupBrowser(t)

	m.Select("projects/roadmap")
	m.Update(m.Reload()())

	if got := m.Selected().Entry.ID; got != "projects/roadmap" {
		t.Errorf("expected selected note, got %s", got)
	}
	if !m.expanded["projects"] {
		t.Error("expected parent folder to be expanded")
	}
}

func TestBrowser_TargetParent(t *testing.T) {
	m, _ := setupBrowser(t)
	press(m, runes("l"))

	tests := []struct {
		name string
		want string
	}{
		{"folder", "projects"},
		{"note in folder", "projects"},
		{"top-level note", ""},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.pager.SetCursor(i)
			if got := m.TargetParent(); got != tt.want {
				t.Errorf("TargetParent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrowser_NewKeys(t *testing.T) {
	m, _ := setupBrowser(t)

	msg, ok := press(m, runes("N")).(SwitchToCreateMsg)
	if !ok {
		t.Fatal("expected SwitchToCreateMsg")
	}
	if !msg.Folder || msg.ParentID != "projects" {
		t.Errorf("unexpected create target %+v", msg)
	}

	msg = press(m, runes("n")).(SwitchToCreateMsg)
	if msg.Folder {
		t.Error("expected note creation for n")
	}
}

func TestBrowser_CopyID(t *testing.T) {
	m, _ := setupBrowser(t)

	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	status, ok := press(m, runes("y")).(StatusMsg)
	if !ok {
		t.Fatal("expected StatusMsg")
	}
	if copied != "projects" {
		t.Errorf("expected id copied, got %q", copied)
	}
	if status.Err != nil || status.Message != "Copied projects" {
		t.Errorf("unexpected status %+v", status)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	status = press(m, runes("y")).(StatusMsg)
	if status.Err == nil {
		t.Error("expected clipboard failure to be reported")
	}
}

func TestBrowser_Edit(t *testing.T) {
	m, repo := setupBrowser(t)

	status, ok := press(m, runes("e")).(StatusMsg)
	if !ok || status.Err == nil {
		t.Fatalf("expected error status for folder, got %#v", status)
	}

	press(m, runes("l"))
	press(m, runes("j"))
	open, ok := press(m, runes("e")).(OpenEditorMsg)
	if !ok {
		t.Fatal("expected OpenEditorMsg")
	}
	root, _ := repo.Root()
	if want := filepath.Join(root, "projects", "roadmap.json"); open.Path != want {
		t.Errorf("expected path %s, got %s", want, open.Path)
	}
}

func TestBrowser_OpenRootWithoutOpener(t *testing.T) {
	m, _ := setupBrowser(t)

	status := press(m, runes("o")).(StatusMsg)
	if status.Err == nil {
		t.Error("expected error without a file explorer")
	}
}

func TestBrowser_EmptyRoot(t *testing.T) {
	m := NewBrowserModel(filesystem.NewRepository(filepath.Join(t.TempDir(), "missing")), nil)
	load(t, m)

	if m.Selected() != nil {
		t.Error("expected no selection")
	}
	if !strings.Contains(m.View(), "No notes yet") {
		t.Errorf("expected empty hint, got:\n%s", m.View())
	}
	if msg := press(m, runes("d")); msg != nil {
		t.Errorf("expected no action on empty tree, got %#v", msg)
	}
}
