package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chroninotes/internal/adapters/tui/styles"
	"chroninotes/internal/application"
	"chroninotes/internal/application/commands"
	"chroninotes/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	New       key.Binding
	NewFolder key.Binding
	Rename    key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Edit      key.Binding
	Open      key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/edit"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new folder"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retitle"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open root"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R", "ctrl+r"),
		key.WithHelp("R", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// chrome is the number of rows used by the header and footer
const chrome = 8

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	repo   ports.NotesRepository
	opener ports.FolderOpener
	copy   func(string) error

	root     *application.TreeNode
	flat     []*application.TreeNode
	pager    *Paginator
	expanded map[string]bool
	selectID string
}

// NewBrowserModel creates a new browser model. opener may be nil.
func NewBrowserModel(repo ports.NotesRepository, opener ports.FolderOpener) *BrowserModel {
	return &BrowserModel{
		repo:     repo,
		opener:   opener,
		copy:     clipboard.WriteAll,
		pager:    NewPaginator(20),
		expanded: make(map[string]bool),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := commands.NewBuildTreeCommand(m.repo).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *application.TreeNode
}

type errMsg struct {
	err error
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.setTree(msg.root)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case StatusMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.Selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.Left):
		if node == nil {
			return nil
		}
		if node.Entry.IsFolder && node.IsExpanded {
			m.setExpanded(node, false)
			m.refreshFlat()
		} else if node.Parent != nil && !node.Parent.IsRoot() {
			m.selectNode(node.Parent)
		}

	case key.Matches(msg, BrowserKeys.Right):
		if node != nil && node.Entry.IsFolder && !node.IsExpanded {
			m.setExpanded(node, true)
			m.refreshFlat()
		}

	case key.Matches(msg, BrowserKeys.Enter):
		if node == nil {
			return nil
		}
		if !node.Entry.IsFolder {
			return m.edit(node)
		}
		m.setExpanded(node, !node.IsExpanded)
		m.refreshFlat()

	case key.Matches(msg, BrowserKeys.New), key.Matches(msg, BrowserKeys.NewFolder):
		parentID := m.TargetParent()
		folder := key.Matches(msg, BrowserKeys.NewFolder)
		return func() tea.Msg {
			return SwitchToCreateMsg{ParentID: parentID, Folder: folder}
		}

	case key.Matches(msg, BrowserKeys.Rename):
		if node != nil {
			return func() tea.Msg { return SwitchToRenameMsg{Node: node} }
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if node != nil {
			return func() tea.Msg { return SwitchToDeleteMsg{Node: node} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if node != nil {
			return m.copyID(node.Entry.ID)
		}

	case key.Matches(msg, BrowserKeys.Edit):
		if node != nil {
			return m.edit(node)
		}

	case key.Matches(msg, BrowserKeys.Open):
		return m.openRoot()

	case key.Matches(msg, BrowserKeys.Reload):
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

func (m *BrowserModel) copyID(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.copy(id); err != nil {
			return StatusMsg{Err: fmt.Errorf("copy failed: %w", err)}
		}
		return StatusMsg{Message: "Copied " + id}
	}
}

func (m *BrowserModel) edit(node *application.TreeNode) tea.Cmd {
	id := node.Entry.ID
	if node.Entry.IsFolder {
		return func() tea.Msg {
			return StatusMsg{Err: fmt.Errorf("%s is a folder, only notes can be edited", id)}
		}
	}
	return func() tea.Msg {
		path, err := m.repo.Path(id)
		if err != nil {
			return StatusMsg{Err: err}
		}
		return OpenEditorMsg{ID: id, Path: path}
	}
}

func (m *BrowserModel) openRoot() tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewRootCommand(m.repo, m.opener, true).Execute(context.Background())
		if err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Message: result.Message}
	}
}

// TargetParent returns the folder new entries go into: the selected folder,
// the parent of the selected note, or the root.
func (m *BrowserModel) TargetParent() string {
	node := m.Selected()
	switch {
	case node == nil:
		return ""
	case node.Entry.IsFolder:
		return node.Entry.ID
	case node.Entry.ParentID != nil:
		return *node.Entry.ParentID
	default:
		return ""
	}
}

// Selected returns the node under the cursor, or nil on an empty tree
func (m *BrowserModel) Selected() *application.TreeNode {
	i := m.pager.Cursor()
	if i >= 0 && i < len(m.flat) {
		return m.flat[i]
	}
	return nil
}

// Select moves the cursor to id after the next reload
func (m *BrowserModel) Select(id string) {
	m.selectID = id
}

func (m *BrowserModel) setExpanded(node *application.TreeNode, expanded bool) {
	if expanded {
		node.Expand()
		m.expanded[node.Entry.ID] = true
	} else {
		node.Collapse()
		delete(m.expanded, node.Entry.ID)
	}
}

func (m *BrowserModel) selectNode(target *application.TreeNode) {
	for i, n := range m.flat {
		if n == target {
			m.pager.SetCursor(i)
			return
		}
	}
}

// setTree installs a freshly loaded tree, keeping expansion and selection
func (m *BrowserModel) setTree(root *application.TreeNode) {
	m.root = root

	for id := range m.expanded {
		if n := root.Find(id); n != nil && n.Entry.IsFolder {
			n.Expand()
		} else {
			delete(m.expanded, id)
		}
	}

	var target *application.TreeNode
	if m.selectID != "" {
		target = root.Find(m.selectID)
		m.selectID = ""
	}
	if target != nil {
		for p := target.Parent; p != nil && !p.IsRoot(); p = p.Parent {
			m.setExpanded(p, true)
		}
	}

	m.refreshFlat()
	if target != nil {
		m.selectNode(target)
	}
}

func (m *BrowserModel) refreshFlat() {
	if m.root == nil {
		return
	}
	// skip the synthetic root
	m.flat = m.root.Flatten()[1:]
	m.pager.SetTotal(len(m.flat))
}

// Reload reloads the tree from disk, keeping the current selection
func (m *BrowserModel) Reload() tea.Cmd {
	if m.selectID == "" {
		if node := m.Selected(); node != nil {
			m.selectID = node.Entry.ID
		}
	}
	return m.loadTree
}

// SetSize updates the view dimensions and the scroll window
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - chrome)
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		if m.MessageErr {
			return NewViewBuilder().Message(m.Message, true).String()
		}
		return "Loading..."
	}

	v := NewViewBuilder().
		Title("ChroniNotes").
		Subtitle(m.summary())

	if len(m.flat) == 0 {
		v.Muted("No notes yet. Press n to create one.")
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderNode(m.flat[i], i == m.pager.Cursor()))
	}

	v.BlankLine().Message(m.Message, m.MessageErr)

	return v.Help(
		BrowserKeys.New,
		BrowserKeys.NewFolder,
		BrowserKeys.Rename,
		BrowserKeys.Delete,
		BrowserKeys.Copy,
		BrowserKeys.Edit,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) summary() string {
	folders, notes := count(m.root)
	return fmt.Sprintf("%d folders, %d notes", folders, notes)
}

func count(n *application.TreeNode) (folders, notes int) {
	for _, c := range n.Children {
		if c.Entry.IsFolder {
			folders++
		} else {
			notes++
		}
		f, nn := count(c)
		folders += f
		notes += nn
	}
	return folders, notes
}

func (m *BrowserModel) renderNode(node *application.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	var prefix string
	switch {
	case !node.Entry.IsFolder:
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := RenderEntry(node)
	if selected {
		text = styles.NodeSelected.Render(text)
	} else if node.Entry.IsFolder {
		text = styles.NodeFolder.Render(text)
	} else {
		text = styles.NodeNote.Render(text)
	}

	return fmt.Sprintf("%s%s%s  %s", indent, styles.TreeBranch.Render(prefix), text,
		styles.NodeID.Render(node.Entry.ID))
}
