package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/8ware/unrarctl/internal/adapters/execunrar"
	"github.com/8ware/unrarctl/internal/adapters/osfs"
	"github.com/8ware/unrarctl/internal/archive"
	"github.com/8ware/unrarctl/internal/config"
	"github.com/8ware/unrarctl/internal/ports"
)

// View represents the current view state
type View int

const (
	ArchivesView View = iota
	TreeView
)

// archiveItem is one archive in the working directory.
type archiveItem struct {
	Name string
	Size int64
}

// treeRow is one visible line of the tree view: a node plus where it sits.
type treeRow struct {
	path  string // full slash-delimited path inside the archive
	name  string
	depth int
	node  *archive.Node
}

// Model is the main TUI model
type Model struct {
	config   *config.Config
	svc      *archive.Service
	fs       ports.FileSystem
	view     View
	width    int
	height   int
	quitting bool

	// Archives view
	archives      []archiveItem
	archiveCursor int
	selected      string

	// Tree view
	tree       archive.Tree
	expanded   map[string]bool
	rows       []treeRow
	treeCursor int

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Extract key.Binding
	Flat    key.Binding
	Rescan  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Extract: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "extract"),
	),
	Flat: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "extract flat"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a new TUI model with production dependencies.
func NewModel() (*Model, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	svc := archive.New(execunrar.New(execunrar.WithUnrarPath(cfg.UnrarPath)))
	m := newModel(cfg, svc, osfs.New())

	if err := m.loadArchives(); err != nil {
		return nil, err
	}
	return m, nil
}

// newModel wires a model from explicit dependencies (used by tests).
func newModel(cfg *config.Config, svc *archive.Service, fs ports.FileSystem) *Model {
	return &Model{
		config:   cfg,
		svc:      svc,
		fs:       fs,
		view:     ArchivesView,
		expanded: make(map[string]bool),
	}
}

// loadArchives scans the working directory for RAR archives.
func (m *Model) loadArchives() error {
	entries, err := m.fs.ReadDir(".")
	if err != nil {
		return err
	}

	m.archives = nil
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".rar") {
			continue
		}
		item := archiveItem{Name: entry.Name()}
		if info, err := m.fs.Stat(entry.Name()); err == nil {
			item.Size = info.Size()
		}
		m.archives = append(m.archives, item)
	}
	sort.Slice(m.archives, func(i, j int) bool { return m.archives[i].Name < m.archives[j].Name })

	if m.archiveCursor >= len(m.archives) {
		m.archiveCursor = 0
	}
	return nil
}

// rebuildRows flattens the tree into visible rows honoring expansion state.
func (m *Model) rebuildRows() {
	m.rows = nil
	m.appendRows(m.tree, "", 0)
	if m.treeCursor >= len(m.rows) {
		m.treeCursor = len(m.rows) - 1
	}
	if m.treeCursor < 0 {
		m.treeCursor = 0
	}
}

func (m *Model) appendRows(t archive.Tree, prefix string, depth int) {
	var dirs, files []string
	for name, node := range t {
		if node.IsDir() {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	for _, name := range dirs {
		path := prefix + name
		node := t[name]
		m.rows = append(m.rows, treeRow{path: path, name: name, depth: depth, node: node})
		if m.expanded[path] {
			m.appendRows(node.Children, path+"/", depth+1)
		}
	}
	for _, name := range files {
		m.rows = append(m.rows, treeRow{path: prefix + name, name: name, depth: depth, node: t[name]})
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case treeMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Listing failed: %v", msg.err)
			m.statusErr = true
		} else {
			m.tree = msg.tree
			m.expanded = make(map[string]bool)
			m.treeCursor = 0
			m.rebuildRows()
			m.view = TreeView
			m.statusMsg = ""
		}
		return m, nil

	case statusMsg:
		m.statusMsg = msg.msg
		m.statusErr = msg.err
		return m, nil

	case tea.KeyMsg:
		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Enter):
			if m.view == ArchivesView && len(m.archives) > 0 {
				m.selected = m.archives[m.archiveCursor].Name
				return m, m.loadTree()
			}
			if m.view == TreeView && len(m.rows) > 0 {
				row := m.rows[m.treeCursor]
				if row.node.IsDir() {
					m.expanded[row.path] = !m.expanded[row.path]
					m.rebuildRows()
				}
			}

		case key.Matches(msg, keys.Back):
			if m.view == TreeView {
				m.view = ArchivesView
				m.tree = nil
				m.rows = nil
				m.treeCursor = 0
			}

		case key.Matches(msg, keys.Extract):
			return m, m.runExtract(false)

		case key.Matches(msg, keys.Flat):
			return m, m.runExtract(true)

		case key.Matches(msg, keys.Rescan):
			if m.view == ArchivesView {
				if err := m.loadArchives(); err != nil {
					m.statusMsg = fmt.Sprintf("Error: %v", err)
					m.statusErr = true
				}
			}
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.view {
	case ArchivesView:
		m.archiveCursor += delta
		if m.archiveCursor < 0 {
			m.archiveCursor = 0
		}
		if m.archiveCursor >= len(m.archives) {
			m.archiveCursor = len(m.archives) - 1
		}
	case TreeView:
		m.treeCursor += delta
		if m.treeCursor < 0 {
			m.treeCursor = 0
		}
		if m.treeCursor >= len(m.rows) {
			m.treeCursor = len(m.rows) - 1
		}
	}
}

// currentArchive names the archive an action applies to.
func (m *Model) currentArchive() string {
	if m.view == TreeView {
		return m.selected
	}
	if len(m.archives) > 0 {
		return m.archives[m.archiveCursor].Name
	}
	return ""
}

func (m *Model) options(file string) archive.Options {
	return archive.Options{
		File:        file,
		Password:    m.config.Password(),
		Destination: config.ExpandPath(m.config.Destination),
		Overwrite:   m.config.Overwrite,
	}
}

func (m *Model) loadTree() tea.Cmd {
	file := m.selected
	return func() tea.Msg {
		tree, err := m.svc.List(m.options(file))
		return treeMsg{tree: tree, err: err}
	}
}

func (m *Model) runExtract(flatten bool) tea.Cmd {
	file := m.currentArchive()
	if file == "" {
		return func() tea.Msg {
			return statusMsg{err: true, msg: "No archive selected"}
		}
	}

	return func() tea.Msg {
		opts := m.options(file)
		var paths []string
		var err error
		if flatten {
			paths, err = m.svc.ExtractFlat(opts)
		} else {
			paths, err = m.svc.Extract(opts)
		}
		if err != nil {
			return statusMsg{err: true, msg: fmt.Sprintf("Extraction failed: %v", err)}
		}
		return statusMsg{msg: fmt.Sprintf("✓ Extracted %d files from %s", len(paths), file)}
	}
}

type treeMsg struct {
	tree archive.Tree
	err  error
}

type statusMsg struct {
	msg string
	err bool
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.view {
	case ArchivesView:
		content = m.renderArchivesView()
	case TreeView:
		content = m.renderTreeView()
	}

	return appStyle.Render(content)
}

func (m *Model) renderArchivesView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" unrarctl "))
	b.WriteString("\n\n")

	if len(m.archives) == 0 {
		b.WriteString(dimStyle.Render("No .rar archives in the current directory."))
		b.WriteString("\n")
	}

	for i, item := range m.archives {
		cursor := "  "
		style := normalStyle
		if i == m.archiveCursor {
			cursor = "> "
			style = selectedStyle
		}
		line := fmt.Sprintf("%-40s %10s", item.Name, formatSize(item.Size))
		b.WriteString(cursor + style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString(helpStyle.Render("enter open · x extract · f extract flat · r rescan · q quit"))
	return b.String()
}

func (m *Model) renderTreeView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" " + m.selected + " "))
	b.WriteString("\n\n")

	visibleHeight := m.height - 8
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	start := 0
	if m.treeCursor >= visibleHeight {
		start = m.treeCursor - visibleHeight + 1
	}

	for i := start; i < len(m.rows) && i < start+visibleHeight; i++ {
		row := m.rows[i]
		cursor := "  "
		style := normalStyle
		if i == m.treeCursor {
			cursor = "> "
			style = selectedStyle
		}

		label := strings.Repeat("  ", row.depth)
		if row.node.IsDir() {
			marker := "+ "
			if m.expanded[row.path] {
				marker = "- "
			}
			label += marker + row.name + "/"
		} else {
			label += "  " + row.name
		}

		b.WriteString(cursor + style.Render(label))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString(helpStyle.Render("enter expand/collapse · x extract · f extract flat · esc back · q quit"))
	return b.String()
}

func (m *Model) renderStatus() string {
	if m.statusMsg == "" {
		return "\n"
	}
	badge := successBadge
	if m.statusErr {
		badge = errorBadge
	}
	return "\n" + badge.Render(m.statusMsg) + "\n"
}

// formatSize renders a byte count in human units.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// Run starts the TUI
func Run() error {
	m, err := NewModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
