package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/8ware/unrarctl/internal/archive"
	"github.com/8ware/unrarctl/internal/config"
	"github.com/8ware/unrarctl/internal/mocks"
)

// newTestModel builds a model over mock dependencies with two archives in
// the working directory.
func newTestModel(unrar *mocks.MockUnrar) *Model {
	fs := mocks.NewMockFileSystem()
	fs.Files["alpha.rar"] = 100
	fs.Files["beta.rar"] = 200
	fs.Files["notes.txt"] = 10
	fs.Files["subdir/gamma.rar"] = 300

	m := newModel(config.DefaultConfig(), archive.New(unrar), fs)
	if err := m.loadArchives(); err != nil {
		panic(err)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// step feeds a message and, if the update produced a command, runs it and
// feeds its message back, mirroring what the bubbletea runtime does.
func step(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd != nil {
		if next := cmd(); next != nil {
			_, _ = m.Update(next)
		}
	}
}

func TestLoadArchives(t *testing.T) {
	m := newTestModel(mocks.NewMockUnrar())

	if len(m.archives) != 2 {
		t.Fatalf("expected 2 archives, got %v", m.archives)
	}
	if m.archives[0].Name != "alpha.rar" || m.archives[1].Name != "beta.rar" {
		t.Errorf("unexpected archives: %v", m.archives)
	}
	if m.archives[0].Size != 100 || m.archives[1].Size != 200 {
		t.Errorf("sizes not loaded: %v", m.archives)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.size); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func TestOpenArchiveLoadsTree(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ListOutput = "directory_1/file_1\ndirectory_1/file_2\nreadme.txt\n"
	m := newTestModel(unrar)

	step(t, m, keyMsg("enter"))

	if m.view != TreeView {
		t.Fatalf("expected TreeView, got %v", m.view)
	}
	if m.selected != "alpha.rar" {
		t.Errorf("expected alpha.rar selected, got %q", m.selected)
	}
	if m.tree.Count() != 2 {
		t.Errorf("expected 2 top-level entries, got %d", m.tree.Count())
	}
	// Collapsed directory plus top-level file.
	if len(m.rows) != 2 {
		t.Errorf("expected 2 visible rows, got %d", len(m.rows))
	}
}

func TestListFailureStaysOnArchivesView(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ListStatus = archive.StatusNotFound
	m := newTestModel(unrar)

	step(t, m, keyMsg("enter"))

	if m.view != ArchivesView {
		t.Errorf("expected to stay on ArchivesView, got %v", m.view)
	}
	if !m.statusErr || !strings.Contains(m.statusMsg, "Listing failed") {
		t.Errorf("expected failure status, got %q", m.statusMsg)
	}
}

func TestExpandCollapse(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ListOutput = "directory_1/file_1\ndirectory_1/file_2\n"
	m := newTestModel(unrar)

	step(t, m, keyMsg("enter"))
	if len(m.rows) != 1 {
		t.Fatalf("expected 1 collapsed row, got %d", len(m.rows))
	}

	// Expand the directory under the cursor.
	step(t, m, keyMsg("enter"))
	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows after expand, got %d", len(m.rows))
	}
	if m.rows[1].name != "file_1" || m.rows[1].depth != 1 {
		t.Errorf("unexpected row: %+v", m.rows[1])
	}

	// Collapse again.
	step(t, m, keyMsg("enter"))
	if len(m.rows) != 1 {
		t.Errorf("expected 1 row after collapse, got %d", len(m.rows))
	}
}

func TestCursorBounds(t *testing.T) {
	m := newTestModel(mocks.NewMockUnrar())

	step(t, m, keyMsg("up"))
	if m.archiveCursor != 0 {
		t.Errorf("cursor ran off the top: %d", m.archiveCursor)
	}

	step(t, m, keyMsg("down"))
	step(t, m, keyMsg("down"))
	step(t, m, keyMsg("down"))
	if m.archiveCursor != 1 {
		t.Errorf("cursor ran off the bottom: %d", m.archiveCursor)
	}
}

func TestExtractFromArchivesView(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ExtractOutput = "Extracting  directory_1/file_1                                      OK\n"
	m := newTestModel(unrar)

	step(t, m, keyMsg("x"))

	if m.statusErr {
		t.Fatalf("unexpected error status: %q", m.statusMsg)
	}
	if !strings.Contains(m.statusMsg, "Extracted 1 files from alpha.rar") {
		t.Errorf("unexpected status: %q", m.statusMsg)
	}
	if len(unrar.Calls) != 1 || unrar.Calls[0].Flatten {
		t.Errorf("unexpected call: %+v", unrar.Calls)
	}
}

func TestFlatExtract(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ExtractOutput = "Extracting  file_1  OK\n"
	m := newTestModel(unrar)

	step(t, m, keyMsg("f"))

	if !unrar.Calls[0].Flatten {
		t.Errorf("expected flat extraction: %+v", unrar.Calls[0])
	}
}

func TestExtractFailureShowsStatus(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ExtractStatus = archive.StatusBadArchive
	m := newTestModel(unrar)

	step(t, m, keyMsg("x"))

	if !m.statusErr || !strings.Contains(m.statusMsg, "Extraction failed") {
		t.Errorf("expected failure status, got %q", m.statusMsg)
	}
}

func TestBackReturnsToArchives(t *testing.T) {
	unrar := mocks.NewMockUnrar()
	unrar.ListOutput = "file_1\n"
	m := newTestModel(unrar)

	step(t, m, keyMsg("enter"))
	if m.view != TreeView {
		t.Fatal("expected TreeView")
	}

	step(t, m, keyMsg("esc"))
	if m.view != ArchivesView {
		t.Errorf("expected ArchivesView, got %v", m.view)
	}
	if m.tree != nil || m.rows != nil {
		t.Error("expected tree state to be discarded")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(mocks.NewMockUnrar())

	_, cmd := m.Update(keyMsg("q"))
	if !m.quitting {
		t.Error("expected quitting to be set")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view while quitting")
	}
}

func TestViewRendering(t *testing.T) {
	t.Run("archives view lists archives", func(t *testing.T) {
		m := newTestModel(mocks.NewMockUnrar())
		m.height = 30

		got := m.View()
		if !strings.Contains(got, "alpha.rar") || !strings.Contains(got, "beta.rar") {
			t.Errorf("archives missing from view:\n%s", got)
		}
	})

	t.Run("empty directory hint", func(t *testing.T) {
		m := newModel(config.DefaultConfig(), archive.New(mocks.NewMockUnrar()), mocks.NewMockFileSystem())
		if err := m.loadArchives(); err != nil {
			t.Fatal(err)
		}

		got := m.View()
		if !strings.Contains(got, "No .rar archives") {
			t.Errorf("expected empty hint:\n%s", got)
		}
	})

	t.Run("tree view shows entries and markers", func(t *testing.T) {
		unrar := mocks.NewMockUnrar()
		unrar.ListOutput = "directory_1/file_1\nreadme.txt\n"
		m := newTestModel(unrar)
		m.height = 30

		step(t, m, keyMsg("enter"))

		got := m.View()
		if !strings.Contains(got, "+ directory_1/") {
			t.Errorf("expected collapsed directory marker:\n%s", got)
		}
		if !strings.Contains(got, "readme.txt") {
			t.Errorf("expected file entry:\n%s", got)
		}
	})
}
