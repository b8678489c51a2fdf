package archive

import (
	"sort"
	"strings"
)

// Render draws the tree with ASCII branch characters, directories first and
// each level sorted by name. The root name is printed on the first line.
func (t Tree) Render(root string) string {
	lines := []string{root}
	renderLevel(t, "", &lines)
	return strings.Join(lines, "\n")
}

// Flatten returns every path in the tree, depth first, directories before
// files at each level and sorted by name. Directory paths carry a trailing
// slash so callers can tell them apart.
func (t Tree) Flatten() []string {
	var paths []string
	flattenLevel(t, "", &paths)
	return paths
}

// sortedNames returns the level's directory names and file names, each
// sorted, directories first.
func sortedNames(t Tree) (dirs, files []string) {
	for name, node := range t {
		if node.IsDir() {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files
}

func renderLevel(t Tree, prefix string, lines *[]string) {
	dirs, files := sortedNames(t)
	names := append(dirs, files...)

	for i, name := range names {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(names)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		node := t[name]
		label := name
		if node.IsDir() {
			label += "/"
		}
		*lines = append(*lines, prefix+connector+label)

		if node.IsDir() {
			renderLevel(node.Children, childPrefix, lines)
		}
	}
}

func flattenLevel(t Tree, prefix string, paths *[]string) {
	dirs, files := sortedNames(t)

	for _, name := range dirs {
		*paths = append(*paths, prefix+name+"/")
		flattenLevel(t[name].Children, prefix+name+"/", paths)
	}
	for _, name := range files {
		*paths = append(*paths, prefix+name)
	}
}
