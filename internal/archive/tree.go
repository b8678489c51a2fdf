package archive

import "strings"

// Tree maps entry names to their nodes. It is the shape of a directory's
// contents and of the listing result as a whole.
type Tree map[string]*Node

// Node is a single entry in an archive listing. A nil Children map marks a
// file; a non-nil map marks a directory. By construction a directory always
// has at least one child, so the distinction is unambiguous.
type Node struct {
	Children Tree
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Children != nil
}

// Count returns the number of top-level entries.
func (t Tree) Count() int {
	return len(t)
}

// BuildTree folds the lines of a bare listing into a Tree, merging paths
// that share prefixes. Blank or whitespace-only lines are tolerated (unrar
// emits trailing ones) and skipped. Listing order does not matter: a bare
// directory entry may appear before, after, or between its deeper members
// and the resulting tree is the same.
func BuildTree(output string) Tree {
	root := Tree{}
	for _, line := range strings.Split(output, "\n") {
		segments := splitPath(line)
		if len(segments) == 0 {
			continue
		}
		node := buildPath(segments[1:])
		if existing, ok := root[segments[0]]; ok {
			merge(existing, node)
		} else {
			root[segments[0]] = node
		}
	}
	return root
}

// splitPath splits a listing line into path segments, dropping empties so a
// trailing slash on a directory entry does not produce a phantom child.
func splitPath(line string) []string {
	var segments []string
	for _, seg := range strings.Split(strings.TrimSpace(line), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// buildPath builds the singly-chained subtree for the remainder of one path.
// An empty remainder denotes a file at this position.
func buildPath(segments []string) *Node {
	if len(segments) == 0 {
		return &Node{}
	}
	return &Node{Children: Tree{segments[0]: buildPath(segments[1:])}}
}

// merge folds src into dst, two nodes recorded under the same name.
//
// A file marker never overwrites existing structure: once a name is known to
// be a directory it stays one, and a shorter listing line cannot erase what
// deeper lines already contributed. In the other direction a directory
// promotes an existing file leaf, replacing it with the directory subtree.
func merge(dst, src *Node) {
	if src.Children == nil {
		return
	}
	if dst.Children == nil {
		dst.Children = src.Children
		return
	}
	for name, child := range src.Children {
		if existing, ok := dst.Children[name]; ok {
			merge(existing, child)
		} else {
			dst.Children[name] = child
		}
	}
}
