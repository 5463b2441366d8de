package document

import (
	"fmt"
	"strings"
)

// Action controls traversal from a Walk visit callback.
type Action int

const (
	// Continue proceeds with the traversal, descending into children.
	Continue Action = iota

	// SkipChildren skips the current node's children but continues with
	// its siblings.
	SkipChildren

	// Stop terminates the traversal immediately.
	Stop
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case SkipChildren:
		return "skip-children"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// VisitFunc is called for every node during a Walk. The path is the dotted
// field path of the node ("" for the root, "metadata.name", "spec.ports[0]").
type VisitFunc func(path string, node *Node) Action

// Walk traverses the document depth first, visiting the root first.
func (d *Document) Walk(fn VisitFunc) {
	d.Root().Walk(fn)
}

// Walk traverses the node subtree depth first, visiting n first.
// Returning SkipChildren from the callback skips a node's children;
// returning Stop abandons the whole traversal.
func (n *Node) Walk(fn VisitFunc) {
	n.walk("", fn)
}

func (n *Node) walk(path string, fn VisitFunc) Action {
	if n == nil {
		return Continue
	}
	switch fn(path, n) {
	case Stop:
		return Stop
	case SkipChildren:
		return Continue
	}

	switch n.Kind {
	case KindMapping:
		for _, f := range n.Fields {
			if f.Value.walk(childPath(path, f.Key), fn) == Stop {
				return Stop
			}
		}
	case KindSequence:
		for i, item := range n.Items {
			if item.walk(indexPath(path, i), fn) == Stop {
				return Stop
			}
		}
	}
	return Continue
}

// childPath appends a mapping key to a dotted path. Keys that are not plain
// identifiers are rendered in bracket-quoted form so paths stay unambiguous.
func childPath(prefix, key string) string {
	if isBareKey(key) {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}
	escaped := strings.ReplaceAll(key, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return prefix + "['" + escaped + "']"
}

// isBareKey reports whether a mapping key can appear in a path without
// bracket quoting.
func isBareKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_' || ch == '-' {
			continue
		}
		return false
	}
	return true
}

// indexPath appends a sequence index to a dotted path.
func indexPath(prefix string, index int) string {
	return fmt.Sprintf("%s[%d]", prefix, index)
}
