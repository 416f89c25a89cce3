// Package orgtree defines the typed organizational hierarchy built once at
// index time and shared read-only afterwards.
package orgtree

import "strings"

// PathSeparator joins ancestor names into a full path key.
const PathSeparator = " / "

// MaxDepth is the deepest nesting the org chart is expected to have
// (block > department > section > group > subsection > final group).
const MaxDepth = 6

// Unit is a node in the organizational hierarchy. Units are created during
// index build and never mutated afterwards; children are owned exclusively
// by their parent.
type Unit struct {
	Name      string
	FullPath  []string // Ancestor names including this unit's own name.
	Level     int      // len(FullPath); the synthetic document root is not counted.
	Positions []string // Role titles attached to this unit, in document order.
	Headcount int      // 0 when the document does not state one.
	Children  []*Unit  // Document order.
}

// PathKey returns the unique full-path string used as the index key.
func (u *Unit) PathKey() string {
	return strings.Join(u.FullPath, PathSeparator)
}

// Child returns the direct child with the given name, or nil.
func (u *Unit) Child(name string) *Unit {
	for _, c := range u.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits u and every descendant depth-first in document order.
// Returning false from fn stops the walk.
func (u *Unit) Walk(fn func(*Unit) bool) bool {
	if !fn(u) {
		return false
	}
	for _, c := range u.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// SplitPath splits a full-path string back into its component names.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, PathSeparator)
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsPath reports whether the input looks like a full path rather than a
// short unit name.
func IsPath(s string) bool {
	return strings.Contains(s, strings.TrimSpace(PathSeparator))
}

// HighlightedNode mirrors the input document shape with ancestor/target
// annotations added for downstream visualization.
type HighlightedNode struct {
	Name               string             `json:"name"`
	FullPath           string             `json:"full_path"`
	Level              int                `json:"level"`
	Positions          []string           `json:"positions,omitempty"`
	Headcount          int                `json:"headcount,omitempty"`
	IsAncestorOfTarget bool               `json:"is_ancestor_of_target,omitempty"`
	IsExactTarget      bool               `json:"is_exact_target,omitempty"`
	Children           []*HighlightedNode `json:"children,omitempty"`
}

// Summary is a flat listing entry for the search/autocomplete collaborator.
type Summary struct {
	DisplayName    string   `json:"display_name"`
	FullPath       string   `json:"full_path"`
	PositionsCount int      `json:"positions_count"`
	Level          int      `json:"level"`
	Positions      []string `json:"positions"`
}
