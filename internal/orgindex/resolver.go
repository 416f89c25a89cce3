package orgindex

import (
	"strings"

	"github.com/dgallion1/orgcontext/internal/orgtree"
)

// HighlightStructure rebuilds a copy of the full tree with the target and
// its direct ancestors annotated. The annotation set is exactly
// {target} union {ancestors of target}; siblings and unrelated descendants
// stay unmarked. O(total nodes).
func (idx *Index) HighlightStructure(targetPath string) *orgtree.HighlightedNode {
	return highlightNode(idx.root, strings.TrimSpace(targetPath))
}

func highlightNode(u *orgtree.Unit, target string) *orgtree.HighlightedNode {
	path := u.PathKey()
	node := &orgtree.HighlightedNode{
		Name:      u.Name,
		FullPath:  path,
		Level:     u.Level,
		Positions: append([]string(nil), u.Positions...),
		Headcount: u.Headcount,
	}
	if target != "" && path != "" {
		if path == target {
			node.IsExactTarget = true
		} else if strings.HasPrefix(target, path+orgtree.PathSeparator) {
			node.IsAncestorOfTarget = true
		}
	}
	for _, c := range u.Children {
		node.Children = append(node.Children, highlightNode(c, target))
	}
	return node
}

// PositionPath is the hierarchy breakdown of a role's location, split into
// up to six named levels. Fields past the unit's depth stay empty.
type PositionPath struct {
	Block      string `json:"block"`
	Department string `json:"department"`
	Section    string `json:"section"`
	Group      string `json:"group"`
	Subsection string `json:"subsection"`
	FinalGroup string `json:"final_group"`
	Role       string `json:"role"`
	FullPath   string `json:"full_path"`
	// Located reports whether the role title was actually found in the
	// subtree, as opposed to being attached to the department's own path.
	Located bool `json:"located"`
}

// ExtractPositionPath resolves a department and locates the unit that owns
// the given role title, searching the department and its descendants in
// breadth order. When the role is not found anywhere in the subtree the
// breakdown degrades to the department's own path with the role attached
// but not structurally located. This function never fails.
func (idx *Index) ExtractPositionPath(department, role string) PositionPath {
	unit, err := idx.FindDepartment(department)
	if err != nil {
		// Unknown department: the input name is all we have.
		return PositionPath{Department: strings.TrimSpace(department), Role: role}
	}

	owner := idx.findPositionOwner(unit, role)
	located := owner != nil
	if owner == nil {
		owner = unit
	}

	pp := breakdown(owner.FullPath)
	pp.Role = role
	pp.FullPath = owner.PathKey()
	pp.Located = located
	return pp
}

// findPositionOwner searches unit and its descendants breadth-first for
// the first unit listing the role. Matching is case-insensitive, exact
// first and substring second, so "Backend Engineer" still finds a unit
// listing "Senior Backend Engineer".
func (idx *Index) findPositionOwner(unit *orgtree.Unit, role string) *orgtree.Unit {
	want := strings.ToLower(strings.TrimSpace(role))
	if want == "" {
		return nil
	}

	var substrHit *orgtree.Unit
	queue := []*orgtree.Unit{unit}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, pos := range u.Positions {
			pl := strings.ToLower(pos)
			if pl == want {
				return u
			}
			if substrHit == nil && (strings.Contains(pl, want) || strings.Contains(want, pl)) {
				substrHit = u
			}
		}
		queue = append(queue, u.Children...)
	}
	return substrHit
}

func breakdown(fullPath []string) PositionPath {
	var pp PositionPath
	fields := []*string{&pp.Block, &pp.Department, &pp.Section, &pp.Group, &pp.Subsection, &pp.FinalGroup}
	for i, name := range fullPath {
		if i >= len(fields) {
			break
		}
		*fields[i] = name
	}
	return pp
}

// AncestorPaths returns the full-path keys of a unit's ancestors, nearest
// first, for hierarchical metric-document inheritance.
func AncestorPaths(u *orgtree.Unit) []string {
	var out []string
	for i := len(u.FullPath) - 1; i > 0; i-- {
		out = append(out, strings.Join(u.FullPath[:i], orgtree.PathSeparator))
	}
	return out
}
