// Package orgindex builds and serves the immutable organization index: an
// exact path index plus a name index that keeps units reachable even when
// many share the same short name.
package orgindex

import (
	"errors"
	"sort"
	"strings"

	"github.com/dgallion1/orgcontext/internal/orgtree"
)

// ErrNotFound reports that a path or name is absent from the index.
// Callers recover locally; missing data is never fatal after build.
var ErrNotFound = errors.New("unit not found")

// Index holds the two lookup structures over a parsed org chart. It is
// built once and read-only afterwards, so lookups need no locking.
type Index struct {
	root *orgtree.Unit

	pathIndex map[string]*orgtree.Unit
	pathOrder []string // Insertion (document) order of path keys.

	// nameIndex is kept as an ordered list so fuzzy matching is
	// deterministic across runs, plus a map for exact hits.
	nameOrder []string
	namePaths map[string][]string

	aliases map[string]string // canonical short name -> full path
}

// Build walks the parsed tree depth-first and populates both indices over
// a fresh copy of the tree. The synthetic document root is not indexed;
// paths and levels start at its children. Building is a pure function of
// its inputs: the same tree always yields identical indices.
func Build(root *orgtree.Unit, aliases map[string]string) *Index {
	idx := &Index{
		root:      &orgtree.Unit{Name: root.Name},
		pathIndex: make(map[string]*orgtree.Unit),
		namePaths: make(map[string][]string),
	}
	for _, c := range root.Children {
		idx.addChild(idx.root, c, nil)
	}
	idx.aliases = normalizeAliases(aliases, idx)
	return idx
}

// addChild records a fresh copy of c under parent and recurses. Same-name
// siblings merge into one unit rather than shadowing each other, so no
// positions are lost to a duplicate path key.
func (idx *Index) addChild(parent, c *orgtree.Unit, parentPath []string) {
	fullPath := append(append([]string(nil), parentPath...), c.Name)
	key := strings.Join(fullPath, orgtree.PathSeparator)

	target, ok := idx.pathIndex[key]
	if !ok {
		target = &orgtree.Unit{
			Name:      c.Name,
			FullPath:  fullPath,
			Level:     len(fullPath),
			Headcount: c.Headcount,
		}
		idx.pathIndex[key] = target
		idx.pathOrder = append(idx.pathOrder, key)
		if _, seen := idx.namePaths[c.Name]; !seen {
			idx.nameOrder = append(idx.nameOrder, c.Name)
		}
		idx.namePaths[c.Name] = append(idx.namePaths[c.Name], key)
		parent.Children = append(parent.Children, target)
	} else if target.Headcount == 0 {
		target.Headcount = c.Headcount
	}
	target.Positions = append(target.Positions, c.Positions...)

	for _, gc := range c.Children {
		idx.addChild(target, gc, fullPath)
	}
}

// normalizeAliases drops alias entries pointing outside the index so the
// alias table can never resolve to a unit the path index does not own.
func normalizeAliases(aliases map[string]string, idx *Index) map[string]string {
	out := make(map[string]string, len(aliases))
	for name, path := range aliases {
		if _, ok := idx.pathIndex[path]; ok {
			out[strings.ToLower(strings.TrimSpace(name))] = path
		}
	}
	return out
}

// Root returns the synthetic document root.
func (idx *Index) Root() *orgtree.Unit { return idx.root }

// Len returns the number of indexed units.
func (idx *Index) Len() int { return len(idx.pathIndex) }

// FindUnitByPath looks up a unit by its exact full-path key.
func (idx *Index) FindUnitByPath(path string) (*orgtree.Unit, error) {
	if u, ok := idx.pathIndex[path]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

// FindDepartment resolves a department given either a full path or a short
// name. Short names go through the alias table first, then exact name
// match, then substring-contains in either direction over the name list in
// document order. With duplicate names the first registered path wins —
// deterministic, not "best match".
func (idx *Index) FindDepartment(name string) (*orgtree.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	if orgtree.IsPath(name) {
		return idx.FindUnitByPath(name)
	}

	if path, ok := idx.aliases[strings.ToLower(name)]; ok {
		return idx.FindUnitByPath(path)
	}

	if paths, ok := idx.namePaths[name]; ok {
		return idx.FindUnitByPath(paths[0])
	}

	lower := strings.ToLower(name)
	for _, candidate := range idx.nameOrder {
		cl := strings.ToLower(candidate)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return idx.FindUnitByPath(idx.namePaths[candidate][0])
		}
	}
	return nil, ErrNotFound
}

// PathsForName returns every full path registered under a short name, in
// document order. Used to recover units shadowed by name collisions.
func (idx *Index) PathsForName(name string) []string {
	return append([]string(nil), idx.namePaths[name]...)
}

// Paths returns every path key in document order.
func (idx *Index) Paths() []string {
	return append([]string(nil), idx.pathOrder...)
}

// Units returns a flat listing of all indexed units sorted by level then
// name, for the search/autocomplete collaborator.
func (idx *Index) Units() []orgtree.Summary {
	out := make([]orgtree.Summary, 0, len(idx.pathOrder))
	for _, key := range idx.pathOrder {
		u := idx.pathIndex[key]
		out = append(out, orgtree.Summary{
			DisplayName:    u.Name,
			FullPath:       key,
			PositionsCount: len(u.Positions),
			Level:          u.Level,
			Positions:      append([]string(nil), u.Positions...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}
