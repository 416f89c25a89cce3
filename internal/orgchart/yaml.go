package orgchart

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/orgcontext/internal/orgtree"
	"gopkg.in/yaml.v3"
)

// YAMLParser handles nested-mapping org charts. This is the primary format:
//
//	name: Company
//	children:
//	  - name: Block X
//	    headcount: 120
//	    positions:
//	      - Head of Block
//	    children: ...
type YAMLParser struct{}

type yamlUnit struct {
	Name      string     `yaml:"name"`
	ID        int        `yaml:"id"`
	Positions []string   `yaml:"positions"`
	Headcount int        `yaml:"headcount"`
	Children  []yamlUnit `yaml:"children"`
}

func (p *YAMLParser) Parse(r io.Reader, filename string) (*orgtree.Unit, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	var doc yamlUnit
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("decode yaml: %w", err)}
	}

	if doc.Name == "" && len(doc.Children) == 0 {
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("document has no units")}
	}

	root := convertYAMLUnit(doc)
	if root.Name == "" {
		root.Name = strings.TrimSuffix(strings.TrimSuffix(filename, ".yaml"), ".yml")
	}
	return root, nil
}

func convertYAMLUnit(y yamlUnit) *orgtree.Unit {
	u := &orgtree.Unit{
		Name:      strings.TrimSpace(y.Name),
		Headcount: y.Headcount,
	}
	for _, pos := range y.Positions {
		pos = strings.TrimSpace(pos)
		if pos != "" {
			u.Positions = append(u.Positions, pos)
		}
	}
	for _, c := range y.Children {
		child := convertYAMLUnit(c)
		if child.Name == "" {
			// A nameless unit cannot be addressed by path; fold its
			// positions into the parent instead of dropping them.
			u.Positions = append(u.Positions, child.Positions...)
			u.Children = append(u.Children, child.Children...)
			continue
		}
		u.Children = append(u.Children, child)
	}
	return u
}
