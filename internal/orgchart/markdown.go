package orgchart

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/orgcontext/internal/orgtree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles markdown org charts using goldmark. Heading levels
// encode nesting, list items under a heading are that unit's role titles,
// and a "Headcount: N" paragraph sets the unit headcount.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*orgtree.Unit, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	rootName := strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown")
	root := &orgtree.Unit{Name: rootName}

	type stackEntry struct {
		unit  *orgtree.Unit
		level int
	}
	stack := []stackEntry{{unit: root, level: 0}}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			unit := &orgtree.Unit{Name: title}

			// Pop until we find a parent with a lower heading level.
			for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].unit
			parent.Children = append(parent.Children, unit)
			stack = append(stack, stackEntry{unit: unit, level: node.Level})

		case *ast.List:
			top := stack[len(stack)-1].unit
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				pos := strings.TrimSpace(string(listItemText(item, src)))
				if pos != "" {
					top.Positions = append(top.Positions, pos)
				}
			}

		default:
			// Headcount lines appear as plain paragraphs under a heading.
			t := strings.TrimSpace(string(blockText(n, src)))
			if hc, ok := parseHeadcount(t); ok {
				stack[len(stack)-1].unit.Headcount = hc
			}
		}
	}

	if len(root.Children) == 0 {
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("document has no units")}
	}
	// A list before the first heading lands on the synthetic root, which is
	// never indexed; fold those items into the first unit so no role title
	// is dropped.
	if len(root.Positions) > 0 {
		first := root.Children[0]
		first.Positions = append(append([]string(nil), root.Positions...), first.Positions...)
		root.Positions = nil
	}
	return root, nil
}

func parseHeadcount(line string) (int, bool) {
	for _, prefix := range []string{"Headcount:", "headcount:"} {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n >= 0 {
				return n, true
			}
		}
	}
	return 0, false
}

// listItemText extracts the text of a single list item, inline runs included.
func listItemText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.Write(blockText(c, src))
	}
	return buf.Bytes()
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		if buf.Len() > 0 {
			return buf.Bytes()
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.Write(blockText(c, src))
		}
	}
	return buf.Bytes()
}
