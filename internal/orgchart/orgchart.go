// Package orgchart parses hierarchical org-chart documents into a raw unit
// tree. Path and level assignment happens later, at index build.
package orgchart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/orgcontext/internal/orgtree"
)

// Parser converts a raw org-chart document into a unit tree. The returned
// root is the synthetic document root; indexed units are its descendants.
type Parser interface {
	Parse(r io.Reader, filename string) (*orgtree.Unit, error)
}

// ParseError is the one fatal condition in this core: the org chart could
// not be turned into a usable tree. Index build fails closed on it.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("org chart %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SupportedExtensions lists org-chart formats this service can handle.
var SupportedExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".md":   true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported org chart format: %s", ext)
	}
}

// ParseFile opens and parses an org-chart document from disk.
func ParseFile(path string) (*orgtree.Unit, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, &ParseError{Filename: filepath.Base(path), Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Filename: filepath.Base(path), Err: err}
	}
	defer f.Close()
	return p.Parse(f, filepath.Base(path))
}
