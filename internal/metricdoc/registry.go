// Package metricdoc resolves departments to supporting metric documents
// through a three-tier fallback chain that always terminates with
// non-empty content.
package metricdoc

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocID identifies a registered metric document.
type DocID string

// Entry maps a department-name pattern to a document identifier. Entries
// are kept in a slice, not a map: matching order is registration order and
// must stay stable across runs.
type Entry struct {
	Pattern string `yaml:"pattern"`
	DocID   DocID  `yaml:"doc_id"`
}

// Registry is the static pattern table plus identifier-to-filename map.
// Read-only after construction.
type Registry struct {
	entries []Entry
	files   map[DocID]string
}

// DefaultRegistry returns the built-in registration table. Deployments
// override it with a YAML file, but the service works out of the box for
// the common department names.
func DefaultRegistry() *Registry {
	return &Registry{
		entries: []Entry{
			{Pattern: "IT Department", DocID: "kpi_it"},
			{Pattern: "Information Technology", DocID: "kpi_it"},
			{Pattern: "Accounting", DocID: "kpi_finance"},
			{Pattern: "Finance", DocID: "kpi_finance"},
			{Pattern: "Sales", DocID: "kpi_sales"},
			{Pattern: "Commercial", DocID: "kpi_sales"},
			{Pattern: "Human Resources", DocID: "kpi_hr"},
			{Pattern: "HR", DocID: "kpi_hr"},
			{Pattern: "Logistics", DocID: "kpi_logistics"},
			{Pattern: "Warehouse", DocID: "kpi_logistics"},
			{Pattern: "Production", DocID: "kpi_production"},
			{Pattern: "Manufacturing", DocID: "kpi_production"},
			{Pattern: "Legal", DocID: "kpi_legal"},
			{Pattern: "Security", DocID: "kpi_security"},
			{Pattern: "Marketing", DocID: "kpi_marketing"},
		},
		files: map[DocID]string{
			"kpi_it":         "kpi_it.md",
			"kpi_finance":    "kpi_finance.md",
			"kpi_sales":      "kpi_sales.md",
			"kpi_hr":         "kpi_hr.md",
			"kpi_logistics":  "kpi_logistics.md",
			"kpi_production": "kpi_production.md",
			"kpi_legal":      "kpi_legal.md",
			"kpi_security":   "kpi_security.md",
			"kpi_marketing":  "kpi_marketing.md",
		},
	}
}

type registryFile struct {
	Entries []Entry          `yaml:"entries"`
	Files   map[DocID]string `yaml:"files"`
}

// LoadRegistry reads a registry definition from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if len(rf.Entries) == 0 || len(rf.Files) == 0 {
		return nil, fmt.Errorf("registry %s is empty", path)
	}
	for _, e := range rf.Entries {
		if _, ok := rf.Files[e.DocID]; !ok {
			return nil, fmt.Errorf("registry %s: entry %q references unknown doc id %q", path, e.Pattern, e.DocID)
		}
	}
	return &Registry{entries: rf.Entries, files: rf.Files}, nil
}

// Lookup finds the document identifier for a department name: exact match
// on the normalized pattern first, then substring-contains in either
// direction, first entry in registration order winning. Deterministic by
// construction, not "best match".
func (r *Registry) Lookup(department string) (DocID, bool) {
	name := normalize(department)
	if name == "" {
		return "", false
	}
	for _, e := range r.entries {
		if normalize(e.Pattern) == name {
			return e.DocID, true
		}
	}
	for _, e := range r.entries {
		p := normalize(e.Pattern)
		if strings.Contains(name, p) || strings.Contains(p, name) {
			return e.DocID, true
		}
	}
	return "", false
}

// Filename returns the stored filename for a document identifier.
func (r *Registry) Filename(id DocID) (string, bool) {
	f, ok := r.files[id]
	return f, ok
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
