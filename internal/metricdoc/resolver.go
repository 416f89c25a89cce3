package metricdoc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dgallion1/orgcontext/internal/orgindex"
	"github.com/dgallion1/orgcontext/internal/orgtree"
)

// Provenance records which resolution tier produced the content.
type Provenance string

const (
	ProvenanceSpecific  Provenance = "specific"
	ProvenanceInherited Provenance = "inherited"
	ProvenanceTemplate  Provenance = "template"
	ProvenanceFallback  Provenance = "fallback"
)

// Resolution is the result of resolving a department to metric content.
// Content is never empty: some tier always produces text.
type Resolution struct {
	Content    string     `json:"content"`
	Provenance Provenance `json:"provenance"`
	// DocID is set for specific/inherited resolutions.
	DocID DocID `json:"doc_id,omitempty"`
	// InheritedFrom names the ancestor whose document was used.
	InheritedFrom string `json:"inherited_from,omitempty"`
	// TemplateTag is set for template resolutions.
	TemplateTag TemplateTag `json:"template_tag,omitempty"`
}

// Resolver walks the three resolution tiers. Loaded document content is
// memoized in an LRU cache keyed by resolved filename; entries are evicted
// only on explicit invalidation (reload) or capacity pressure.
type Resolver struct {
	registry  *Registry
	docsDir   string
	charLimit int
	cache     *lru.Cache[string, string]
	log       *slog.Logger
}

// NewResolver creates a resolver over a registry and a document directory.
func NewResolver(registry *Registry, docsDir string, cacheSize, charLimit int, log *slog.Logger) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = 64
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("metric doc cache: %w", err)
	}
	return &Resolver{
		registry:  registry,
		docsDir:   docsDir,
		charLimit: charLimit,
		cache:     cache,
		log:       log,
	}, nil
}

// Resolve finds metric content for a department. Tier 1 tries a specific
// registered document for the department itself; tier 2 walks the ancestor
// chain from immediate parent to root; tier 3 falls back to a category
// template. A terminal minimal document guarantees non-empty output even
// with a corrupt registry.
func (r *Resolver) Resolve(idx *orgindex.Index, department string) Resolution {
	unit, err := idx.FindDepartment(department)

	name := department
	if err == nil {
		name = unit.Name
	}

	// Tier 1: specific document for the department itself. The raw input
	// gets a second chance only when it is a short name: a full-path key
	// embeds ancestor names, and the registry's substring pass would match
	// one of those and misreport an inherited document as specific.
	if content, id, ok := r.resolveSpecific(name); ok {
		return Resolution{Content: content, Provenance: ProvenanceSpecific, DocID: id}
	}
	if err == nil && name != department && !orgtree.IsPath(department) {
		if content, id, ok := r.resolveSpecific(department); ok {
			return Resolution{Content: content, Provenance: ProvenanceSpecific, DocID: id}
		}
	}

	// Tier 2: inherit from the nearest ancestor with a resolvable document.
	if err == nil {
		for _, ancestorPath := range orgindex.AncestorPaths(unit) {
			ancestor, aerr := idx.FindUnitByPath(ancestorPath)
			if aerr != nil {
				continue
			}
			if content, id, ok := r.resolveSpecific(ancestor.Name); ok {
				return Resolution{
					Content:       content,
					Provenance:    ProvenanceInherited,
					DocID:         id,
					InheritedFrom: ancestor.Name,
				}
			}
		}
	}

	// Tier 3: category template.
	tag := ClassifyTemplate(name)
	if text, ok := Template(tag); ok && text != "" {
		return Resolution{
			Content:     postProcess(text, r.charLimit),
			Provenance:  ProvenanceTemplate,
			TemplateTag: tag,
		}
	}

	// All tiers exhausted. Operators should know, callers should not fail.
	r.log.Warn("metric resolution exhausted", "department", department)
	return Resolution{
		Content:    postProcess(FallbackDocument, r.charLimit),
		Provenance: ProvenanceFallback,
	}
}

// resolveSpecific performs a tier-1 lookup for a single name: registry
// pattern match, then document load with memoization.
func (r *Resolver) resolveSpecific(name string) (string, DocID, bool) {
	id, ok := r.registry.Lookup(name)
	if !ok {
		return "", "", false
	}
	filename, ok := r.registry.Filename(id)
	if !ok {
		return "", "", false
	}

	if content, ok := r.cache.Get(filename); ok {
		return content, id, content != ""
	}

	content, err := loadDocument(filepath.Join(r.docsDir, filename))
	if err != nil {
		// Registered but unreadable counts as a tier miss; the next
		// tier takes over. Cache the miss so we stat at most once.
		r.log.Warn("metric document unavailable", "doc_id", id, "file", filename, "error", err)
		r.cache.Add(filename, "")
		return "", "", false
	}
	content = postProcess(content, r.charLimit)
	r.cache.Add(filename, content)
	return content, id, content != ""
}

// InvalidateCache drops all memoized document content. Called on explicit
// reload so regenerated files are picked up.
func (r *Resolver) InvalidateCache() {
	r.cache.Purge()
}

// CoverageProbe resolves every indexed unit and reports per-tier counts.
// Every unit must produce non-empty content; Empty lists violations.
type CoverageProbe struct {
	Total   int                `json:"total"`
	ByTier  map[Provenance]int `json:"by_tier"`
	Empty   []string           `json:"empty,omitempty"`
	Covered bool               `json:"covered"`
}

// Coverage resolves every indexed unit with a bounded worker pool and
// tallies which tier served each one. The 100% coverage property is a
// mandatory invariant of this core, so operators get an endpoint to
// verify it against live data.
func (r *Resolver) Coverage(ctx context.Context, idx *orgindex.Index, workers int) CoverageProbe {
	if workers <= 0 {
		workers = 4
	}
	paths := idx.Paths()

	probe := CoverageProbe{
		Total:  len(paths),
		ByTier: make(map[Provenance]int),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	work := make(chan string)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				res := r.Resolve(idx, path)
				mu.Lock()
				probe.ByTier[res.Provenance]++
				if res.Content == "" {
					probe.Empty = append(probe.Empty, path)
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return probe
		case work <- path:
		}
	}
	close(work)
	wg.Wait()

	sort.Strings(probe.Empty)
	probe.Covered = len(probe.Empty) == 0
	return probe
}
