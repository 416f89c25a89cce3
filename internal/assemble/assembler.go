// Package assemble combines the organization index, metric resolver, role
// classifier and reference compressor into a bounded context record for
// the downstream generation-prompt builder.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/orgcontext/internal/classify"
	"github.com/dgallion1/orgcontext/internal/metricdoc"
	"github.com/dgallion1/orgcontext/internal/orgindex"
	"github.com/dgallion1/orgcontext/internal/orgtree"
)

// NotAvailable is the sentinel substituted for any field whose source data
// is missing. Assembly never fails on missing inputs.
const NotAvailable = "not available"

// AssembledContext is the per-request output record. Field names are
// substituted into a fixed generation instruction downstream, so both the
// Go names and the JSON tags must stay stable.
type AssembledContext struct {
	ID         string `json:"id"`
	Department string `json:"department"`
	Role       string `json:"role"`

	OrgSnippet       string               `json:"org_snippet"`
	MetricContent    string               `json:"metric_content"`
	MetricProvenance metricdoc.Provenance `json:"metric_provenance"`
	RoleCategory     classify.Category    `json:"role_category"`

	Hierarchy orgindex.PositionPath `json:"hierarchy"`
	FullPath  string                `json:"full_path"`

	ReferenceContent string `json:"reference_content"`
	ReferenceTier    Tier   `json:"reference_tier"`

	EstimatedTokens int       `json:"estimated_tokens"`
	AssembledAt     time.Time `json:"assembled_at"`
}

// Assembler is the top-level orchestrator. All collaborators are owned
// explicitly; nothing here is process-global.
type Assembler struct {
	loader       *orgindex.Loader
	metrics      *metricdoc.Resolver
	refdoc       *ReferenceDoc
	tokenDivisor int
	stats        *Stats
	log          *slog.Logger
}

// New wires an assembler from its collaborators. refdoc may be nil when no
// reference document is configured; assembly degrades to the sentinel.
func New(loader *orgindex.Loader, metrics *metricdoc.Resolver, refdoc *ReferenceDoc, tokenDivisor int, log *slog.Logger) *Assembler {
	if tokenDivisor <= 0 {
		tokenDivisor = DefaultTokenDivisor
	}
	return &Assembler{
		loader:       loader,
		metrics:      metrics,
		refdoc:       refdoc,
		tokenDivisor: tokenDivisor,
		stats:        NewStats(time.Hour),
		log:          log,
	}
}

// Assemble produces the context record for a (department, role) request.
// The only error condition is an unavailable index; every other missing
// input degrades to a defined fallback value.
func (a *Assembler) Assemble(department, role string) (*AssembledContext, error) {
	start := time.Now()

	idx, err := a.loader.Get()
	if err != nil {
		return nil, fmt.Errorf("organization index unavailable: %w", err)
	}

	category := classify.Classify(role, department)
	resolution := a.metrics.Resolve(idx, department)
	hierarchy := idx.ExtractPositionPath(department, role)

	ac := &AssembledContext{
		ID:               newContextID(),
		Department:       strings.TrimSpace(department),
		Role:             strings.TrimSpace(role),
		OrgSnippet:       a.orgSnippet(idx, department),
		MetricContent:    resolution.Content,
		MetricProvenance: resolution.Provenance,
		RoleCategory:     category,
		Hierarchy:        hierarchy,
		FullPath:         hierarchy.FullPath,
		ReferenceTier:    TierForCategory(category),
		AssembledAt:      start,
	}

	if a.refdoc != nil {
		ac.ReferenceContent = a.refdoc.Compress(ac.ReferenceTier, category)
	} else {
		ac.ReferenceContent = NotAvailable
	}

	ac.EstimatedTokens = EstimateTokens(ac.OrgSnippet, a.tokenDivisor) +
		EstimateTokens(ac.MetricContent, a.tokenDivisor) +
		EstimateTokens(ac.ReferenceContent, a.tokenDivisor)

	a.stats.Record(time.Since(start), ac.EstimatedTokens)
	a.log.Debug("context assembled",
		"id", ac.ID,
		"department", ac.Department,
		"role", ac.Role,
		"category", ac.RoleCategory,
		"provenance", ac.MetricProvenance,
		"tier", ac.ReferenceTier,
		"tokens", ac.EstimatedTokens,
	)
	return ac, nil
}

// orgSnippet renders the department's place in the organization as a short
// text block: path, headcount, own positions and direct subunits.
func (a *Assembler) orgSnippet(idx *orgindex.Index, department string) string {
	unit, err := idx.FindDepartment(department)
	if err != nil {
		return NotAvailable
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Unit: %s\n", unit.Name)
	fmt.Fprintf(&buf, "Path: %s\n", unit.PathKey())
	if unit.Headcount > 0 {
		fmt.Fprintf(&buf, "Headcount: %d\n", unit.Headcount)
	}
	if len(unit.Positions) > 0 {
		buf.WriteString("Positions:\n")
		for _, p := range unit.Positions {
			buf.WriteString("  - " + p + "\n")
		}
	}
	if len(unit.Children) > 0 {
		buf.WriteString("Subunits:\n")
		for _, c := range unit.Children {
			fmt.Fprintf(&buf, "  - %s (%d positions)\n", c.Name, len(c.Positions))
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Units exposes the flat search listing through the current index.
func (a *Assembler) Units() ([]orgtree.Summary, error) {
	idx, err := a.loader.Get()
	if err != nil {
		return nil, err
	}
	return idx.Units(), nil
}

// HighlightTree builds the annotated structure for a target. A short
// department name is resolved to its path first; an unresolvable target
// yields an unannotated tree rather than an error.
func (a *Assembler) HighlightTree(target string) (*orgtree.HighlightedNode, error) {
	idx, err := a.loader.Get()
	if err != nil {
		return nil, err
	}
	if !orgtree.IsPath(target) {
		if unit, uerr := idx.FindDepartment(target); uerr == nil {
			target = unit.PathKey()
		}
	}
	return idx.HighlightStructure(target), nil
}

// Coverage runs the resolver coverage probe over every indexed unit.
func (a *Assembler) Coverage(ctx context.Context, workers int) (metricdoc.CoverageProbe, error) {
	idx, err := a.loader.Get()
	if err != nil {
		return metricdoc.CoverageProbe{}, err
	}
	return a.metrics.Coverage(ctx, idx, workers), nil
}

// Reload rebuilds the index and drops memoized metric documents.
func (a *Assembler) Reload() error {
	if _, err := a.loader.Reload(); err != nil {
		return err
	}
	a.metrics.InvalidateCache()
	a.log.Info("index reloaded, metric cache invalidated")
	return nil
}

// Stats returns the rolling assembly statistics.
func (a *Assembler) Stats() StatsSnapshot {
	return a.stats.Snapshot()
}
