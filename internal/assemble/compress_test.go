package assemble

import (
	"strings"
	"testing"

	"github.com/dgallion1/orgcontext/internal/classify"
)

const sampleReference = `# Company Reference

The company operates across several regions.

## Technology Landscape

Our systems run on a mix of cloud and on-premise infrastructure.

Platform teams maintain the shared engineering tooling.

## Financial Governance

Budget cycles are annual with quarterly revenue reviews.

Cost controls are owned by the finance organization.

## People and Culture

Hiring follows a structured interview process.
`

func TestTierForCategory(t *testing.T) {
	cases := []struct {
		category classify.Category
		want     Tier
	}{
		{classify.CategoryTechnical, TierFull},
		{classify.CategoryTechnicalManagement, TierFull},
		{classify.CategoryFinance, TierFiltered},
		{classify.CategoryManagement, TierCompressed},
		{classify.CategorySales, TierCompressed},
		{classify.CategorySupport, TierMinimal},
		{classify.CategoryBusiness, TierCompressed},
	}
	for _, tc := range cases {
		if got := TierForCategory(tc.category); got != tc.want {
			t.Errorf("TierForCategory(%s) = %s, want %s", tc.category, got, tc.want)
		}
	}
}

func TestNewReferenceDoc_SplitsSections(t *testing.T) {
	doc := NewReferenceDoc(sampleReference, 4000)
	if doc.Title != "Company Reference" {
		t.Errorf("unexpected title: %q", doc.Title)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[1].Title != "Technology Landscape" {
		t.Errorf("unexpected section: %q", doc.Sections[1].Title)
	}
}

func TestCompress_FullReturnsRaw(t *testing.T) {
	doc := NewReferenceDoc(sampleReference, 4000)
	if doc.Compress(TierFull, classify.CategoryTechnical) != sampleReference {
		t.Error("full tier must return the raw document")
	}
}

func TestCompress_SummaryKeepsFirstParagraphs(t *testing.T) {
	doc := NewReferenceDoc(sampleReference, 4000)
	out := doc.Compress(TierCompressed, classify.CategoryManagement)

	if !strings.Contains(out, "## Technology Landscape") {
		t.Error("summary must keep section headings")
	}
	if !strings.Contains(out, "cloud and on-premise") {
		t.Error("summary must keep the first paragraph of a section")
	}
	if strings.Contains(out, "shared engineering tooling") {
		t.Error("summary must drop paragraphs past the first")
	}
}

func TestCompress_FilteredKeepsDomainSections(t *testing.T) {
	doc := NewReferenceDoc(sampleReference, 4000)
	out := doc.Compress(TierFiltered, classify.CategoryFinance)

	if !strings.Contains(out, "quarterly revenue reviews") ||
		!strings.Contains(out, "owned by the finance organization") {
		t.Error("filtered tier must keep matching sections in full")
	}
	if strings.Contains(out, "structured interview process") {
		t.Error("filtered tier must drop non-matching section bodies")
	}
	// Non-matching sections survive as headings only.
	if !strings.Contains(out, "## People and Culture") {
		t.Error("filtered tier keeps non-matching titles for orientation")
	}
}

func TestCompress_MinimalIsBounded(t *testing.T) {
	// Build a reference document big enough to matter.
	var big strings.Builder
	big.WriteString("# Big Reference\n\nOpening overview paragraph.\n\n")
	for i := 0; i < 200; i++ {
		big.WriteString("## Section ")
		big.WriteString(strings.Repeat("x", i%7+1))
		big.WriteString("\n\n")
		big.WriteString(strings.Repeat("body text ", 120))
		big.WriteString("\n\n")
	}

	doc := NewReferenceDoc(big.String(), 4000)
	out := doc.Compress(TierMinimal, classify.CategorySupport)

	if len(out) > 5000 {
		t.Fatalf("minimal overview must stay bounded, got %d chars", len(out))
	}
	if !strings.Contains(out, "# Big Reference") {
		t.Error("minimal overview keeps the document title")
	}
	if strings.Contains(out, "body text") {
		t.Error("minimal overview must not include section bodies")
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("", 4) != 0 {
		t.Error("empty text is zero tokens")
	}
	if got := EstimateTokens(strings.Repeat("a", 400), 4); got != 100 {
		t.Errorf("expected 100 tokens, got %d", got)
	}
	if EstimateTokens("ab", 4) != 1 {
		t.Error("non-empty text is at least one token")
	}
	if got := EstimateTokens(strings.Repeat("a", 400), 0); got != 100 {
		t.Errorf("zero divisor falls back to default, got %d", got)
	}
}
