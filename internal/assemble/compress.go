package assemble

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/orgcontext/internal/classify"
)

// Tier is a reference-document content-size level.
type Tier string

const (
	TierFull       Tier = "full"
	TierCompressed Tier = "compressed_summary"
	TierFiltered   Tier = "domain_filtered"
	TierMinimal    Tier = "minimal_overview"
)

// TierForCategory selects the content-size tier for a role category.
// Technical roles need the full document; support and generic clerical
// roles get the bounded minimal overview.
func TierForCategory(c classify.Category) Tier {
	switch c {
	case classify.CategoryTechnical, classify.CategoryTechnicalManagement:
		return TierFull
	case classify.CategoryFinance:
		return TierFiltered
	case classify.CategoryManagement, classify.CategorySales:
		return TierCompressed
	case classify.CategorySupport:
		return TierMinimal
	default:
		return TierCompressed
	}
}

// domainKeywords drive the domain-filtered tier: sections whose title or
// body mention the category's domain survive the filter.
var domainKeywords = map[classify.Category][]string{
	classify.CategoryFinance: {"finance", "financial", "accounting", "budget", "revenue", "cost", "audit"},
	classify.CategoryTechnical: {"technology", "technical", "system", "software", "infrastructure",
		"engineering", "data"},
	classify.CategorySales: {"sales", "customer", "commercial", "market", "revenue"},
}

// section is one heading-delimited slice of the reference document.
type section struct {
	Title string
	Level int
	Body  string
}

// ReferenceDoc is the large static reference document, loaded once and
// pre-split into heading sections for tiered compression.
type ReferenceDoc struct {
	Title    string
	Raw      string
	Sections []section

	minimalLimit int
}

// LoadReferenceDoc reads and splits the reference document. An absent file
// is not fatal: assembly substitutes the "not available" sentinel instead.
func LoadReferenceDoc(path string, minimalLimit int) (*ReferenceDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load reference document: %w", err)
	}
	return NewReferenceDoc(string(data), minimalLimit), nil
}

// NewReferenceDoc splits markdown text into heading sections via the
// goldmark AST.
func NewReferenceDoc(raw string, minimalLimit int) *ReferenceDoc {
	if minimalLimit <= 0 {
		minimalLimit = 4000
	}
	doc := &ReferenceDoc{Raw: raw, minimalLimit: minimalLimit}

	src := []byte(raw)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var current *section
	flush := func() {
		if current != nil {
			current.Body = strings.TrimSpace(current.Body)
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			title := strings.TrimSpace(string(h.Text(src)))
			if doc.Title == "" && h.Level == 1 {
				doc.Title = title
			}
			flush()
			current = &section{Title: title, Level: h.Level}
			continue
		}
		body := strings.TrimSpace(string(blockLines(n, src)))
		if body == "" {
			continue
		}
		if current == nil {
			current = &section{}
		}
		if current.Body != "" {
			current.Body += "\n\n"
		}
		current.Body += body
	}
	flush()
	return doc
}

func blockLines(n ast.Node, src []byte) []byte {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	if buf.Len() > 0 {
		return []byte(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.Write(blockLines(c, src))
	}
	return []byte(buf.String())
}

// Compress renders the document at the given tier for a role category.
func (d *ReferenceDoc) Compress(tier Tier, category classify.Category) string {
	switch tier {
	case TierFull:
		return d.Raw
	case TierFiltered:
		return d.filtered(category)
	case TierMinimal:
		return d.minimal()
	default:
		return d.summary()
	}
}

// summary keeps every section title plus its first paragraph.
func (d *ReferenceDoc) summary() string {
	var buf strings.Builder
	for _, s := range d.Sections {
		writeSectionHead(&buf, s)
		if para := firstParagraph(s.Body); para != "" {
			buf.WriteString(para)
			buf.WriteString("\n\n")
		}
	}
	return strings.TrimSpace(buf.String())
}

// filtered keeps full sections matching the category's domain keywords and
// summarizes the rest down to their titles. Falls back to the summary when
// the category has no keyword set or nothing matches.
func (d *ReferenceDoc) filtered(category classify.Category) string {
	keywords := domainKeywords[category]
	if category == classify.CategoryTechnicalManagement {
		keywords = domainKeywords[classify.CategoryTechnical]
	}
	if len(keywords) == 0 {
		return d.summary()
	}

	var buf strings.Builder
	matched := false
	for _, s := range d.Sections {
		if sectionMatches(s, keywords) {
			matched = true
			writeSectionHead(&buf, s)
			buf.WriteString(s.Body)
			buf.WriteString("\n\n")
		} else if s.Title != "" {
			writeSectionHead(&buf, s)
		}
	}
	if !matched {
		return d.summary()
	}
	return strings.TrimSpace(buf.String())
}

// minimal is the bounded overview: document title, table of contents and
// the leading paragraph, always under the configured character limit.
func (d *ReferenceDoc) minimal() string {
	var buf strings.Builder
	if d.Title != "" {
		buf.WriteString("# " + d.Title + "\n\n")
	}
	for _, s := range d.Sections {
		if s.Title == "" || s.Title == d.Title {
			if para := firstParagraph(s.Body); para != "" && buf.Len()+len(para) < d.minimalLimit {
				buf.WriteString(para + "\n\n")
			}
			continue
		}
		line := strings.Repeat("  ", max(s.Level-1, 0)) + "- " + s.Title + "\n"
		if buf.Len()+len(line) >= d.minimalLimit {
			break
		}
		buf.WriteString(line)
	}
	out := strings.TrimSpace(buf.String())
	if len(out) > d.minimalLimit {
		out = out[:d.minimalLimit]
	}
	return out
}

func sectionMatches(s section, keywords []string) bool {
	hay := strings.ToLower(s.Title + " " + s.Body)
	for _, kw := range keywords {
		if strings.Contains(hay, kw) {
			return true
		}
	}
	return false
}

func writeSectionHead(buf *strings.Builder, s section) {
	if s.Title == "" {
		return
	}
	level := s.Level
	if level <= 0 {
		level = 2
	}
	buf.WriteString(strings.Repeat("#", level) + " " + s.Title + "\n\n")
}

func firstParagraph(body string) string {
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			return para
		}
	}
	return ""
}
