// Package classify maps role titles to categories that drive content
// budgeting downstream. Classification is a pure function over ordered
// keyword rules.
package classify

import "strings"

// Category is the closed set of role categories.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryFinance    Category = "finance"
	CategorySupport    Category = "support"
	CategoryManagement Category = "management"
	CategorySales      Category = "sales"
	// CategoryTechnicalManagement covers management-tier roles inside
	// infrastructure/technical departments whose titles carry no
	// technical keyword of their own.
	CategoryTechnicalManagement Category = "technical_management"
	// CategoryBusiness is the generic fallback.
	CategoryBusiness Category = "business"
)

type rule struct {
	category Category
	keywords []string
}

// rules are ordered from most to least specific; the first category with a
// matching keyword wins. Keep support ahead of management so titles like
// "Executive Assistant" land in support.
var rules = []rule{
	{CategoryTechnical, []string{
		"engineer", "developer", "programmer", "architect", "devops",
		"sre", "backend", "frontend", "fullstack", "full-stack",
		"system administrator", "sysadmin", "dba", "qa", "tester",
		"data scientist", "machine learning",
	}},
	{CategoryFinance, []string{
		"accountant", "auditor", "treasurer", "economist", "controller",
		"financial analyst", "underwriter", "actuary",
	}},
	{CategorySupport, []string{
		"assistant", "secretary", "receptionist", "clerk", "courier",
		"operator", "dispatcher", "office manager",
	}},
	{CategoryManagement, []string{
		"head of", "director", "chief", "manager", "lead", "supervisor",
		"superintendent", "deputy",
	}},
	{CategorySales, []string{
		"sales", "account executive", "business development", "merchandis",
	}},
}

// technicalDepartments marks infrastructure/technical department names for
// the secondary department pass.
var technicalDepartments = []string{
	"it", "information technology", "infrastructure", "digital",
	"software", "technical", "technology", "data", "automation",
}

// Short tokens that would false-positive as substrings ("audit" contains
// "it") are matched on word boundaries instead.
var wordOnly = map[string]bool{"it": true, "qa": true, "dba": true, "sre": true}

// Classify returns the role category for a title within a department.
// The title pass runs first; only when no title keyword fires does the
// department name get a say.
func Classify(title, department string) Category {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matches(t, kw) {
				return r.category
			}
		}
	}

	d := strings.ToLower(strings.TrimSpace(department))
	for _, kw := range technicalDepartments {
		if matches(d, kw) {
			return CategoryTechnicalManagement
		}
	}
	return CategoryBusiness
}

func matches(s, keyword string) bool {
	if !wordOnly[keyword] {
		return strings.Contains(s, keyword)
	}
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if word == keyword {
			return true
		}
	}
	return false
}

// IsTechnical reports whether the category calls for the full technical
// reference document.
func (c Category) IsTechnical() bool {
	return c == CategoryTechnical || c == CategoryTechnicalManagement
}
