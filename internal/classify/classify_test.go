package classify

import "testing"

func TestClassify_TitlePass(t *testing.T) {
	cases := []struct {
		title      string
		department string
		want       Category
	}{
		{"Senior Backend Engineer", "Anything", CategoryTechnical},
		{"DevOps Engineer", "Sales", CategoryTechnical},
		{"QA Lead", "Accounting", CategoryTechnical}, // title pass beats department
		{"Chief Accountant", "Accounting", CategoryFinance},
		{"Financial Analyst", "Block X", CategoryFinance},
		{"Executive Assistant", "Board Office", CategorySupport},
		{"Office Manager", "Administration", CategorySupport},
		{"Head of Logistics", "Logistics", CategoryManagement},
		{"Department Director", "Anything", CategoryManagement},
		{"Sales Representative", "Commercial Block", CategorySales},
	}
	for _, tc := range cases {
		if got := Classify(tc.title, tc.department); got != tc.want {
			t.Errorf("Classify(%q, %q) = %s, want %s", tc.title, tc.department, got, tc.want)
		}
	}
}

func TestClassify_DepartmentPass(t *testing.T) {
	// No title keyword fires; an infrastructure department promotes the
	// role to the technical management category.
	if got := Classify("Shift Coordinator of Platforms", "IT Department"); got != CategoryTechnicalManagement {
		t.Errorf("expected technical_management, got %s", got)
	}
	if got := Classify("Specialist", "Information Technology Block"); got != CategoryTechnicalManagement {
		t.Errorf("expected technical_management, got %s", got)
	}
}

func TestClassify_GenericFallback(t *testing.T) {
	if got := Classify("Specialist", "Culture Committee"); got != CategoryBusiness {
		t.Errorf("expected business fallback, got %s", got)
	}
	if got := Classify("", ""); got != CategoryBusiness {
		t.Errorf("expected business for empty input, got %s", got)
	}
}

func TestClassify_ShortTokensNeedWordBoundaries(t *testing.T) {
	// "Audit" contains "it" as a substring; it must not classify as an
	// infrastructure department.
	if got := Classify("Specialist", "Audit Department"); got == CategoryTechnicalManagement {
		t.Error("Audit Department must not match the IT pattern")
	}
}

func TestCategory_IsTechnical(t *testing.T) {
	if !CategoryTechnical.IsTechnical() || !CategoryTechnicalManagement.IsTechnical() {
		t.Error("technical categories must report technical")
	}
	if CategorySupport.IsTechnical() {
		t.Error("support is not technical")
	}
}
