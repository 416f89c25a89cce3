package orgchart

import (
	"strings"
	"testing"
)

const sampleYAML = `
name: Company
children:
  - name: Block X
    headcount: 120
    positions:
      - Head of Block
    children:
      - name: IT Department
        positions:
          - Senior Backend Engineer
          - System Administrator
      - name: Accounting
        positions:
          - Chief Accountant
  - name: Block Y
    children:
      - name: Accounting
        positions:
          - Accountant
`

func TestYAMLParser_Parse(t *testing.T) {
	p := &YAMLParser{}
	root, err := p.Parse(strings.NewReader(sampleYAML), "org.yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if root.Name != "Company" {
		t.Errorf("expected root name Company, got %q", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(root.Children))
	}

	blockX := root.Children[0]
	if blockX.Name != "Block X" {
		t.Errorf("expected Block X, got %q", blockX.Name)
	}
	if blockX.Headcount != 120 {
		t.Errorf("expected headcount 120, got %d", blockX.Headcount)
	}
	if len(blockX.Positions) != 1 || blockX.Positions[0] != "Head of Block" {
		t.Errorf("unexpected positions: %v", blockX.Positions)
	}

	it := blockX.Child("IT Department")
	if it == nil {
		t.Fatal("IT Department missing")
	}
	if len(it.Positions) != 2 {
		t.Errorf("expected 2 positions in IT Department, got %d", len(it.Positions))
	}

	// Both blocks carry an Accounting unit; neither may be dropped.
	if blockX.Child("Accounting") == nil {
		t.Error("Block X Accounting missing")
	}
	if root.Children[1].Child("Accounting") == nil {
		t.Error("Block Y Accounting missing")
	}
}

func TestYAMLParser_RootNameFallsBackToFilename(t *testing.T) {
	p := &YAMLParser{}
	root, err := p.Parse(strings.NewReader("children:\n  - name: Only Unit\n"), "acme.yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Name != "acme" {
		t.Errorf("expected root name acme, got %q", root.Name)
	}
}

func TestYAMLParser_EmptyDocumentFails(t *testing.T) {
	p := &YAMLParser{}
	if _, err := p.Parse(strings.NewReader("{}"), "empty.yaml"); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestYAMLParser_NamelessUnitFoldsIntoParent(t *testing.T) {
	src := `
name: Company
children:
  - name: Block X
    children:
      - positions:
          - Orphan Role
`
	p := &YAMLParser{}
	root, err := p.Parse(strings.NewReader(src), "org.yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	blockX := root.Children[0]
	if len(blockX.Positions) != 1 || blockX.Positions[0] != "Orphan Role" {
		t.Errorf("expected orphan position folded into parent, got %v", blockX.Positions)
	}
}

func TestForFile(t *testing.T) {
	if _, err := ForFile("org.yaml"); err != nil {
		t.Errorf("yaml should be supported: %v", err)
	}
	if _, err := ForFile("org.md"); err != nil {
		t.Errorf("markdown should be supported: %v", err)
	}
	if _, err := ForFile("org.pdf"); err == nil {
		t.Error("pdf org charts should be rejected")
	}
}
