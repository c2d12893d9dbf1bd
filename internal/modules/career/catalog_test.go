package career

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadCatalogCSV(t *testing.T) {
	path := writeFile(t, "careers.csv", "\ufeffCareer Name,Skills,Description\n"+
		"Data Analyst,\"sql, excel\",Analyze business data\n"+
		"Web Developer,html css,\n")
	cat, err := LoadCatalog(path, "")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("len: want=2 got=%d", cat.Len())
	}
	if got := cat.Careers[0].Get(DefaultNameColumn); got != "Data Analyst" {
		t.Fatalf("name: want=%q got=%q", "Data Analyst", got)
	}
	if got := cat.Careers[0].Text(); got != "Data Analyst sql, excel Analyze business data" {
		t.Fatalf("text: got=%q", got)
	}
	if got := cat.Careers[1].Text(); got != "Web Developer html css" {
		t.Fatalf("text with empty column: got=%q", got)
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	path := writeFile(t, "careers.yaml", `
- Career Name: Cloud Engineer
  Skills: [aws, docker, kubernetes]
- Career Name: Data Scientist
  Skills: [python, statistics]
  Level: senior
`)
	cat, err := LoadCatalog(path, "")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("len: want=2 got=%d", cat.Len())
	}
	if got := cat.Careers[0].Get("Skills"); got != "aws, docker, kubernetes" {
		t.Fatalf("skills: got=%q", got)
	}
	if got := cat.Careers[1].Columns; len(got) != 3 || got[2] != "Level" {
		t.Fatalf("columns: got=%v", got)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.csv"), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadCatalog(writeFile(t, "empty.csv", "Career Name\n"), ""); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
	if _, err := LoadCatalog(writeFile(t, "bad.yaml", "career: not-a-list\n"), ""); err == nil {
		t.Fatalf("expected error for non-list yaml")
	}
}
