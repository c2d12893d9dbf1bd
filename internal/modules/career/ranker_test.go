package career

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	mk := func(name, skills string) Career {
		return Career{
			Attributes: map[string]string{DefaultNameColumn: name, "Skills": skills},
			Columns:    []string{DefaultNameColumn, "Skills"},
		}
	}
	cat, err := NewCatalog([]Career{
		mk("Data Analyst", "sql excel statistics dashboards reporting"),
		mk("Frontend Developer", "html css javascript react"),
		mk("Cloud Engineer", "aws docker kubernetes terraform linux"),
		mk("Machine Learning Engineer", "python statistics tensorflow pytorch"),
	}, "")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func TestRankOrdersBySimilarity(t *testing.T) {
	r, err := NewRanker(logger.NewNop(), testCatalog(t), 8)
	if err != nil {
		t.Fatalf("NewRanker: %v", err)
	}
	got, err := r.Rank("I love docker and kubernetes on aws", 2)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len: want=2 got=%d", len(got))
	}
	if name := got[0].Career.Get(DefaultNameColumn); name != "Cloud Engineer" {
		t.Fatalf("top: want=Cloud Engineer got=%q", name)
	}
	if got[0].Score <= got[1].Score {
		t.Fatalf("scores not descending: %v >= %v", got[1].Score, got[0].Score)
	}
	if got[0].Score <= 0 || got[0].Score > 1.0000001 {
		t.Fatalf("cosine out of range: %v", got[0].Score)
	}
}

func TestRankClampsTopN(t *testing.T) {
	r, _ := NewRanker(logger.NewNop(), testCatalog(t), 0)
	got, err := r.Rank("statistics", 50)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len: want=4 got=%d", len(got))
	}
}

func TestRankValidation(t *testing.T) {
	r, _ := NewRanker(logger.NewNop(), testCatalog(t), 0)
	if _, err := r.Rank("  ", 3); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("empty query: got=%v", err)
	}
	if _, err := r.Rank("python", 0); !errors.Is(err, ErrInvalidTopN) {
		t.Fatalf("top_n 0: got=%v", err)
	}
}

func TestRankWithoutCatalogIsUnavailable(t *testing.T) {
	r, err := NewRanker(logger.NewNop(), nil, 4)
	if err != nil {
		t.Fatalf("NewRanker: %v", err)
	}
	if r.Loaded() {
		t.Fatalf("expected unloaded ranker")
	}
	if _, err := r.Rank("python", 3); !IsUnavailable(err) {
		t.Fatalf("err: want ErrModelUnavailable got=%v", err)
	}
}

func TestRankCacheReturnsCopies(t *testing.T) {
	r, _ := NewRanker(logger.NewNop(), testCatalog(t), 4)
	first, _ := r.Rank("react css", 2)
	first[0].Score = -1

	second, err := r.Rank("React CSS", 2)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if second[0].Score < 0 {
		t.Fatalf("cache leaked a mutable slice")
	}
	if name := second[0].Career.Get(DefaultNameColumn); name != "Frontend Developer" {
		t.Fatalf("top: got=%q", name)
	}
}

func TestMatchJSONFlattensAttributes(t *testing.T) {
	m := Match{
		Career: Career{Attributes: map[string]string{DefaultNameColumn: "Data Analyst"}, Columns: []string{DefaultNameColumn}},
		Score:  0.5,
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"Career Name":"Data Analyst"`) || !strings.Contains(string(raw), `"score":0.5`) {
		t.Fatalf("json: got=%s", raw)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("C++ and Node.js, a R-lang_dev!")
	want := []string{"and", "node", "js", "lang_dev"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("tokenize: want=%v got=%v", want, got)
	}
}
