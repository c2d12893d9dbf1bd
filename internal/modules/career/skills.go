package career

import (
	"sort"
	"strings"
	"unicode"
)

var skillKeywords = []string{
	"python", "sql", "excel", "statistics", "pandas", "numpy", "tableau", "powerbi", "r",
	"java", "c++", "javascript", "html", "css", "react", "node.js", "node", "django", "flask",
	"machine learning", "deep learning", "nlp", "tensorflow", "pytorch", "aws", "gcp", "azure",
	"docker", "kubernetes", "git", "linux", "data visualization", "scikit-learn", "spark",
	"hadoop", "communication", "teamwork", "problem solving",
}

// ExtractSkills returns the known skill keywords mentioned in text, sorted and unique. A
// keyword only matches on word boundaries, so "r" does not match inside "react".
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := map[string]struct{}{}
	for _, kw := range skillKeywords {
		if containsWord(lower, kw) {
			found[kw] = struct{}{}
		}
	}
	out := make([]string, 0, len(found))
	for kw := range found {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func containsWord(text, word string) bool {
	for from := 0; from <= len(text)-len(word); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	r := rune(b)
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func boundaryBefore(text string, i int) bool { return i == 0 || !isWordByte(text[i-1]) }

func boundaryAfter(text string, i int) bool { return i >= len(text) || !isWordByte(text[i]) }
