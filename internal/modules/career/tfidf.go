package career

import (
	"math"
	"strings"
	"unicode"
)

// index is a TF-IDF model over the catalog: raw term counts weighted by smoothed idf,
// ln((1+n)/(1+df))+1, with every document vector L2-normalized. Cosine similarity is
// then a dot product.
type index struct {
	vocab map[string]int
	idf   []float64
	docs  []sparseVec
}

type sparseVec map[int]float64

func buildIndex(docs []string) *index {
	idx := &index{vocab: map[string]int{}}
	counts := make([]map[int]float64, len(docs))
	df := map[int]int{}
	for i, doc := range docs {
		counts[i] = map[int]float64{}
		for _, tok := range tokenize(doc) {
			id, ok := idx.vocab[tok]
			if !ok {
				id = len(idx.vocab)
				idx.vocab[tok] = id
			}
			if counts[i][id] == 0 {
				df[id]++
			}
			counts[i][id]++
		}
	}

	n := float64(len(docs))
	idx.idf = make([]float64, len(idx.vocab))
	for id := range idx.idf {
		idx.idf[id] = math.Log((1+n)/(1+float64(df[id]))) + 1
	}

	idx.docs = make([]sparseVec, len(docs))
	for i, c := range counts {
		idx.docs[i] = idx.weigh(c)
	}
	return idx
}

func (idx *index) weigh(counts map[int]float64) sparseVec {
	vec := make(sparseVec, len(counts))
	var norm float64
	for id, tf := range counts {
		w := tf * idx.idf[id]
		vec[id] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for id := range vec {
		vec[id] /= norm
	}
	return vec
}

// vectorize projects text onto the fitted vocabulary; unseen terms are dropped.
func (idx *index) vectorize(text string) sparseVec {
	counts := map[int]float64{}
	for _, tok := range tokenize(text) {
		if id, ok := idx.vocab[tok]; ok {
			counts[id]++
		}
	}
	return idx.weigh(counts)
}

// similarities returns the cosine similarity of text against every document.
func (idx *index) similarities(text string) []float64 {
	q := idx.vectorize(text)
	out := make([]float64, len(idx.docs))
	if len(q) == 0 {
		return out
	}
	for i, doc := range idx.docs {
		var dot float64
		for id, w := range q {
			dot += w * doc[id]
		}
		out[i] = dot
	}
	return out
}

// tokenize lowercases text and returns word tokens of at least two runes.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}
