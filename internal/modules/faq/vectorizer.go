package faq

import (
	"math"
	"strings"
	"unicode"
)

type sparseVec = map[int]float64

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Mn, r)
}

// tokenize lowercases s and returns every maximal run of two or more word
// characters.
func tokenize(s string) []string {
	s = strings.ToLower(s)
	var tokens []string
	var cur strings.Builder
	runes := 0
	flush := func() {
		if runes >= 2 {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		runes = 0
	}
	for _, r := range s {
		if isWordRune(r) {
			cur.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// fitTransform builds L2-normalised TF-IDF vectors for docs using raw term
// counts and smoothed idf: ln((1+n)/(1+df)) + 1.
func fitTransform(docs []string) []sparseVec {
	vocab := make(map[string]int)
	counts := make([]map[int]int, len(docs))
	for i, d := range docs {
		tf := make(map[int]int)
		for _, tok := range tokenize(d) {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
			}
			tf[idx]++
		}
		counts[i] = tf
	}

	df := make([]int, len(vocab))
	for _, tf := range counts {
		for idx := range tf {
			df[idx]++
		}
	}
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vecs := make([]sparseVec, len(docs))
	for i, tf := range counts {
		vec := make(sparseVec, len(tf))
		var norm float64
		for idx, c := range tf {
			w := float64(c) * idf[idx]
			vec[idx] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vecs[i] = vec
	}
	return vecs
}

func cosineSim(a, b sparseVec) float64 {
	var dot, normA, normB float64
	for i, va := range a {
		if vb, ok := b[i]; ok {
			dot += va * vb
		}
		normA += va * va
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
