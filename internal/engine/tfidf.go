package engine

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"entrematch/internal/domain"
)

// Document is a named candidate text.
type Document struct {
	Name string
	Text string
}

// tokenize lowercases text and keeps runs of word characters of length >= 2.
func tokenize(text string) []string {
	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
	}
	var tokens []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !isWord(r) }) {
		if len([]rune(field)) >= 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// tfidfMatrix builds an L2-normalised TF-IDF matrix, one row per document,
// with smoothed idf ln((1+n)/(1+df))+1. ok is false when no term survives
// tokenization.
func tfidfMatrix(corpus []string) (m *mat.Dense, ok bool) {
	counts := make([]map[string]int, len(corpus))
	df := make(map[string]int)
	for i, doc := range corpus {
		counts[i] = make(map[string]int)
		for _, tok := range tokenize(doc) {
			counts[i][tok]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, false
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	column := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(corpus))
	for j, term := range vocab {
		column[term] = j
		idf[j] = logSmooth(n, float64(df[term]))
	}

	m = mat.NewDense(len(corpus), len(vocab), nil)
	row := make([]float64, len(vocab))
	for i := range corpus {
		for j := range row {
			row[j] = 0
		}
		for term, c := range counts[i] {
			j := column[term]
			row[j] = float64(c) * idf[j]
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		m.SetRow(i, row)
	}
	return m, true
}

// TFIDFRank scores each candidate by cosine similarity to userText over a
// TF-IDF space fitted on the user text plus all candidates. Results are
// sorted descending, ties in candidate order, and cut to topN when topN > 0.
// An empty user text, candidate list or vocabulary yields nil.
func TFIDFRank(userText string, candidates []Document, topN int) []domain.ScoredName {
	if strings.TrimSpace(userText) == "" || len(candidates) == 0 {
		return nil
	}
	corpus := make([]string, 0, len(candidates)+1)
	corpus = append(corpus, userText)
	for _, c := range candidates {
		corpus = append(corpus, c.Text)
	}
	m, ok := tfidfMatrix(corpus)
	if !ok {
		return nil
	}

	// Rows are unit length, so the dot product is the cosine.
	sims := mat.NewVecDense(len(corpus), nil)
	sims.MulVec(m, m.RowView(0))

	out := make([]domain.ScoredName, len(candidates))
	for i, c := range candidates {
		out[i] = domain.ScoredName{Name: c.Name, Score: sims.AtVec(i + 1)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func logSmooth(n, df float64) float64 {
	return math.Log((1+n)/(1+df)) + 1
}
