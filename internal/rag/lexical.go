package rag

import (
	"context"
	"strings"
	"unicode"
)

const (
	lexicalLengthScale = 10.0
	maxLexicalScore    = 1.0
)

var lexicalStopwords = map[string]struct{}{
	"là": {}, "của": {}, "và": {}, "các": {}, "có": {}, "cho": {}, "những": {}, "được": {}, "trong": {},
	"gì": {}, "nào": {}, "không": {}, "với": {}, "thì": {}, "này": {}, "một": {}, "về": {}, "ở": {},
	"bao": {}, "nhiêu": {}, "hãy": {}, "em": {}, "tôi": {}, "ạ": {},
}

// LexicalScorer scores documents by token overlap with the query. It needs no model
// server and serves as the offline reranker.
type LexicalScorer struct{}

// Score returns an overlap score in [0, 1] per document: half query coverage,
// half length-normalised match density.
func (LexicalScorer) Score(_ context.Context, query string, documents []string) ([]float64, error) {
	queryTokens := filterStopwords(tokenize(query))
	scores := make([]float64, len(documents))
	for i, doc := range documents {
		scores[i] = lexicalScore(queryTokens, doc)
	}
	return scores, nil
}

func lexicalScore(queryTokens []string, text string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	docTokens := tokenize(text)
	if len(docTokens) == 0 {
		return 0
	}

	docFreq := make(map[string]int, len(docTokens))
	for _, token := range docTokens {
		docFreq[token]++
	}

	var rawMatches, distinct int
	for _, token := range queryTokens {
		if n := docFreq[token]; n > 0 {
			rawMatches += n
			distinct++
		}
	}

	coverage := float64(distinct) / float64(len(queryTokens))
	density := min((float64(rawMatches)/(1+float64(len(docTokens))))*lexicalLengthScale, 1)
	score := 0.5*coverage + 0.5*density

	if score > maxLexicalScore {
		return maxLexicalScore
	}
	return score
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func filterStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := lexicalStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
