package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// TokensPerRune is an approximation for token counting (4 chars per token).
const TokensPerRune = 4.0

// CorpusStats summarises a set of documents before they are built.
type CorpusStats struct {
	// Documents is the total number of documents.
	Documents int `json:"documents"`
	// BySourceType counts documents per source type.
	BySourceType map[SourceType]int `json:"by_source_type"`
	// EmptyContent counts documents whose content is blank.
	EmptyContent int `json:"empty_content"`
	// TokenStats approximates the token length of the embedded text.
	TokenStats TokenStats `json:"token_stats"`
	// IndexVersion identifies the corpus and embedding model pair.
	IndexVersion string `json:"index_version"`
}

// TokenStats contains statistics about token counts per document.
type TokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// ComputeStats summarises docs. The index version hashes the embedding model
// together with every document id and content, so it changes with either.
func ComputeStats(docs []Document, embeddingModel string) CorpusStats {
	stats := CorpusStats{
		Documents:    len(docs),
		BySourceType: make(map[SourceType]int),
	}

	h := sha256.New()
	fmt.Fprintf(h, "%s\x00", embeddingModel)

	tokenCounts := make([]int, 0, len(docs))
	for _, d := range docs {
		stats.BySourceType[d.SourceType]++
		if d.Content == "" {
			stats.EmptyContent++
		}

		tokenCount := int(math.Round(float64(utf8.RuneCountInString(d.Content)) / TokensPerRune))
		if tokenCount < 1 {
			tokenCount = 1
		}
		tokenCounts = append(tokenCounts, tokenCount)

		fmt.Fprintf(h, "%s\x00%s\x00", d.ID, d.Content)
	}

	stats.TokenStats = computeTokenStats(tokenCounts)
	stats.IndexVersion = hex.EncodeToString(h.Sum(nil))[:16]
	return stats
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) TokenStats {
	if len(tokenCounts) == 0 {
		return TokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return TokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
