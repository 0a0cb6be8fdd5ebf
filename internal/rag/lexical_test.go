package rag

import (
	"context"
	"strings"
	"testing"
)

func TestLexicalScorer_Score(t *testing.T) {
	docs := []string{
		"Thông tin tuyển sinh ngành Công nghệ thông tin, mã ngành 7480201.",
		"Thành tích nổi bật: Giải thưởng 'Sao Khuê' được trao vào năm 2020.",
		"",
	}

	scores, err := LexicalScorer{}.Score(context.Background(), "mã ngành công nghệ thông tin", docs)
	if err != nil {
		t.Fatalf("Score() unexpected error: %v", err)
	}
	if len(scores) != len(docs) {
		t.Fatalf("Score() returned %d scores, want %d", len(scores), len(docs))
	}
	if scores[0] <= scores[1] {
		t.Errorf("matching document should outscore unrelated one: %v", scores)
	}
	if scores[2] != 0 {
		t.Errorf("empty document score = %v, want 0", scores[2])
	}
}

func TestLexicalScoreStopwordsRemoved(t *testing.T) {
	query := filterStopwords(tokenize("là gì của các"))
	if score := lexicalScore(query, "là gì của các"); score != 0 {
		t.Fatalf("expected score 0 when query tokens are only stopwords, got %f", score)
	}
}

func TestLexicalScoreBounded(t *testing.T) {
	query := filterStopwords(tokenize("dược"))
	tests := []string{
		"dược dược dược",
		"dược " + strings.Repeat(" filler", 200),
	}
	for _, doc := range tests {
		score := lexicalScore(query, doc)
		if score <= 0 || score > maxLexicalScore {
			t.Errorf("lexicalScore(%q...) = %f, want in (0, %f]", doc[:10], score, maxLexicalScore)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Ngành Dược-học (7720201)!")
	want := []string{"ngành", "dược", "học", "7720201"}
	if len(got) != len(want) {
		t.Fatalf("tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tokenize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
