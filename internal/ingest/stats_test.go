package ingest

import "testing"

func TestComputeTokenStats(t *testing.T) {
	tests := []struct {
		name        string
		tokenCounts []int
		want        TokenStats
	}{
		{
			name:        "empty",
			tokenCounts: []int{},
			want:        TokenStats{},
		},
		{
			name:        "single value",
			tokenCounts: []int{10},
			want:        TokenStats{Min: 10, Max: 10, Mean: 10.0, P95: 10},
		},
		{
			name:        "unsorted values",
			tokenCounts: []int{30, 5, 20, 10, 15},
			want:        TokenStats{Min: 5, Max: 30, Mean: 16.0, P95: 30},
		},
		{
			name:        "many values for p95",
			tokenCounts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			want:        TokenStats{Min: 1, Max: 20, Mean: 10.5, P95: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeTokenStats(tt.tokenCounts); got != tt.want {
				t.Errorf("computeTokenStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	docs := []Document{
		{ID: "major-001", SourceType: SourceMajor, Content: "Ngành Công nghệ thông tin, mã ngành 7480201."},
		{ID: "major-002", SourceType: SourceMajor, Content: ""},
		{ID: "award-001", SourceType: SourceAward, Content: "Giải thưởng Nhân tài Đất Việt"},
	}

	stats := ComputeStats(docs, "vietnamese-sbert")

	if stats.Documents != 3 {
		t.Errorf("Documents = %d, want 3", stats.Documents)
	}
	if stats.BySourceType[SourceMajor] != 2 || stats.BySourceType[SourceAward] != 1 {
		t.Errorf("BySourceType = %v", stats.BySourceType)
	}
	if stats.EmptyContent != 1 {
		t.Errorf("EmptyContent = %d, want 1", stats.EmptyContent)
	}
	if stats.TokenStats.Min != 1 {
		t.Errorf("TokenStats.Min = %d, want 1 for empty content", stats.TokenStats.Min)
	}
	if len(stats.IndexVersion) != 16 {
		t.Errorf("IndexVersion = %q, want 16 hex chars", stats.IndexVersion)
	}

	if ComputeStats(docs, "other-model").IndexVersion == stats.IndexVersion {
		t.Error("IndexVersion should change with the embedding model")
	}
	if ComputeStats(docs[:2], "vietnamese-sbert").IndexVersion == stats.IndexVersion {
		t.Error("IndexVersion should change with the corpus")
	}
}
