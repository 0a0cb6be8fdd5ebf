package eval

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleReport() Report {
	return Report{
		Mode: ModeReranked,
		TopK: 3,
		Rows: []Row{
			{
				Query:          "Mã ngành CNTT, hệ chính quy?",
				ExpectedDocID:  "major-042",
				ReturnedIDs:    []string{"major-042", "major-043"},
				Rank:           1,
				Hit:            true,
				ReciprocalRank: 1,
			},
			{
				Query:         "Giải thưởng năm 2020?",
				ExpectedDocID: "award-002",
				ReturnedIDs:   []string{"award-001"},
			},
		},
		HitRate: 0.5,
		MRR:     0.5,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read csv back: %v", err)
	}
	want := [][]string{
		{"query", "expected_doc_id", "actual_top_k_ids", "rank", "hit", "reciprocal_rank"},
		{"Mã ngành CNTT, hệ chính quy?", "major-042", "major-042;major-043", "1", "1", "1.0000"},
		{"Giải thưởng năm 2020?", "award-002", "award-001", "Not Found", "0", "0.0000"},
	}
	if len(records) != len(want) {
		t.Fatalf("csv has %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if len(records[i]) != len(want[i]) {
			t.Fatalf("record[%d] has %d fields, want %d", i, len(records[i]), len(want[i]))
		}
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteTable() unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"EXPECTED_DOC_ID", "RETURNED", "major-042;major-043", "Not Found", "Hit Rate: 0.5000", "MRR: 0.5000", "mode=reranked"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	tests := []struct {
		mode     string
		wantFile string
	}{
		{mode: ModeRetrieval, wantFile: "retrieval_evaluation_details.csv"},
		{mode: ModeReranked, wantFile: "reranked_retrieval_evaluation_details.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			report := sampleReport()
			report.Mode = tt.mode

			path, err := ExportCSV(dir, report)
			if err != nil {
				t.Fatalf("ExportCSV() unexpected error: %v", err)
			}
			if filepath.Base(path) != tt.wantFile {
				t.Errorf("ExportCSV() path = %s, want file %s", path, tt.wantFile)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("exported file missing: %v", err)
			}
		})
	}
}

type closeFailWriter struct {
	bytes.Buffer
	closeErr error
}

func (w *closeFailWriter) Close() error {
	return w.closeErr
}

func TestWriteAndClose_CloseError(t *testing.T) {
	errDiskFull := errors.New("no space left on device")
	w := &closeFailWriter{closeErr: errDiskFull}

	err := writeAndClose(w, sampleReport())
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("writeAndClose() error = %v, want %v", err, errDiskFull)
	}
	if w.Len() == 0 {
		t.Error("writeAndClose() wrote nothing before closing")
	}
}

func TestExportCSV_UnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	if err := os.WriteFile(dir, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	if _, err := ExportCSV(dir, sampleReport()); err == nil {
		t.Error("ExportCSV() expected error when results path is a file")
	}
}
