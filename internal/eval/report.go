package eval

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
)

const notFound = "Not Found"

// CSVFileName returns the per-item report file name for a mode.
func CSVFileName(mode string) string {
	if mode == ModeReranked {
		return "reranked_retrieval_evaluation_details.csv"
	}
	return "retrieval_evaluation_details.csv"
}

func rankLabel(rank int) string {
	if rank == 0 {
		return notFound
	}
	return strconv.Itoa(rank)
}

func hitLabel(hit bool) string {
	if hit {
		return "1"
	}
	return "0"
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ";")
}

// WriteTable prints the per-item table followed by the aggregate scores.
func WriteTable(w io.Writer, report Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUERY\tEXPECTED_DOC_ID\tRANK\tHIT\tRR\tRETURNED")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.4f\t%s\n", row.Query, row.ExpectedDocID, rankLabel(row.Rank),
			hitLabel(row.Hit), row.ReciprocalRank, joinIDs(row.ReturnedIDs))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nmode=%s top_k=%d items=%d\nHit Rate: %.4f\nMRR: %.4f\n",
		report.Mode, report.TopK, len(report.Rows), report.HitRate, report.MRR); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

var csvHeader = []string{"query", "expected_doc_id", "actual_top_k_ids", "rank", "hit", "reciprocal_rank"}

// WriteCSV writes one row per item. actual_top_k_ids is semicolon separated.
func WriteCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range report.Rows {
		record := []string{
			row.Query,
			row.ExpectedDocID,
			joinIDs(row.ReturnedIDs),
			rankLabel(row.Rank),
			hitLabel(row.Hit),
			strconv.FormatFloat(row.ReciprocalRank, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ExportCSV writes the report for its mode under dir and returns the file path.
func ExportCSV(dir string, report Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	path := filepath.Join(dir, CSVFileName(report.Mode))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	if err := writeAndClose(f, report); err != nil {
		return "", err
	}
	return path, nil
}

func writeAndClose(f io.WriteCloser, report Report) error {
	if err := WriteCSV(f, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}
	return nil
}
