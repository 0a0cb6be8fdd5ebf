package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"admissions-rag/internal/contextutil"
)

// Source describes one processed data file and the raw file it is enriched from.
type Source struct {
	Type         SourceType
	EnrichedFile string
	RawFile      string
}

// Sources lists the data files in load order.
var Sources = []Source{
	{Type: SourceMajor, EnrichedFile: "majors_data_enriched.json", RawFile: "majors.json"},
	{Type: SourceFaculty, EnrichedFile: "faculty_enriched.json", RawFile: "faculty.json"},
	{Type: SourceAward, EnrichedFile: "awards_enriched.json", RawFile: "awards.json"},
}

// Document is a passage ready to be embedded and stored.
type Document struct {
	ID         string
	SourceType SourceType
	Content    string
	Metadata   map[string]string
}

// ReadRecords decodes a JSON array of raw records.
func ReadRecords(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return records, nil
}

// LoadDocuments reads every source file under dir and converts the records to
// documents. With enrich set, the raw files are read and their content is
// rewritten; otherwise the pre-enriched files are used as they are.
// Missing files are skipped with a warning. Duplicate ids are an error.
func LoadDocuments(ctx context.Context, dir string, enrich bool) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var docs []Document
	seen := make(map[string]SourceType)

	for _, src := range Sources {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := src.EnrichedFile
		if enrich {
			name = src.RawFile
		}
		path := filepath.Join(dir, name)

		records, err := ReadRecords(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.WarnContext(ctx, "data file not found, skipping", "path", path)
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, r := range records {
			if r.ID == "" {
				return nil, fmt.Errorf("record without id in %s", path)
			}
			if prev, ok := seen[r.ID]; ok {
				return nil, fmt.Errorf("duplicate passage id %q in %s (already loaded from %s data)", r.ID, path, prev)
			}
			seen[r.ID] = src.Type

			content := r.Content
			if enrich {
				content, err = Enrich(src.Type, r)
				if err != nil {
					return nil, fmt.Errorf("failed to enrich %s: %w", r.ID, err)
				}
			}

			docs = append(docs, Document{
				ID:         r.ID,
				SourceType: src.Type,
				Content:    content,
				Metadata:   CleanMetadata(r.Metadata, src.Type),
			})
		}

		logger.InfoContext(ctx, "loaded data file", "path", path, "records", len(records))
	}

	return docs, nil
}

// WriteEnriched enriches the raw files under dir and writes the enriched files
// next to them, keeping each record's id and metadata.
func WriteEnriched(ctx context.Context, dir string) (map[SourceType]int, error) {
	logger := contextutil.LoggerFromContext(ctx)
	written := make(map[SourceType]int)

	for _, src := range Sources {
		in := filepath.Join(dir, src.RawFile)
		records, err := ReadRecords(in)
		if errors.Is(err, fs.ErrNotExist) {
			logger.WarnContext(ctx, "raw data file not found, skipping", "path", in)
			continue
		}
		if err != nil {
			return written, err
		}

		for i := range records {
			content, err := Enrich(src.Type, records[i])
			if err != nil {
				return written, fmt.Errorf("failed to enrich %s: %w", records[i].ID, err)
			}
			records[i].Content = content
		}

		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode enriched records: %w", err)
		}
		out := filepath.Join(dir, src.EnrichedFile)
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", out, err)
		}

		written[src.Type] = len(records)
		logger.InfoContext(ctx, "wrote enriched data file", "path", out, "records", len(records))
	}

	return written, nil
}
