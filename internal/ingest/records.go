package ingest

import (
	"strconv"
	"strings"
)

// SourceType identifies which kind of admissions record a passage came from.
type SourceType string

const (
	SourceMajor   SourceType = "major"
	SourceFaculty SourceType = "faculty"
	SourceAward   SourceType = "award"
)

// missingValue is the placeholder the crawler writes for absent fields.
const missingValue = "Không có dữ liệu"

// RawRecord is one entry of a processed data file.
type RawRecord struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// MajorRecord is the typed view of a major's metadata.
type MajorRecord struct {
	TenNganh string
	MaNganh  string
	ToHopMon []string
}

// FacultyRecord is the typed view of a lecturer's metadata.
type FacultyRecord struct {
	Name     string
	Degree   string
	Position string
	Faculty  string
	Email    string
}

// AwardRecord is the typed view of an award's metadata. Body holds the raw record content.
type AwardRecord struct {
	Title string
	Year  string
	Body  string
}

// MajorFromRaw reads the major fields out of a raw record.
func MajorFromRaw(r RawRecord) MajorRecord {
	return MajorRecord{
		TenNganh: stringField(r.Metadata, "ten_nganh"),
		MaNganh:  stringField(r.Metadata, "ma_nganh"),
		ToHopMon: listField(r.Metadata, "to_hop_mon"),
	}
}

// FacultyFromRaw reads the lecturer fields out of a raw record.
// Absent position and email default to the missing-data placeholder.
func FacultyFromRaw(r RawRecord) FacultyRecord {
	f := FacultyRecord{
		Name:     stringField(r.Metadata, "name"),
		Degree:   stringField(r.Metadata, "degree"),
		Position: stringField(r.Metadata, "position"),
		Faculty:  stringField(r.Metadata, "faculty"),
		Email:    stringField(r.Metadata, "email"),
	}
	if _, ok := r.Metadata["position"]; !ok || r.Metadata["position"] == nil {
		f.Position = missingValue
	}
	if f.Email == "" {
		f.Email = missingValue
	}
	return f
}

// AwardFromRaw reads the award fields out of a raw record.
func AwardFromRaw(r RawRecord) AwardRecord {
	year := stringField(r.Metadata, "year")
	if year == "0" {
		year = ""
	}
	return AwardRecord{
		Title: stringField(r.Metadata, "title"),
		Year:  year,
		Body:  r.Content,
	}
}

func stringField(meta map[string]any, key string) string {
	return formatValue(meta[key])
}

func listField(meta map[string]any, key string) []string {
	switch v := meta[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, formatValue(item))
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ", ")
	default:
		return nil
	}
}

// formatValue renders a decoded JSON scalar as a string. Lists are joined with ", ".
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
