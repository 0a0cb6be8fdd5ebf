package ingest

import (
	"fmt"
	"sort"
	"strings"
)

// EnrichMajor writes the passage text for a major: its name, code and the
// admission subject combinations.
func EnrichMajor(m MajorRecord) string {
	seen := make(map[string]struct{})
	var combos []string
	for _, s := range m.ToHopMon {
		if s == "" {
			continue
		}
		code := strings.SplitN(s, " ", 2)[0]
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		combos = append(combos, code)
	}
	sort.Strings(combos)

	return fmt.Sprintf(
		"Thông tin tuyển sinh ngành %s, mã ngành %s. "+
			"Để xét tuyển vào ngành này, thí sinh có thể sử dụng các tổ hợp môn: %s. "+
			"Đây là một trong các chương trình đào tạo chính thức của trường.",
		m.TenNganh, m.MaNganh, strings.Join(combos, ", "),
	)
}

// EnrichFaculty writes the passage text for a lecturer.
func EnrichFaculty(f FacultyRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s là %s thuộc Khoa %s. ", f.Degree, f.Name, strings.ToLower(f.Position), f.Faculty)
	if f.Email != missingValue {
		fmt.Fprintf(&b, "Thông tin liên hệ qua email là: %s.", f.Email)
	} else {
		b.WriteString("Hiện chưa có thông tin email.")
	}
	return b.String()
}

// EnrichAward writes the passage text for an award.
func EnrichAward(a AwardRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thành tích nổi bật: Giải thưởng '%s'", a.Title)
	if a.Year != "" {
		fmt.Fprintf(&b, " được trao vào năm %s. ", a.Year)
	} else {
		b.WriteString(". ")
	}
	fmt.Fprintf(&b, "Chi tiết: %s.", a.Body)
	return b.String()
}

// Enrich rewrites the record content for its source type.
func Enrich(sourceType SourceType, r RawRecord) (string, error) {
	switch sourceType {
	case SourceMajor:
		return EnrichMajor(MajorFromRaw(r)), nil
	case SourceFaculty:
		return EnrichFaculty(FacultyFromRaw(r)), nil
	case SourceAward:
		return EnrichAward(AwardFromRaw(r)), nil
	default:
		return "", fmt.Errorf("unknown source type %q", sourceType)
	}
}
