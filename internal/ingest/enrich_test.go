package ingest

import "testing"

func TestEnrichMajor(t *testing.T) {
	tests := []struct {
		name string
		in   MajorRecord
		want string
	}{
		{
			name: "combinations deduplicated and sorted by code",
			in: MajorRecord{
				TenNganh: "Công nghệ thông tin",
				MaNganh:  "7480201",
				ToHopMon: []string{"D01 (Toán, Văn, Anh)", "A00 (Toán, Lý, Hóa)", "A00 (Toán, Lý, Hóa)", ""},
			},
			want: "Thông tin tuyển sinh ngành Công nghệ thông tin, mã ngành 7480201. " +
				"Để xét tuyển vào ngành này, thí sinh có thể sử dụng các tổ hợp môn: A00, D01. " +
				"Đây là một trong các chương trình đào tạo chính thức của trường.",
		},
		{
			name: "no combinations",
			in:   MajorRecord{TenNganh: "Dược học", MaNganh: "7720201"},
			want: "Thông tin tuyển sinh ngành Dược học, mã ngành 7720201. " +
				"Để xét tuyển vào ngành này, thí sinh có thể sử dụng các tổ hợp môn: . " +
				"Đây là một trong các chương trình đào tạo chính thức của trường.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnrichMajor(tt.in); got != tt.want {
				t.Errorf("EnrichMajor() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestEnrichFaculty(t *testing.T) {
	tests := []struct {
		name string
		in   RawRecord
		want string
	}{
		{
			name: "with email",
			in: RawRecord{Metadata: map[string]any{
				"name": "Nguyễn Văn An", "degree": "TS.", "position": "Trưởng Khoa",
				"faculty": "Công nghệ thông tin", "email": "an@duytan.edu.vn",
			}},
			want: "TS. Nguyễn Văn An là trưởng khoa thuộc Khoa Công nghệ thông tin. " +
				"Thông tin liên hệ qua email là: an@duytan.edu.vn.",
		},
		{
			name: "placeholder email",
			in: RawRecord{Metadata: map[string]any{
				"name": "Trần Thị B", "degree": "ThS.", "position": "Giảng viên",
				"faculty": "Du lịch", "email": "Không có dữ liệu",
			}},
			want: "ThS. Trần Thị B là giảng viên thuộc Khoa Du lịch. Hiện chưa có thông tin email.",
		},
		{
			name: "missing position and email",
			in: RawRecord{Metadata: map[string]any{
				"name": "Lê C", "degree": "ThS.", "faculty": "Dược",
			}},
			want: "ThS. Lê C là không có dữ liệu thuộc Khoa Dược. Hiện chưa có thông tin email.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnrichFaculty(FacultyFromRaw(tt.in)); got != tt.want {
				t.Errorf("EnrichFaculty() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestEnrichAward(t *testing.T) {
	tests := []struct {
		name string
		in   RawRecord
		want string
	}{
		{
			name: "numeric year",
			in: RawRecord{
				Content:  "Sinh viên Khoa Điện tử đạt giải nhất",
				Metadata: map[string]any{"title": "Robocon", "year": float64(2023)},
			},
			want: "Thành tích nổi bật: Giải thưởng 'Robocon' được trao vào năm 2023. " +
				"Chi tiết: Sinh viên Khoa Điện tử đạt giải nhất.",
		},
		{
			name: "no year",
			in: RawRecord{
				Content:  "Đội tuyển Olympic Tin học",
				Metadata: map[string]any{"title": "Olympic", "year": nil},
			},
			want: "Thành tích nổi bật: Giải thưởng 'Olympic'. Chi tiết: Đội tuyển Olympic Tin học.",
		},
		{
			name: "zero year",
			in: RawRecord{
				Content:  "x",
				Metadata: map[string]any{"title": "T", "year": float64(0)},
			},
			want: "Thành tích nổi bật: Giải thưởng 'T'. Chi tiết: x.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnrichAward(AwardFromRaw(tt.in)); got != tt.want {
				t.Errorf("EnrichAward() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestEnrich_UnknownSourceType(t *testing.T) {
	if _, err := Enrich("lecture", RawRecord{}); err == nil {
		t.Error("Enrich() with unknown source type should return error")
	}
}

func TestMajorFromRaw_ListFromJSON(t *testing.T) {
	m := MajorFromRaw(RawRecord{Metadata: map[string]any{
		"ten_nganh":  "Kiến trúc",
		"ma_nganh":   float64(7580101),
		"to_hop_mon": []any{"V00 (Toán, Lý, Vẽ)", "V01 (Toán, Văn, Vẽ)"},
	}})

	if m.MaNganh != "7580101" {
		t.Errorf("MaNganh = %q, want 7580101", m.MaNganh)
	}
	if len(m.ToHopMon) != 2 || m.ToHopMon[1] != "V01 (Toán, Văn, Vẽ)" {
		t.Errorf("ToHopMon = %v", m.ToHopMon)
	}
}
