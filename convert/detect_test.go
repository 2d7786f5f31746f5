package convert

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{
			name: "UTF-8 BOM",
			buf:  []byte{0xEF, 0xBB, 0xBF, 0x00},
			want: encUTF8,
		},
		{
			name: "UTF-16 Big Endian BOM",
			buf:  []byte{0xFE, 0xFF, 0x00, 0x00},
			want: encUTF16BigEndian,
		},
		{
			name: "UTF-16 Little Endian BOM",
			buf:  []byte{0xFF, 0xFE, 0x01, 0x00}, // Different from UTF-32LE
			want: encUTF16LittleEndian,
		},
		{
			name: "UTF-32 Big Endian BOM",
			buf:  []byte{0x00, 0x00, 0xFE, 0xFF},
			want: encUTF32BigEndian,
		},
		{
			name: "UTF-32 Little Endian BOM",
			buf:  []byte{0xFF, 0xFE, 0x00, 0x00},
			want: encUTF32LittleEndian,
		},
		{
			name: "No BOM",
			buf:  []byte{0x00, 0x01, 0x02, 0x03},
			want: encUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectUTF(tt.buf)
			if got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBOMDetectionFunctions tests individual BOM detection functions
func TestBOMDetectionFunctions(t *testing.T) {
	t.Run("isUTF8BOM3", func(t *testing.T) {
		if !isUTF8BOM3([]byte{0xEF, 0xBB, 0xBF}) {
			t.Error("Expected true for UTF-8 BOM")
		}
		if isUTF8BOM3([]byte{0x00, 0x00, 0x00}) {
			t.Error("Expected false for non-BOM")
		}
	})

	t.Run("isUTF16BigEndianBOM2", func(t *testing.T) {
		if !isUTF16BigEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected true for UTF-16 BE BOM")
		}
		if isUTF16BigEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected false for UTF-16 LE BOM")
		}
	})

	t.Run("isUTF16LittleEndianBOM2", func(t *testing.T) {
		if !isUTF16LittleEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected true for UTF-16 LE BOM")
		}
		if isUTF16LittleEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected false for UTF-16 BE BOM")
		}
	})

	t.Run("isUTF32BigEndianBOM4", func(t *testing.T) {
		if !isUTF32BigEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected true for UTF-32 BE BOM")
		}
		if isUTF32BigEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected false for UTF-32 LE BOM")
		}
	})

	t.Run("isUTF32LittleEndianBOM4", func(t *testing.T) {
		if !isUTF32LittleEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected true for UTF-32 LE BOM")
		}
		if isUTF32LittleEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected false for UTF-32 BE BOM")
		}
	})
}

func TestDetectUTF_Short(t *testing.T) {
	for _, buf := range [][]byte{nil, {0xEF}, {0xEF, 0xBB}, {0x00, 0x00, 0xFE}} {
		if got := detectUTF(buf); got != encUnknown {
			t.Errorf("detectUTF(%v) = %v, want unknown", buf, got)
		}
	}
}

func encodeString(t *testing.T, enc encoding.Encoding, s string) []byte {
	t.Helper()
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode %q: %v", s, err)
	}
	return out
}

func TestIsNoteFile(t *testing.T) {
	const note = "&zwj;<b>组合</b><ul><li>item</li></ul>"

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"utf-8 html", []byte(note), true},
		{"empty", nil, true},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, note...), true},
		{"utf-16le", encodeString(t, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), note), true},
		{"utf-32be", encodeString(t, utf32.UTF32(utf32.BigEndian, utf32.UseBOM), note), true},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}, false},
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}, false},
		{"binary", []byte{'a', 0x00, 'b'}, false},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.data, 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			got, err := isNoteFile(path)
			if err != nil {
				t.Fatalf("isNoteFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isNoteFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNoteFile_NonExistent(t *testing.T) {
	if _, err := isNoteFile("/nonexistent/note.html"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestDecodeNote(t *testing.T) {
	win1251, err := ianaindex.IANA.Encoding("windows-1251")
	if err != nil {
		t.Fatalf("lookup windows-1251: %v", err)
	}

	tests := []struct {
		name     string
		data     []byte
		forced   encoding.Encoding
		want     string
		wantName string
	}{
		{
			name:     "plain utf-8",
			data:     []byte("<b>组合</b>"),
			want:     "<b>组合</b>",
			wantName: "utf-8",
		},
		{
			name:     "utf-8 bom is dropped",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, "<i>x</i>"...),
			want:     "<i>x</i>",
			wantName: "utf-8",
		},
		{
			name:     "utf-16be",
			data:     encodeString(t, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "<b>Привет</b>"),
			want:     "<b>Привет</b>",
			wantName: "utf-16be",
		},
		{
			name:     "utf-32le",
			data:     encodeString(t, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), "<b>组合</b>"),
			want:     "<b>组合</b>",
			wantName: "utf-32le",
		},
		{
			name:     "forced encoding",
			data:     encodeString(t, charmap.Windows1251, "<b>Привет</b>"),
			forced:   win1251,
			want:     "<b>Привет</b>",
			wantName: "windows-1251",
		},
		{
			name:     "bom wins over forced encoding",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, "<b>Привет</b>"...),
			forced:   win1251,
			want:     "<b>Привет</b>",
			wantName: "utf-8",
		},
		{
			name:     "declared charset",
			data:     append([]byte(`<meta charset="gbk"><b>`), encodeString(t, simplifiedchinese.GBK, "中文</b>")...),
			want:     `<meta charset="gbk"><b>中文</b>`,
			wantName: "gbk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, err := decodeNote(tt.data, tt.forced)
			if err != nil {
				t.Fatalf("decodeNote() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("decodeNote() = %q, want %q", got, tt.want)
			}
			if name != tt.wantName {
				t.Errorf("decodeNote() encoding = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestUnicodeEncoding_Unknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown encoding")
		}
	}()
	unicodeEncoding(encUnknown)
}

func TestSrcEncodingString(t *testing.T) {
	if got := srcEncoding(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
	if got := encUTF16LittleEndian.String(); got != "utf-16le" {
		t.Errorf("String() = %q, want utf-16le", got)
	}
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "notes.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	fw, err := w.Create("note.html")
	if err != nil {
		t.Fatalf("Failed to create file in zip: %v", err)
	}
	if _, err := fw.Write([]byte("<b>x</b>")); err != nil {
		t.Fatal(err)
	}
	w.Close()
	f.Close()

	notZip := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(notZip, []byte("not a real zip file"), 0644); err != nil {
		t.Fatal(err)
	}
	wrongExt := filepath.Join(dir, "notes.html")
	data, err := os.ReadFile(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wrongExt, data, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{zipPath, true},
		{notZip, false},
		{wrongExt, false},
	}
	for _, tt := range tests {
		got, err := isArchiveFile(tt.path)
		if err != nil {
			t.Errorf("isArchiveFile(%s) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("isArchiveFile(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if _, err := isArchiveFile(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("Expected error for non-existent archive")
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	note, err := isNoteInArchive(zr.File[0])
	if err != nil {
		t.Fatalf("isNoteInArchive() error = %v", err)
	}
	if !note {
		t.Error("isNoteInArchive() = false, want true")
	}
}
