package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUTF8:
		return "utf-8"
	case encUTF16BigEndian:
		return "utf-16be"
	case encUTF16LittleEndian:
		return "utf-16le"
	case encUTF32BigEndian:
		return "utf-32be"
	case encUTF32LittleEndian:
		return "utf-32le"
	}
	return "unknown"
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func isUTF8BOM3(buf []byte) bool {
	return buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return buf[0] == 0xFF && buf[1] == 0xFE
}

// detectUTF looks for byte order mark. UTF-32 is checked first since its
// little endian mark starts with UTF-16 one.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case len(buf) >= 4 && isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case len(buf) >= 4 && isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case len(buf) >= 3 && isUTF8BOM3(buf):
		return encUTF8
	case len(buf) >= 2 && isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case len(buf) >= 2 && isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// unicodeEncoding returns decoder for text with byte order mark.
func unicodeEncoding(enc srcEncoding) encoding.Encoding {
	switch enc {
	case encUTF8:
		return unicode.UTF8BOM
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM)
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// isArchiveFile checks if file is zip archive which may contain notes.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isNoteFile reads the beginning of the file and checks if it looks like note.
func isNoteFile(path string) (bool, error) {
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return isNoteData(head)
}

// isNoteInArchive does the same for archive entry.
func isNoteInArchive(f *zip.File) (bool, error) {
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	head, err := readAtMost(r, 512)
	if err != nil {
		return false, err
	}
	return isNoteData(head)
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readAtMost(f, 512)
}

func readAtMost(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// isNoteData rejects anything filetype recognizes: notes are text, known
// formats are always binary.
func isNoteData(head []byte) (bool, error) {
	if len(head) == 0 {
		return true, nil
	}
	if detectUTF(head) != encUnknown {
		// multibyte text looks binary for sniffing
		return true, nil
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false, err
	}
	return kind == filetype.Unknown && bytes.IndexByte(head, 0) < 0, nil
}

// decodeNote converts note data to UTF-8 string. Byte order mark wins, then
// forced encoding (may be nil). Otherwise data which is valid UTF-8 is taken as
// is and anything else is decoded using charset declared by the HTML itself.
// Returns name of the encoding used.
func decodeNote(data []byte, forced encoding.Encoding) (string, string, error) {
	var (
		enc  encoding.Encoding
		name string
	)
	switch bom := detectUTF(data); {
	case bom != encUnknown:
		enc, name = unicodeEncoding(bom), bom.String()
	case forced != nil:
		enc = forced
		if name, _ = ianaindex.IANA.Name(forced); name == "" {
			name = "forced"
		}
	case utf8.Valid(data):
		return string(data), "utf-8", nil
	default:
		enc, name, _ = charset.DetermineEncoding(data, "text/html")
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", name, fmt.Errorf("unable to decode note from %s: %w", name, err)
	}
	return string(out), name, nil
}
