package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"xmnote/common"
	"xmnote/richtext"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	SourceFile string
	SourceDir  string
	Format     string
	FirstLine  string
	Blocks     int
	Empty      bool
}

// firstLine returns first non blank line of note text.
func firstLine(doc richtext.Document) string {
	for line := range strings.SplitSeq(doc.PlainText(), "\n") {
		if line = strings.TrimSpace(line); len(line) > 0 {
			return line
		}
	}
	return ""
}

// expandTemplate executes name template for the note. "src" is the note path
// relative to the processed source.
func expandTemplate(doc richtext.Document, src, field string, format common.OutputFmt) (string, error) {
	tmpl, err := template.New("name").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse name template: %w", err)
	}

	dir := filepath.ToSlash(filepath.Dir(src))
	if dir == "." {
		dir = ""
	}
	values := Values{
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		SourceDir:  dir,
		Format:     format.String(),
		FirstLine:  firstLine(doc),
		Blocks:     len(doc.Blocks),
		Empty:      doc.IsEmpty(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
