package convert

import (
	"path/filepath"
	"strings"
	"testing"

	"xmnote/common"
	"xmnote/richtext"
)

func TestExpandTemplate(t *testing.T) {
	doc := richtext.Parse("<br>  <b>标题</b> \n<ul><li>a</li></ul>")
	src := filepath.Join("2024", "读书", "note.html")

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"simple text", "simple-text", "simple-text"},
		{"source", "{{ .SourceDir }}/{{ .SourceFile }}", "2024/读书/note"},
		{"format", "{{ .Format }}", "xml"},
		{"first line", "{{ .FirstLine }}", "标题"},
		{"blocks", "{{ .Blocks }}", "3"},
		{"empty", "{{ .Empty }}", "false"},
		{"sprig", `{{ .SourceFile | repeat 2 }}`, "notenote"},
		{"trimmed", "  {{ .SourceFile }}\n", "note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(doc, src, tt.template, common.OutputFmtXml)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_SingleFile(t *testing.T) {
	got, err := expandTemplate(richtext.Document{}, "note.html", "[{{ .SourceDir }}]{{ .FirstLine }}{{ .Empty }}", common.OutputFmtHtml)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if got != "[]true" {
		t.Errorf("expandTemplate() = %q, want []true", got)
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"parse", "{{ .SourceFile"},
		{"unknown field", "{{ .Title }}"},
		{"unknown function", "{{ nosuchfunc .SourceFile }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := expandTemplate(richtext.Document{}, "note.html", tt.template, common.OutputFmtHtml); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		html string
		want string
	}{
		{"", ""},
		{"<br><br>", ""},
		{"<blockquote> <i>q</i> </blockquote>x", "q"},
		{"a<br>b", "a"},
	}
	for _, tt := range tests {
		if got := firstLine(richtext.Parse(tt.html)); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.html, got, tt.want)
		}
	}
	if strings.Contains(firstLine(richtext.Parse("a\nb")), "\n") {
		t.Error("firstLine must be single line")
	}
}
