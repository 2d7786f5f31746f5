package main

import (
	"strings"
	"testing"
)

func TestCommands(t *testing.T) {
	app := newApp()

	tests := []struct {
		command string
		help    []string
	}{
		{"convert", []string{
			`"[path_to_directory]directory"`,
			`"[path_to_archive]archive.zip[path_in_archive]/note.html"`,
			`"[path_to_archive]archive.zip[path_in_archive]"`,
			"archives inside archives",
		}},
		{"spans", []string{"--reverse"}},
		{"dumpconfig", []string{"--default"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			cmd := app.Command(tt.command)
			if cmd == nil {
				t.Fatalf("command %q not found", tt.command)
			}
			for _, want := range tt.help {
				if !strings.Contains(cmd.CustomHelpTemplate, want) {
					t.Errorf("help of %q does not mention %q", tt.command, want)
				}
			}
		})
	}
}

func TestConvertFlags(t *testing.T) {
	cmd := newApp().Command("convert")
	if cmd == nil {
		t.Fatal("convert command not found")
	}
	for _, name := range []string{"to", "order", "nodirs", "overwrite", "encoding"} {
		found := false
		for _, f := range cmd.Flags {
			for _, n := range f.Names() {
				found = found || n == name
			}
		}
		if !found {
			t.Errorf("flag %q not defined", name)
		}
	}
}
