package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"xmnote/common"
	"xmnote/config"
	"xmnote/richtext"
	"xmnote/state"
)

// buildOutputPath returns output file path for the note. "src" is the note
// path relative to the processed source (just base name for single file). It
// uses either source name or user-defined template and keeps source directory
// structure unless disabled. Names are cleaned up and transliterated when
// requested.
func buildOutputPath(doc richtext.Document, src, dst string, format common.OutputFmt, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)

	if env.Cfg.Output.NameTemplate == "" {
		return filepath.Join(outDir, buildDefaultFileName(src, format, env))
	}

	expanded, err := expandTemplate(doc, src, env.Cfg.Output.NameTemplate, format)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
	}
	segments := splitPath(expanded)
	if len(segments) == 0 {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, buildDefaultFileName(src, format, env))
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+format.Ext())
	return filepath.Join(parts...)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	dir := filepath.Dir(src)
	if dir == "." {
		return dst
	}
	parts := splitPath(dir)
	for i, p := range parts {
		parts[i] = cleanPathSegment(p, env)
	}
	return filepath.Join(append([]string{dst}, parts...)...)
}

func buildDefaultFileName(src string, format common.OutputFmt, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return cleanPathSegment(baseName, env) + format.Ext()
}

// splitPath returns non empty path segments, template output may use either
// separator.
func splitPath(path string) []string {
	return strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool {
		return r == '/'
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
