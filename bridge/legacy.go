package bridge

import (
	"regexp"
	"strings"
)

// Older producers prepended U+200D to every note, sometimes more than once and
// sometimes inside the first paragraph tag. The marker may be written
// literally or as any character reference. Only what the HTML tokenizer reads
// as markup counts as a tag: "<" followed by a letter, "/", "!" or "?".
// Comments end at the first "-->" and may contain ">".
var prefixToken = regexp.MustCompile(`^(?:(\s+)|(<!--(?s:.*?)-->|<[A-Za-z][^>]*>|</[^>]*>|<[!?][^>]*>)|(&zwj;|&#0*8205;|&#[xX]0*200[dD];|\x{200D}))`)

// StripLegacyMarker removes zero width joiners found before the first visible
// content of the note. Whitespace and tags preceding the content are kept,
// joiners anywhere after it are left alone. Calling it again on its own result
// is a no-op.
func StripLegacyMarker(src string) string {
	var (
		out     strings.Builder
		rest    = src
		removed bool
	)
	for rest != "" {
		m := prefixToken.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		if m[6] >= 0 {
			removed = true
		} else {
			out.WriteString(rest[:m[1]])
		}
		rest = rest[m[1]:]
	}
	if !removed {
		return src
	}
	out.WriteString(rest)
	return out.String()
}

// CanonicalizeWhitespace brings line endings of imported HTML to LF, drops
// byte order mark and newlines Android appends after the last block.
func CanonicalizeWhitespace(src string) string {
	src = strings.TrimPrefix(src, "\ufeff")
	if strings.IndexByte(src, '\r') >= 0 {
		src = strings.ReplaceAll(src, "\r\n", "\n")
		src = strings.ReplaceAll(src, "\r", "\n")
	}
	return strings.TrimRight(src, "\n")
}
