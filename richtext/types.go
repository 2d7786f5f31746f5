package richtext

import (
	"strings"
)

//go:generate go tool go-enum --marshal --names

// Type definitions for the note document model.

// BlockKind distinguishes the block variants a note is built from.
// ENUM(paragraph, listItem, quote)
type BlockKind int

// Style is a set of inline style flags.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic

	StylePlain Style = 0
)

// Has reports whether all flags of f are set.
func (s Style) Has(f Style) bool {
	return f != 0 && s&f == f
}

func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBold | StyleItalic:
		return "bold|italic"
	}
	return "unknown"
}

// Run is a piece of text sharing a single style. Text is never empty and never
// contains block level markers.
type Run struct {
	Text  string
	Style Style
}

// Runs is an ordered run sequence. Adjacent runs never share a style and no run
// is empty: the serializer must not fragment what the parser produces whole.
type Runs []Run

// MergeRuns builds a normalized run sequence, dropping empty runs and merging
// neighbours with identical style.
func MergeRuns(runs ...Run) Runs {
	var out Runs
	for _, r := range runs {
		out = out.add(r.Text, r.Style)
	}
	return out
}

// add appends text to the sequence in place, merging with the last run when
// possible. Only for sequences still under construction.
func (rs Runs) add(text string, style Style) Runs {
	if text == "" {
		return rs
	}
	if n := len(rs); n > 0 && rs[n-1].Style == style {
		rs[n-1].Text += text
		return rs
	}
	return append(rs, Run{Text: text, Style: style})
}

// Text returns concatenated text of all runs.
func (rs Runs) Text() string {
	var buf strings.Builder
	for _, r := range rs {
		buf.WriteString(r.Text)
	}
	return buf.String()
}

func (rs Runs) Equal(o Runs) bool {
	if len(rs) != len(o) {
		return false
	}
	for i := range rs {
		if rs[i] != o[i] {
			return false
		}
	}
	return true
}

// Block is a single node of the document tree. It wraps either child blocks or
// a leaf run sequence, never both. Paragraphs are always leaves. Blocks built
// by hand are brought to this form by Normalize.
type Block struct {
	Kind BlockKind
	// Ordinal is set for list items coming from ordered lists.
	Ordinal  *int
	Children []Block
	Runs     Runs
}

// NewParagraph returns paragraph leaf with normalized runs.
func NewParagraph(runs ...Run) Block {
	return Block{Kind: BlockKindParagraph, Runs: MergeRuns(runs...)}
}

// NewListItem returns bullet list item leaf.
func NewListItem(runs ...Run) Block {
	return Block{Kind: BlockKindListItem, Runs: MergeRuns(runs...)}
}

// NewOrderedListItem returns numbered list item leaf.
func NewOrderedListItem(ordinal int, runs ...Run) Block {
	return Block{Kind: BlockKindListItem, Ordinal: &ordinal, Runs: MergeRuns(runs...)}
}

// NewQuote returns quote leaf.
func NewQuote(runs ...Run) Block {
	return Block{Kind: BlockKindQuote, Runs: MergeRuns(runs...)}
}

// Wrap returns container of the given kind holding children. A single
// paragraph child collapses into the container's own run sequence, so
// <blockquote><p>x</p></blockquote> and <blockquote>x</blockquote> build the
// same block. Wrapping with paragraph kind flattens children text.
func Wrap(kind BlockKind, ordinal *int, children ...Block) Block {
	b := Block{Kind: kind, Ordinal: ordinal}
	if kind == BlockKindParagraph {
		b.Ordinal = nil
		for _, c := range children {
			b.Runs = append(b.Runs, c.leafRuns()...)
		}
		b.Runs = MergeRuns(b.Runs...)
		return b
	}
	switch {
	case len(children) == 0:
	case len(children) == 1 && children[0].Kind == BlockKindParagraph:
		b.Runs = MergeRuns(children[0].leafRuns()...)
	default:
		b.Children = children
	}
	return b
}

// Normalize returns block in canonical form: runs merged, paragraphs are
// leaves, runs of a container which also has children become its leading
// paragraph.
func (b Block) Normalize() Block {
	if b.Kind == BlockKindParagraph {
		return Block{Kind: BlockKindParagraph, Runs: MergeRuns(b.leafRuns()...)}
	}
	if b.IsLeaf() {
		return Block{Kind: b.Kind, Ordinal: b.Ordinal, Runs: MergeRuns(b.Runs...)}
	}
	children := make([]Block, 0, len(b.Children)+1)
	if runs := MergeRuns(b.Runs...); len(runs) > 0 {
		children = append(children, Block{Kind: BlockKindParagraph, Runs: runs})
	}
	for _, c := range b.Children {
		children = append(children, c.Normalize())
	}
	return Wrap(b.Kind, b.Ordinal, children...)
}

// IsLeaf reports whether block holds runs rather than child blocks.
func (b Block) IsLeaf() bool {
	return len(b.Children) == 0
}

// leafRuns collects own runs followed by runs of all children.
func (b Block) leafRuns() Runs {
	out := append(Runs(nil), b.Runs...)
	for _, c := range b.Children {
		out = append(out, c.leafRuns()...)
	}
	return out
}

// Equal compares blocks structurally.
func (b Block) Equal(o Block) bool {
	if b.Kind != o.Kind || !b.Runs.Equal(o.Runs) || len(b.Children) != len(o.Children) {
		return false
	}
	if (b.Ordinal == nil) != (o.Ordinal == nil) || (b.Ordinal != nil && *b.Ordinal != *o.Ordinal) {
		return false
	}
	for i := range b.Children {
		if !b.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Document is an ordered sequence of blocks which fully partition the note.
// Documents are value data, nothing modifies them after construction.
type Document struct {
	Blocks []Block
}

// NewDocument returns document made of blocks. Document always has at least
// one block: no blocks means single empty paragraph.
func NewDocument(blocks ...Block) Document {
	if len(blocks) == 0 {
		return Document{Blocks: []Block{NewParagraph()}}
	}
	return Document{Blocks: blocks}
}

// Normalize returns document with every block in canonical form. Documents
// coming from Parse or constructors are already normalized.
func (d Document) Normalize() Document {
	if len(d.Blocks) == 0 {
		return NewDocument()
	}
	blocks := make([]Block, len(d.Blocks))
	for i, b := range d.Blocks {
		blocks[i] = b.Normalize()
	}
	return Document{Blocks: blocks}
}

// IsEmpty reports whether document carries no text and no structure.
func (d Document) IsEmpty() bool {
	for _, b := range d.Blocks {
		if b.Kind != BlockKindParagraph || len(b.Runs) > 0 {
			return false
		}
	}
	return len(d.Blocks) <= 1
}

func (d Document) Equal(o Document) bool {
	if len(d.Blocks) != len(o.Blocks) {
		return false
	}
	for i := range d.Blocks {
		if !d.Blocks[i].Equal(o.Blocks[i]) {
			return false
		}
	}
	return true
}

// PlainText returns visible text of the document, every leaf block on its own
// line.
func (d Document) PlainText() string {
	var lines []string
	walkLeaves(d.Blocks, func(b Block) {
		lines = append(lines, b.Runs.Text())
	})
	return strings.Join(lines, "\n")
}

// walkLeaves calls fn for every leaf block in document order.
func walkLeaves(blocks []Block, fn func(Block)) {
	for _, b := range blocks {
		if b.IsLeaf() {
			fn(b)
			continue
		}
		walkLeaves(b.Children, fn)
	}
}
