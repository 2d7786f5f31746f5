package bridge

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"xmnote/richtext"
)

//go:generate go tool go-enum --marshal --names

// SpanKind is the attribute a span applies to its text range.
// ENUM(bold, italic, bullet, quote)
type SpanKind int

// Span marks a range of StyledText with a single attribute. Start and End are
// rune offsets, End is exclusive. Block spans (bullet, quote) cover whole
// lines, an empty line is covered by a zero length span at its start.
type Span struct {
	Start int      `yaml:"start"`
	End   int      `yaml:"end"`
	Kind  SpanKind `yaml:"kind"`
	// Ordinal is set for bullets coming from numbered lists.
	Ordinal int `yaml:"ordinal,omitempty"`
}

// StyledText is the flat representation UI works with: paragraphs joined by
// line feeds plus attribute spans over them.
type StyledText struct {
	Text  string `yaml:"text"`
	Spans []Span `yaml:"spans,omitempty"`
}

// FromDocument flattens document. Every leaf block becomes a line, container
// spans precede spans of their content.
func FromDocument(doc richtext.Document) StyledText {
	var f flattener
	f.blocks(doc.Normalize().Blocks)
	return StyledText{Text: f.buf.String(), Spans: f.spans}
}

type flattener struct {
	buf   strings.Builder
	pos   int
	lines int
	spans []Span
	// index of the last style span per kind, -1 for none
	last [2]int
}

func (f *flattener) blocks(blocks []richtext.Block) (start, end int) {
	for i, b := range blocks {
		s, e := f.block(b)
		if i == 0 {
			start = s
		}
		end = e
	}
	return start, end
}

func (f *flattener) block(b richtext.Block) (start, end int) {
	if b.Kind == richtext.BlockKindParagraph {
		return f.leaf(b.Runs)
	}

	idx := len(f.spans)
	sp := Span{Kind: SpanKindQuote}
	if b.Kind == richtext.BlockKindListItem {
		sp.Kind = SpanKindBullet
		if b.Ordinal != nil {
			sp.Ordinal = *b.Ordinal
		}
	}
	f.spans = append(f.spans, sp)

	if b.IsLeaf() {
		start, end = f.leaf(b.Runs)
	} else {
		start, end = f.blocks(b.Children)
	}
	f.spans[idx].Start, f.spans[idx].End = start, end
	return start, end
}

func (f *flattener) leaf(runs richtext.Runs) (start, end int) {
	if f.lines > 0 {
		f.buf.WriteByte('\n')
		f.pos++
	}
	f.lines++
	f.last = [2]int{-1, -1}

	start = f.pos
	for _, r := range runs {
		n := utf8.RuneCountInString(r.Text)
		if r.Style.Has(richtext.StyleBold) {
			f.style(SpanKindBold, n)
		}
		if r.Style.Has(richtext.StyleItalic) {
			f.style(SpanKindItalic, n)
		}
		f.buf.WriteString(r.Text)
		f.pos += n
	}
	return start, f.pos
}

// style extends span of the kind ending at current position or opens new one.
func (f *flattener) style(kind SpanKind, n int) {
	if i := f.last[kind]; i >= 0 && f.spans[i].End == f.pos {
		f.spans[i].End += n
		return
	}
	f.last[kind] = len(f.spans)
	f.spans = append(f.spans, Span{Start: f.pos, End: f.pos + n, Kind: kind})
}

// node is a block span resolved to the range of lines it covers.
type node struct {
	kind        richtext.BlockKind
	ordinal     *int
	first, last int
	children    []*node
}

// ToDocument rebuilds document from styled text. Block spans are resolved to
// lines and nested by containment, spans crossing each other cannot form a
// tree and are dropped. Invalid spans are dropped as well, log (may be nil)
// receives the details.
func ToDocument(st StyledText, log *zap.Logger) richtext.Document {
	if log == nil {
		log = zap.NewNop()
	}

	lines := strings.Split(st.Text, "\n")
	starts := make([]int, len(lines))
	pos := 0
	for i, l := range lines {
		starts[i] = pos
		pos += utf8.RuneCountInString(l) + 1
	}
	total := pos - 1

	styles := make([]richtext.Style, total)
	var blocks []*node
	for _, sp := range st.Spans {
		if sp.Start < 0 || sp.End < sp.Start || sp.End > total || !sp.Kind.IsValid() {
			log.Debug("Dropping invalid span", zap.Int("start", sp.Start), zap.Int("end", sp.End), zap.Stringer("kind", sp.Kind))
			continue
		}
		switch sp.Kind {
		case SpanKindBold, SpanKindItalic:
			flag := richtext.StyleBold
			if sp.Kind == SpanKindItalic {
				flag = richtext.StyleItalic
			}
			for i := sp.Start; i < sp.End; i++ {
				styles[i] |= flag
			}
		default:
			n := &node{kind: richtext.BlockKindQuote, first: lineOf(starts, sp.Start), last: lineOf(starts, sp.End)}
			if sp.Kind == SpanKindBullet {
				n.kind = richtext.BlockKindListItem
				if sp.Ordinal > 0 {
					ord := sp.Ordinal
					n.ordinal = &ord
				}
			}
			blocks = append(blocks, n)
		}
	}

	slices.SortStableFunc(blocks, func(a, b *node) int {
		if c := cmp.Compare(a.first, b.first); c != 0 {
			return c
		}
		return cmp.Compare(b.last, a.last)
	})

	root := &node{first: 0, last: len(lines) - 1}
	stack := []*node{root}
	for _, n := range blocks {
		for len(stack) > 1 && stack[len(stack)-1].last < n.first {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if n.last > parent.last {
			log.Debug("Dropping crossing block span", zap.Stringer("kind", n.kind), zap.Int("first", n.first), zap.Int("last", n.last))
			continue
		}
		parent.children = append(parent.children, n)
		stack = append(stack, n)
	}

	r := []rune(st.Text)
	lineRuns := func(i int) []richtext.Run {
		var runs []richtext.Run
		end := starts[i] + utf8.RuneCountInString(lines[i])
		for j := starts[i]; j < end; {
			k := j + 1
			for k < end && styles[k] == styles[j] {
				k++
			}
			runs = append(runs, richtext.Run{Text: string(r[j:k]), Style: styles[j]})
			j = k
		}
		return runs
	}
	return richtext.NewDocument(buildBlocks(root, lineRuns)...)
}

// lineOf returns index of the last line starting at or before offset.
func lineOf(starts []int, offset int) int {
	i, found := slices.BinarySearch(starts, offset)
	if found {
		return i
	}
	return i - 1
}

func buildBlocks(n *node, lineRuns func(int) []richtext.Run) []richtext.Block {
	var (
		out   []richtext.Block
		child int
	)
	for i := n.first; i <= n.last; i++ {
		if child < len(n.children) && n.children[child].first == i {
			c := n.children[child]
			out = append(out, richtext.Wrap(c.kind, c.ordinal, buildBlocks(c, lineRuns)...))
			i = c.last
			child++
			continue
		}
		out = append(out, richtext.NewParagraph(lineRuns(i)...))
	}
	return out
}
