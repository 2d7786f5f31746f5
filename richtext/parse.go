package richtext

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tagKind is the closed set of tags the note dialect knows about. Anything
// else is tagUnknown and its content is kept as ordinary text.
type tagKind int

const (
	tagUnknown tagKind = iota
	tagBold
	tagItalic
	tagList
	tagOrderedList
	tagListItem
	tagQuote
	tagBreak
	tagParagraph
)

var knownTags = map[atom.Atom]tagKind{
	atom.B:          tagBold,
	atom.Strong:     tagBold,
	atom.I:          tagItalic,
	atom.Em:         tagItalic,
	atom.Cite:       tagItalic,
	atom.Dfn:        tagItalic,
	atom.Ul:         tagList,
	atom.Ol:         tagOrderedList,
	atom.Li:         tagListItem,
	atom.Blockquote: tagQuote,
	atom.Br:         tagBreak,
	atom.P:          tagParagraph,
}

func lookupTag(name []byte) tagKind {
	if k, ok := knownTags[atom.Lookup(name)]; ok {
		return k
	}
	return tagUnknown
}

// Parser converts note HTML into documents. It never fails: malformed or
// unsupported markup degrades to plain text.
type Parser struct {
	log *zap.Logger
}

// NewParser returns parser reporting markup degradations to log (may be nil).
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// Parse converts HTML text to a document using a parser without logging.
func Parse(src string) Document {
	return NewParser(nil).Parse(src)
}

// frame is a single open context on the parsing stack: root, list item,
// quote or list container. List containers never hold content.
type frame struct {
	tag      tagKind
	kind     BlockKind
	ordinal  *int
	items    int
	children []Block
	// pending paragraph
	runs     Runs
	explicit bool
	space    bool
}

func (f *frame) isList() bool {
	return f.tag == tagList || f.tag == tagOrderedList
}

type parseState struct {
	log    *zap.Logger
	stack  []*frame
	bold   int
	italic int
}

// Parse converts HTML text to a document. Empty input produces a document with
// a single empty paragraph.
func (p *Parser) Parse(src string) Document {
	st := &parseState{
		log:   p.log,
		stack: []*frame{{space: true}},
	}

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF is the only error a string reader produces
			break
		}
		switch tt {
		case html.TextToken:
			st.text(string(z.Text()))
		case html.StartTagToken:
			name, _ := z.TagName()
			st.open(lookupTag(name), name)
		case html.EndTagToken:
			name, _ := z.TagName()
			st.close(lookupTag(name), name)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			kind := lookupTag(name)
			st.open(kind, name)
			if kind != tagBreak {
				st.close(kind, name)
			}
		}
	}
	return st.finish()
}

func (st *parseState) top() *frame {
	return st.stack[len(st.stack)-1]
}

// block returns innermost frame able to hold content.
func (st *parseState) block() *frame {
	for i := len(st.stack) - 1; i > 0; i-- {
		if !st.stack[i].isList() {
			return st.stack[i]
		}
	}
	return st.stack[0]
}

func (st *parseState) style() Style {
	s := StylePlain
	if st.bold > 0 {
		s |= StyleBold
	}
	if st.italic > 0 {
		s |= StyleItalic
	}
	return s
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// text adds character data to the pending paragraph collapsing whitespace the
// way browsers do.
func (st *parseState) text(data string) {
	f := st.block()
	var buf strings.Builder
	for _, r := range data {
		if isSpace(r) {
			if !f.space {
				buf.WriteByte(' ')
				f.space = true
			}
			continue
		}
		buf.WriteRune(r)
		f.space = false
	}
	f.runs = f.runs.add(buf.String(), st.style())
}

// flush ends pending paragraph of the frame. Empty paragraphs are kept only
// when forced or when they were opened by a line break.
func (st *parseState) flush(f *frame, force bool) {
	if len(f.runs) > 0 || f.explicit || force {
		f.children = append(f.children, Block{Kind: BlockKindParagraph, Runs: f.runs})
	}
	f.runs, f.explicit, f.space = nil, false, true
}

func (st *parseState) open(kind tagKind, name []byte) {
	switch kind {
	case tagBold:
		st.bold++
	case tagItalic:
		st.italic++
	case tagBreak:
		f := st.block()
		st.flush(f, true)
		f.explicit = true
	case tagParagraph:
		st.flush(st.block(), false)
	case tagList, tagOrderedList:
		st.flush(st.block(), false)
		st.stack = append(st.stack, &frame{tag: kind})
	case tagListItem:
		if st.top().tag == tagListItem {
			// <li> implicitly ends previous item
			st.pop()
		}
		st.flush(st.block(), false)
		f := &frame{tag: kind, kind: BlockKindListItem, space: true}
		if list := st.top(); list.tag == tagOrderedList {
			list.items++
			n := list.items
			f.ordinal = &n
		}
		st.stack = append(st.stack, f)
	case tagQuote:
		st.flush(st.block(), false)
		st.stack = append(st.stack, &frame{tag: kind, kind: BlockKindQuote, space: true})
	default:
		st.log.Debug("Unsupported tag, keeping content as text", zap.ByteString("tag", name))
	}
}

func (st *parseState) close(kind tagKind, name []byte) {
	switch kind {
	case tagBold:
		if st.bold > 0 {
			st.bold--
		}
	case tagItalic:
		if st.italic > 0 {
			st.italic--
		}
	case tagBreak:
		// </br> is treated as <br> by browsers
		st.open(kind, name)
	case tagParagraph:
		st.flush(st.block(), false)
	case tagList, tagOrderedList, tagListItem, tagQuote:
		idx := -1
		for i := len(st.stack) - 1; i > 0; i-- {
			if st.stack[i].tag == kind {
				idx = i
				break
			}
		}
		if idx < 0 {
			st.log.Debug("Unbalanced closing tag, ignoring", zap.ByteString("tag", name))
			return
		}
		for len(st.stack) > idx {
			st.pop()
		}
	}
}

// pop closes top frame attaching completed block to its parent.
func (st *parseState) pop() {
	f := st.top()
	st.stack = st.stack[:len(st.stack)-1]
	if f.isList() {
		return
	}

	var b Block
	if len(f.children) == 0 {
		b = Block{Kind: f.kind, Ordinal: f.ordinal, Runs: f.runs}
	} else {
		st.flush(f, false)
		b = Wrap(f.kind, f.ordinal, f.children...)
	}
	parent := st.block()
	parent.children = append(parent.children, b)
	parent.space = true
}

func (st *parseState) finish() Document {
	if len(st.stack) > 1 {
		st.log.Debug("Unclosed tags at the end of input", zap.Int("count", len(st.stack)-1))
	}
	for len(st.stack) > 1 {
		st.pop()
	}
	root := st.stack[0]
	st.flush(root, false)
	return NewDocument(root.children...)
}
