package richtext

import (
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"xmnote/common"
)

// Process wide combo order. Read by Serialize at call time, written rarely
// (configuration, user preference, tests).
var defaultComboOrder atomic.Int32

// DefaultComboOrder returns process wide nesting order for paragraphs which
// are both bullet and quote.
func DefaultComboOrder() common.ComboOrder {
	return common.ComboOrder(defaultComboOrder.Load())
}

// SetDefaultComboOrder replaces process wide combo order and returns function
// restoring the previous value, suitable for defer or t.Cleanup.
func SetDefaultComboOrder(order common.ComboOrder) (restore func()) {
	prev := defaultComboOrder.Swap(int32(order))
	return func() {
		defaultComboOrder.Store(prev)
	}
}

// Serializer renders documents as note HTML using fixed combo order.
type Serializer struct {
	Order common.ComboOrder
}

// NewSerializer returns serializer with explicit combo order.
func NewSerializer(order common.ComboOrder) *Serializer {
	return &Serializer{Order: order}
}

// Serialize renders document with process wide combo order.
func Serialize(doc Document) string {
	return NewSerializer(DefaultComboOrder()).Serialize(doc)
}

// Serialize renders document as HTML. Output depends only on the document and
// serializer order, identical style sets always produce identical markup.
// Hand built documents are normalized first.
func (s *Serializer) Serialize(doc Document) string {
	root := &html.Node{Type: html.DocumentNode}
	s.appendBlocks(root, doc.Normalize().Blocks)

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		// tree is built here and cannot be invalid, builder never fails
		panic(fmt.Sprintf("unable to render note html: %v", err))
	}
	return buf.String()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func appendElement(parent *html.Node, a atom.Atom) *html.Node {
	el := element(a)
	parent.AppendChild(el)
	return el
}

// appendBlocks emits block sequence, consecutive paragraphs are separated by
// line breaks.
func (s *Serializer) appendBlocks(parent *html.Node, blocks []Block) {
	prevParagraph := false
	for _, b := range blocks {
		if b.Kind == BlockKindParagraph {
			if prevParagraph {
				appendElement(parent, atom.Br)
			}
			appendRuns(parent, b.Runs)
			prevParagraph = true
			continue
		}
		prevParagraph = false
		s.appendContainer(parent, b)
	}
}

func (s *Serializer) appendContainer(parent *html.Node, b Block) {
	if item, runs, ok := comboParagraph(b); ok {
		s.appendCombo(parent, item, runs)
		return
	}

	var el *html.Node
	switch b.Kind {
	case BlockKindListItem:
		el = appendListItem(parent, b)
	case BlockKindQuote:
		el = appendElement(parent, atom.Blockquote)
	default:
		// this should never happen
		panic(fmt.Sprintf("unexpected container block kind %s", b.Kind))
	}
	if b.IsLeaf() {
		appendRuns(el, b.Runs)
		return
	}
	s.appendBlocks(el, b.Children)
}

// comboParagraph detects single paragraph carrying both list and quote
// markers: either block wraps the other and the inner one is a leaf. Returns
// the list item block (for ordinal) and the paragraph runs.
func comboParagraph(b Block) (Block, Runs, bool) {
	if len(b.Children) != 1 {
		return Block{}, nil, false
	}
	inner := b.Children[0]
	if !inner.IsLeaf() {
		return Block{}, nil, false
	}
	switch {
	case b.Kind == BlockKindListItem && inner.Kind == BlockKindQuote:
		return b, inner.Runs, true
	case b.Kind == BlockKindQuote && inner.Kind == BlockKindListItem:
		return inner, inner.Runs, true
	}
	return Block{}, nil, false
}

func (s *Serializer) appendCombo(parent *html.Node, item Block, runs Runs) {
	var leaf *html.Node
	switch s.Order {
	case common.ComboOrderQuoteThenBullet:
		quote := appendElement(parent, atom.Blockquote)
		leaf = appendListItem(quote, item)
	default:
		li := appendListItem(parent, item)
		leaf = appendElement(li, atom.Blockquote)
	}
	appendRuns(leaf, runs)
}

// appendListItem emits single item list, lists are never merged across
// paragraphs.
func appendListItem(parent *html.Node, item Block) *html.Node {
	list := atom.Ul
	if item.Ordinal != nil {
		list = atom.Ol
	}
	return appendElement(appendElement(parent, list), atom.Li)
}

// appendRuns emits runs with bold always outside of italic.
func appendRuns(parent *html.Node, runs Runs) {
	for _, r := range MergeRuns(runs...) {
		node := parent
		if r.Style.Has(StyleBold) {
			node = appendElement(node, atom.B)
		}
		if r.Style.Has(StyleItalic) {
			node = appendElement(node, atom.I)
		}
		node.AppendChild(&html.Node{Type: html.TextNode, Data: r.Text})
	}
}
