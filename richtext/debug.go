package richtext

import (
	"strconv"

	"github.com/beevik/etree"

	"xmnote/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns readable tree of the document. It exists for manual
// inspection and for the tree output of the command line tool.
func (d Document) String() string {
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Document blocks=%d", len(d.Blocks))
	for i := range d.Blocks {
		tw.block(1, i, &d.Blocks[i])
	}
	return tw.String()
}

func (tw treeWriter) block(depth, index int, b *Block) {
	if b.Ordinal != nil {
		tw.Line(depth, "%s[%d] ordinal=%d", b.Kind, index, *b.Ordinal)
	} else {
		tw.Line(depth, "%s[%d]", b.Kind, index)
	}
	for i := range b.Children {
		tw.block(depth+1, i, &b.Children[i])
	}
	for i, r := range b.Runs {
		tw.Item(depth+1, i, "Run "+r.Style.String(), r.Text)
	}
}

// XML returns document structure as XML, one element per block and run.
func (d Document) XML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("note")
	for i := range d.Blocks {
		appendBlockXML(root, &d.Blocks[i])
	}
	doc.Indent(2)
	return doc
}

func appendBlockXML(parent *etree.Element, b *Block) {
	el := parent.CreateElement(b.Kind.String())
	if b.Ordinal != nil {
		el.CreateAttr("ordinal", strconv.Itoa(*b.Ordinal))
	}
	for i := range b.Children {
		appendBlockXML(el, &b.Children[i])
	}
	for _, r := range b.Runs {
		run := el.CreateElement("run")
		if r.Style.Has(StyleBold) {
			run.CreateAttr("bold", "true")
		}
		if r.Style.Has(StyleItalic) {
			run.CreateAttr("italic", "true")
		}
		run.SetText(r.Text)
	}
}
