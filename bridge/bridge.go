// Package bridge connects stored note HTML with the flat styled text UI
// edits, normalizing artifacts of older producers on the way in.
package bridge

import (
	"go.uber.org/zap"

	"xmnote/common"
	"xmnote/richtext"
)

// Bridge is stateless, zero value is ready to use: no logging and process
// wide combo order.
type Bridge struct {
	Log *zap.Logger
	// Order overrides process wide combo order when set.
	Order *common.ComboOrder
}

func (b Bridge) logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}

func (b Bridge) serializer() *richtext.Serializer {
	if b.Order != nil {
		return richtext.NewSerializer(*b.Order)
	}
	return richtext.NewSerializer(richtext.DefaultComboOrder())
}

// HTMLToDocument normalizes imported HTML and parses it.
func (b Bridge) HTMLToDocument(src string) richtext.Document {
	log := b.logger()

	src = CanonicalizeWhitespace(src)
	if stripped := StripLegacyMarker(src); len(stripped) != len(src) {
		log.Debug("Legacy marker removed", zap.Int("bytes", len(src)-len(stripped)))
		src = stripped
	}
	return richtext.NewParser(log).Parse(src)
}

// DocumentToHTML renders document as canonical note HTML.
func (b Bridge) DocumentToHTML(doc richtext.Document) string {
	return b.serializer().Serialize(doc)
}

// HTMLToAttributed converts stored note HTML to styled text.
func (b Bridge) HTMLToAttributed(src string) StyledText {
	return FromDocument(b.HTMLToDocument(src))
}

// AttributedToHTML converts styled text back to note HTML.
func (b Bridge) AttributedToHTML(st StyledText) string {
	return b.DocumentToHTML(ToDocument(st, b.logger()))
}

// HTMLToAttributed converts note HTML using zero value Bridge.
func HTMLToAttributed(src string) StyledText {
	return Bridge{}.HTMLToAttributed(src)
}

// AttributedToHTML converts styled text using zero value Bridge.
func AttributedToHTML(st StyledText) string {
	return Bridge{}.AttributedToHTML(st)
}
