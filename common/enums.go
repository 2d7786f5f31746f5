// Enums shared between configuration and the codec packages. Kept separate so
// richtext does not depend on config.
package common

//go:generate go tool go-enum --marshal --names

// Nesting order used when a single paragraph is both a bullet and a quote.
// ENUM(bulletThenQuote, quoteThenBullet)
type ComboOrder int

// Specification of requested output type.
// ENUM(html, text, tree, xml)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtText:
		return ".txt"
	case OutputFmtTree:
		return ".tree.txt"
	case OutputFmtXml:
		return ".xml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
