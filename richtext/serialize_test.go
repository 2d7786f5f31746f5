package richtext

import (
	"slices"
	"sync"
	"testing"

	"xmnote/common"
)

func TestSerializeComboOrder(t *testing.T) {
	const src = "<ul><li><blockquote>组合段落</blockquote></li></ul>"

	tests := []struct {
		order common.ComboOrder
		want  string
	}{
		{common.ComboOrderBulletThenQuote, "<ul><li><blockquote>组合段落</blockquote></li></ul>"},
		{common.ComboOrderQuoteThenBullet, "<blockquote><ul><li>组合段落</li></ul></blockquote>"},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			t.Cleanup(SetDefaultComboOrder(tt.order))

			doc := newTestParser(t).Parse(src)
			if got := Serialize(doc); got != tt.want {
				t.Fatalf("Serialize() = %q, want %q", got, tt.want)
			}
			// the other nesting parses into the same combo paragraph
			if got := Serialize(Parse(tt.want)); got != tt.want {
				t.Fatalf("Serialize(Parse(%q)) = %q", tt.want, got)
			}
		})
	}
}

func TestSerializeComboKeepsOrdinal(t *testing.T) {
	doc := Parse("<ol><li><blockquote>x</blockquote></li></ol>")
	got := NewSerializer(common.ComboOrderQuoteThenBullet).Serialize(doc)
	if want := "<blockquote><ol><li>x</li></ol></blockquote>"; got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeStrategyIgnoredForPlainBlocks(t *testing.T) {
	doc := NewDocument(NewListItem(plain("a")), NewQuote(plain("b")))
	want := "<ul><li>a</li></ul><blockquote>b</blockquote>"
	for _, order := range []common.ComboOrder{common.ComboOrderBulletThenQuote, common.ComboOrderQuoteThenBullet} {
		if got := NewSerializer(order).Serialize(doc); got != want {
			t.Fatalf("order %s: Serialize() = %q, want %q", order, got, want)
		}
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "empty document",
			doc:  NewDocument(),
			want: "",
		},
		{
			name: "empty runs are not emitted",
			doc:  NewDocument(Block{Kind: BlockKindParagraph, Runs: Runs{{Text: "", Style: StyleBold}}}),
			want: "",
		},
		{
			name: "canonical style nesting",
			doc:  NewDocument(NewParagraph(Run{Text: "x", Style: StyleItalic | StyleBold})),
			want: "<b><i>x</i></b>",
		},
		{
			name: "runs",
			doc:  NewDocument(NewParagraph(bold("a"), boldItalic("b"), plain(" c"))),
			want: "<b>a</b><b><i>b</i></b> c",
		},
		{
			name: "paragraphs",
			doc:  NewDocument(NewParagraph(plain("a")), NewParagraph(), NewParagraph(plain("b"))),
			want: "a<br/><br/>b",
		},
		{
			name: "escaping",
			doc:  NewDocument(NewParagraph(plain(`a < b & "c"`))),
			want: "a &lt; b &amp; &#34;c&#34;",
		},
		{
			name: "ordered item",
			doc:  NewDocument(NewOrderedListItem(3, plain("x"))),
			want: "<ol><li>x</li></ol>",
		},
		{
			name: "lists are not merged",
			doc:  NewDocument(NewListItem(plain("a")), NewListItem(plain("b"))),
			want: "<ul><li>a</li></ul><ul><li>b</li></ul>",
		},
		{
			name: "quote with paragraphs",
			doc:  NewDocument(Wrap(BlockKindQuote, nil, NewParagraph(plain("a")), NewParagraph(plain("b")))),
			want: "<blockquote>a<br/>b</blockquote>",
		},
		{
			name: "blocks between paragraphs",
			doc:  NewDocument(NewParagraph(plain("a")), NewQuote(plain("q")), NewParagraph(plain("b"))),
			want: "a<blockquote>q</blockquote>b",
		},
		{
			name: "nested quotes",
			doc:  NewDocument(Wrap(BlockKindQuote, nil, NewQuote(plain("x")))),
			want: "<blockquote><blockquote>x</blockquote></blockquote>",
		},
		{
			name: "hand built unmerged runs",
			doc:  Document{Blocks: []Block{{Kind: BlockKindParagraph, Runs: Runs{bold("a"), bold("b")}}}},
			want: "<b>ab</b>",
		},
		{
			name: "hand built container with runs and children",
			doc: Document{Blocks: []Block{{
				Kind:     BlockKindQuote,
				Runs:     Runs{plain("first")},
				Children: []Block{NewParagraph(plain("kept"))},
			}}},
			want: "<blockquote>first<br/>kept</blockquote>",
		},
		{
			name: "hand built paragraph with children",
			doc:  Document{Blocks: []Block{{Kind: BlockKindParagraph, Children: []Block{NewQuote(italic("q"))}}}},
			want: "<i>q</i>",
		},
		{
			name: "hand built combo with unmerged runs",
			doc: Document{Blocks: []Block{{
				Kind:     BlockKindListItem,
				Children: []Block{{Kind: BlockKindQuote, Runs: Runs{bold("a"), bold("b")}}},
			}}},
			want: "<ul><li><blockquote><b>ab</b></blockquote></li></ul>",
		},
		{
			name: "no blocks",
			doc:  Document{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSerializer(common.ComboOrderBulletThenQuote).Serialize(tt.doc); got != tt.want {
				t.Fatalf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeHandBuiltIsStable(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Kind: BlockKindParagraph, Runs: Runs{bold("a"), bold("b"), plain("c")}},
		{Kind: BlockKindQuote, Runs: Runs{plain("x")}, Children: []Block{NewListItem(plain("y"))}},
	}}
	s := NewSerializer(common.ComboOrderBulletThenQuote)
	first := s.Serialize(doc)
	if second := s.Serialize(Parse(first)); first != second {
		t.Fatalf("Serialize() not stable: %q then %q", first, second)
	}
}

// Every list item is emitted as its own list, so numbering restarts after an
// HTML round trip. Ordinals survive only through the model and styled text.
func TestSerializeOrdinalsNotKept(t *testing.T) {
	ordinals := func(doc Document) []int {
		var out []int
		for _, b := range doc.Blocks {
			if b.Ordinal != nil {
				out = append(out, *b.Ordinal)
			}
		}
		return out
	}

	doc := Parse("<ol><li>a</li><li>b</li></ol>")
	if got := ordinals(doc); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("parsed ordinals = %v, want [1 2]", got)
	}

	out := NewSerializer(common.ComboOrderBulletThenQuote).Serialize(doc)
	if want := "<ol><li>a</li></ol><ol><li>b</li></ol>"; out != want {
		t.Fatalf("Serialize() = %q, want %q", out, want)
	}
	if got := ordinals(Parse(out)); !slices.Equal(got, []int{1, 1}) {
		t.Fatalf("ordinals after round trip = %v, want [1 1]", got)
	}
}

func TestRoundTripIdempotence(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"<div>x</div>",
		"&zwj;<b>Android</b> 兼容",
		"<b>a</b><b>b</b><i>c</i>",
		"<b>bold <i>both</i></b> plain",
		"a<br>b<br><br>",
		"<br>",
		"<p dir=\"ltr\">first</p>\n<p dir=\"ltr\">second <b>line</b></p>\n",
		"<ul><li>a<li>b</ul>tail",
		"<ol><li>one</li><li>two</li></ol>",
		"<ul><li><blockquote>组合段落</blockquote></li></ul>",
		"<blockquote><ul><li>组合段落</li></ul></blockquote>",
		"<ol><li><blockquote><i>x</i></blockquote></li></ol>",
		"<blockquote>a<ul><li>b</li></ul>c</blockquote>",
		"<blockquote>a<br></blockquote>b",
		"<blockquote>x</blockquote><br>y",
		"<ul><li><p>a</p><p>b</p></li></ul>",
		"<ul><li><blockquote>a</blockquote>b</li></ul>",
		"<blockquote><blockquote>deep</blockquote></blockquote>",
		"<b>a<blockquote>b</b>c</blockquote>",
		"</b></blockquote>x</i><li>",
		"<blockquote><i>unclosed",
		"a &amp; b &lt;c&gt;&nbsp;&nbsp;d",
		"  spaced \n\n text  <b> bold </b> ",
		"<table><tr><td>cell</td></tr></table><script>var x = 1 < 2;</script>",
	}

	for _, order := range []common.ComboOrder{common.ComboOrderBulletThenQuote, common.ComboOrderQuoteThenBullet} {
		s := NewSerializer(order)
		for _, src := range inputs {
			first := s.Serialize(Parse(src))
			second := s.Serialize(Parse(first))
			if first != second {
				t.Errorf("order %s, input %q: not idempotent\nfirst:  %q\nsecond: %q", order, src, first, second)
			}
			if !Parse(first).Equal(Parse(second)) {
				t.Errorf("order %s, input %q: documents differ after round trip", order, src)
			}
		}
	}
}

func TestSetDefaultComboOrderRestores(t *testing.T) {
	before := DefaultComboOrder()

	restore := SetDefaultComboOrder(common.ComboOrderQuoteThenBullet)
	if got := DefaultComboOrder(); got != common.ComboOrderQuoteThenBullet {
		t.Fatalf("DefaultComboOrder() = %s after set", got)
	}
	restore()

	if got := DefaultComboOrder(); got != before {
		t.Fatalf("DefaultComboOrder() = %s after restore, want %s", got, before)
	}
}

func TestSerializeConcurrentWithOrderChanges(t *testing.T) {
	t.Cleanup(SetDefaultComboOrder(common.ComboOrderBulletThenQuote))

	doc := Parse("<ul><li><blockquote>x</blockquote></li></ul>")
	valid := map[string]bool{
		"<ul><li><blockquote>x</blockquote></li></ul>": true,
		"<blockquote><ul><li>x</li></ul></blockquote>": true,
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if i == 0 {
					SetDefaultComboOrder(common.ComboOrderQuoteThenBullet)
					SetDefaultComboOrder(common.ComboOrderBulletThenQuote)
					continue
				}
				if got := Serialize(doc); !valid[got] {
					t.Errorf("unexpected output %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
