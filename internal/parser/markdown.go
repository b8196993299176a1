package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownTokenizer flattens a goldmark AST into a markdown-it style token
// stream: block containers become open/close pairs and the text of every
// paragraph or heading becomes a single inline token one level deeper.
type MarkdownTokenizer struct {
	md goldmark.Markdown
}

// NewMarkdownTokenizer returns a tokenizer using goldmark's CommonMark parser.
func NewMarkdownTokenizer() *MarkdownTokenizer {
	return &MarkdownTokenizer{md: goldmark.New()}
}

// Tokenize parses one document. A leading front matter block is dropped and
// tabs in line indentation are expanded before parsing.
func (p *MarkdownTokenizer) Tokenize(src []byte) ([]Token, error) {
	body := expandIndentTabs(stripFrontMatter(src))

	doc := p.md.Parser().Parse(text.NewReader(body))

	w := &tokenWriter{src: body}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, 0)
	}
	return w.tokens, nil
}

// expandIndentTabs replaces tabs in the leading whitespace of every line with
// spaces up to the next multiple of 4 columns, so mixed space and tab
// indentation nests list items by column.
func expandIndentTabs(src []byte) []byte {
	if !bytes.Contains(src, []byte("\t")) {
		return src
	}
	out := make([]byte, 0, len(src)+64)
	for len(src) > 0 {
		line, rest, found := bytes.Cut(src, []byte("\n"))
		col, i := 0, 0
	indent:
		for ; i < len(line); i++ {
			switch line[i] {
			case ' ':
				col++
			case '\t':
				col += tabWidth - col%tabWidth
			default:
				break indent
			}
		}
		out = append(out, bytes.Repeat([]byte(" "), col)...)
		out = append(out, line[i:]...)
		if found {
			out = append(out, '\n')
		}
		src = rest
	}
	return out
}

const tabWidth = 4

type tokenWriter struct {
	src    []byte
	tokens []Token
}

func (w *tokenWriter) emit(t Token) {
	w.tokens = append(w.tokens, t)
}

func (w *tokenWriter) block(n ast.Node, level int) {
	switch node := n.(type) {
	case *ast.Heading:
		tag := fmt.Sprintf("h%d", node.Level)
		markup := strings.Repeat("#", node.Level)
		w.emit(Token{Type: TypeHeadingOpen, Tag: tag, Markup: markup, Level: level})
		w.emit(Token{Type: TypeInline, Content: w.inlineContent(node), Level: level + 1})
		w.emit(Token{Type: TypeHeadingClose, Tag: tag, Markup: markup, Level: level})

	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(w.inlineContent(node), level)

	case *ast.List:
		openType, closeType, tag := TypeBulletListOpen, TypeBulletListClose, "ul"
		if node.IsOrdered() {
			openType, closeType, tag = TypeOrderedOpen, TypeOrderedClose, "ol"
		}
		markup := string(node.Marker)
		w.emit(Token{Type: openType, Tag: tag, Markup: markup, Level: level})
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			w.emit(Token{Type: TypeListItemOpen, Tag: "li", Markup: markup, Level: level + 1})
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				w.block(c, level+2)
			}
			w.emit(Token{Type: TypeListItemClose, Tag: "li", Markup: markup, Level: level + 1})
		}
		w.emit(Token{Type: closeType, Tag: tag, Markup: markup, Level: level})

	case *ast.Blockquote:
		w.emit(Token{Type: TypeBlockquoteOpen, Tag: "blockquote", Markup: ">", Level: level})
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c, level+1)
		}
		w.emit(Token{Type: TypeBlockquoteClose, Tag: "blockquote", Markup: ">", Level: level})

	case *ast.FencedCodeBlock:
		w.emit(Token{Type: TypeFence, Tag: "code", Markup: "```", Content: w.rawLines(node), Level: level})

	case *ast.CodeBlock:
		w.emit(Token{Type: TypeCodeBlock, Tag: "code", Content: w.rawLines(node), Level: level})

	case *ast.ThematicBreak:
		w.emit(Token{Type: TypeHR, Tag: "hr", Markup: "---", Level: level})

	case *ast.HTMLBlock:
		raw := w.rawLines(node)
		if node.HasClosure() {
			raw += string(node.ClosureLine.Value(w.src))
		}
		// Without HTML support the block reads as a paragraph of its text.
		if t := htmlText(raw); t != "" {
			w.paragraph(t, level)
			return
		}
		w.emit(Token{Type: TypeHTMLBlock, Content: raw, Level: level})

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Type() == ast.TypeBlock {
				w.block(c, level)
			}
		}
	}
}

func (w *tokenWriter) paragraph(content string, level int) {
	w.emit(Token{Type: TypeParagraphOpen, Tag: "p", Level: level})
	w.emit(Token{Type: TypeInline, Content: content, Level: level + 1})
	w.emit(Token{Type: TypeParagraphClose, Tag: "p", Level: level})
}

// inlineContent returns the raw inline source of a leaf block, one trimmed
// line per source line. Inline HTML tags are cut out, their text is kept.
func (w *tokenWriter) inlineContent(n ast.Node) string {
	var cut []text.Segment
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if raw, ok := c.(*ast.RawHTML); ok {
			for i := 0; i < raw.Segments.Len(); i++ {
				cut = append(cut, raw.Segments.At(i))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		parts = append(parts, strings.TrimSpace(string(w.without(lines.At(i), cut))))
	}
	return strings.Join(parts, "\n")
}

// without returns the bytes of seg minus any overlapping cut ranges.
func (w *tokenWriter) without(seg text.Segment, cut []text.Segment) []byte {
	if len(cut) == 0 {
		return seg.Value(w.src)
	}
	var out []byte
	pos := seg.Start
	for _, c := range cut {
		if c.Stop <= pos || c.Start >= seg.Stop {
			continue
		}
		if c.Start > pos {
			out = append(out, w.src[pos:c.Start]...)
		}
		pos = c.Stop
	}
	if pos < seg.Stop {
		out = append(out, w.src[pos:seg.Stop]...)
	}
	return out
}

func (w *tokenWriter) rawLines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.src))
	}
	return sb.String()
}
