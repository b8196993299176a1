package parser

// TokenType identifies the kind of a Token.
type TokenType string

const (
	TypeHeadingOpen     TokenType = "heading_open"
	TypeHeadingClose    TokenType = "heading_close"
	TypeParagraphOpen   TokenType = "paragraph_open"
	TypeParagraphClose  TokenType = "paragraph_close"
	TypeBulletListOpen  TokenType = "bullet_list_open"
	TypeBulletListClose TokenType = "bullet_list_close"
	TypeOrderedOpen     TokenType = "ordered_list_open"
	TypeOrderedClose    TokenType = "ordered_list_close"
	TypeListItemOpen    TokenType = "list_item_open"
	TypeListItemClose   TokenType = "list_item_close"
	TypeBlockquoteOpen  TokenType = "blockquote_open"
	TypeBlockquoteClose TokenType = "blockquote_close"
	TypeInline          TokenType = "inline"
	TypeCodeBlock       TokenType = "code_block"
	TypeFence           TokenType = "fence"
	TypeHR              TokenType = "hr"
	TypeHTMLBlock       TokenType = "html_block"
)

// Token is one unit of the flat token stream.
//
// Level is the block nesting depth. Inline text of a top-level paragraph or
// heading sits at level 1, the text of a list item at level 3, the text of a
// nested list item at level 5 and a blockquote inside a nested list item at
// level 6.
type Token struct {
	Type    TokenType
	Tag     string // h1, h2, p, ul, li, blockquote, ...
	Markup  string // "#", "##", "-", ">", "```"
	Content string
	Level   int
}

// HeadingLevel returns 1 for h1, 2 for h2 and so on, or 0 for non-headings.
func (t Token) HeadingLevel() int {
	if t.Type != TypeHeadingOpen && t.Type != TypeHeadingClose {
		return 0
	}
	if len(t.Tag) != 2 || t.Tag[0] != 'h' {
		return 0
	}
	return int(t.Tag[1] - '0')
}
