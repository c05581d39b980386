// Package lexer turns Quasar source text into a token stream (spec.md
// §4.1). The lexer is eager and batch: Lex consumes the whole source
// string and returns every token up front plus any diagnostics gathered
// along the way, rather than streaming tokens one at a time — a good fit
// for a compiler with no incremental or interactive mode (spec.md §1).
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oxhq/quasar/internal/diag"
	"github.com/oxhq/quasar/internal/token"
)

const eof = -1

type Lexer struct {
	file  string
	src   string
	pos   int // byte offset of the next rune to read
	line  int
	col   int
	diags diag.Bag

	// start of the token currently being scanned
	startLine, startCol int
}

// New creates a lexer over src, attributing spans to file.
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: src, line: 1, col: 1}
}

// Lex runs the lexer to completion, returning the full token stream
// (terminated by a single EOF token) and any diagnostics produced.
func Lex(file, src string) ([]token.Token, diag.Bag) {
	l := New(file, src)
	var toks []token.Token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, l.diags
}

func (l *Lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) peekRuneAt(offset int) rune {
	p := l.pos
	for i := 0; i < offset; i++ {
		if p >= len(l.src) {
			return eof
		}
		_, w := utf8.DecodeRuneInString(l.src[p:])
		p += w
	}
	if p >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[p:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) span() token.Span {
	return token.Span{
		StartLine: l.startLine, StartCol: l.startCol,
		EndLine: l.line, EndCol: l.col,
		File: l.file,
	}
}

func (l *Lexer) make(kind token.Kind, startPos int) token.Token {
	return token.Token{
		Kind:   kind,
		Lexeme: l.src[startPos:l.pos],
		Span:   l.span(),
	}
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isAlnum(r rune) bool  { return isLetter(r) || isDigit(r) }

// next scans and returns the single next token, skipping whitespace and
// line comments first.
func (l *Lexer) next() token.Token {
	l.skipTrivia()

	l.startLine, l.startCol = l.line, l.col
	startPos := l.pos

	r := l.peekRune()
	if r == eof {
		return token.Token{Kind: token.EOF, Span: l.span()}
	}

	switch {
	case isLetter(r):
		return l.lexIdent(startPos)
	case isDigit(r):
		return l.lexNumber(startPos)
	case r == '"':
		return l.lexString(startPos)
	}

	return l.lexOperator(startPos, r)
}

func (l *Lexer) skipTrivia() {
	for {
		r := l.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '/' && l.peekRuneAt(1) == '/':
			for l.peekRune() != '\n' && l.peekRune() != eof {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexIdent(startPos int) token.Token {
	for isAlnum(l.peekRune()) {
		l.advance()
	}
	word := l.src[startPos:l.pos]
	return token.Token{Kind: token.LookupIdent(word), Lexeme: word, Span: l.span()}
}

func (l *Lexer) lexNumber(startPos int) token.Token {
	for isDigit(l.peekRune()) {
		l.advance()
	}
	isFloat := false
	if l.peekRune() == '.' && isDigit(l.peekRuneAt(1)) {
		isFloat = true
		l.advance() // consume '.'
		for isDigit(l.peekRune()) {
			l.advance()
		}
	}
	lexeme := l.src[startPos:l.pos]
	t := l.make(0, startPos)
	if isFloat {
		t.Kind = token.FLOAT
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			l.diags.Add(diag.ErrUnrecognizedChar, l.span(), "malformed float literal %q", lexeme)
		}
		t.Value = f
	} else {
		t.Kind = token.INT
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			l.diags.Add(diag.ErrUnrecognizedChar, l.span(), "malformed integer literal %q", lexeme)
		}
		t.Value = n
	}
	return t
}

func (l *Lexer) lexString(startPos int) token.Token {
	l.advance() // opening quote
	var sb strings.Builder
	terminated := false
	for {
		r := l.peekRune()
		if r == eof || r == '\n' {
			break
		}
		if r == '"' {
			l.advance()
			terminated = true
			break
		}
		if r == '\\' {
			l.advance()
			esc := l.peekRune()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
				l.advance()
			case 't':
				sb.WriteRune('\t')
				l.advance()
			case '"':
				sb.WriteRune('"')
				l.advance()
			case '\\':
				sb.WriteRune('\\')
				l.advance()
			default:
				sb.WriteRune('\\')
			}
			continue
		}
		sb.WriteRune(r)
		l.advance()
	}

	t := token.Token{Kind: token.STRING, Lexeme: l.src[startPos:l.pos], Value: sb.String(), Span: l.span()}
	if !terminated {
		l.diags.Add(diag.ErrUnterminatedString, l.span(), "unterminated string literal")
	}
	return t
}

// twoCharOps lists the greedy two-character operators: the lexer must
// prefer these over their single-character prefix (spec.md §4.1).
var twoCharOps = map[string]token.Kind{
	"==": token.EQ,
	"!=": token.NEQ,
	"<=": token.LE,
	">=": token.GE,
	"&&": token.AND,
	"||": token.OR,
	"->": token.ARROW,
	"..": token.RANGE,
}

var oneCharOps = map[rune]token.Kind{
	'{': token.LBRACE,
	'}': token.RBRACE,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	',': token.COMMA,
	':': token.COLON,
	'.': token.DOT,
	'=': token.ASSIGN,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'<': token.LT,
	'>': token.GT,
	'!': token.NOT,
}

func (l *Lexer) lexOperator(startPos int, r rune) token.Token {
	two := string(r) + string(l.peekRuneAt(1))
	if kind, ok := twoCharOps[two]; ok {
		l.advance()
		l.advance()
		return l.make(kind, startPos)
	}

	if r == ';' {
		l.advance()
		l.diags.Add(diag.ErrUnrecognizedChar, l.span(), "semicolons are not part of Quasar")
		return l.make(token.ILLEGAL, startPos)
	}

	if kind, ok := oneCharOps[r]; ok {
		l.advance()
		return l.make(kind, startPos)
	}

	l.advance()
	l.diags.Add(diag.ErrUnrecognizedChar, l.span(), "unrecognized character %q", r)
	return l.make(token.ILLEGAL, startPos)
}
