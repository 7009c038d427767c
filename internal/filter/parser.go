package filter

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token in a filter query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in a filter query
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Tokenizer converts a filter query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	ch := t.input[t.pos]

	switch ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.readQuotedText()
	case '~':
		return t.readFuzzy()
	case '/':
		return t.readRegex()
	default:
		if isAlpha(ch) {
			return t.readFilter()
		}
		return t.readText()
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && (t.input[t.pos] == ' ' || t.input[t.pos] == '\t' || t.input[t.pos] == '\n') {
		t.pos++
	}
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // Skip opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++ // Skip closing quote
	}
	return Token{Type: TokenText, Value: value}
}

// readFilter reads an identifier and, when a colon follows, the filter
// criteria after it. Without a colon the identifier was plain text.
func (t *Tokenizer) readFilter() Token {
	start := t.pos
	for t.pos < len(t.input) && (isAlphaNumeric(t.input[t.pos]) || t.input[t.pos] == '_') {
		t.pos++
	}

	if t.pos < len(t.input) && t.input[t.pos] == ':' {
		ident := t.input[start:t.pos]
		t.pos++ // Skip colon
		criteria := t.readFilterCriteria()
		return Token{Type: TokenFilter, Value: ident + ":" + criteria}
	}

	t.pos = start
	return t.readText()
}

func (t *Tokenizer) readFilterCriteria() string {
	start := t.pos
	// Read comparison operator
	if t.pos < len(t.input) && (t.input[t.pos] == '>' || t.input[t.pos] == '<' || t.input[t.pos] == '!' || t.input[t.pos] == '=') {
		t.pos++
		if t.pos < len(t.input) && t.input[t.pos] == '=' {
			t.pos++
		}
	}

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == ')' {
			break
		}
		t.pos++
	}

	return t.input[start:t.pos]
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readFuzzy() Token {
	t.pos++ // Skip ~

	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' || ch == '-' {
			break
		}
		t.pos++
	}

	term := t.input[start:t.pos]
	if term == "" {
		// Empty fuzzy search, treat as just ~
		return Token{Type: TokenText, Value: "~"}
	}

	return Token{Type: TokenFilter, Value: "~" + term}
}

func (t *Tokenizer) readRegex() Token {
	startPos := t.pos
	t.pos++ // Skip opening /
	start := t.pos
	escaped := false

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if escaped {
			escaped = false
			t.pos++
			continue
		}
		if ch == '\\' {
			escaped = true
			t.pos++
			continue
		}
		if ch == '/' {
			pattern := t.input[start:t.pos]
			t.pos++ // Skip closing /
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}

	// End of input - treat rest as regex pattern
	pattern := t.input[start:t.pos]
	if pattern == "" {
		// Empty pattern after /, treat as text
		t.pos = startPos
		return t.readText()
	}
	return Token{Type: TokenRegex, Value: pattern}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}

// Parser converts tokens into a FilterExpr tree
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// ParseQuery parses a complete filter query and returns the root
// expression. An empty query matches everything.
func ParseQuery(query string) (FilterExpr, error) {
	tokenizer := NewTokenizer(query)
	tokens := tokenizer.AllTokens()

	if len(tokens) == 1 && tokens[0].Type == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}

	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.currentToken().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", parser.currentToken().Value)
	}

	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Operator precedence: OR < AND < NOT < Atoms

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenOr {
		p.advance() // consume |
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		if p.currentToken().Type == TokenAnd {
			p.advance() // consume +
		}
		// Implicit AND: keep going while another operand follows
		t := p.currentToken().Type
		if t == TokenEOF || t == TokenRParen || t == TokenOr {
			break
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()               // consume -
		expr, err := p.parseNot() // Allow chaining of NOTs
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}

	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	switch p.currentToken().Type {
	case TokenLParen:
		p.advance() // consume (
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %s", p.currentToken().Value)
		}
		p.advance() // consume )
		return expr, nil

	case TokenText:
		value := p.currentToken().Value
		p.advance()
		return NewTextExpr(value), nil

	case TokenFilter:
		value := p.currentToken().Value
		p.advance()
		return parseFilterValue(value)

	case TokenRegex:
		pattern := p.currentToken().Value
		p.advance()
		return NewRegexExpr(pattern)

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")

	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken().Value)
	}
}

// parseFilterValue converts a filter token value into the matching
// expression type
func parseFilterValue(value string) (FilterExpr, error) {
	// ~ prefix is a fuzzy term
	if strings.HasPrefix(value, "~") {
		return NewFuzzyExpr(value[1:]), nil
	}

	parts := strings.SplitN(value, ":", 2)
	if len(parts) < 2 {
		return NewTextExpr(value), nil
	}

	filterType := parts[0]
	criteria := parts[1]

	switch filterType {
	case "k":
		return NewKindExpr(criteria)
	case "o", "n":
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		return NewLineExpr(filterType, op, val)
	case "len":
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		return NewLenExpr(op, val)
	default:
		// Unknown filter type, treat as text
		return NewTextExpr(value), nil
	}
}

// parseComparison extracts the comparison operator and value from criteria
// Examples: "5" -> ("=", "5"), ">2" -> (">", "2"), ">=10" -> (">=", "10")
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}

	ops := []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}
	for _, op := range ops {
		if strings.HasPrefix(criteria, string(op)) {
			val := criteria[len(op):]
			if val == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, val, nil
		}
	}

	// Default to equality
	return OpEqual, criteria, nil
}
