package chibi

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// MaxNestingDepth bounds open '(' and 'print(' groups, which the parser
	// descends into recursively.
	MaxNestingDepth = 10000

	// MaxTreeDepth bounds the height of the resulting tree, which evaluation
	// and rendering walk recursively. Long operator chains count here.
	MaxTreeDepth = 100000
)

// Parser reads an immutable token slice through a cursor.
type Parser struct {
	tokens []Token
	pos    int
	depth  int
	log    zerolog.Logger

	// Height of every node built so far; literals are absent and count as 0.
	heights map[Expr]int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		log:     zerolog.Nop(),
		heights: make(map[Expr]int),
	}
}

// WithLogger sets the logger used for tracing parse steps.
func (p *Parser) WithLogger(log zerolog.Logger) *Parser {
	p.log = log
	return p
}

// Parse parses a complete input unit.
func Parse(tokens []Token) (Expr, error) {
	return NewParser(tokens).Run()
}

// Run parses one expression and requires every token to be consumed.
func (p *Parser) Run() (Expr, error) {
	expr, err := p.Expr()
	if err != nil {
		return nil, err
	}

	if tok, ok := p.peek(); ok {
		return nil, p.errorf(tok, "unexpected trailing token")
	}

	p.log.Debug().Int("tokens", len(p.tokens)).Stringer("ast", expr).Msg("parsed")
	return expr, nil
}

// Expr parses one expression and leaves the cursor right after it.
func (p *Parser) Expr() (Expr, error) {
	return p.additiveExpr()
}

// Remaining reports how many tokens have not been consumed yet.
func (p *Parser) Remaining() int {
	return len(p.tokens) - p.pos
}

func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}

	return p.tokens[p.pos], true
}

func (p *Parser) check(types ...TokenType) (Token, bool) {
	tok, ok := p.peek()
	if !ok {
		return Token{}, false
	}

	for _, typ := range types {
		if tok.Typ == typ {
			return tok, true
		}
	}

	return Token{}, false
}

func (p *Parser) expect(typ TokenType, value string) error {
	tok, ok := p.peek()
	if !ok {
		return p.eof("expected '%s'", value)
	}

	if tok.Typ != typ {
		return p.errorf(tok, "expected '%s'", value)
	}

	p.pos++
	return nil
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	return &ParseError{
		Pos:    p.pos,
		Token:  tok.Value,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (p *Parser) eof(format string, args ...interface{}) error {
	return &ParseError{
		Pos:    p.pos,
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrUnexpectedEOF,
	}
}

func (p *Parser) additiveExpr() (Expr, error) {
	return p.binaryLevel(p.multiplicativeExpr, TokenPlus, TokenMinus)
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	return p.binaryLevel(p.primary, TokenMulti, TokenDiv)
}

// binaryLevel folds operands of one precedence level to the left, so
// 1 - 3 + 1 is (1 - 3) + 1.
func (p *Parser) binaryLevel(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for tok, ok := p.check(ops...); ok; tok, ok = p.check(ops...) {
		p.pos++

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs, err = p.node(tok, &BinaryExpr{
			Operation: binaryOps[tok.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}, lhs, rhs)
		if err != nil {
			return nil, err
		}
	}

	return lhs, nil
}

func (p *Parser) primary() (Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eof("expected an operand")
	}

	switch tok.Typ {
	case TokenPrint, TokenOpenParentheses:
		if p.depth >= MaxNestingDepth {
			return nil, p.errorf(tok, "expression nested too deeply")
		}
	}

	switch tok.Typ {
	case TokenPrint:
		p.pos++
		if err := p.expect(TokenOpenParentheses, "("); err != nil {
			return nil, err
		}

		operand, err := p.parenthesisedTail()
		if err != nil {
			return nil, err
		}

		return p.node(tok, &PrintExpr{Operand: operand}, operand)
	case TokenOpenParentheses:
		p.pos++
		return p.parenthesisedTail()
	case TokenNumber:
		return p.literal(tok)
	default:
		return nil, p.errorf(tok, "expected an operand")
	}
}

// parenthesisedTail parses the rest of a group whose '(' was already consumed.
func (p *Parser) parenthesisedTail() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()

	expr, err := p.Expr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenCloseParentheses, ")"); err != nil {
		return nil, err
	}

	return expr, nil
}

// node records the height of expr, one above its tallest child.
func (p *Parser) node(tok Token, expr Expr, children ...Expr) (Expr, error) {
	height := 0
	for _, child := range children {
		height = max(height, p.heights[child])
	}
	height++

	if height > MaxTreeDepth {
		return nil, p.errorf(tok, "expression nested too deeply")
	}

	p.heights[expr] = height
	return expr, nil
}

func (p *Parser) literal(tok Token) (Expr, error) {
	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, &ParseError{
			Pos:    p.pos,
			Token:  tok.Value,
			Reason: "invalid number literal",
			Err:    errors.Wrap(err, "strconv"),
		}
	}

	p.pos++
	return &LiteralExpr{Value: v}, nil
}
