package chibi

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type TokenType uint64

const (
	TokenNumber TokenType = iota
	TokenPrint

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenOpenParentheses
	TokenCloseParentheses
)

var tokenTypeNames = map[TokenType]string{
	TokenNumber:           "Number",
	TokenPrint:            "Print",
	TokenPlus:             "Plus",
	TokenMinus:            "Minus",
	TokenMulti:            "Multi",
	TokenDiv:              "Div",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}

	return "TokenType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

var keywordTable = map[string]TokenType{
	"print": TokenPrint,
}

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMulti,
	'/': TokenDiv,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
}

type Token struct {
	Typ   TokenType
	Value string
}

// Lexer turns one whole input unit into tokens.
type Lexer struct {
	reader io.Reader
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: reader,
	}
}

func (l *Lexer) Run() ([]Token, error) {
	src, err := io.ReadAll(l.reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	return Tokenize(string(src)), nil
}

// Tokenize isolates every operator and parenthesis with spaces and splits the
// result on whitespace. Words are not validated: "12a" becomes a TokenNumber and
// fails when parsed.
func Tokenize(input string) []Token {
	var spaced strings.Builder
	spaced.Grow(len(input))

	for _, r := range input {
		if _, ok := operatorTable[r]; ok {
			spaced.WriteRune(' ')
			spaced.WriteRune(r)
			spaced.WriteRune(' ')
			continue
		}

		spaced.WriteRune(r)
	}

	words := strings.Fields(spaced.String())
	if len(words) == 0 {
		return nil
	}

	toks := make([]Token, 0, len(words))
	for _, w := range words {
		toks = append(toks, Token{Typ: classify(w), Value: w})
	}

	return toks
}

func classify(word string) TokenType {
	if t, ok := keywordTable[word]; ok {
		return t
	}

	if len(word) == 1 {
		if t, ok := operatorTable[rune(word[0])]; ok {
			return t
		}
	}

	return TokenNumber
}
