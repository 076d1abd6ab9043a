package chibi

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.chibi.dev/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []Token
	}{
		{
			"1 + 2 * (3 + 4)",
			[]Token{
				{TokenNumber, "1"},
				{TokenPlus, "+"},
				{TokenNumber, "2"},
				{TokenMulti, "*"},
				{TokenOpenParentheses, "("},
				{TokenNumber, "3"},
				{TokenPlus, "+"},
				{TokenNumber, "4"},
				{TokenCloseParentheses, ")"},
			},
		},
		{
			"print(2+3)*4",
			[]Token{
				{TokenPrint, "print"},
				{TokenOpenParentheses, "("},
				{TokenNumber, "2"},
				{TokenPlus, "+"},
				{TokenNumber, "3"},
				{TokenCloseParentheses, ")"},
				{TokenMulti, "*"},
				{TokenNumber, "4"},
			},
		},
		{
			"10/3-\t7\n",
			[]Token{
				{TokenNumber, "10"},
				{TokenDiv, "/"},
				{TokenNumber, "3"},
				{TokenMinus, "-"},
				{TokenNumber, "7"},
			},
		},
		{
			"1 + - 2",
			[]Token{
				{TokenNumber, "1"},
				{TokenPlus, "+"},
				{TokenMinus, "-"},
				{TokenNumber, "2"},
			},
		},
		{
			// Words are not validated until they are parsed
			"12a printx",
			[]Token{
				{TokenNumber, "12a"},
				{TokenNumber, "printx"},
			},
		},
		{
			"",
			nil,
		},
		{
			"   \n\t ",
			nil,
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, Tokenize(c.data), c.data)

		toks, err := NewLexer(strings.NewReader(c.data)).Run()
		require.NoError(t, err)
		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "Print", TokenPrint.String())
	assert.Equal(t, "CloseParentheses", TokenCloseParentheses.String())
	assert.Equal(t, "TokenType(42)", TokenType(42).String())
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	data := test.GetRandomExpr(rand.New(rand.NewSource(1)), size)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		benchResult = Tokenize(data)
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}
