package chibi

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Interpreter runs input units through tokenize, parse and evaluate. Nothing
// is kept between runs.
type Interpreter struct {
	out io.Writer
	log zerolog.Logger
}

func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{
		out: out,
		log: zerolog.Nop(),
	}
}

func (i *Interpreter) WithLogger(log zerolog.Logger) *Interpreter {
	i.log = log
	return i
}

// Run evaluates src and returns the value of its top-level expression. print
// output is written as it happens; nothing else is.
func (i *Interpreter) Run(src string) (int64, error) {
	return i.eval(i.Parse(src))
}

// RunReader evaluates everything reader yields as one input unit.
func (i *Interpreter) RunReader(reader io.Reader) (int64, error) {
	return i.eval(i.ParseReader(reader))
}

func (i *Interpreter) RunFile(filename string) (int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", filename)
	}
	defer f.Close()

	v, err := i.RunReader(f)
	if err != nil {
		return 0, errors.WithMessage(err, filename)
	}

	return v, nil
}

// Parse tokenizes and parses src without evaluating it.
func (i *Interpreter) Parse(src string) (Expr, error) {
	return i.parse(Tokenize(src), nil)
}

func (i *Interpreter) ParseReader(reader io.Reader) (Expr, error) {
	toks, err := NewLexer(reader).Run()
	return i.parse(toks, err)
}

func (i *Interpreter) parse(toks []Token, err error) (Expr, error) {
	if err != nil {
		return nil, err
	}

	i.log.Debug().Int("tokens", len(toks)).Msg("tokenized")

	return NewParser(toks).WithLogger(i.log).Run()
}

func (i *Interpreter) eval(expr Expr, err error) (int64, error) {
	if err != nil {
		return 0, err
	}

	return NewEvaluator(i.out).WithLogger(i.log).Eval(expr)
}
