package chibi

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	Banner = "chibi example: 1 + 2 * (3 + 4)\nexit: Ctrl+D"
	Prompt = "> "
)

// Session is the interactive loop: every non-blank line is its own input unit
// and a failing line is reported without ending the session.
type Session struct {
	in     io.Reader
	out    io.Writer
	log    zerolog.Logger
	errCol *color.Color
}

func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{
		in:     in,
		out:    out,
		log:    zerolog.Nop(),
		errCol: color.New(color.FgRed),
	}
}

func (s *Session) WithLogger(log zerolog.Logger) *Session {
	s.log = log
	return s
}

// Run reads lines until the input ends. The returned error is only set when
// reading or writing the session itself fails.
func (s *Session) Run() error {
	if _, err := fmt.Fprintln(s.out, Banner); err != nil {
		return errors.Wrap(err, "writing banner")
	}

	interp := NewInterpreter(s.out).WithLogger(s.log)
	reader := bufio.NewReader(s.in)
	for {
		if _, err := fmt.Fprint(s.out, Prompt); err != nil {
			return errors.Wrap(err, "writing prompt")
		}

		// Lines have no length limit; a final line without '\n' still counts.
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "reading input")
		}

		if err == io.EOF && line == "" {
			return nil
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if rerr := s.runLine(interp, line); rerr != nil {
			return rerr
		}
	}
}

func (s *Session) runLine(interp *Interpreter, line string) error {
	v, err := interp.Run(line)
	if err != nil {
		s.log.Debug().Err(err).Str("line", line).Msg("line failed")
		_, werr := s.errCol.Fprintf(s.out, "error: %s\n", err)
		return errors.Wrap(werr, "writing error")
	}

	_, err = fmt.Fprintf(s.out, "= %d\n", v)
	return errors.Wrap(err, "writing result")
}
