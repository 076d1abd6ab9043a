package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	chibi "go.chibi.dev/pkg"
)

func main() {
	emitLLVM := flag.Bool("emit-llvm", false, "print LLVM IR for the input instead of evaluating it")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "chibi").Logger().
		Level(level)

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	var in io.Reader = os.Stdin
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot open input")
		}
		defer f.Close()
		in = f
	} else if !*emitLLVM && isatty.IsTerminal(os.Stdin.Fd()) {
		if err := chibi.NewSession(os.Stdin, os.Stdout).WithLogger(logger).Run(); err != nil {
			logger.Fatal().Err(err).Msg("session failed")
		}
		return
	}

	if err := run(in, os.Stdout, *emitLLVM, logger); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run treats the whole of in as one input unit.
func run(in io.Reader, out io.Writer, emitLLVM bool, logger zerolog.Logger) error {
	interp := chibi.NewInterpreter(out).WithLogger(logger)

	if emitLLVM {
		expr, err := interp.ParseReader(in)
		if err != nil {
			return err
		}

		mod, err := chibi.NewLLVMGenerator(expr).Do()
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(out, mod)
		return errors.Wrap(err, "writing IR")
	}

	v, err := interp.RunReader(in)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "= %d\n", v)
	return errors.Wrap(err, "writing result")
}
