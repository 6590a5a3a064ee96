package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lunarlang/lunarscript/lunar"
)

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	showPos := fs.Bool("pos", false, "prefix every token with its line:column")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("lunar tokens: source path required")
	}
	path, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	return writeTokens(os.Stdout, f, *showPos)
}

// writeTokens streams the token dump; the source is never held in memory
// as a whole.
func writeTokens(w io.Writer, r io.Reader, showPos bool) error {
	lex := lunar.New(r)
	out := bufio.NewWriter(w)
	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if showPos {
			fmt.Fprintf(out, "%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
		} else {
			fmt.Fprintln(out, tok)
		}
		if tok.Type == lunar.TokenEOF {
			break
		}
	}
	return out.Flush()
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("lunar check: source path required")
	}
	path, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	count, err := checkSource(string(input))
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d tokens\n", count)
	return nil
}

// checkSource lexes the whole chunk, rendering the first failure with a
// code frame and its error category so malformed input and unsupported
// constructs read differently.
func checkSource(source string) (int, error) {
	lex := lunar.NewString(source)
	count := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			var lexErr *lunar.Error
			if errors.As(err, &lexErr) {
				var b strings.Builder
				fmt.Fprintf(&b, "%s: %s", lexErr.Kind, lexErr)
				if frame := lunar.FormatCodeFrame(source, lexErr.Pos); frame != "" {
					b.WriteString("\n")
					b.WriteString(frame)
				}
				return count, errors.New(b.String())
			}
			return count, err
		}
		if tok.Type == lunar.TokenEOF {
			return count, nil
		}
		count++
	}
}
