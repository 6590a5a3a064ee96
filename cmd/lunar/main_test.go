package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"lunar", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"lunar", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"lunar"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
}

func TestTokensCommandRequiresPath(t *testing.T) {
	err := tokensCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "source path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteTokens(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTokens(&buf, strings.NewReader("local x = 1"), false); err != nil {
		t.Fatalf("writeTokens failed: %v", err)
	}
	want := "LOCAL\nNAME(x)\n=\nINT(1)\nEOF\n"
	if buf.String() != want {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestWriteTokensWithPositions(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTokens(&buf, strings.NewReader("x\ny"), true); err != nil {
		t.Fatalf("writeTokens failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "1:1\tNAME(x)" || lines[1] != "2:1\tNAME(y)" {
		t.Fatalf("unexpected positions:\n%s", buf.String())
	}
}

func TestWriteTokensSurfacesLexError(t *testing.T) {
	var buf bytes.Buffer
	err := writeTokens(&buf, strings.NewReader("'unfinished"), false)
	if err == nil || !strings.Contains(err.Error(), "unfinished string") {
		t.Fatalf("expected unfinished string error, got %v", err)
	}
}

func TestCheckCommandCleanFile(t *testing.T) {
	path := writeSource(t, "local answer = 42\nreturn answer\n")
	if err := checkCommand([]string{path}); err != nil {
		t.Fatalf("check failed on clean file: %v", err)
	}
}

func TestCheckSourceCounts(t *testing.T) {
	count, err := checkSource("local x = 1 -- note\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 tokens, got %d", count)
	}
}

func TestCheckSourceReportsMalformed(t *testing.T) {
	_, err := checkSource("local $oops = 1\n")
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "malformed input") {
		t.Fatalf("missing category in %q", msg)
	}
	if !strings.Contains(msg, "line 1, column 7") {
		t.Fatalf("missing code frame location in %q", msg)
	}
}

func TestCheckSourceReportsUnsupported(t *testing.T) {
	_, err := checkSource("s = [[long\nstring]]\n")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "unsupported construct") {
		t.Fatalf("missing category in %q", err.Error())
	}
}

func TestCheckCommandMissingFile(t *testing.T) {
	err := checkCommand([]string{filepath.Join(t.TempDir(), "missing.lua")})
	if err == nil || !strings.Contains(err.Error(), "read source") {
		t.Fatalf("unexpected error: %v", err)
	}
}
