package lunar

import "testing"

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: ErrorMalformed, Pos: Position{Line: 3, Column: 9}, Msg: "unfinished string"}
	want := "lex error at 3:9: unfinished string"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestErrorKindString(t *testing.T) {
	if ErrorMalformed.String() != "malformed input" {
		t.Fatalf("unexpected label %q", ErrorMalformed.String())
	}
	if ErrorUnsupported.String() != "unsupported construct" {
		t.Fatalf("unexpected label %q", ErrorUnsupported.String())
	}
}
