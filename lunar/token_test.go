package lunar

import "testing"

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Type: TokenInt, Int: 42}, "INT(42)"},
		{Token{Type: TokenFloat, Float: 12.5}, "FLOAT(12.5)"},
		{Token{Type: TokenString, Str: []byte("hi")}, `STRING("hi")`},
		{Token{Type: TokenName, Name: "fib"}, "NAME(fib)"},
		{Token{Type: TokenConcat}, ".."},
		{Token{Type: TokenWhile}, "WHILE"},
		{Token{Type: TokenEOF}, "EOF"},
	}
	for _, tc := range cases {
		if got := tc.tok.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestLookupNameCoversAllKeywords(t *testing.T) {
	keywords := []string{
		"and", "break", "do", "else", "elseif", "end", "false", "for",
		"function", "goto", "if", "in", "local", "nil", "not", "or",
		"repeat", "return", "then", "true", "until", "while",
	}
	for _, kw := range keywords {
		tt, ok := lookupName(kw)
		if !ok {
			t.Fatalf("keyword %q not recognized", kw)
		}
		if tt == TokenName {
			t.Fatalf("keyword %q resolved to a name token", kw)
		}
	}
	if _, ok := lookupName("While"); ok {
		t.Fatalf("keyword lookup must be case-sensitive")
	}
	if _, ok := lookupName("whilee"); ok {
		t.Fatalf("keyword lookup must require full-token equality")
	}
}
