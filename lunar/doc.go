// Package lunar implements a lexer for Lua source text. It converts a
// byte stream into a sequence of tokens pulled on demand by a parser:
//   - The 21 Lua reserved words, each a fixed token.
//   - Operators and punctuation, including the multi-character forms
//     (`//`, `==`, `~=`, `<=`, `>=`, `<<`, `>>`, `::`, `..`, `...`).
//   - Integer and float literals in decimal, fractional, exponent, and
//     hexadecimal notation.
//   - Quoted string literals with the full escape set, carried as raw
//     bytes rather than validated text.
//   - Names, which can never collide with a reserved word.
//
// Line comments beginning with `--` are skipped. Long-bracket strings and
// comments are rejected with a distinct unsupported-construct error kind.
//
// The lexer exposes a pull interface: Next consumes the upcoming token
// and Peek inspects it without consuming, backed by a one-token lookahead
// buffer. Input is read strictly forward with a single byte of lookahead,
// so any io.Reader works as a source.
package lunar
