package lunar

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// Lexer turns a stream of Lua source bytes into tokens. It reads strictly
// forward, consulting at most one byte beyond the cursor, and keeps a
// single-token lookahead slot so a parser can inspect the next token
// before deciding how to consume it.
//
// A Lexer is owned by one caller; it is not safe for concurrent use.
type Lexer struct {
	input *bufio.Reader

	line   int
	column int

	ahead    Token
	hasAhead bool

	done    bool
	readErr error
}

// New creates a Lexer over an arbitrary byte source.
func New(input io.Reader) *Lexer {
	return &Lexer{input: bufio.NewReader(input), line: 1}
}

// NewString creates a Lexer over in-memory source text.
func NewString(source string) *Lexer {
	return New(strings.NewReader(source))
}

// Next returns the next token, consuming it. If a token was buffered by a
// prior Peek it is returned and the buffer cleared. After the end of
// input every call returns the EOF token.
func (l *Lexer) Next() (Token, error) {
	if l.hasAhead {
		tok := l.ahead
		l.ahead = Token{}
		l.hasAhead = false
		return tok, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it. Repeated peeks with
// no intervening Next return the same token and scan the input only once.
func (l *Lexer) Peek() (Token, error) {
	if !l.hasAhead {
		tok, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.ahead = tok
		l.hasAhead = true
	}
	return l.ahead, nil
}

// scan produces the next significant token, looping past whitespace and
// comments rather than recursing so pathological inputs cannot grow the
// stack.
func (l *Lexer) scan() (Token, error) {
	for {
		pos := Position{Line: l.line, Column: l.column + 1}
		b := l.nextByte()
		switch b {
		case '\n', '\r', '\t', ' ':
			continue
		case 0:
			if l.readErr != nil {
				return Token{}, fmt.Errorf("read source: %w", l.readErr)
			}
			return Token{Type: TokenEOF, Pos: pos}, nil
		case '+':
			return Token{Type: TokenAdd, Pos: pos}, nil
		case '*':
			return Token{Type: TokenMul, Pos: pos}, nil
		case '%':
			return Token{Type: TokenMod, Pos: pos}, nil
		case '^':
			return Token{Type: TokenPow, Pos: pos}, nil
		case '#':
			return Token{Type: TokenLen, Pos: pos}, nil
		case '&':
			return Token{Type: TokenBitAnd, Pos: pos}, nil
		case '|':
			return Token{Type: TokenBitOr, Pos: pos}, nil
		case '(':
			return Token{Type: TokenParL, Pos: pos}, nil
		case ')':
			return Token{Type: TokenParR, Pos: pos}, nil
		case '{':
			return Token{Type: TokenCurlyL, Pos: pos}, nil
		case '}':
			return Token{Type: TokenCurlyR, Pos: pos}, nil
		case '[':
			// [[ and [= open long-bracket strings, which are outside the
			// supported grammar. Neither can start a valid index or table
			// expression, so flagging on the peek is unambiguous.
			if p := l.peekByte(); p == '[' || p == '=' {
				return Token{}, l.unsupported(pos, "long string literal")
			}
			return Token{Type: TokenSquareL, Pos: pos}, nil
		case ']':
			return Token{Type: TokenSquareR, Pos: pos}, nil
		case ';':
			return Token{Type: TokenSemiColon, Pos: pos}, nil
		case ',':
			return Token{Type: TokenComma, Pos: pos}, nil
		case '/':
			return l.checkAhead('/', TokenIDiv, TokenDiv, pos), nil
		case '=':
			return l.checkAhead('=', TokenEqual, TokenAssign, pos), nil
		case '~':
			return l.checkAhead('=', TokenNotEq, TokenBitXor, pos), nil
		case ':':
			return l.checkAhead(':', TokenDoubColon, TokenColon, pos), nil
		case '<':
			return l.checkAhead2('=', TokenLessEq, '<', TokenShiftL, TokenLess, pos), nil
		case '>':
			return l.checkAhead2('=', TokenGreatEq, '>', TokenShiftR, TokenGreater, pos), nil
		case '\'', '"':
			return l.scanString(b, pos)
		case '.':
			switch p := l.peekByte(); {
			case p == '.':
				l.nextByte()
				if l.peekByte() == '.' {
					l.nextByte()
					return Token{Type: TokenDots, Pos: pos}, nil
				}
				return Token{Type: TokenConcat, Pos: pos}, nil
			case isDigit(p):
				return l.scanFraction(0, pos)
			default:
				return Token{Type: TokenDot, Pos: pos}, nil
			}
		case '-':
			if l.peekByte() != '-' {
				return Token{Type: TokenSub, Pos: pos}, nil
			}
			l.nextByte()
			if err := l.skipComment(pos); err != nil {
				return Token{}, err
			}
		default:
			switch {
			case isDigit(b):
				return l.scanNumber(b, pos)
			case isNameStart(b):
				return l.scanName(b, pos), nil
			default:
				return Token{}, l.malformed(pos, fmt.Sprintf("invalid character %q", b))
			}
		}
	}
}

// nextByte advances the cursor, returning 0 at end of input. A NUL byte
// in the source is itself treated as a terminator and the lexer stays at
// end of input from then on.
func (l *Lexer) nextByte() byte {
	if l.done || l.readErr != nil {
		return 0
	}
	b, err := l.input.ReadByte()
	if err != nil {
		if err != io.EOF {
			l.readErr = err
		}
		l.done = true
		return 0
	}
	if b == 0 {
		l.done = true
		return 0
	}
	if b == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return b
}

// peekByte reports the byte nextByte would return, without consuming it.
func (l *Lexer) peekByte() byte {
	if l.done || l.readErr != nil {
		return 0
	}
	buf, err := l.input.Peek(1)
	if err != nil {
		if err != io.EOF {
			l.readErr = err
		}
		return 0
	}
	return buf[0]
}

// checkAhead resolves an operator that is either one byte or, if the next
// byte matches, two. The following byte is consumed only on a match.
func (l *Lexer) checkAhead(next byte, long, short TokenType, pos Position) Token {
	if l.peekByte() == next {
		l.nextByte()
		return Token{Type: long, Pos: pos}
	}
	return Token{Type: short, Pos: pos}
}

// checkAhead2 is checkAhead with two long-form candidates, tried in
// order. Used for < and >, which extend to <=/<< and >=/>>.
func (l *Lexer) checkAhead2(next1 byte, long1 TokenType, next2 byte, long2 TokenType, short TokenType, pos Position) Token {
	switch l.peekByte() {
	case next1:
		l.nextByte()
		return Token{Type: long1, Pos: pos}
	case next2:
		l.nextByte()
		return Token{Type: long2, Pos: pos}
	default:
		return Token{Type: short, Pos: pos}
	}
}

func (l *Lexer) scanNumber(first byte, pos Position) (Token, error) {
	if first == '0' {
		if p := l.peekByte(); p == 'x' || p == 'X' {
			l.nextByte()
			return l.scanHex(pos)
		}
	}
	n := int64(first - '0')
	for {
		b := l.peekByte()
		switch {
		case isDigit(b):
			l.nextByte()
			// Wraps silently on overflow, matching the runtime's integer
			// arithmetic.
			n = n*10 + int64(b-'0')
		case b == '.':
			l.nextByte()
			return l.scanFraction(n, pos)
		case b == 'e' || b == 'E':
			return l.scanExponent(float64(n), pos)
		default:
			return l.checkNumberEnd(Token{Type: TokenInt, Int: n, Pos: pos})
		}
	}
}

// scanFraction scans the digits after the decimal point, which has
// already been consumed. whole is the integer part scanned so far.
func (l *Lexer) scanFraction(whole int64, pos Position) (Token, error) {
	var frac int64
	div := 1.0
	for isDigit(l.peekByte()) {
		b := l.nextByte()
		frac = frac*10 + int64(b-'0')
		div *= 10
	}
	value := float64(whole) + float64(frac)/div
	if b := l.peekByte(); b == 'e' || b == 'E' {
		return l.scanExponent(value, pos)
	}
	return l.checkNumberEnd(Token{Type: TokenFloat, Float: value, Pos: pos})
}

// scanExponent scans an e/E decimal exponent with optional sign. The
// exponent marker has not been consumed yet.
func (l *Lexer) scanExponent(mantissa float64, pos Position) (Token, error) {
	l.nextByte()
	negative := false
	switch l.peekByte() {
	case '+':
		l.nextByte()
	case '-':
		negative = true
		l.nextByte()
	}
	if !isDigit(l.peekByte()) {
		return Token{}, l.malformed(l.here(), "malformed number: exponent digits expected")
	}
	exp := 0
	for isDigit(l.peekByte()) {
		b := l.nextByte()
		if exp <= math.MaxInt32 {
			exp = exp*10 + int(b-'0')
		}
	}
	e := float64(exp)
	if negative {
		e = -e
	}
	value := mantissa * math.Pow(10, e)
	return l.checkNumberEnd(Token{Type: TokenFloat, Float: value, Pos: pos})
}

// scanHex scans a hexadecimal literal; the 0x prefix has been consumed.
// An integer literal wraps silently at 64 bits; a fraction or a p/P
// binary exponent makes the literal a float.
func (l *Lexer) scanHex(pos Position) (Token, error) {
	var mant uint64
	digits := 0
	frac := 0
	isFloat := false
	for {
		b := l.peekByte()
		if d, ok := hexDigit(b); ok {
			l.nextByte()
			mant = mant*16 + uint64(d)
			digits++
			if isFloat {
				frac++
			}
		} else if b == '.' && !isFloat {
			l.nextByte()
			isFloat = true
		} else {
			break
		}
	}
	if digits == 0 {
		return Token{}, l.malformed(l.here(), "malformed number: hexadecimal digits expected")
	}
	pexp := 0
	hasExp := false
	if b := l.peekByte(); b == 'p' || b == 'P' {
		hasExp = true
		l.nextByte()
		negative := false
		switch l.peekByte() {
		case '+':
			l.nextByte()
		case '-':
			negative = true
			l.nextByte()
		}
		if !isDigit(l.peekByte()) {
			return Token{}, l.malformed(l.here(), "malformed number: binary exponent digits expected")
		}
		for isDigit(l.peekByte()) {
			b := l.nextByte()
			if pexp <= math.MaxInt32 {
				pexp = pexp*10 + int(b-'0')
			}
		}
		if negative {
			pexp = -pexp
		}
	}
	if isFloat || hasExp {
		value := math.Ldexp(float64(mant), pexp-4*frac)
		return l.checkNumberEnd(Token{Type: TokenFloat, Float: value, Pos: pos})
	}
	return l.checkNumberEnd(Token{Type: TokenInt, Int: int64(mant), Pos: pos})
}

// checkNumberEnd rejects numbers followed directly by a letter or a stray
// dot, so input like 1abc fails instead of truncating to 1.
func (l *Lexer) checkNumberEnd(tok Token) (Token, error) {
	if b := l.peekByte(); isAlpha(b) || b == '.' {
		return Token{}, l.malformed(Position{Line: l.line, Column: l.column + 1}, fmt.Sprintf("malformed number near %q", b))
	}
	return tok, nil
}

// scanString scans a quoted literal; the opening quote has been consumed.
// The payload is raw bytes, never validated as UTF-8, so literals may
// carry arbitrary binary data.
func (l *Lexer) scanString(quote byte, pos Position) (Token, error) {
	var buf []byte
	for {
		b := l.nextByte()
		switch {
		case b == 0:
			if l.readErr != nil {
				return Token{}, fmt.Errorf("read source: %w", l.readErr)
			}
			return Token{}, l.malformed(pos, "unfinished string")
		case b == '\n' || b == '\r':
			return Token{}, l.malformed(pos, "unfinished string")
		case b == '\\':
			var err error
			buf, err = l.scanEscape(buf, pos)
			if err != nil {
				return Token{}, err
			}
		case b == quote:
			return Token{Type: TokenString, Str: buf, Pos: pos}, nil
		default:
			buf = append(buf, b)
		}
	}
}

// scanEscape decodes one backslash escape, appending the decoded bytes.
// The backslash has been consumed.
func (l *Lexer) scanEscape(buf []byte, strPos Position) ([]byte, error) {
	b := l.nextByte()
	switch b {
	case 'a':
		return append(buf, '\a'), nil
	case 'b':
		return append(buf, '\b'), nil
	case 'f':
		return append(buf, '\f'), nil
	case 'n':
		return append(buf, '\n'), nil
	case 'r':
		return append(buf, '\r'), nil
	case 't':
		return append(buf, '\t'), nil
	case 'v':
		return append(buf, '\v'), nil
	case '\\', '"', '\'':
		return append(buf, b), nil
	case '\n', '\r':
		// A backslash before a real line break embeds a newline.
		return append(buf, '\n'), nil
	case 'x':
		hi, ok1 := hexDigit(l.nextByte())
		lo, ok2 := hexDigit(l.nextByte())
		if !ok1 || !ok2 {
			return nil, l.malformed(l.here(), "hexadecimal digit expected in escape")
		}
		return append(buf, byte(hi<<4|lo)), nil
	case 'z':
		for isSpace(l.peekByte()) {
			l.nextByte()
		}
		return buf, nil
	case 'u':
		return l.scanUnicodeEscape(buf)
	case 0:
		return nil, l.malformed(strPos, "unfinished string")
	default:
		if isDigit(b) {
			v := int(b - '0')
			for i := 0; i < 2 && isDigit(l.peekByte()); i++ {
				v = v*10 + int(l.nextByte()-'0')
			}
			if v > 255 {
				return nil, l.malformed(l.here(), "decimal escape too large")
			}
			return append(buf, byte(v)), nil
		}
		return nil, l.malformed(l.here(), fmt.Sprintf("invalid escape sequence '\\%c'", b))
	}
}

// scanUnicodeEscape decodes \u{XXX}; the 'u' has been consumed. Values
// up to 2^31-1 are accepted, matching the reference literal grammar.
func (l *Lexer) scanUnicodeEscape(buf []byte) ([]byte, error) {
	if l.nextByte() != '{' {
		return nil, l.malformed(l.here(), "missing '{' in \\u{xxxx} escape")
	}
	var v int64
	digits := 0
	for {
		d, ok := hexDigit(l.peekByte())
		if !ok {
			break
		}
		l.nextByte()
		v = v*16 + int64(d)
		digits++
		if v > 0x7fffffff {
			return nil, l.malformed(l.here(), "UTF-8 value too large in escape")
		}
	}
	if digits == 0 {
		return nil, l.malformed(l.here(), "hexadecimal digit expected in escape")
	}
	if l.nextByte() != '}' {
		return nil, l.malformed(l.here(), "missing '}' in \\u{xxxx} escape")
	}
	return appendUTF8(buf, v), nil
}

// appendUTF8 encodes v with the extended UTF-8 scheme string escapes
// use: sequences run to six bytes for values up to 2^31-1, and
// surrogate code points are encoded literally, never substituted.
func appendUTF8(buf []byte, v int64) []byte {
	if v < 0x80 {
		return append(buf, byte(v))
	}
	var cont [6]byte
	n := 0
	mfs := int64(0x3f) // maximum value that fits in the first byte
	for {
		cont[n] = byte(0x80 | (v & 0x3f))
		n++
		v >>= 6
		mfs >>= 1
		if v <= mfs {
			break
		}
	}
	buf = append(buf, byte((^mfs)<<1|v))
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, cont[i])
	}
	return buf
}

// scanName accumulates an identifier and resolves it against the keyword
// table, so names never shadow reserved spellings.
func (l *Lexer) scanName(first byte, pos Position) Token {
	buf := []byte{first}
	for isNamePart(l.peekByte()) {
		buf = append(buf, l.nextByte())
	}
	text := string(buf)
	if tt, ok := lookupName(text); ok {
		return Token{Type: tt, Pos: pos}
	}
	return Token{Type: TokenName, Name: text, Pos: pos}
}

// skipComment discards a comment; the leading -- has been consumed.
func (l *Lexer) skipComment(pos Position) error {
	if l.peekByte() == '[' {
		return l.unsupported(pos, "long comment")
	}
	for {
		b := l.nextByte()
		if b == '\n' || b == 0 {
			return nil
		}
	}
}

// here is the position of the byte most recently consumed.
func (l *Lexer) here() Position {
	return Position{Line: l.line, Column: l.column}
}

func (l *Lexer) malformed(pos Position, msg string) error {
	return &Error{Kind: ErrorMalformed, Pos: pos, Msg: msg}
}

func (l *Lexer) unsupported(pos Position, what string) error {
	return &Error{Kind: ErrorUnsupported, Pos: pos, Msg: what + " not supported"}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameStart(b byte) bool {
	return isAlpha(b) || b == '_'
}

func isNamePart(b byte) bool {
	return isNameStart(b) || isDigit(b)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
