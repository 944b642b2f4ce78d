// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"go4.org/mem"
)

// A scanner holds the parse cursor over one immutable input buffer, the
// scratch buffer reused for escape decoding, and the configured limits.  A
// scanner is owned by a single parse call and never outlives it.
type scanner struct {
	in       []byte
	pos      int
	scratch  []byte // escape decoding workspace, grown on demand
	maxDepth int
}

func (sc *scanner) eof() bool { return sc.pos >= len(sc.in) }

// skipSpace advances the cursor past any run of JSON whitespace.
func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.in) && isSpace(sc.in[sc.pos]) {
		sc.pos++
	}
}

// errAt builds a Diagnostic for a failure at offset off inside a construct
// that began at start.  Every scanner and composer reports through here.
func (sc *scanner) errAt(kind ErrorKind, con Construct, start, off int, exp Expected) *Diagnostic {
	d := &Diagnostic{
		Kind:      kind,
		Construct: con,
		Offset:    off,
		Start:     start,
		Length:    len(sc.in),
		Line:      1 + bytes.Count(sc.in[:min(off, len(sc.in))], []byte{'\n'}),
		Expected:  exp,
	}
	if off < len(sc.in) {
		d.Byte = sc.in[off]
	} else {
		d.AtEOF = true
	}
	return d
}

// errEOF reports an unexpected end of input for the given construct.
func (sc *scanner) errEOF(con Construct, start int, exp Expected) *Diagnostic {
	return sc.errAt(UnexpectedEndOfInput, con, start, len(sc.in), exp)
}

// A number is the result of scanning one numeric lexeme.  At most one of
// isInt and isFloat is set; if neither is, no native conversion losslessly
// represents the lexeme and raw must be preserved verbatim.
type number struct {
	raw     []byte
	isInt   bool
	i       int64
	isFloat bool
	f       float64
}

// Numbers of fewer than intFastDigits digits are converted from the running
// accumulator built up during the scan, skipping strconv entirely.  The
// threshold is a speed tunable with no effect on which inputs are accepted.
const intFastDigits = 8

// numFlags tracks the state of an in-progress number scan.
type numFlags struct {
	dot       bool // saw "."
	exp       bool // saw "e" or "E"
	plus      bool // saw "+" in the exponent
	minus     bool // saw leading "-"
	expMinus  bool // saw "-" in the exponent
	zero      bool // the integer part begins with "0"
	intDigits int
	fracDig   int
	expDig    int
}

// legal reports the categories acceptable at the current point of the scan.
// follow is the set of bytes that may legally terminate the lexeme in the
// enclosing context; it applies only where the lexeme so far is already a
// complete number.
func (n numFlags) legal(follow Expected) Expected {
	switch {
	case n.exp:
		if n.expDig == 0 {
			if n.plus || n.expMinus {
				return ExpectDigit
			}
			return ExpectDigit | ExpectPlus | ExpectMinus
		}
		return ExpectDigit | follow
	case n.dot:
		if n.fracDig == 0 {
			return ExpectDigit
		}
		return ExpectDigit | ExpectExponent | follow
	case n.intDigits == 0:
		return ExpectDigit
	case n.zero && n.intDigits == 1:
		return ExpectPoint | ExpectExponent | follow
	default:
		return ExpectDigit | ExpectPoint | ExpectExponent | follow
	}
}

// scanNumber consumes a numeric lexeme beginning at the cursor, which must be
// positioned on a digit or a minus sign.  The terminating byte, if any, is
// left for the caller to reinterpret.
func (sc *scanner) scanNumber(follow Expected) (number, error) {
	start := sc.pos
	var st numFlags

	fail := func(kind ErrorKind) (number, error) {
		return number{}, sc.errAt(kind, InNumber, start, sc.pos, st.legal(follow))
	}

	if sc.in[sc.pos] == '-' {
		st.minus = true
		sc.pos++
	}

	var guess int64
scan:
	for !sc.eof() {
		switch c := sc.in[sc.pos]; {
		case isDigit(c):
			switch {
			case st.exp:
				st.expDig++
			case st.dot:
				st.fracDig++
			default:
				if st.zero {
					// "Leading zeros are not allowed." (RFC 8259, section 6.)
					return fail(LeadingZero)
				}
				if st.intDigits == 0 && c == '0' {
					st.zero = true
				}
				st.intDigits++
				guess = 10*guess + int64(c-'0')
			}
			sc.pos++

		case c == '.':
			if st.exp {
				return fail(UnexpectedCharacter)
			}
			if st.dot {
				return fail(TooManyDecimalPoints)
			}
			if st.intDigits == 0 {
				return fail(UnexpectedCharacter)
			}
			st.dot = true
			sc.pos++

		case c == 'e' || c == 'E':
			if st.exp {
				return fail(DoubledExponential)
			}
			if st.intDigits == 0 || (st.dot && st.fracDig == 0) {
				return fail(UnexpectedCharacter)
			}
			st.exp = true
			sc.pos++

		case c == '+':
			if !st.exp {
				return fail(PlusOutsideExponent)
			}
			if st.plus {
				return fail(DoublePlus)
			}
			if st.expMinus || st.expDig > 0 {
				return fail(UnexpectedCharacter)
			}
			st.plus = true
			sc.pos++

		case c == '-':
			if !st.exp {
				return fail(DoubleMinus)
			}
			if st.expMinus {
				return fail(DoubleMinusInExponent)
			}
			if st.plus || st.expDig > 0 {
				return fail(UnexpectedCharacter)
			}
			st.expMinus = true
			sc.pos++

		default:
			// Not part of a number.  Leave it for the caller.
			break scan
		}
	}

	// The lexeme may not stop inside an incomplete part.
	if st.intDigits == 0 || (st.dot && st.fracDig == 0) || (st.exp && st.expDig == 0) {
		if sc.eof() {
			return number{}, sc.errEOF(InNumber, start, st.legal(follow))
		}
		return fail(UnexpectedCharacter)
	}

	raw := sc.in[start:sc.pos]
	if st.dot || st.exp {
		f, err := strconv.ParseFloat(string(raw), 64)
		if err == nil {
			if f == 0 && !zeroMantissa(raw) {
				// Underflowed to zero; the conversion did not losslessly
				// consume the lexeme, so keep the source text.
				return number{raw: raw}, nil
			}
			return number{raw: raw, isFloat: true, f: f}, nil
		}
		// Out of range for a float64; keep the lexeme verbatim rather
		// than rounding to an infinity.
		return number{raw: raw}, nil
	}
	if st.intDigits < intFastDigits {
		if st.minus {
			guess = -guess
		}
		return number{raw: raw, isInt: true, i: guess}, nil
	}
	if i, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return number{raw: raw, isInt: true, i: i}, nil
	}
	// Too many digits for an int64.  The grammar places no bound on digit
	// count, so keep the exact source text.
	return number{raw: raw}, nil
}

// scanString consumes a string lexeme beginning at the cursor, which must be
// positioned on the opening quote.  raw is the full lexeme including both
// quotes, and escaped reports whether it contains an escape.  An escape-free
// string needs no decoding, so dec is a zero-copy slice of its contents
// regardless of decode.  Otherwise dec is a view of the scratch buffer valid
// until the next string is decoded, or nil when decode is false.
func (sc *scanner) scanString(decode bool) (raw, dec []byte, escaped bool, err error) {
	start := sc.pos
	i := sc.pos + 1

	// Fast path: find the closing quote, watching for escapes and illegal
	// bytes.  Escape-free strings are sliced straight out of the input.
	for i < len(sc.in) {
		c := sc.in[i]
		if c == '"' {
			sc.pos = i + 1
			return sc.in[start:sc.pos], sc.in[start+1 : i], false, nil
		}
		if c == '\\' {
			break
		}
		if c < 0x20 {
			return nil, nil, false, sc.errAt(IllegalByte, InString, start, i, ExpectStringByte)
		}
		if c < utf8.RuneSelf {
			i++
			continue
		}
		n, d := sc.checkUTF8(start, i)
		if d != nil {
			return nil, nil, false, d
		}
		i += n
	}
	if i >= len(sc.in) {
		return nil, nil, false, sc.errEOF(InString, start, ExpectStringByte)
	}

	// Slow path: an escape is present.  Re-walk from the escape, decoding
	// into the scratch buffer when requested.
	if decode {
		sc.scratch = append(sc.scratch[:0], sc.in[start+1:i]...)
	}
	put := func(b byte) {
		if decode {
			sc.scratch = append(sc.scratch, b)
		}
	}

	for i < len(sc.in) {
		c := sc.in[i]
		switch {
		case c == '"':
			sc.pos = i + 1
			if !decode {
				return sc.in[start:sc.pos], nil, true, nil
			}
			return sc.in[start:sc.pos], sc.scratch, true, nil

		case c == '\\':
			i++
			if i >= len(sc.in) {
				return nil, nil, false, sc.errEOF(InString, start, ExpectEscape)
			}
			switch e := sc.in[i]; e {
			case '"', '\\', '/':
				put(e)
				i++
			case 'b':
				put('\b')
				i++
			case 'f':
				put('\f')
				i++
			case 'n':
				put('\n')
				i++
			case 'r':
				put('\r')
				i++
			case 't':
				put('\t')
				i++
			case 'u':
				r, next, d := sc.scanEscapeRune(start, i-1)
				if d != nil {
					return nil, nil, false, d
				}
				if decode {
					sc.scratch = utf8.AppendRune(sc.scratch, r)
				}
				i = next
			default:
				if e < 0x20 {
					return nil, nil, false, sc.errAt(IllegalByte, InString, start, i, ExpectEscape)
				}
				return nil, nil, false, sc.errAt(UnexpectedCharacter, InString, start, i, ExpectEscape)
			}

		case c < 0x20:
			return nil, nil, false, sc.errAt(IllegalByte, InString, start, i, ExpectStringByte)

		case c < utf8.RuneSelf:
			put(c)
			i++

		default:
			n, d := sc.checkUTF8(start, i)
			if d != nil {
				return nil, nil, false, d
			}
			if decode {
				sc.scratch = append(sc.scratch, sc.in[i:i+n]...)
			}
			i += n
		}
	}
	return nil, nil, false, sc.errEOF(InString, start, ExpectStringByte)
}

// scanEscapeRune decodes one \uXXXX escape whose backslash is at offset esc,
// combining surrogate pairs into a single code point.  It returns the decoded
// rune and the offset just past the escape.  strStart is the offset of the
// string's opening quote, for diagnostics.
func (sc *scanner) scanEscapeRune(strStart, esc int) (rune, int, *Diagnostic) {
	hi, next, d := sc.readHex4(strStart, esc+2)
	if d != nil {
		return 0, 0, d
	}
	if hi < 0xD800 || hi > 0xDFFF {
		return rune(hi), next, nil
	}
	if hi >= 0xDC00 {
		// A low surrogate with no preceding high surrogate.
		return 0, 0, sc.errAt(NotSurrogatePair, InString, strStart, esc+2, ExpectHexDigit)
	}

	// A high surrogate must be followed immediately by an escaped low
	// surrogate; the two combine into one supplementary code point.
	if next >= len(sc.in) {
		return 0, 0, sc.surrogateEOF(strStart)
	}
	if sc.in[next] != '\\' {
		d := sc.errAt(NotSurrogatePair, InString, strStart, next, ExpectExactByte)
		d.Want = '\\'
		return 0, 0, d
	}
	if next+1 >= len(sc.in) {
		return 0, 0, sc.surrogateEOF(strStart)
	}
	if sc.in[next+1] != 'u' {
		d := sc.errAt(NotSurrogatePair, InString, strStart, next+1, ExpectExactByte)
		d.Want = 'u'
		return 0, 0, d
	}
	lo, next, d := sc.readHex4(strStart, next+2)
	if d != nil {
		return 0, 0, d
	}
	if lo < 0xDC00 || lo > 0xDFFF {
		return 0, 0, sc.errAt(NotSurrogatePair, InString, strStart, next-4, ExpectLowSurrogate)
	}
	return 0x10000 + (rune(hi)-0xD800)<<10 + (rune(lo) - 0xDC00), next, nil
}

func (sc *scanner) surrogateEOF(strStart int) *Diagnostic {
	d := sc.errEOF(InString, strStart, 0)
	d.Kind = NotSurrogatePair
	return d
}

// readHex4 reads exactly four hexadecimal digits starting at offset i.
func (sc *scanner) readHex4(strStart, i int) (int, int, *Diagnostic) {
	var v int
	for k := 0; k < 4; k++ {
		if i+k >= len(sc.in) {
			return 0, 0, sc.errEOF(InString, strStart, ExpectHexDigit)
		}
		d := hexVal(sc.in[i+k])
		if d < 0 {
			return 0, 0, sc.errAt(UnexpectedCharacter, InString, strStart, i+k, ExpectHexDigit)
		}
		v = v<<4 | d
	}
	return v, i + 4, nil
}

// checkUTF8 validates the multi-byte UTF-8 sequence whose lead byte is at
// offset i and returns its length.  Overlong encodings, surrogate code
// points, and values above U+10FFFF are rejected, per RFC 3629.
func (sc *scanner) checkUTF8(strStart, i int) (int, *Diagnostic) {
	lead := sc.in[i]
	var n int
	var lo, hi byte // window for the first continuation byte
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		n, lo, hi = 2, 0x80, 0xBF
	case lead == 0xE0:
		n, lo, hi = 3, 0xA0, 0xBF
	case lead >= 0xE1 && lead <= 0xEC:
		n, lo, hi = 3, 0x80, 0xBF
	case lead == 0xED:
		n, lo, hi = 3, 0x80, 0x9F
	case lead >= 0xEE && lead <= 0xEF:
		n, lo, hi = 3, 0x80, 0xBF
	case lead == 0xF0:
		n, lo, hi = 4, 0x90, 0xBF
	case lead >= 0xF1 && lead <= 0xF3:
		n, lo, hi = 4, 0x80, 0xBF
	case lead == 0xF4:
		n, lo, hi = 4, 0x80, 0x8F
	default:
		return 0, sc.errAt(IllegalByte, InString, strStart, i, ExpectStringByte)
	}
	for k := 1; k < n; k++ {
		if k > 1 {
			lo, hi = 0x80, 0xBF
		}
		if i+k >= len(sc.in) {
			d := sc.errEOF(InString, strStart, ExpectByteRange)
			d.WantLo, d.WantHi = lo, hi
			return 0, d
		}
		if c := sc.in[i+k]; c < lo || c > hi {
			d := sc.errAt(IllegalByte, InString, strStart, i+k, ExpectByteRange)
			d.WantLo, d.WantHi = lo, hi
			return 0, d
		}
	}
	return n, nil
}

var (
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
	litNull  = mem.S("null")
)

// scanLiteral consumes one of the three fixed literals.  The cursor must be
// positioned on a "t", "f" or "n"; any other byte is a defect in the caller,
// not an input error.  The returned byte is the leading byte of the literal.
func (sc *scanner) scanLiteral() (byte, []byte, error) {
	start := sc.pos
	var want mem.RO
	switch c := sc.in[sc.pos]; c {
	case 't':
		want = litTrue
	case 'f':
		want = litFalse
	case 'n':
		want = litNull
	default:
		panic(fmt.Sprintf("jsonparse: literal scan started on %q", c))
	}
	for k := 1; k < want.Len(); k++ {
		if start+k >= len(sc.in) {
			d := sc.errEOF(InLiteral, start, ExpectExactByte)
			d.Want = want.At(k)
			return 0, nil, d
		}
		if sc.in[start+k] != want.At(k) {
			d := sc.errAt(BadLiteral, InLiteral, start, start+k, ExpectExactByte)
			d.Want = want.At(k)
			return 0, nil, d
		}
	}
	sc.pos = start + want.Len()
	return sc.in[start], sc.in[start:sc.pos], nil
}

// zeroMantissa reports whether every mantissa digit of a numeric lexeme is
// zero, in which case a zero conversion result is exact rather than an
// underflow.
func zeroMantissa(raw []byte) bool {
	for _, c := range raw {
		if c == 'e' || c == 'E' {
			break
		}
		if c >= '1' && c <= '9' {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isValueStart(c byte) bool {
	switch c {
	case '"', '-', '{', '[', 't', 'f', 'n':
		return true
	}
	return isDigit(c)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
