// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the grammar rule whose violation ended a parse.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	NoError               ErrorKind = iota // no error
	UnexpectedEndOfInput                   // input ended inside an incomplete construct
	UnexpectedCharacter                    // a byte that no rule accepts at this position
	IllegalByte                            // control byte or invalid UTF-8 inside a string
	TrailingComma                          // comma directly before "]" or "}"
	StrayComma                             // comma with no preceding value or key
	MissingComma                           // two object members with no comma between
	BadLiteral                             // mismatched byte inside true/false/null
	TooManyDecimalPoints                   // second "." in one number
	PlusOutsideExponent                    // "+" before the exponent part
	DoublePlus                             // second "+" in one exponent
	DoubleMinus                            // misplaced "-" in the mantissa
	DoubleMinusInExponent                  // second "-" in one exponent
	DoubledExponential                     // second "e"/"E" in one number
	LeadingZero                            // digit following a leading zero
	NotSurrogatePair                       // lone or malformed UTF-16 surrogate escape
	DuplicateKey                           // repeated object key (collision detection only)
	TrailingContent                        // non-whitespace after the top-level value
	NestingTooDeep                         // arrays/objects nested beyond the depth limit
)

var kindStr = [...]string{
	NoError:               "no error",
	UnexpectedEndOfInput:  "unexpected end of input",
	UnexpectedCharacter:   "unexpected character",
	IllegalByte:           "illegal byte",
	TrailingComma:         "trailing comma",
	StrayComma:            "stray comma",
	MissingComma:          "missing comma",
	BadLiteral:            "unparseable character in literal",
	TooManyDecimalPoints:  "too many decimal points",
	PlusOutsideExponent:   "plus outside exponent",
	DoublePlus:            "double plus",
	DoubleMinus:           "double minus",
	DoubleMinusInExponent: "double minus in exponent",
	DoubledExponential:    "doubled exponential",
	LeadingZero:           "leading zero in number",
	NotSurrogatePair:      "not a surrogate pair",
	DuplicateKey:          "duplicate key",
	TrailingContent:       "trailing content after value",
	NestingTooDeep:        "nesting too deep",
}

func (k ErrorKind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return "invalid error kind"
	}
	return kindStr[v]
}

// Construct identifies the grammatical construct that was being parsed when
// an error occurred.
type Construct byte

// Constants defining the valid Construct values.
const (
	InDocument Construct = iota // top level, outside any value
	InNumber
	InString
	InArray
	InObject
	InLiteral
)

var constructStr = [...]string{
	InDocument: "document",
	InNumber:   "number",
	InString:   "string",
	InArray:    "array",
	InObject:   "object",
	InLiteral:  "literal",
}

func (c Construct) String() string {
	v := int(c)
	if v >= len(constructStr) {
		return "invalid construct"
	}
	return constructStr[v]
}

// Expected is a bitmask of token categories legal at a parse position.  It is
// recorded in a Diagnostic at the moment of failure and expanded into an
// exact per-byte table by [Diagnostic.LegalBytes].
type Expected uint32

// Constants defining the Expected categories.
const (
	ExpectWhitespace Expected = 1 << iota // space, tab, newline, carriage return
	ExpectValueStart                      // any byte that can begin a value
	ExpectString                          // opening quote of a string or key
	ExpectDigit                           // "0" through "9"
	ExpectComma
	ExpectColon
	ExpectArrayEnd
	ExpectObjectEnd
	ExpectMinus
	ExpectPlus
	ExpectPoint
	ExpectExponent
	ExpectHexDigit
	ExpectEscape       // legal byte after a backslash inside a string
	ExpectStringByte   // legal raw interior byte of a string
	ExpectLowSurrogate // first hex digit of a low surrogate escape
	ExpectExactByte    // exactly the byte in Diagnostic.Want
	ExpectByteRange    // any byte in [Diagnostic.WantLo, Diagnostic.WantHi]
)

var expectedStr = []struct {
	bit  Expected
	name string
}{
	{ExpectWhitespace, "whitespace"},
	{ExpectValueStart, "value start"},
	{ExpectString, "string start"},
	{ExpectDigit, "digit"},
	{ExpectComma, "comma"},
	{ExpectColon, "colon"},
	{ExpectArrayEnd, "array end"},
	{ExpectObjectEnd, "object end"},
	{ExpectMinus, "minus"},
	{ExpectPlus, "plus"},
	{ExpectPoint, "decimal point"},
	{ExpectExponent, "exponent"},
	{ExpectHexDigit, "hex digit"},
	{ExpectEscape, "escape"},
	{ExpectStringByte, "string byte"},
	{ExpectLowSurrogate, "low surrogate"},
	{ExpectExactByte, "exact byte"},
	{ExpectByteRange, "byte range"},
}

func (e Expected) String() string {
	var names []string
	for _, es := range expectedStr {
		if e&es.bit != 0 {
			names = append(names, es.name)
		}
	}
	if names == nil {
		return "nothing"
	}
	return strings.Join(names, " or ")
}

// A Diagnostic describes a malformed input.  It is created once at the moment
// of failure and is immutable afterward.  Both entry points report failures
// as a *Diagnostic.
type Diagnostic struct {
	Kind      ErrorKind // what rule was violated
	Construct Construct // what was being parsed

	Offset int  // byte offset of the offending byte
	Byte   byte // the offending byte itself; zero when AtEOF
	AtEOF  bool // whether the failure occurred at end of input

	Start  int // byte offset where the broken construct began
	Length int // total input length in bytes
	Line   int // 1-based line number of the offending byte

	Expected Expected // token categories legal at Offset

	// Want, or the range [WantLo, WantHi], names the acceptable bytes for
	// the ExpectExactByte and ExpectByteRange categories.
	Want           byte
	WantLo, WantHi byte

	// Key holds the colliding key text for DuplicateKey diagnostics.
	Key string
}

// Error satisfies the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "at line %d, byte %d/%d: %s", d.Line, d.Offset, d.Length, d.Kind)
	if d.Kind == DuplicateKey {
		fmt.Fprintf(&sb, " %q", d.Key)
	} else if !d.AtEOF {
		fmt.Fprintf(&sb, " %q", d.Byte)
	}
	fmt.Fprintf(&sb, " parsing %s starting from byte %d", d.Construct, d.Start)
	return sb.String()
}

// LegalBytes expands the Expected categories into a table reporting, for
// every possible byte value, whether that byte would have been accepted at
// the failing position.  A byte marked true, substituted at Offset, allows
// the parse to proceed at least one token further.  The one exception is a
// malformed surrogate escape, whose legality depends on more than one byte;
// there the table reflects only the byte under the cursor.
func (d *Diagnostic) LegalBytes() [256]bool {
	var tab [256]bool
	mark := func(bs ...byte) {
		for _, b := range bs {
			tab[b] = true
		}
	}
	span := func(lo, hi byte) {
		for b := int(lo); b <= int(hi); b++ {
			tab[b] = true
		}
	}

	e := d.Expected
	if e&ExpectWhitespace != 0 {
		mark(' ', '\t', '\n', '\r')
	}
	if e&ExpectValueStart != 0 {
		mark('"', '-', '{', '[', 't', 'f', 'n')
		span('0', '9')
	}
	if e&ExpectString != 0 {
		mark('"')
	}
	if e&ExpectDigit != 0 {
		span('0', '9')
	}
	if e&ExpectComma != 0 {
		mark(',')
	}
	if e&ExpectColon != 0 {
		mark(':')
	}
	if e&ExpectArrayEnd != 0 {
		mark(']')
	}
	if e&ExpectObjectEnd != 0 {
		mark('}')
	}
	if e&ExpectMinus != 0 {
		mark('-')
	}
	if e&ExpectPlus != 0 {
		mark('+')
	}
	if e&ExpectPoint != 0 {
		mark('.')
	}
	if e&ExpectExponent != 0 {
		mark('e', 'E')
	}
	if e&ExpectHexDigit != 0 {
		span('0', '9')
		span('a', 'f')
		span('A', 'F')
	}
	if e&ExpectEscape != 0 {
		mark('"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u')
	}
	if e&ExpectStringByte != 0 {
		// Any printable ASCII byte, or a legal UTF-8 lead byte.  0xC0, 0xC1
		// and 0xF5 through 0xFF can never begin a valid sequence.
		span(0x20, 0x7F)
		span(0xC2, 0xF4)
	}
	if e&ExpectLowSurrogate != 0 {
		mark('d', 'D')
	}
	if e&ExpectExactByte != 0 {
		tab[d.Want] = true
	}
	if e&ExpectByteRange != 0 {
		span(d.WantLo, d.WantHi)
	}
	return tab
}
