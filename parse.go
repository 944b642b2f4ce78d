// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shlomif/JSON-Parse/internal/escape"

	"go4.org/mem"
)

// ErrEmptyInput is reported by Parse, Validate and Strip when the input is
// empty or contains only whitespace.  It signals the absence of a value
// rather than a malformed one, so it is not a *Diagnostic; compare with
// errors.Is.
var ErrEmptyInput = errors.New("jsonparse: input contains no value")

// DefaultMaxDepth is the nesting depth limit applied when none is set.
// Composers recurse once per nesting level, so the limit converts a
// stack-overflow hazard on adversarial input into a NestingTooDeep report.
const DefaultMaxDepth = 10000

// A Parser carries parsing options.  The zero value is not ready for use;
// call New.  A Parser holds no per-call state and is safe for concurrent use
// once configured.
type Parser struct {
	detectCollisions bool
	maxDepth         int
}

// New constructs a Parser with default options.
func New() *Parser { return &Parser{maxDepth: DefaultMaxDepth} }

// DetectCollisions configures p to report (true) or silently overwrite
// (false) duplicate object keys.  The default is false: the last member
// written under a key wins.  Collision detection requires retaining the keys
// seen so far and therefore applies to Parse only; Validate and Strip retain
// nothing and never report DuplicateKey.
func (p *Parser) DetectCollisions(ok bool) { p.detectCollisions = ok }

// MaxDepth sets the array/object nesting depth limit.  Values of n below 1
// restore DefaultMaxDepth.
func (p *Parser) MaxDepth(n int) {
	if n < 1 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Parse materializes the single JSON value encoded in data.  In case of
// malformed input the returned error has concrete type [*Diagnostic]; an
// empty or whitespace-only input reports [ErrEmptyInput].
func (p *Parser) Parse(data []byte) (Value, error) {
	sc := &scanner{in: data, maxDepth: p.maxDepth}
	d := &driver[Value, []Value, map[string]Value, buildSink]{
		sc:   sc,
		sink: buildSink{sc: sc, detect: p.detectCollisions},
	}
	return d.run()
}

// Validate checks that data encodes a single well-formed JSON value without
// materializing it.  Validate accepts and rejects exactly the inputs Parse
// does, with the same diagnostics; only the output is discarded.
func (p *Parser) Validate(data []byte) error {
	sc := &scanner{in: data, maxDepth: p.maxDepth}
	d := &driver[unit, unit, unit, discardSink]{sc: sc}
	_, err := d.run()
	return err
}

// Strip returns a copy of the JSON value in data with all inter-token
// whitespace removed.  Token contents are moved verbatim, so escapes and
// number spellings are preserved exactly.
func (p *Parser) Strip(data []byte) ([]byte, error) {
	sc := &scanner{in: data, maxDepth: p.maxDepth}
	d := &driver[[]byte, []byte, []byte, stripSink]{sc: sc}
	out, err := d.run()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(out), nil
}

// Parse materializes the single JSON value encoded in data using default
// options.  See [Parser.Parse].
func Parse(data []byte) (Value, error) { return New().Parse(data) }

// Validate checks that data encodes a single well-formed JSON value using
// default options.  See [Parser.Validate].
func Validate(data []byte) error { return New().Validate(data) }

// Strip removes inter-token whitespace from the JSON value in data using
// default options.  See [Parser.Strip].
func Strip(data []byte) ([]byte, error) { return New().Strip(data) }

// A sink receives the output of the grammar as it is recognized.  T is the
// type of a finished value, A accumulates array elements, and O accumulates
// object members.  The composers are generic over the sink, so every
// implementation runs the identical grammar and differs only in what it
// retains.  Raw lexeme bytes alias the input buffer; decoded bytes may alias
// the scratch buffer and are only valid until the next string is decoded.
type sink[T, A, O any] interface {
	Null(raw []byte) T
	Bool(raw []byte, v bool) T
	Int(raw []byte, v int64) T
	Float(raw []byte, v float64) T
	BigNumber(raw []byte) T
	String(raw, dec []byte) T

	ArrayStart() A
	ArrayElem(acc A, elem T) A
	ArrayEnd(acc A) T

	ObjectStart() O
	ObjectPair(acc O, key objectKey, val T) (O, *Diagnostic)
	ObjectEnd(acc O) T
}

// An objectKey records a scanned member key whose escape decoding is
// deferred until the pair is committed to a sink that wants the text.
type objectKey struct {
	raw     []byte // the key lexeme including quotes
	escaped bool   // whether decoding is pending
	off     int    // offset of the key's opening quote
	within  int    // offset of the enclosing object's "{"
}

// text resolves the decoded key.  The key was validated when scanned, so
// decoding cannot fail.
func (k objectKey) text() string {
	core := k.raw[1 : len(k.raw)-1]
	if !k.escaped {
		return string(core)
	}
	dec, err := escape.Unquote(mem.B(core))
	if err != nil {
		panic(fmt.Sprintf("jsonparse: validated key %q failed to decode: %v", k.raw, err))
	}
	return string(dec)
}

// A driver owns one parse: the cursor and the sink the grammar writes
// through.
type driver[T, A, O any, S sink[T, A, O]] struct {
	sc   *scanner
	sink S
}

// run parses the top-level value: leading whitespace, one value, trailing
// whitespace, end of input.
func (d *driver[T, A, O, S]) run() (T, error) {
	var zero T
	sc := d.sc
	sc.skipSpace()
	if sc.eof() {
		return zero, ErrEmptyInput
	}
	if !isValueStart(sc.in[sc.pos]) {
		return zero, sc.errAt(UnexpectedCharacter, InDocument, 0, sc.pos, ExpectWhitespace|ExpectValueStart)
	}
	v, err := d.parseValue(ExpectWhitespace, 0)
	if err != nil {
		return zero, err
	}
	sc.skipSpace()
	if !sc.eof() {
		return zero, sc.errAt(TrailingContent, InDocument, 0, sc.pos, ExpectWhitespace)
	}
	return v, nil
}

// parseValue dispatches on the byte under the cursor, which the caller has
// already checked is a legal value start.  follow is the category set that
// may legally terminate a numeric lexeme in the caller's context.
func (d *driver[T, A, O, S]) parseValue(follow Expected, depth int) (T, error) {
	var zero T
	sc := d.sc
	switch c := sc.in[sc.pos]; {
	case c == '"':
		raw, dec, _, err := sc.scanString(true)
		if err != nil {
			return zero, err
		}
		return d.sink.String(raw, dec), nil

	case c == '-' || isDigit(c):
		num, err := sc.scanNumber(follow)
		if err != nil {
			return zero, err
		}
		switch {
		case num.isInt:
			return d.sink.Int(num.raw, num.i), nil
		case num.isFloat:
			return d.sink.Float(num.raw, num.f), nil
		default:
			return d.sink.BigNumber(num.raw), nil
		}

	case c == '[':
		return d.parseArray(depth + 1)

	case c == '{':
		return d.parseObject(depth + 1)

	case c == 't' || c == 'f' || c == 'n':
		lead, raw, err := sc.scanLiteral()
		if err != nil {
			return zero, err
		}
		switch lead {
		case 't':
			return d.sink.Bool(raw, true), nil
		case 'f':
			return d.sink.Bool(raw, false), nil
		default:
			return d.sink.Null(raw), nil
		}

	default:
		panic(fmt.Sprintf("jsonparse: value dispatch on %q", c))
	}
}

// arrayState enumerates the positions of the array composer.
type arrayState byte

const (
	arrayStart  arrayState = iota // expecting a value, or "]" for an empty array
	arrayMiddle                   // expecting "," or "]" after a value
)

func (d *driver[T, A, O, S]) parseArray(depth int) (T, error) {
	var zero T
	sc := d.sc
	start := sc.pos
	if depth > sc.maxDepth {
		return zero, sc.errAt(NestingTooDeep, InArray, start, start, 0)
	}
	sc.pos++ // consume "["

	acc := d.sink.ArrayStart()
	comma := false // a comma has been accepted and awaits its value
	state := arrayStart
	for {
		sc.skipSpace()
		switch state {
		case arrayStart:
			exp := ExpectWhitespace | ExpectValueStart
			if !comma {
				exp |= ExpectArrayEnd
			}
			if sc.eof() {
				return zero, sc.errEOF(InArray, start, exp)
			}
			switch c := sc.in[sc.pos]; {
			case c == ']':
				if comma {
					return zero, sc.errAt(TrailingComma, InArray, start, sc.pos, ExpectWhitespace|ExpectValueStart)
				}
				sc.pos++
				return d.sink.ArrayEnd(acc), nil
			case c == ',':
				return zero, sc.errAt(StrayComma, InArray, start, sc.pos, exp)
			case isValueStart(c):
				v, err := d.parseValue(ExpectWhitespace|ExpectComma|ExpectArrayEnd, depth)
				if err != nil {
					return zero, err
				}
				acc = d.sink.ArrayElem(acc, v)
				comma = false
				state = arrayMiddle
			default:
				return zero, sc.errAt(UnexpectedCharacter, InArray, start, sc.pos, exp)
			}

		case arrayMiddle:
			if sc.eof() {
				return zero, sc.errEOF(InArray, start, ExpectWhitespace|ExpectComma|ExpectArrayEnd)
			}
			switch sc.in[sc.pos] {
			case ',':
				sc.pos++
				comma = true
				state = arrayStart
			case ']':
				sc.pos++
				return d.sink.ArrayEnd(acc), nil
			default:
				return zero, sc.errAt(UnexpectedCharacter, InArray, start, sc.pos, ExpectWhitespace|ExpectComma|ExpectArrayEnd)
			}
		}
	}
}

// objectState enumerates the positions of the object composer.
type objectState byte

const (
	objKey   objectState = iota // expecting a key, or "}" where legal
	objColon                    // expecting ":" after a key
	objValue                    // expecting the member value
)

// keyExpected reports the byte categories legal where a key is expected.
func keyExpected(middle, comma bool) Expected {
	if middle {
		return ExpectWhitespace | ExpectComma | ExpectObjectEnd
	}
	if comma {
		return ExpectWhitespace | ExpectString
	}
	return ExpectWhitespace | ExpectString | ExpectObjectEnd
}

func (d *driver[T, A, O, S]) parseObject(depth int) (T, error) {
	var zero T
	sc := d.sc
	start := sc.pos
	if depth > sc.maxDepth {
		return zero, sc.errAt(NestingTooDeep, InObject, start, start, 0)
	}
	sc.pos++ // consume "{"

	acc := d.sink.ObjectStart()
	var key objectKey
	middle := false // a completed pair awaits a comma or "}"
	comma := false  // a comma has been accepted and awaits its key
	state := objKey
	for {
		sc.skipSpace()
		switch state {
		case objKey:
			if sc.eof() {
				return zero, sc.errEOF(InObject, start, keyExpected(middle, comma))
			}
			switch c := sc.in[sc.pos]; c {
			case '}':
				if comma {
					return zero, sc.errAt(TrailingComma, InObject, start, sc.pos, ExpectWhitespace|ExpectString)
				}
				sc.pos++
				return d.sink.ObjectEnd(acc), nil
			case '"':
				if middle {
					return zero, sc.errAt(MissingComma, InObject, start, sc.pos, ExpectWhitespace|ExpectComma|ExpectObjectEnd)
				}
				off := sc.pos
				raw, _, escaped, err := sc.scanString(false)
				if err != nil {
					return zero, err
				}
				key = objectKey{raw: raw, escaped: escaped, off: off, within: start}
				comma = false
				state = objColon
			case ',':
				if !middle {
					return zero, sc.errAt(StrayComma, InObject, start, sc.pos, keyExpected(false, comma))
				}
				sc.pos++
				middle = false
				comma = true
			default:
				return zero, sc.errAt(UnexpectedCharacter, InObject, start, sc.pos, keyExpected(middle, comma))
			}

		case objColon:
			if sc.eof() {
				return zero, sc.errEOF(InObject, start, ExpectWhitespace|ExpectColon)
			}
			if sc.in[sc.pos] != ':' {
				return zero, sc.errAt(UnexpectedCharacter, InObject, start, sc.pos, ExpectWhitespace|ExpectColon)
			}
			sc.pos++
			state = objValue

		case objValue:
			if sc.eof() {
				return zero, sc.errEOF(InObject, start, ExpectWhitespace|ExpectValueStart)
			}
			if !isValueStart(sc.in[sc.pos]) {
				return zero, sc.errAt(UnexpectedCharacter, InObject, start, sc.pos, ExpectWhitespace|ExpectValueStart)
			}
			v, err := d.parseValue(ExpectWhitespace|ExpectComma|ExpectObjectEnd, depth)
			if err != nil {
				return zero, err
			}
			var dup *Diagnostic
			acc, dup = d.sink.ObjectPair(acc, key, v)
			if dup != nil {
				return zero, dup
			}
			middle = true
			state = objKey
		}
	}
}

// buildSink materializes Values.  With detect set, committing a pair under a
// key already present fails with DuplicateKey instead of overwriting.
type buildSink struct {
	sc     *scanner
	detect bool
}

func (buildSink) Null([]byte) Value { return Null{} }
func (buildSink) Bool(_ []byte, v bool) Value { return Bool(v) }
func (buildSink) Int(_ []byte, v int64) Value { return Int(v) }
func (buildSink) Float(_ []byte, v float64) Value { return Float(v) }
func (buildSink) BigNumber(raw []byte) Value { return RawNumber(raw) }
func (buildSink) String(_, dec []byte) Value { return String(dec) }

func (buildSink) ArrayStart() []Value { return nil }
func (buildSink) ArrayElem(acc []Value, v Value) []Value { return append(acc, v) }
func (buildSink) ArrayEnd(acc []Value) Value { return Array(acc) }

func (buildSink) ObjectStart() map[string]Value { return make(map[string]Value) }

func (s buildSink) ObjectPair(acc map[string]Value, key objectKey, v Value) (map[string]Value, *Diagnostic) {
	k := key.text()
	if s.detect {
		if _, ok := acc[k]; ok {
			d := s.sc.errAt(DuplicateKey, InObject, key.within, key.off, 0)
			d.Key = k
			return acc, d
		}
	}
	acc[k] = v
	return acc, nil
}

func (buildSink) ObjectEnd(acc map[string]Value) Value { return Object(acc) }

type unit struct{}

// discardSink drives the identical grammar while retaining nothing.  It
// never resolves keys, so collision detection is structurally impossible
// here.
type discardSink struct{}

func (discardSink) Null([]byte) unit { return unit{} }
func (discardSink) Bool([]byte, bool) unit { return unit{} }
func (discardSink) Int([]byte, int64) unit { return unit{} }
func (discardSink) Float([]byte, float64) unit { return unit{} }
func (discardSink) BigNumber([]byte) unit { return unit{} }
func (discardSink) String(_, _ []byte) unit { return unit{} }

func (discardSink) ArrayStart() unit { return unit{} }
func (discardSink) ArrayElem(unit, unit) unit { return unit{} }
func (discardSink) ArrayEnd(unit) unit { return unit{} }

func (discardSink) ObjectStart() unit { return unit{} }
func (discardSink) ObjectPair(unit, objectKey, unit) (unit, *Diagnostic) {
	return unit{}, nil
}
func (discardSink) ObjectEnd(unit) unit { return unit{} }

// stripSink re-renders each construct from its raw token bytes with the
// structural punctuation re-inserted and no whitespace.  Pure data movement:
// nothing is decoded or re-encoded.
type stripSink struct{}

func (stripSink) Null(raw []byte) []byte { return raw }
func (stripSink) Bool(raw []byte, _ bool) []byte { return raw }
func (stripSink) Int(raw []byte, _ int64) []byte { return raw }
func (stripSink) Float(raw []byte, _ float64) []byte { return raw }
func (stripSink) BigNumber(raw []byte) []byte { return raw }
func (stripSink) String(raw, _ []byte) []byte { return raw }

func (stripSink) ArrayStart() []byte { return []byte{'['} }

func (stripSink) ArrayElem(acc, elem []byte) []byte {
	if len(acc) > 1 {
		acc = append(acc, ',')
	}
	return append(acc, elem...)
}

func (stripSink) ArrayEnd(acc []byte) []byte { return append(acc, ']') }

func (stripSink) ObjectStart() []byte { return []byte{'{'} }

func (stripSink) ObjectPair(acc []byte, key objectKey, val []byte) ([]byte, *Diagnostic) {
	if len(acc) > 1 {
		acc = append(acc, ',')
	}
	acc = append(acc, key.raw...)
	acc = append(acc, ':')
	return append(acc, val...), nil
}

func (stripSink) ObjectEnd(acc []byte) []byte { return append(acc, '}') }
