// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// A Value is a parsed JSON value.  The concrete type is one of Null, Bool,
// Int, Float, RawNumber, String, Array or Object.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string
}

// Null represents the null literal.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// A Bool is a true or false literal.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// An Int is a number within the range of an int64, written without a
// fraction or exponent.
type Int int64

// JSON satisfies the Value interface.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a number with a fraction or exponent, within the range of a
// float64.
type Float float64

// JSON satisfies the Value interface.  The rendering always carries a
// fraction or exponent so that re-parsing yields a Float again.
func (f Float) JSON() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// A RawNumber is the exact source text of a numeric lexeme that no native
// conversion losslessly represents, such as an integer with too many digits
// for an int64.  Re-serializing reproduces the original bytes.
type RawNumber string

// JSON satisfies the Value interface.
func (n RawNumber) JSON() string { return string(n) }

// A String is a string value, fully decoded.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return Quote(string(s)) }

// An Array is a sequence of values in encounter order.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// An Object maps member keys to values.  Duplicate keys in the source are
// resolved last-write-wins unless collision detection is enabled.
type Object map[string]Value

// JSON satisfies the Value interface.  Members are rendered in sorted key
// order so that equal objects serialize identically.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range slices.Sorted(maps.Keys(o)) {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Quote(key))
		sb.WriteByte(':')
		sb.WriteString(o[key].JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}
