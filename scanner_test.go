// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse

import (
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestScanFaults(t *testing.T) {
	// Dispatching a scan on a byte the caller should have rejected is a
	// defect, not an input error.
	mtest.MustPanic(t, func() {
		sc := &scanner{in: []byte("x")}
		sc.scanLiteral()
	})
	mtest.MustPanic(t, func() {
		sc := &scanner{in: []byte("@"), maxDepth: DefaultMaxDepth}
		d := &driver[unit, unit, unit, discardSink]{sc: sc}
		d.parseValue(0, 0)
	})
}

func TestScratchReuse(t *testing.T) {
	sc := &scanner{in: []byte(`"a\nb" "c\td" "plain"`)}

	_, dec, escaped, err := sc.scanString(true)
	if err != nil {
		t.Fatalf("scanString: unexpected error: %v", err)
	}
	if !escaped || string(dec) != "a\nb" {
		t.Errorf("scanString: got %q (escaped=%v), want %q", dec, escaped, "a\nb")
	}

	// The next decode overwrites the scratch buffer.
	sc.skipSpace()
	_, dec2, _, err := sc.scanString(true)
	if err != nil {
		t.Fatalf("scanString: unexpected error: %v", err)
	}
	if string(dec2) != "c\td" {
		t.Errorf("scanString: got %q, want %q", dec2, "c\td")
	}
	if string(dec) != "c\td" {
		t.Errorf("stale slice: got %q, want it overwritten to %q", dec, "c\td")
	}

	// Escape-free strings are sliced directly out of the input.
	sc.skipSpace()
	raw, dec3, escaped, err := sc.scanString(true)
	if err != nil {
		t.Fatalf("scanString: unexpected error: %v", err)
	}
	if escaped {
		t.Error("scanString: escape reported for a plain string")
	}
	if string(dec3) != "plain" {
		t.Errorf("scanString: got %q, want %q", dec3, "plain")
	}
	if &dec3[0] != &raw[1] {
		t.Error("scanString: plain contents were copied, want a slice of the input")
	}
}

func TestValidateKeysDeferred(t *testing.T) {
	// Scanning a key without decoding must flag a pending escape and defer
	// the work to the point of insertion.
	sc := &scanner{in: []byte(`"k\u0065y"`)}
	raw, dec, escaped, err := sc.scanString(false)
	if err != nil {
		t.Fatalf("scanString: unexpected error: %v", err)
	}
	if !escaped || dec != nil {
		t.Errorf("scanString: got dec=%q escaped=%v, want nil and true", dec, escaped)
	}
	key := objectKey{raw: raw, escaped: escaped}
	if got := key.text(); got != "key" {
		t.Errorf("text: got %q, want %q", got, "key")
	}

	// An escape-free key resolves without decoding.
	sc = &scanner{in: []byte(`"key"`)}
	raw, _, escaped, err = sc.scanString(false)
	if err != nil {
		t.Fatalf("scanString: unexpected error: %v", err)
	}
	if escaped {
		t.Error("scanString: escape reported for a plain key")
	}
	key = objectKey{raw: raw, escaped: escaped}
	if got := key.text(); got != "key" {
		t.Errorf("text: got %q, want %q", got, "key")
	}
}

func TestNumberFastPath(t *testing.T) {
	// Inputs on both sides of the fast-path digit threshold must agree with
	// the slow conversion.
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"-0", 0},
		{"7", 7},

		// On the fast path.
		{"1234567", 1234567},
		{"-1234567", -1234567},

		// Past the fast-path threshold.
		{"12345678", 12345678},
		{"123456789012345", 123456789012345},
		{"-9223372036854775808", -9223372036854775808},
	}
	for _, test := range tests {
		sc := &scanner{in: []byte(test.input)}
		num, err := sc.scanNumber(ExpectWhitespace)
		if err != nil {
			t.Errorf("scanNumber %#q: unexpected error: %v", test.input, err)
			continue
		}
		if !num.isInt {
			t.Errorf("scanNumber %#q: not recognized as an integer", test.input)
			continue
		}
		if num.i != test.want {
			t.Errorf("scanNumber %#q: got %d, want %d", test.input, num.i, test.want)
		}
	}
}
