// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

// Package jsonparse implements a strict JSON parser and validator.
//
// # Parsing
//
// Parse materializes the single value encoded in a byte buffer:
//
//	v, err := jsonparse.Parse(data)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The result is one of the concrete Value kinds: Null, Bool, Int, Float,
// RawNumber, String, Array or Object.  Numeric lexemes that no native type
// represents losslessly, such as integers with more digits than an int64 can
// hold, are preserved verbatim as RawNumber.
//
// # Validating
//
// Validate performs the identical scan without building anything, at higher
// throughput.  It accepts and rejects exactly the inputs Parse does:
//
//	if err := jsonparse.Validate(data); err != nil {
//	   log.Fatalf("Invalid input: %v", err)
//	}
//
// # Stripping
//
// Strip re-renders a document with all inter-token whitespace removed,
// moving token bytes verbatim:
//
//	min, err := jsonparse.Strip(data)
//
// Escape sequences and number spellings come through untouched, so the
// output is byte-for-byte a compact spelling of the input document.
//
// # Diagnostics
//
// Malformed input is reported as a *Diagnostic carrying the kind of error,
// the offending byte and its offset, the construct that was being parsed and
// where it began, and the set of byte values that would have been accepted
// at the failing position:
//
//	var d *jsonparse.Diagnostic
//	if errors.As(err, &d) {
//	   log.Printf("byte %d: legal continuations %v", d.Offset, d.LegalBytes())
//	}
//
// An input that is empty or all whitespace reports the sentinel ErrEmptyInput
// from every entry point; like io.EOF it signals absence rather than failure.
//
// # Options
//
// A Parser built with New carries options shared by all three entry points:
//
//	p := jsonparse.New()
//	p.DetectCollisions(true)
//	p.MaxDepth(64)
//	v, err := p.Parse(data)
//
// DetectCollisions makes Parse fail with a DuplicateKey diagnostic when an
// object repeats a key, instead of applying the default last-write-wins
// rule.  MaxDepth bounds nesting so that adversarial input reports
// NestingTooDeep rather than exhausting the call stack.
//
// # Input requirements
//
// The input must be a complete, already-buffered UTF-8 document; there is no
// streaming interface, no support for other encodings, and no extension of
// the grammar (no comments, trailing commas, or unquoted keys).  The engine
// keeps no state across calls, so distinct calls on distinct buffers may run
// concurrently without coordination.
package jsonparse
