// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse_test

import (
	"errors"
	"os"
	"testing"

	jsonparse "github.com/shlomif/JSON-Parse"
	"github.com/tailscale/hujson"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"42", "42"},
		{"  42\n", "42"},
		{"null", "null"},
		{`"a b"`, `"a b"`}, // interior whitespace is content
		{"[ ]", "[]"},
		{"{ }", "{}"},
		{"[ 1 , 2 , 3 ]", "[1,2,3]"},
		{"{ \"a\" : [ 1 , 2.50 , \"x\\ty\" ] }", `{"a":[1,2.50,"x\ty"]}`},
		{"{\n  \"a\": true,\n  \"b\": [null, {\"c\": -0.5}]\n}",
			`{"a":true,"b":[null,{"c":-0.5}]}`},

		// Token spellings pass through untouched.
		{`[ 1e2 , 0.500 , "é" , "\/" ]`, `[1e2,0.500,"é","\/"]`},
		{`{ "a" : 1 }`, `{"a":1}`},
	}
	for _, test := range tests {
		got, err := jsonparse.Strip([]byte(test.input))
		if err != nil {
			t.Errorf("Strip %#q: unexpected error: %v", test.input, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("Strip %#q: got %#q, want %#q", test.input, got, test.want)
		}

		// Stripping is idempotent.
		again, err := jsonparse.Strip(got)
		if err != nil {
			t.Errorf("Strip %#q: unexpected error: %v", got, err)
		} else if string(again) != string(got) {
			t.Errorf("Strip %#q: got %#q, want it unchanged", got, again)
		}
	}
}

func TestStripErrors(t *testing.T) {
	var d *jsonparse.Diagnostic
	if _, err := jsonparse.Strip([]byte("[1,2,]")); !errors.As(err, &d) {
		t.Errorf("Strip: got %v, want a Diagnostic", err)
	} else if d.Kind != jsonparse.TrailingComma {
		t.Errorf("Strip: got kind %v, want %v", d.Kind, jsonparse.TrailingComma)
	}
	if _, err := jsonparse.Strip([]byte(" \n ")); !errors.Is(err, jsonparse.ErrEmptyInput) {
		t.Errorf("Strip: got %v, want %v", err, jsonparse.ErrEmptyInput)
	}
}

// TestStripFile cross-checks whitespace removal against the hujson minimizer
// on a realistic document.
func TestStripFile(t *testing.T) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		t.Fatalf("Reading test input: %v", err)
	}
	got, err := jsonparse.Strip(input)
	if err != nil {
		t.Fatalf("Strip failed: %v", err)
	}
	want, err := hujson.Minimize(input)
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Strip disagrees with Minimize:\n got %s\nwant %s", got, want)
	}
	if err := jsonparse.Validate(got); err != nil {
		t.Errorf("Validate of stripped output failed: %v", err)
	}
}
