// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package jsonparse

import (
	"errors"
	"strings"

	"github.com/shlomif/JSON-Parse/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value.  The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// escape sequences are replaced with their unescaped equivalents, and
// surrogate pairs are combined.  Unquote reports an error for an invalid or
// incomplete escape sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
