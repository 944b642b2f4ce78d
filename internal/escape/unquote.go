// Copyright (C) 2026 The JSON-Parse Authors. All Rights Reserved.

package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string.
// The input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and
// surrogate pairs are combined into a single code point.  Unquote reports an
// error for an invalid or incomplete escape sequence and for an unpaired
// surrogate.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dec = append(dec, b)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := decodeRune(src)
			if err != nil {
				return nil, err
			}
			dec = utf8.AppendRune(dec, r)
			src = rest
		default:
			return nil, fmt.Errorf("invalid escape %q", b)
		}

		// Look for the next escape sequence, and if one is not found we can
		// blit the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// decodeRune decodes the four hex digits of a \u escape whose "\u" prefix
// has already been consumed from src, along with the second escape of a
// surrogate pair if one applies.
func decodeRune(src mem.RO) (rune, mem.RO, error) {
	hi, err := parseHex4(src)
	if err != nil {
		return 0, src, err
	}
	src = src.SliceFrom(4)
	if hi < 0xD800 || hi > 0xDFFF {
		return rune(hi), src, nil
	}
	if hi >= 0xDC00 {
		return 0, src, errors.New("unpaired low surrogate")
	}
	if src.Len() < 2 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, errors.New("unpaired high surrogate")
	}
	lo, err := parseHex4(src.SliceFrom(2))
	if err != nil {
		return 0, src, err
	}
	if lo < 0xDC00 || lo > 0xDFFF {
		return 0, src, errors.New("invalid low surrogate value")
	}
	return 0x10000 + (rune(hi)-0xD800)<<10 + (rune(lo) - 0xDC00), src.SliceFrom(6), nil
}

func parseHex4(data mem.RO) (int, error) {
	if data.Len() < 4 {
		return 0, errors.New("incomplete Unicode escape")
	}
	var v int
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int(b - '0')
		case 'a' <= b && b <= 'f':
			v += int(b-'a') + 10
		case 'A' <= b && b <= 'F':
			v += int(b-'A') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
