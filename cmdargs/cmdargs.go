// Package cmdargs converts console tokens into integers.
//
// Numerals accept an optional 0x (hexadecimal) or 0b (binary) prefix and are
// decimal otherwise. A token with any trailing character that is not a digit
// of its base is rejected as a whole.
package cmdargs

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseUint parses a single numeral token. The value must fit in bitSize
// bits.
func ParseUint(token string, bitSize int) (uint64, error) {
	base := 10
	digits := token

	switch {
	case hasPrefixFold(token, "0x"):
		base = 16
		digits = token[2:]
	case hasPrefixFold(token, "0b"):
		base = 2
		digits = token[2:]
	}

	if digits == "" {
		return 0, fmt.Errorf("%q is not a numeral", token)
	}

	for _, c := range digits {
		if !isDigit(c, base) {
			return 0, fmt.Errorf("%q is not a numeral", token)
		}
	}

	v, err := strconv.ParseUint(digits, base, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%q does not fit in %d bits", token, bitSize)
	}

	return v, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isDigit(c rune, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 16:
		return (c >= '0' && c <= '9') ||
			(c >= 'a' && c <= 'f') ||
			(c >= 'A' && c <= 'F')
	default:
		return c >= '0' && c <= '9'
	}
}
