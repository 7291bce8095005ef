package domain

import (
	"fmt"
	"strings"
)

const addressHexLength = 40

type Address string

// ParseAddress accepts a 0x-prefixed 20-byte hex address and returns it in lower case.
func ParseAddress(raw string) (Address, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(trimmed, "0x") {
		return "", fmt.Errorf("%w: %q is missing 0x prefix", ErrInvalidAddress, raw)
	}

	digits := trimmed[2:]
	if len(digits) != addressHexLength {
		return "", fmt.Errorf("%w: %q must have %d hex digits", ErrInvalidAddress, raw, addressHexLength)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return "", fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidAddress, raw, r)
		}
	}

	return Address(trimmed), nil
}

func (a Address) IsZero() bool {
	return a == ""
}

// Short renders 0x1234…abcd for narrow terminal output.
func (a Address) Short() string {
	s := string(a)
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}
