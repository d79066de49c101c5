package isbn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid marks input that is not a checksum-valid 13-digit identifier.
var ErrInvalid = errors.New("invalid identifier")

// Length is the digit count of an ISBN-13.
const Length = 13

// ISBN is a validated 13-digit identifier. Equality and ordering follow the
// underlying digit string.
type ISBN string

// Parse strips hyphens and spaces from raw and validates the remainder as an
// ISBN-13. A checksum mismatch is always an error; the check digit is never
// corrected.
func Parse(raw string) (ISBN, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if len(cleaned) != Length {
		return "", fmt.Errorf("%w: %q is not 13 digits", ErrInvalid, raw)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q contains a non-digit character", ErrInvalid, raw)
		}
	}

	check, err := CheckDigit(cleaned[:Length-1])
	if err != nil {
		return "", err
	}
	if int(cleaned[Length-1]-'0') != check {
		return "", fmt.Errorf("%w: %q fails its checksum", ErrInvalid, raw)
	}
	return ISBN(cleaned), nil
}

// CheckDigit computes the ISBN-13 check digit for a 12-digit body using the
// alternating 1/3 weighted sum mod 10.
func CheckDigit(body string) (int, error) {
	if len(body) != Length-1 {
		return 0, fmt.Errorf("%w: body %q is not 12 digits", ErrInvalid, body)
	}
	sum := 0
	for i, r := range body {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: body %q contains a non-digit character", ErrInvalid, body)
		}
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return (10 - sum%10) % 10, nil
}

// Synthesize derives the identifier at sequence position seq under prefix.
// The sequence number is zero-padded across every body digit that follows the
// prefix, then the check digit is appended.
func Synthesize(prefix string, seq int64) (ISBN, error) {
	if seq < 0 {
		return "", fmt.Errorf("%w: negative sequence %d", ErrInvalid, seq)
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: prefix %q contains a non-digit character", ErrInvalid, prefix)
		}
	}
	width := Length - 1 - len(prefix)
	if width <= 0 {
		return "", fmt.Errorf("%w: prefix %q leaves no room for a sequence", ErrInvalid, prefix)
	}
	padded := fmt.Sprintf("%0*d", width, seq)
	if len(padded) > width {
		return "", fmt.Errorf("%w: sequence %d exceeds %d digits under prefix %q", ErrInvalid, seq, width, prefix)
	}
	body := prefix + padded
	check, err := CheckDigit(body)
	if err != nil {
		return "", err
	}
	return ISBN(body + strconv.Itoa(check)), nil
}

// Sequence extracts the numeric sequence value the identifier occupies under
// prefix. It reports false when the identifier does not start with prefix.
func (i ISBN) Sequence(prefix string) (int64, bool) {
	s := string(i)
	if len(s) != Length || !strings.HasPrefix(s, prefix) {
		return 0, false
	}
	seq, err := strconv.ParseInt(s[len(prefix):Length-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

func (i ISBN) String() string { return string(i) }
