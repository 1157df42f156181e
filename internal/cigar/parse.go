package cigar

import (
	"errors"
	"fmt"
)

// MaxOpLen is the largest operation length accepted, the BAM limit of 2^28-1.
const MaxOpLen = 1<<28 - 1

// Parse errors. A *ParseError always wraps exactly one of these.
var (
	ErrEmptyInput       = errors.New("empty input")
	ErrInvalidLength    = errors.New("invalid operation length")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrTrailingGarbage  = errors.New("trailing garbage")
)

// ParseError reports where and why a CIGAR string was rejected.
type ParseError struct {
	Input  string
	Offset int // byte offset in Input; operation index for FromSAM
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse cigar %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses a CIGAR string such as "35M110N45M" into a Cigar.
//
// Each token is a run of decimal digits followed by one of the operation
// codes MIDNSHP=X. The SAM "*" placeholder is not accepted; callers that see
// it must handle it before parsing.
func Parse(text string) (Cigar, error) {
	if len(text) == 0 {
		return Cigar{}, &ParseError{Input: text, Err: ErrEmptyInput}
	}

	ops := make([]Op, 0, 4)
	for i := 0; i < len(text); {
		tokenStart := i
		var n int64
		for ; i < len(text) && isDigit(text[i]); i++ {
			// Stop accumulating once out of range so n cannot overflow.
			if n <= MaxOpLen {
				n = n*10 + int64(text[i]-'0')
			}
		}
		digits := i - tokenStart

		if i == len(text) {
			return Cigar{}, &ParseError{Input: text, Offset: tokenStart, Err: ErrTrailingGarbage}
		}

		kind, ok := KindOf(text[i])
		if digits == 0 {
			if ok {
				return Cigar{}, &ParseError{Input: text, Offset: tokenStart, Err: ErrInvalidLength}
			}
			return Cigar{}, &ParseError{Input: text, Offset: i, Err: ErrUnknownOperation}
		}
		if text[tokenStart] == '0' || n > MaxOpLen {
			return Cigar{}, &ParseError{Input: text, Offset: tokenStart, Err: ErrInvalidLength}
		}
		if !ok {
			return Cigar{}, &ParseError{Input: text, Offset: i, Err: ErrUnknownOperation}
		}

		ops = append(ops, Op{Kind: kind, Len: int(n)})
		i++
	}

	return Cigar{ops: ops}, nil
}

// MustParse is like Parse but panics if text is not a valid CIGAR string.
// It is meant for literals and input already validated upstream, never for
// data read directly from untrusted sources.
func MustParse(text string) Cigar {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
