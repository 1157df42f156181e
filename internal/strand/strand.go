// Package strand provides the read strand used by strand-aware CIGAR queries.
package strand

import "fmt"

// Strand is the orientation of a read relative to the reference.
type Strand int8

const (
	Unknown Strand = iota // unstranded or unknown orientation
	Plus
	Minus
)

// Parse converts "+", "-" or "." into a Strand.
func Parse(s string) (Strand, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case ".", "":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("invalid strand %q: want +, - or .", s)
}

// String returns the single-character strand symbol.
func (s Strand) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	}
	return "."
}
