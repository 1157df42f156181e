// Package cigar parses CIGAR alignment strings and derives reference
// coordinates from them: junction boundaries, covered positions, interval
// containment and the end of the alignment.
//
// A Cigar is immutable once parsed and carries no alignment start; every
// coordinate query takes the start as an argument, so the same Cigar can be
// evaluated for any read sharing its shape. Coordinates are returned in the
// caller's system (0- or 1-based) without reinterpretation.
package cigar

import (
	"strconv"
	"strings"
)

// Op is a single CIGAR operation.
type Op struct {
	Kind Kind
	Len  int
}

// String returns the operation in CIGAR text form, e.g. "35M".
func (o Op) String() string {
	return strconv.Itoa(o.Len) + o.Kind.String()
}

// Cigar is a parsed, non-empty sequence of CIGAR operations.
// The zero value is not a valid Cigar; use Parse, MustParse or FromSAM.
type Cigar struct {
	ops []Op
}

// Len returns the number of operations.
func (c Cigar) Len() int { return len(c.ops) }

// Op returns the i'th operation.
func (c Cigar) Op(i int) Op { return c.ops[i] }

// Ops returns a copy of the operations in order.
func (c Cigar) Ops() []Op {
	ops := make([]Op, len(c.ops))
	copy(ops, c.ops)
	return ops
}

// String returns the canonical CIGAR text.
func (c Cigar) String() string {
	var b strings.Builder
	for _, o := range c.ops {
		b.WriteString(strconv.Itoa(o.Len))
		b.WriteByte(classes[o.Kind].code)
	}
	return b.String()
}

// HasSkipped reports whether the alignment contains a skipped region (N).
func (c Cigar) HasSkipped() bool {
	for _, o := range c.ops {
		if o.Kind == Skipped {
			return true
		}
	}
	return false
}

// ReferenceLength returns the number of reference bases spanned under the
// standard SAM semantics.
func (c Cigar) ReferenceLength() int64 {
	return Standard.ReferenceLength(c)
}

// QueryLength returns the number of read bases present in SEQ.
func (c Cigar) QueryLength() int {
	n := 0
	for _, o := range c.ops {
		if classes[o.Kind].query {
			n += o.Len
		}
	}
	return n
}
