package cigar

import "github.com/biogo/hts/sam"

// FromSAM converts a biogo sam.Cigar, applying the same validation as Parse.
// An empty sam.Cigar (the "*" placeholder) and CigarBack operations are
// rejected.
func FromSAM(sc sam.Cigar) (Cigar, error) {
	if len(sc) == 0 {
		return Cigar{}, &ParseError{Input: sc.String(), Err: ErrEmptyInput}
	}
	ops := make([]Op, len(sc))
	for i, co := range sc {
		k := Kind(co.Type())
		if !k.Valid() {
			return Cigar{}, &ParseError{Input: sc.String(), Offset: i, Err: ErrUnknownOperation}
		}
		if co.Len() < 1 || co.Len() > MaxOpLen {
			return Cigar{}, &ParseError{Input: sc.String(), Offset: i, Err: ErrInvalidLength}
		}
		ops[i] = Op{Kind: k, Len: co.Len()}
	}
	return Cigar{ops: ops}, nil
}

// SAM returns c as a biogo sam.Cigar.
func (c Cigar) SAM() sam.Cigar {
	sc := make(sam.Cigar, len(c.ops))
	for i, o := range c.ops {
		sc[i] = sam.NewCigarOp(sam.CigarOpType(o.Kind), o.Len)
	}
	return sc
}
