package cigar

import "github.com/inodb/vibe-cigar/internal/strand"

// SoftClipped returns the length of the soft clip at the 3' end of a read on
// strand s: the trailing operation for Plus, the leading one for Minus. Hard
// clips outside the soft clip are skipped. It returns false when that end is
// not soft clipped or the strand is Unknown.
func (c Cigar) SoftClipped(s strand.Strand) (int, bool) {
	switch s {
	case strand.Plus:
		for i := len(c.ops) - 1; i >= 0; i-- {
			if c.ops[i].Kind != HardClipped {
				return softClip(c.ops[i])
			}
		}
	case strand.Minus:
		for _, o := range c.ops {
			if o.Kind != HardClipped {
				return softClip(o)
			}
		}
	}
	return 0, false
}

// SoftClippedEnd reports whether the 3' soft clip on strand s is longer than
// delta bases. Unstranded reads always report false.
func (c Cigar) SoftClippedEnd(s strand.Strand, delta int) bool {
	n, ok := c.SoftClipped(s)
	return ok && n > delta
}

func softClip(o Op) (int, bool) {
	if o.Kind != SoftClipped {
		return 0, false
	}
	return o.Len, true
}
