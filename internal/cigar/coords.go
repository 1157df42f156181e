package cigar

// Policy selects how the ambiguous operation kinds move the reference
// cursor. The zero value, Standard, follows the SAM specification.
type Policy struct {
	// InsertionConsumesReference advances the reference cursor over I
	// operations, as some junction callers historically did.
	InsertionConsumesReference bool
	// DeletionCovered counts D operations as covered reference positions.
	DeletionCovered bool
}

// Standard is the SAM specification policy: I does not consume the
// reference and D is consumed but not covered.
var Standard = Policy{}

// ConsumesReference reports whether k advances the reference cursor under p.
func (p Policy) ConsumesReference(k Kind) bool {
	if k == Insertion {
		return p.InsertionConsumesReference
	}
	return k.ConsumesReference()
}

// Covered reports whether k contributes covered reference positions under p.
func (p Policy) Covered(k Kind) bool {
	if k == Deletion {
		return p.DeletionCovered
	}
	return k.Covered()
}

// Run is a contiguous block of covered reference positions, inclusive at
// both ends.
type Run struct {
	Start int64
	End   int64
}

// Len returns the number of positions in r.
func (r Run) Len() int64 { return r.End - r.Start + 1 }

// Contains reports whether [from, to] lies within r.
func (r Run) Contains(from, to int64) bool {
	return r.Start <= from && to <= r.End
}

// runIter yields maximal covered runs left to right without allocating.
type runIter struct {
	p   Policy
	ops []Op
	i   int
	pos int64
}

func (it *runIter) next() (Run, bool) {
	var r Run
	open := false
	for ; it.i < len(it.ops); it.i++ {
		o := it.ops[it.i]
		n := int64(o.Len)
		consumes := it.p.ConsumesReference(o.Kind)
		switch {
		case it.p.Covered(o.Kind):
			// Covered kinds always consume the reference, so an open run
			// always ends at it.pos-1 here.
			if !open {
				r.Start = it.pos
				open = true
			}
			r.End = it.pos + n - 1
		case open && consumes:
			// A gap closes the run; the gap itself is consumed on the next call.
			return r, true
		}
		if consumes {
			it.pos += n
		}
	}
	return r, open
}

// ReferenceLength returns the number of reference positions c spans.
func (p Policy) ReferenceLength(c Cigar) int64 {
	var n int64
	for _, o := range c.ops {
		if p.ConsumesReference(o.Kind) {
			n += int64(o.Len)
		}
	}
	return n
}

// Junctions returns the boundaries of every skipped region (N) of an
// alignment starting at start. For each skip it appends the cursor before
// the skip and the cursor after it, so the result has even length and is
// non-decreasing. It returns nil when c has no skipped region.
func (p Policy) Junctions(c Cigar, start int64) []int64 {
	if !c.HasSkipped() {
		return nil
	}
	var junctions []int64
	pos := start
	for _, o := range c.ops {
		n := int64(o.Len)
		if o.Kind == Skipped {
			junctions = append(junctions, pos, pos+n)
		}
		if p.ConsumesReference(o.Kind) {
			pos += n
		}
	}
	return junctions
}

// ReferenceRuns returns the covered reference runs of an alignment starting
// at start, ascending and disjoint. Touching runs are merged. It returns nil
// when nothing is covered.
func (p Policy) ReferenceRuns(c Cigar, start int64) []Run {
	var runs []Run
	it := runIter{p: p, ops: c.ops, pos: start}
	for {
		r, ok := it.next()
		if !ok {
			return runs
		}
		runs = append(runs, r)
	}
}

// ReferenceCover returns every covered reference position of an alignment
// starting at start, in ascending order. It returns nil when nothing is
// covered. Prefer ReferenceRuns for long reads.
func (p Policy) ReferenceCover(c Cigar, start int64) []int64 {
	runs := p.ReferenceRuns(c, start)
	if len(runs) == 0 {
		return nil
	}
	var total int64
	for _, r := range runs {
		total += r.Len()
	}
	cover := make([]int64, 0, total)
	for _, r := range runs {
		for pos := r.Start; pos <= r.End; pos++ {
			cover = append(cover, pos)
		}
	}
	return cover
}

// FullyCovers reports whether every position in [from, to] is covered by an
// alignment starting at start, with no skip or deletion gap in between. It
// returns false when from > to.
func (p Policy) FullyCovers(c Cigar, start, from, to int64) bool {
	if from > to {
		return false
	}
	it := runIter{p: p, ops: c.ops, pos: start}
	for {
		r, ok := it.next()
		if !ok {
			return false
		}
		if r.End < from {
			continue
		}
		// Runs are ascending and maximal: only this one can hold from.
		return r.Contains(from, to)
	}
}

// EndOfAlignment returns the last reference position touched by an
// alignment starting at start.
func (p Policy) EndOfAlignment(c Cigar, start int64) int64 {
	return start + p.ReferenceLength(c) - 1
}

// Junctions is Standard.Junctions(c, start).
func (c Cigar) Junctions(start int64) []int64 {
	return Standard.Junctions(c, start)
}

// ReferenceRuns is Standard.ReferenceRuns(c, start).
func (c Cigar) ReferenceRuns(start int64) []Run {
	return Standard.ReferenceRuns(c, start)
}

// ReferenceCover is Standard.ReferenceCover(c, start).
func (c Cigar) ReferenceCover(start int64) []int64 {
	return Standard.ReferenceCover(c, start)
}

// FullyCovers is Standard.FullyCovers(c, start, from, to).
func (c Cigar) FullyCovers(start, from, to int64) bool {
	return Standard.FullyCovers(c, start, from, to)
}

// EndOfAlignment is Standard.EndOfAlignment(c, start).
func (c Cigar) EndOfAlignment(start int64) int64 {
	return Standard.EndOfAlignment(c, start)
}
