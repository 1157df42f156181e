package query

import "github.com/inodb/vibe-cigar/internal/cigar"

// Result holds every coordinate fact derived for one CIGAR and start.
type Result struct {
	Cigar       string // canonical CIGAR text
	Start       int64
	Policy      cigar.Policy
	End         int64 // last reference position touched
	RefLength   int64
	QueryLength int
	Junctions   []int64     // nil when there is no skipped region
	Runs        []cigar.Run // nil when nothing is covered
}

// HasJunctions reports whether the alignment is spliced.
func (r *Result) HasJunctions() bool {
	return len(r.Junctions) > 0
}

// PolicyName returns a short label for the policy used.
func PolicyName(p cigar.Policy) string {
	switch {
	case p.InsertionConsumesReference && p.DeletionCovered:
		return "ins_ref+del_covered"
	case p.InsertionConsumesReference:
		return "ins_ref"
	case p.DeletionCovered:
		return "del_covered"
	}
	return "standard"
}
