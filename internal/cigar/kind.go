package cigar

// Kind is a CIGAR operation type. Values follow the BAM binary op codes.
type Kind uint8

const (
	Match       Kind = iota // M: alignment match, sequence match or mismatch
	Insertion               // I: insertion to the reference
	Deletion                // D: deletion from the reference
	Skipped                 // N: skipped region, usually an intron
	SoftClipped             // S: clipped bases present in SEQ
	HardClipped             // H: clipped bases absent from SEQ
	Padded                  // P: silent deletion from padded reference
	Equal                   // =: sequence match
	Mismatch                // X: sequence mismatch
	numKinds
)

// class describes how one operation kind moves the alignment cursors.
type class struct {
	code      byte
	reference bool // advances the reference cursor
	query     bool // advances the read cursor
	covered   bool // asserts base-level correspondence on the reference
}

// classes is the fixed classification table. Policy may override the
// reference flag of Insertion and the covered flag of Deletion.
var classes = [numKinds]class{
	Match:       {code: 'M', reference: true, query: true, covered: true},
	Insertion:   {code: 'I', query: true},
	Deletion:    {code: 'D', reference: true},
	Skipped:     {code: 'N', reference: true},
	SoftClipped: {code: 'S', query: true},
	HardClipped: {code: 'H'},
	Padded:      {code: 'P'},
	Equal:       {code: '=', reference: true, query: true, covered: true},
	Mismatch:    {code: 'X', reference: true, query: true, covered: true},
}

// kindLookup maps an ASCII byte to its Kind; numKinds marks unknown codes.
var kindLookup [256]Kind

func init() {
	for i := range kindLookup {
		kindLookup[i] = numKinds
	}
	for k, c := range classes {
		kindLookup[c.code] = Kind(k)
	}
}

// KindOf returns the Kind for an operation code byte.
func KindOf(code byte) (Kind, bool) {
	k := kindLookup[code]
	return k, k != numKinds
}

// Valid reports whether k is one of the nine canonical kinds.
func (k Kind) Valid() bool { return k < numKinds }

// String returns the single-letter operation code.
func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return string(classes[k].code)
}

// ConsumesReference reports whether k advances the reference cursor under
// the standard SAM semantics.
func (k Kind) ConsumesReference() bool { return k.Valid() && classes[k].reference }

// ConsumesQuery reports whether k advances the read cursor.
func (k Kind) ConsumesQuery() bool { return k.Valid() && classes[k].query }

// Covered reports whether k contributes covered reference positions under
// the standard SAM semantics.
func (k Kind) Covered() bool { return k.Valid() && classes[k].covered }
