package kmer

import (
	"math/bits"

	"github.com/COMBINE-lab/kmers/alphabet"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Kmer32 is a k-mer packed into a uint32, for dense storage of short
// k-mers.  Semantics match Kmer at half the width.
type Kmer32 uint32

// Word returns the raw packed value.
func (km Kmer32) Word() uint32 { return uint32(km) }

// Less reports whether km orders before o.
func (km Kmer32) Less(o Kmer32) bool { return km < o }

// Hash64 returns a 64-bit hash of the packed value.
func (km Kmer32) Hash64() uint64 { return farm.Hash64WithSeed(nil, uint64(km)) }

// Type32 is the 32-bit analogue of Type.
type Type32 struct {
	t Type
}

// New32 returns a Type32 for k-mers of length k over ab.  It fails with
// *TooLargeError if k*ab.Bits() exceeds 32 bits.
func New32(k int, ab *alphabet.Alphabet) (*Type32, error) {
	t, err := newType(k, ab, 32)
	if err != nil {
		return nil, err
	}
	return &Type32{t: *t}, nil
}

// MustNew32 is New32, panicking on error.
func MustNew32(k int, ab *alphabet.Alphabet) *Type32 {
	t, err := New32(k, ab)
	if err != nil {
		log.Panicf("kmer.MustNew32: %v", err)
	}
	return t
}

// K returns the k-mer length.
func (t *Type32) K() int { return t.t.k }

// Width returns the backing width in bits.
func (t *Type32) Width() int { return 32 }

// Alphabet returns the codec this type encodes with.
func (t *Type32) Alphabet() *alphabet.Alphabet { return t.t.ab }

// FromSymbols packs exactly K symbols, with the same failure modes as
// Type.FromSymbols.
func (t *Type32) FromSymbols(syms []byte) (Kmer32, error) {
	km, err := t.t.FromSymbols(syms)
	if err != nil {
		return 0, err
	}
	return Kmer32(km), nil
}

// FromString is FromSymbols over the bytes of s.
func (t *Type32) FromString(s string) (Kmer32, error) {
	return t.FromSymbols(gunsafe.StringToBytes(s))
}

// FromWord masks w down to a valid packed value.
func (t *Type32) FromWord(w uint32) Kmer32 { return Kmer32(uint64(w) & t.t.mask) }

// Get returns the code of the i-th symbol.
func (t *Type32) Get(km Kmer32, i int) uint8 { return t.t.Get(Kmer(km), i) }

// Append appends the decoded ASCII symbols of km to dst.
func (t *Type32) Append(dst []byte, km Kmer32) []byte { return t.t.Append(dst, Kmer(km)) }

// String decodes km back to its ASCII representation.
func (t *Type32) String(km Kmer32) string { return t.t.String(Kmer(km)) }

// ShiftAppend evicts the oldest symbol and appends code in the newest
// position.
func (t *Type32) ShiftAppend(km Kmer32, code uint8) Kmer32 {
	return Kmer32((uint32(km)<<t.t.bits | uint32(code)) & uint32(t.t.mask))
}

// ShiftPrepend evicts the newest symbol and inserts code in the oldest
// position.
func (t *Type32) ShiftPrepend(km Kmer32, code uint8) Kmer32 {
	return Kmer32(uint32(km)>>t.t.bits | uint32(code)<<t.t.shift)
}

// ReverseComplement returns the opposite-strand k-mer, via the same
// byte-table shuffle as Type.ReverseComplement over the narrower word.
func (t *Type32) ReverseComplement(km Kmer32) Kmer32 {
	w := uint32(km) << t.t.pad
	rc := t.t.rc
	w = uint32(rc[w&0xff]) |
		uint32(rc[w>>8&0xff])<<8 |
		uint32(rc[w>>16&0xff])<<16 |
		uint32(rc[w>>24])<<24
	return Kmer32(bits.ReverseBytes32(w) & uint32(t.t.mask))
}

// Canonical returns the numerically smaller of km and its reverse
// complement, and whether the forward orientation was chosen.
func (t *Type32) Canonical(km Kmer32) (Kmer32, bool) {
	rc := t.ReverseComplement(km)
	if rc < km {
		return rc, false
	}
	return km, true
}

// IsCanonical reports whether km is its own canonical form.
func (t *Type32) IsCanonical(km Kmer32) bool {
	return km <= t.ReverseComplement(km)
}
