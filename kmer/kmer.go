// Package kmer packs fixed-length nucleotide subsequences into unsigned
// integers and provides the bit-level operations on them: shift-append,
// reverse complement, canonicalization, and sliding-window extraction.
//
// A Type binds a k-mer length to an alphabet and a backing width, validating
// once that k*bits fits; Kmer values themselves are plain integers.  The
// packing convention is most-significant-symbol-first: the first base of
// the k-mer occupies the highest used bits, so numeric order on the raw
// word equals lexicographic order on the decoded sequence.  All bits above
// k*bits are always zero.
package kmer

import (
	"github.com/COMBINE-lab/kmers/alphabet"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/pkg/errors"
)

// Kmer is a k-mer packed into a uint64.  Equality, ordering, and hashing
// are those of the raw word.
type Kmer uint64

// Word returns the raw packed value.
func (km Kmer) Word() uint64 { return uint64(km) }

// Less reports whether km orders before o.  Under the
// most-significant-symbol-first packing this is lexicographic order on the
// decoded sequences.
func (km Kmer) Less(o Kmer) bool { return km < o }

// Hash64 returns a 64-bit hash of the packed value.  Equal k-mers hash
// equally.
func (km Kmer) Hash64() uint64 { return farm.Hash64WithSeed(nil, uint64(km)) }

// Type holds the configuration and cached masks for k-mers of one length
// over one alphabet, backed by a 64-bit word.  Construct with New; the
// zero Type is not usable.
type Type struct {
	k     int
	ab    *alphabet.Alphabet
	bits  uint
	shift uint   // (k-1)*bits; field offset of the oldest symbol
	pad   uint   // 64 - k*bits
	mask  uint64 // low k*bits bits; also the eviction mask for ShiftAppend
	code  *[256]uint8
	comp  []uint8
	rc    *[256]byte
}

// New returns a Type for k-mers of length k over ab.  It fails with
// *TooLargeError if k*ab.Bits() exceeds 64 bits.
func New(k int, ab *alphabet.Alphabet) (*Type, error) {
	return newType(k, ab, 64)
}

// MustNew is New, panicking on error.  For statically known (k, alphabet)
// combinations.
func MustNew(k int, ab *alphabet.Alphabet) *Type {
	t, err := New(k, ab)
	if err != nil {
		log.Panicf("kmer.MustNew: %v", err)
	}
	return t
}

func newType(k int, ab *alphabet.Alphabet, width uint) (*Type, error) {
	b := ab.Bits()
	if k < 1 {
		return nil, errors.Errorf("kmer: k=%d must be positive", k)
	}
	if uint(k)*b > width {
		return nil, &TooLargeError{K: k, Bits: b, Width: width}
	}
	t := &Type{
		k:     k,
		ab:    ab,
		bits:  b,
		shift: uint(k-1) * b,
		pad:   width - uint(k)*b,
		mask:  ^uint64(0) >> (64 - uint(k)*b),
		code:  ab.CodeTable(),
		comp:  ab.ComplementTable(),
		rc:    ab.RevCompTable(),
	}
	return t, nil
}

// K returns the k-mer length.
func (t *Type) K() int { return t.k }

// Width returns the backing width in bits.
func (t *Type) Width() int { return 64 }

// Alphabet returns the codec this type encodes with.
func (t *Type) Alphabet() *alphabet.Alphabet { return t.ab }

// FromSymbols packs exactly K symbols.  It fails with
// *alphabet.InvalidSymbolError on the first unencodable symbol and with
// *LengthMismatchError when len(syms) != K.
func (t *Type) FromSymbols(syms []byte) (Kmer, error) {
	if len(syms) != t.k {
		return 0, &LengthMismatchError{Expected: t.k, Actual: len(syms)}
	}
	var w uint64
	for i, sym := range syms {
		c := t.code[sym]
		if c == alphabet.InvalidCode {
			return 0, &alphabet.InvalidSymbolError{Symbol: sym, Pos: i}
		}
		w = w<<t.bits | uint64(c)
	}
	return Kmer(w), nil
}

// FromString is FromSymbols over the bytes of s.
func (t *Type) FromString(s string) (Kmer, error) {
	return t.FromSymbols(gunsafe.StringToBytes(s))
}

// FromWord masks w down to a valid packed value.
func (t *Type) FromWord(w uint64) Kmer { return Kmer(w & t.mask) }

// Get returns the code of the i-th symbol, counting from the start of the
// k-mer.
func (t *Type) Get(km Kmer, i int) uint8 {
	if i < 0 || i >= t.k {
		log.Panicf("kmer: index %d out of range [0,%d)", i, t.k)
	}
	return uint8(uint64(km) >> (uint(t.k-1-i) * t.bits) & (t.mask >> t.shift))
}

// Append appends the decoded ASCII symbols of km to dst and returns the
// extended slice.
func (t *Type) Append(dst []byte, km Kmer) []byte {
	for i := t.k - 1; i >= 0; i-- {
		code := uint8(uint64(km) >> (uint(i) * t.bits) & (t.mask >> t.shift))
		dst = append(dst, t.ab.Symbol(code))
	}
	return dst
}

// String decodes km back to its ASCII representation.
func (t *Type) String(km Kmer) string {
	return string(t.Append(make([]byte, 0, t.k), km))
}

// ShiftAppend evicts the oldest symbol and appends code in the newest
// position.  code must be a valid code for the alphabet.
func (t *Type) ShiftAppend(km Kmer, code uint8) Kmer {
	return Kmer((uint64(km)<<t.bits | uint64(code)) & t.mask)
}

// ShiftPrepend evicts the newest symbol and inserts code in the oldest
// position, extending the window backward.  code must be a valid code for
// the alphabet.
func (t *Type) ShiftPrepend(km Kmer, code uint8) Kmer {
	return Kmer(uint64(km)>>t.bits | uint64(code)<<t.shift)
}

// ReverseComplement returns the k-mer of the opposite strand: every code
// complemented, order reversed.  The whole word is shuffled through the
// alphabet's byte table, so the cost is proportional to the word width,
// not to k scalar steps.  ReverseComplement is an involution.
func (t *Type) ReverseComplement(km Kmer) Kmer {
	return Kmer(revCompWord(t.rc, uint64(km)<<t.pad) & t.mask)
}

// Canonical returns the numerically smaller of km and its reverse
// complement, and whether the forward orientation was chosen.  A k-mer
// equal to its own reverse complement is its own canonical form and
// reports forward.
func (t *Type) Canonical(km Kmer) (Kmer, bool) {
	rc := t.ReverseComplement(km)
	if rc < km {
		return rc, false
	}
	return km, true
}

// IsCanonical reports whether km is its own canonical form.
func (t *Type) IsCanonical(km Kmer) bool {
	return km <= t.ReverseComplement(km)
}
