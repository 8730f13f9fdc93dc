package kmer

import (
	"math/bits"

	"github.com/COMBINE-lab/kmers/alphabet"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/pkg/errors"
)

// Kmer128 is a k-mer packed into a 128-bit value held as two uint64 words,
// for k-mers too long for a single word.  Equality and ordering are those
// of the 128-bit integer Hi<<64|Lo.
type Kmer128 struct {
	Hi, Lo uint64
}

// Less reports whether km orders before o.
func (km Kmer128) Less(o Kmer128) bool {
	if km.Hi != o.Hi {
		return km.Hi < o.Hi
	}
	return km.Lo < o.Lo
}

// Hash64 returns a 64-bit hash of the packed value.
func (km Kmer128) Hash64() uint64 {
	return farm.Hash64WithSeed(nil, farm.Hash64WithSeed(nil, km.Lo)^km.Hi)
}

// Type128 is the 128-bit analogue of Type.
type Type128 struct {
	k      int
	ab     *alphabet.Alphabet
	bits   uint
	pad    uint   // 128 - k*bits
	maskHi uint64 // high-word part of the low k*bits mask
	maskLo uint64
	code   *[256]uint8
	rc     *[256]byte
}

// New128 returns a Type128 for k-mers of length k over ab.  It fails with
// *TooLargeError if k*ab.Bits() exceeds 128 bits.
func New128(k int, ab *alphabet.Alphabet) (*Type128, error) {
	b := ab.Bits()
	if k < 1 {
		return nil, errors.Errorf("kmer: k=%d must be positive", k)
	}
	total := uint(k) * b
	if total > 128 {
		return nil, &TooLargeError{K: k, Bits: b, Width: 128}
	}
	t := &Type128{
		k:    k,
		ab:   ab,
		bits: b,
		pad:  128 - total,
		code: ab.CodeTable(),
		rc:   ab.RevCompTable(),
	}
	if total > 64 {
		t.maskLo = ^uint64(0)
		t.maskHi = ^uint64(0) >> (128 - total)
	} else {
		t.maskLo = ^uint64(0) >> (64 - total)
	}
	return t, nil
}

// MustNew128 is New128, panicking on error.
func MustNew128(k int, ab *alphabet.Alphabet) *Type128 {
	t, err := New128(k, ab)
	if err != nil {
		log.Panicf("kmer.MustNew128: %v", err)
	}
	return t
}

// K returns the k-mer length.
func (t *Type128) K() int { return t.k }

// Width returns the backing width in bits.
func (t *Type128) Width() int { return 128 }

// Alphabet returns the codec this type encodes with.
func (t *Type128) Alphabet() *alphabet.Alphabet { return t.ab }

// FromSymbols packs exactly K symbols, with the same failure modes as
// Type.FromSymbols.
func (t *Type128) FromSymbols(syms []byte) (Kmer128, error) {
	if len(syms) != t.k {
		return Kmer128{}, &LengthMismatchError{Expected: t.k, Actual: len(syms)}
	}
	var km Kmer128
	for i, sym := range syms {
		c := t.code[sym]
		if c == alphabet.InvalidCode {
			return Kmer128{}, &alphabet.InvalidSymbolError{Symbol: sym, Pos: i}
		}
		km = t.shiftIn(km, c)
	}
	return km, nil
}

// FromString is FromSymbols over the bytes of s.
func (t *Type128) FromString(s string) (Kmer128, error) {
	return t.FromSymbols(gunsafe.StringToBytes(s))
}

// FromWords masks (hi, lo) down to a valid packed value.
func (t *Type128) FromWords(hi, lo uint64) Kmer128 {
	return Kmer128{Hi: hi & t.maskHi, Lo: lo & t.maskLo}
}

func (t *Type128) shiftIn(km Kmer128, code uint8) Kmer128 {
	hi := km.Hi<<t.bits | km.Lo>>(64-t.bits)
	lo := km.Lo<<t.bits | uint64(code)
	return Kmer128{Hi: hi & t.maskHi, Lo: lo & t.maskLo}
}

// ShiftAppend evicts the oldest symbol and appends code in the newest
// position.
func (t *Type128) ShiftAppend(km Kmer128, code uint8) Kmer128 {
	return t.shiftIn(km, code)
}

// ShiftPrepend evicts the newest symbol and inserts code in the oldest
// position.
func (t *Type128) ShiftPrepend(km Kmer128, code uint8) Kmer128 {
	lo := km.Lo>>t.bits | km.Hi<<(64-t.bits)
	hi := km.Hi >> t.bits
	if off := uint(t.k-1) * t.bits; off >= 64 {
		hi |= uint64(code) << (off - 64)
	} else {
		lo |= uint64(code) << off
	}
	return Kmer128{Hi: hi, Lo: lo}
}

// Get returns the code of the i-th symbol.  Codes never straddle the word
// boundary because the symbol width divides 64.
func (t *Type128) Get(km Kmer128, i int) uint8 {
	if i < 0 || i >= t.k {
		log.Panicf("kmer: index %d out of range [0,%d)", i, t.k)
	}
	codeMask := uint64(1)<<t.bits - 1
	off := uint(t.k-1-i) * t.bits
	if off >= 64 {
		return uint8(km.Hi >> (off - 64) & codeMask)
	}
	return uint8(km.Lo >> off & codeMask)
}

// Append appends the decoded ASCII symbols of km to dst.
func (t *Type128) Append(dst []byte, km Kmer128) []byte {
	for i := 0; i < t.k; i++ {
		dst = append(dst, t.ab.Symbol(t.Get(km, i)))
	}
	return dst
}

// String decodes km back to its ASCII representation.
func (t *Type128) String(km Kmer128) string {
	return string(t.Append(make([]byte, 0, t.k), km))
}

func revCompWord(rc *[256]byte, w uint64) uint64 {
	w = uint64(rc[w&0xff]) |
		uint64(rc[w>>8&0xff])<<8 |
		uint64(rc[w>>16&0xff])<<16 |
		uint64(rc[w>>24&0xff])<<24 |
		uint64(rc[w>>32&0xff])<<32 |
		uint64(rc[w>>40&0xff])<<40 |
		uint64(rc[w>>48&0xff])<<48 |
		uint64(rc[w>>56])<<56
	return bits.ReverseBytes64(w)
}

// ReverseComplement returns the opposite-strand k-mer.  The 128-bit value
// is left-aligned, each word is shuffled through the alphabet's byte
// table, and the words swap places.
func (t *Type128) ReverseComplement(km Kmer128) Kmer128 {
	var hi, lo uint64
	if t.pad < 64 {
		hi = km.Hi<<t.pad | km.Lo>>(64-t.pad)
		lo = km.Lo << t.pad
	} else {
		hi = km.Lo << (t.pad - 64)
		lo = 0
	}
	return Kmer128{
		Hi: revCompWord(t.rc, lo) & t.maskHi,
		Lo: revCompWord(t.rc, hi) & t.maskLo,
	}
}

// Canonical returns the numerically smaller of km and its reverse
// complement, and whether the forward orientation was chosen.
func (t *Type128) Canonical(km Kmer128) (Kmer128, bool) {
	rc := t.ReverseComplement(km)
	if rc.Less(km) {
		return rc, false
	}
	return km, true
}

// IsCanonical reports whether km is its own canonical form.
func (t *Type128) IsCanonical(km Kmer128) bool {
	return !t.ReverseComplement(km).Less(km)
}
