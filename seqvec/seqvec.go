// Package seqvec stores a whole sequence as packed codes, 64/b codes per
// uint64 word, and extracts any contained k-mer in O(1) by word arithmetic
// instead of per-base re-encoding.  Like the k-mer packing itself, codes
// are laid out most-significant-symbol-first within each word.
package seqvec

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
	"github.com/COMBINE-lab/kmers/alphabet"
	"github.com/COMBINE-lab/kmers/kmer"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Vector is an append-only packed sequence.  The zero value is not usable;
// construct with New or FromString.
type Vector struct {
	ab    *alphabet.Alphabet
	bits  uint
	per   int // codes per word
	words []uint64
	n     int
}

// New returns an empty vector over ab.
func New(ab *alphabet.Alphabet) *Vector {
	return &Vector{ab: ab, bits: ab.Bits(), per: int(64 / ab.Bits())}
}

// FromString packs the symbols of s.  It fails with
// *alphabet.InvalidSymbolError on the first unencodable symbol.
func FromString(ab *alphabet.Alphabet, s string) (*Vector, error) {
	v := New(ab)
	code := ab.CodeTable()
	for i, sym := range gunsafe.StringToBytes(s) {
		c := code[sym]
		if c == alphabet.InvalidCode {
			return nil, &alphabet.InvalidSymbolError{Symbol: sym, Pos: i}
		}
		v.Append(c)
	}
	return v, nil
}

// Alphabet returns the codec the vector packs with.
func (v *Vector) Alphabet() *alphabet.Alphabet { return v.ab }

// Len returns the number of stored codes.
func (v *Vector) Len() int { return v.n }

// Append appends one code.  code must be valid for the alphabet.
func (v *Vector) Append(code uint8) {
	if int(code) >= v.ab.Size() {
		log.Panicf("seqvec: code %d out of range for alphabet %s", code, v.ab.Name())
	}
	r := v.n % v.per
	if r == 0 {
		v.words = append(v.words, 0)
	}
	v.words[len(v.words)-1] |= uint64(code) << (64 - v.bits*uint(r+1))
	v.n++
}

// AppendSymbol encodes and appends one ASCII symbol.
func (v *Vector) AppendSymbol(sym byte) error {
	c := v.ab.Code(sym)
	if c == alphabet.InvalidCode {
		return &alphabet.InvalidSymbolError{Symbol: sym, Pos: v.n}
	}
	v.Append(c)
	return nil
}

// Get returns the code at pos.
func (v *Vector) Get(pos int) uint8 {
	if pos < 0 || pos >= v.n {
		log.Panicf("seqvec: position %d out of range [0,%d)", pos, v.n)
	}
	r := uint(pos % v.per)
	return uint8(v.words[pos/v.per] >> (64 - v.bits*(r+1)) & (1<<v.bits - 1))
}

// GetKmer extracts the k-mer starting at pos.  The needed bits span at
// most two words, so the cost is constant regardless of k.
func (v *Vector) GetKmer(t *kmer.Type, pos int) kmer.Kmer {
	if t.Alphabet() != v.ab {
		log.Panicf("seqvec: k-mer type uses alphabet %s, vector uses %s",
			t.Alphabet().Name(), v.ab.Name())
	}
	if pos < 0 || pos+t.K() > v.n {
		log.Panicf("seqvec: k-mer [%d,%d) out of range [0,%d)", pos, pos+t.K(), v.n)
	}
	kb := uint(t.K()) * v.bits
	off := v.bits * uint(pos%v.per)
	w := v.words[pos/v.per] << off
	if off+kb > 64 {
		w |= v.words[pos/v.per+1] >> (64 - off)
	}
	return t.FromWord(w >> (64 - kb))
}

// String decodes the vector back to ASCII.
func (v *Vector) String() string {
	out := make([]byte, v.n)
	for i := range out {
		out[i] = v.ab.Symbol(v.Get(i))
	}
	return gunsafe.BytesToString(out)
}

// Checksum returns a seahash of the packed contents.  Vectors with equal
// alphabets and contents checksum equally.
func (v *Vector) Checksum() uint64 {
	h := seahash.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v.n))
	h.Write(buf[:]) // nolint: errcheck
	for _, w := range v.words {
		binary.BigEndian.PutUint64(buf[:], w)
		h.Write(buf[:]) // nolint: errcheck
	}
	return h.Sum64()
}

// Iter scans the vector's k-mers left to right.
type Iter struct {
	v   *Vector
	t   *kmer.Type
	pos int
	cur kmer.Kmer
}

// Kmers returns an iterator over every k-mer of the vector.
func (v *Vector) Kmers(t *kmer.Type) *Iter {
	return &Iter{v: v, t: t, pos: -1}
}

// Scan advances to the next k-mer, returning false when none remain.
func (it *Iter) Scan() bool {
	if it.pos+1+it.t.K() > it.v.n {
		return false
	}
	it.pos++
	it.cur = it.v.GetKmer(it.t, it.pos)
	return true
}

// Get returns the current k-mer and its start position.
func (it *Iter) Get() (kmer.Kmer, int) { return it.cur, it.pos }
