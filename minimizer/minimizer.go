// Package minimizer selects minimizers: among the w-wide sub-k-mers of a
// k-mer, the one whose hash is smallest.  The hash is pluggable so callers
// can trade randomness (Farm, Highway) against order preservation (Lex).
package minimizer

import (
	"encoding/binary"

	"github.com/COMBINE-lab/kmers/kmer"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// Hasher hashes a packed sub-k-mer word.  Implementations must be
// deterministic; equal words must hash equally.
type Hasher interface {
	Hash64(word uint64) uint64
}

// Farm hashes with farmhash, unkeyed.  The zero value is ready to use.
type Farm struct{}

// Hash64 implements Hasher.
func (Farm) Hash64(w uint64) uint64 { return farm.Hash64WithSeed(nil, w) }

// Lex is the order-preserving hasher: minimizing its hash picks the
// lexicographically smallest sub-k-mer.  Because packing is
// most-significant-symbol-first, lexicographic order is numeric order and
// the hash is the word itself.
type Lex struct{}

// Hash64 implements Hasher.
func (Lex) Hash64(w uint64) uint64 { return w }

// Highway hashes with HighwayHash under a caller-supplied 256-bit key, for
// minimizer schemes that must not be predictable to the input.
type Highway struct {
	key []byte
}

// NewHighway returns a Highway hasher.  key must be 32 bytes.
func NewHighway(key []byte) (Highway, error) {
	if len(key) != highwayhash.Size {
		return Highway{}, errors.Errorf("minimizer: highway key is %d bytes, want %d", len(key), highwayhash.Size)
	}
	return Highway{key: append([]byte(nil), key...)}, nil
}

// Hash64 implements Hasher.
func (h Highway) Hash64(w uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], w)
	return highwayhash.Sum64(buf[:], h.key)
}

// Sub extracts the w-wide sub-k-mer starting at symbol position pos,
// counting from the start of the k-mer.  The result is a valid k-mer of
// width w over the same alphabet.
func Sub(t *kmer.Type, km kmer.Kmer, pos, w int) kmer.Kmer {
	if w < 1 || pos < 0 || pos+w > t.K() {
		log.Panicf("minimizer: sub-k-mer [%d,%d) out of k=%d", pos, pos+w, t.K())
	}
	b := t.Alphabet().Bits()
	mask := ^uint64(0) >> (64 - uint(w)*b)
	return kmer.Kmer(km.Word() >> (uint(t.K()-pos-w) * b) & mask)
}

// Minimize returns the w-wide sub-k-mer of km with the smallest hash, and
// its offset.  Ties go to the leftmost occurrence.
func Minimize(t *kmer.Type, km kmer.Kmer, w int, h Hasher) (kmer.Kmer, int) {
	checkWidth(t, w)
	var (
		minMer  kmer.Kmer
		minHash = ^uint64(0)
		offset  int
	)
	for pos := 0; pos <= t.K()-w; pos++ {
		mer := Sub(t, km, pos, w)
		if hash := h.Hash64(mer.Word()); hash < minHash {
			minMer, minHash, offset = mer, hash, pos
		}
	}
	return minMer, offset
}

// MinimizeCanonical is Minimize with both strands of every sub-k-mer
// considered.  It returns the winning w-mer, its offset in km, and whether
// the forward orientation won.
func MinimizeCanonical(t *kmer.Type, km kmer.Kmer, w int, h Hasher) (kmer.Kmer, int, bool) {
	checkWidth(t, w)
	wt := kmer.MustNew(w, t.Alphabet())
	var (
		minMer  kmer.Kmer
		minHash = ^uint64(0)
		offset  int
		forward = true
	)
	for pos := 0; pos <= t.K()-w; pos++ {
		fw := Sub(t, km, pos, w)
		rc := wt.ReverseComplement(fw)
		fwHash, rcHash := h.Hash64(fw.Word()), h.Hash64(rc.Word())
		mer, hash, isFw := fw, fwHash, true
		if rcHash < fwHash {
			mer, hash, isFw = rc, rcHash, false
		}
		if hash < minHash {
			minMer, minHash, offset, forward = mer, hash, pos, isFw
		}
	}
	return minMer, offset, forward
}

func checkWidth(t *kmer.Type, w int) {
	if w < 1 || w > t.K() {
		log.Panicf("minimizer: width %d out of range [1,%d]", w, t.K())
	}
}
