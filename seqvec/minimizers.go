package seqvec

import (
	"github.com/COMBINE-lab/kmers/kmer"
	"github.com/COMBINE-lab/kmers/minimizer"
	"github.com/grailbio/base/log"
)

// minEntry is one w-mer candidate in the monotone window.  Entries are kept
// in position order with nondecreasing hash, so the front is always the
// current window's minimizer and ties resolve to the leftmost occurrence.
type minEntry struct {
	pos  int
	mer  kmer.Kmer
	hash uint64
	fw   bool
}

// MinimizerIter yields the minimizer of every k-mer window of a vector, left
// to right.  Each w-mer is extracted and hashed once; a monotone queue holds
// the candidates that can still win a later window, so the amortized cost
// per position is constant rather than one minimizer scan per k-mer.
type MinimizerIter struct {
	v         *Vector
	t         *kmer.Type
	wt        *kmer.Type
	h         minimizer.Hasher
	canonical bool
	pos       int // current k-mer start, -1 before the first Scan
	next      int // next w-mer position to ingest
	win       []minEntry
}

// Minimizers returns an iterator over the w-wide minimizer of every k-mer
// of the vector, under hasher h.
func (v *Vector) Minimizers(t *kmer.Type, w int, h minimizer.Hasher) *MinimizerIter {
	return v.newMinimizers(t, w, h, false)
}

// CanonicalMinimizers is Minimizers with both strands of every w-mer
// considered, matching minimizer.MinimizeCanonical window by window.
func (v *Vector) CanonicalMinimizers(t *kmer.Type, w int, h minimizer.Hasher) *MinimizerIter {
	return v.newMinimizers(t, w, h, true)
}

func (v *Vector) newMinimizers(t *kmer.Type, w int, h minimizer.Hasher, canonical bool) *MinimizerIter {
	if w < 1 || w > t.K() {
		log.Panicf("seqvec: minimizer width %d out of range [1,%d]", w, t.K())
	}
	return &MinimizerIter{
		v:         v,
		t:         t,
		wt:        kmer.MustNew(w, t.Alphabet()),
		h:         h,
		canonical: canonical,
		pos:       -1,
	}
}

func (it *MinimizerIter) entry(pos int) minEntry {
	mer := it.v.GetKmer(it.wt, pos)
	e := minEntry{pos: pos, mer: mer, hash: it.h.Hash64(mer.Word()), fw: true}
	if it.canonical {
		rc := it.wt.ReverseComplement(mer)
		if rcHash := it.h.Hash64(rc.Word()); rcHash < e.hash {
			e.mer, e.hash, e.fw = rc, rcHash, false
		}
	}
	return e
}

// Scan advances to the next k-mer window, returning false when none remain.
func (it *MinimizerIter) Scan() bool {
	it.pos++
	if it.pos+it.t.K() > it.v.n {
		return false
	}
	for len(it.win) > 0 && it.win[0].pos < it.pos {
		it.win = it.win[1:]
	}
	for hi := it.pos + it.t.K() - it.wt.K(); it.next <= hi; it.next++ {
		e := it.entry(it.next)
		// Strictly worse candidates can never win again; equal hashes stay
		// so the leftmost occurrence keeps the front.
		for len(it.win) > 0 && it.win[len(it.win)-1].hash > e.hash {
			it.win = it.win[:len(it.win)-1]
		}
		it.win = append(it.win, e)
	}
	return true
}

// Get returns the current window's minimizer and its start position in the
// vector.
func (it *MinimizerIter) Get() (kmer.Kmer, int) {
	return it.win[0].mer, it.win[0].pos
}

// Forward reports whether the current minimizer won in forward orientation.
// It is always true for a non-canonical iterator.
func (it *MinimizerIter) Forward() bool { return it.win[0].fw }
