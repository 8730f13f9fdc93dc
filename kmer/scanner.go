package kmer

import (
	"github.com/COMBINE-lab/kmers/alphabet"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Event is one step of a scan: either a k-mer (with the position of its
// first symbol) or an invalid-symbol report.  Exactly one of Err == nil
// (k-mer) or Err != nil (invalid symbol at Pos) holds.
type Event struct {
	// Pos is the position of the k-mer's first symbol, or of the invalid
	// symbol when Err != nil.
	Pos int
	// Forward is the k-mer as read.
	Forward Kmer
	// ReverseComplement is the k-mer of the opposite strand, maintained
	// incrementally alongside Forward.
	ReverseComplement Kmer
	// Err is a *alphabet.InvalidSymbolError when the event reports an
	// unencodable symbol.
	Err error
}

// Canonical returns the numerically smaller of the forward and
// reverse-complement k-mers, and whether the forward one was chosen.
func (e Event) Canonical() (Kmer, bool) {
	if e.ReverseComplement < e.Forward {
		return e.ReverseComplement, false
	}
	return e.Forward, true
}

// Scanner extracts every k-mer of a sequence left to right in O(1)
// amortized work per symbol, carrying the forward and reverse-complement
// windows together.  An unencodable symbol breaks contiguity: the scanner
// emits an invalid-symbol event, discards the window, and re-primes from
// the next symbol.  Exhausting the sequence ends the scan; a scan may
// legitimately produce zero k-mers.
//
// Usage follows the usual Reset/Scan/Get pattern:
//
//	s := kmer.NewScanner(typ)
//	s.Reset(seq)
//	for s.Scan() {
//		ev := s.Get()
//		...
//	}
//
// A Scanner holds no resources; to restart, Reset with a fresh sequence.
type Scanner struct {
	typ *Type
	seq []byte
	si  int // next symbol to consume
	n   int // valid symbols in the current window, capped at k
	fw  uint64
	rc  uint64
	ev  Event
}

// NewScanner returns a Scanner producing k-mers of the given type.
func NewScanner(t *Type) *Scanner {
	s := &Scanner{typ: t}
	s.Reset(nil)
	return s
}

// Reset makes the scanner read seq from the beginning.  The scanner keeps
// a reference to seq but never writes to it.
func (s *Scanner) Reset(seq []byte) {
	s.seq = seq
	s.si = 0
	s.n = 0
	s.fw = 0
	s.rc = 0
	s.ev = Event{}
}

// ResetString is Reset on the bytes of seq, without copying.
func (s *Scanner) ResetString(seq string) {
	s.Reset(gunsafe.StringToBytes(seq))
}

// Scan advances to the next event.  It returns false when the sequence is
// exhausted.
func (s *Scanner) Scan() bool {
	t := s.typ
	for s.si < len(s.seq) {
		sym := s.seq[s.si]
		c := t.code[sym]
		if c == alphabet.InvalidCode {
			s.ev = Event{Pos: s.si, Err: &alphabet.InvalidSymbolError{Symbol: sym, Pos: s.si}}
			s.n = 0
			s.fw = 0
			s.rc = 0
			s.si++
			return true
		}
		s.fw = (s.fw<<t.bits | uint64(c)) & t.mask
		s.rc = s.rc>>t.bits | uint64(t.comp[c])<<t.shift
		s.si++
		if s.n < t.k {
			s.n++
		}
		if s.n == t.k {
			s.ev = Event{
				Pos:               s.si - t.k,
				Forward:           Kmer(s.fw),
				ReverseComplement: Kmer(s.rc),
			}
			return true
		}
	}
	return false
}

// Get returns the event produced by the last successful Scan.
func (s *Scanner) Get() Event { return s.ev }
