package kmer

import (
	"github.com/COMBINE-lab/kmers/alphabet"
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
)

// ScanShards splits seq into nShard contiguous ranges of k-mer start
// positions and scans them in parallel, one goroutine per shard.  Adjacent
// shards overlap by k-1 symbols so every k-mer of seq is produced exactly
// once, with positions relative to seq.  fn is invoked concurrently from
// different shards but sequentially, in left-to-right order, within one
// shard; it must be safe for concurrent use across shards.  A non-nil
// error from fn stops that shard and is returned.
//
// Invalid-symbol events are delivered to the shard owning the symbol's
// position, so each occurrence is reported exactly once.
func ScanShards(t *Type, seq []byte, nShard int, fn func(shard int, ev Event) error) error {
	if nShard < 1 {
		return errors.Errorf("kmer: nShard=%d must be positive", nShard)
	}
	// starts is the number of k-mer start positions; shards partition
	// [0, starts).  A sequence shorter than k still gets one shard so
	// invalid symbols are reported.
	starts := len(seq) - t.k + 1
	if starts < 1 {
		starts = 1
	}
	if nShard > starts {
		nShard = starts
	}
	span := (starts + nShard - 1) / nShard
	return traverse.Each(nShard, func(shard int) error {
		lo := shard * span
		hi := lo + span
		if hi > starts {
			hi = starts
		}
		end := hi + t.k - 1
		if end > len(seq) {
			end = len(seq)
		}
		s := NewScanner(t)
		s.Reset(seq[lo:end])
		for s.Scan() {
			ev := s.Get()
			ev.Pos += lo
			if ise, ok := ev.Err.(*alphabet.InvalidSymbolError); ok {
				// Positions >= hi belong to the next shard's range and are
				// reported there.
				if ev.Pos >= hi && shard != nShard-1 {
					continue
				}
				ev.Err = &alphabet.InvalidSymbolError{Symbol: ise.Symbol, Pos: ev.Pos}
			}
			if err := fn(shard, ev); err != nil {
				return err
			}
		}
		return nil
	})
}
