package kmer

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/COMBINE-lab/kmers/alphabet"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func collectShards(t *testing.T, typ *Type, seq string, nShard int) []Event {
	var (
		mu  sync.Mutex
		evs []Event
	)
	err := ScanShards(typ, []byte(seq), nShard, func(shard int, ev Event) error {
		mu.Lock()
		evs = append(evs, ev)
		mu.Unlock()
		return nil
	})
	expect.NoError(t, err)
	// Events from one shard arrive in order; across shards they interleave.
	// Positions are unique (a position holds either a k-mer or an invalid
	// symbol, never both), so sorting restores the global order.
	sort.Slice(evs, func(i, j int) bool { return evs[i].Pos < evs[j].Pos })
	return evs
}

func TestScanShardsMatchesSequential(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for iter := 0; iter < 10; iter++ {
		k := 1 + rnd.Intn(9)
		typ := MustNew(k, alphabet.DNA)
		seq := randSeq(rnd, 500, 0.01)
		want := scanAll(typ, seq)
		for _, nShard := range []int{1, 2, 3, 7, 16} {
			got := collectShards(t, typ, seq, nShard)
			expect.EQ(t, got, want, "k=%d nShard=%d", k, nShard)
		}
	}
}

func TestScanShardsShortSequence(t *testing.T) {
	t5 := MustNew(5, alphabet.DNA)
	got := collectShards(t, t5, "ACG", 4)
	expect.EQ(t, len(got), 0)

	// Invalid symbols are still reported when no k-mer fits.
	got = collectShards(t, t5, "ACNG", 4)
	expect.EQ(t, len(got), 1)
	expect.EQ(t, got[0].Pos, 2)
	expect.NotNil(t, got[0].Err)
}

func TestScanShardsError(t *testing.T) {
	t3 := MustNew(3, alphabet.DNA)
	boom := errors.New("boom")
	err := ScanShards(t3, []byte("ACGTACGT"), 2, func(shard int, ev Event) error {
		return boom
	})
	expect.NotNil(t, err)

	err = ScanShards(t3, []byte("ACGT"), 0, func(int, Event) error { return nil })
	expect.NotNil(t, err)
}
