package kmer

import (
	"math/rand"
	"testing"

	"github.com/COMBINE-lab/kmers/alphabet"
	"github.com/grailbio/testutil/expect"
)

// The 32-bit type must agree with the 64-bit one wherever both fit.
func TestKmer32MatchesKmer64(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	for _, k := range []int{1, 3, 8, 15, 16} {
		typ := MustNew(k, alphabet.DNA)
		t32 := MustNew32(k, alphabet.DNA)
		for i := 0; i < 50; i++ {
			seq := randDNA(rnd, k)
			km := mustFromString(t, typ, seq)
			km32, err := t32.FromString(seq)
			expect.NoError(t, err)
			expect.EQ(t, uint64(km32.Word()), km.Word(), "%s", seq)
			expect.EQ(t, t32.String(km32), seq)
			expect.EQ(t, uint64(t32.ReverseComplement(km32).Word()),
				typ.ReverseComplement(km).Word(), "%s", seq)

			canon32, fw32 := t32.Canonical(km32)
			canon, fw := typ.Canonical(km)
			expect.EQ(t, uint64(canon32.Word()), canon.Word())
			expect.EQ(t, fw32, fw)
		}
	}
}

func TestKmer32ShiftAppend(t *testing.T) {
	t8 := MustNew32(8, alphabet.DNA)
	rnd := rand.New(rand.NewSource(10))
	seq := randDNA(rnd, 30)
	km, err := t8.FromString(seq[:8])
	expect.NoError(t, err)
	for i := 8; i < len(seq); i++ {
		km = t8.ShiftAppend(km, alphabet.DNA.Code(seq[i]))
		want, err := t8.FromString(seq[i-7 : i+1])
		expect.NoError(t, err)
		expect.EQ(t, km, want, "pos %d", i)
	}
}

func TestKmer32ShiftPrepend(t *testing.T) {
	t8 := MustNew32(8, alphabet.DNA)
	rnd := rand.New(rand.NewSource(18))
	seq := randDNA(rnd, 30)
	km, err := t8.FromString(seq[len(seq)-8:])
	expect.NoError(t, err)
	for i := len(seq) - 9; i >= 0; i-- {
		km = t8.ShiftPrepend(km, alphabet.DNA.Code(seq[i]))
		want, err := t8.FromString(seq[i : i+8])
		expect.NoError(t, err)
		expect.EQ(t, km, want, "pos %d", i)
	}
}

func TestKmer32TooLarge(t *testing.T) {
	_, err := New32(16, alphabet.DNA)
	expect.NoError(t, err)
	_, err = New32(17, alphabet.DNA)
	tooLarge, ok := err.(*TooLargeError)
	expect.True(t, ok, "got %v", err)
	expect.EQ(t, tooLarge.Width, uint(32))

	_, err = New32(8, alphabet.IUPAC)
	expect.NoError(t, err)
	_, err = New32(9, alphabet.IUPAC)
	_, ok = err.(*TooLargeError)
	expect.True(t, ok, "got %v", err)
}
