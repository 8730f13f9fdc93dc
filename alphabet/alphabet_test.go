package alphabet_test

import (
	"testing"

	"github.com/COMBINE-lab/kmers/alphabet"
)

func TestDNACodes(t *testing.T) {
	want := map[byte]uint8{'A': 0, 'C': 1, 'G': 2, 'T': 3}
	for sym, code := range want {
		if got := alphabet.DNA.Code(sym); got != code {
			t.Errorf("Code(%q) = %d, want %d", sym, got, code)
		}
		lower := sym + 'a' - 'A'
		if got := alphabet.DNA.Code(lower); got != code {
			t.Errorf("Code(%q) = %d, want %d", lower, got, code)
		}
		if got := alphabet.DNA.Symbol(code); got != sym {
			t.Errorf("Symbol(%d) = %q, want %q", code, got, sym)
		}
	}
}

func TestDNAInvalid(t *testing.T) {
	for _, sym := range []byte{'N', 'n', 'X', '-', ' ', 0, 255} {
		if alphabet.DNA.Code(sym) != alphabet.InvalidCode {
			t.Errorf("Code(%q) should be invalid", sym)
		}
	}
}

func TestDNAComplement(t *testing.T) {
	pairs := [][2]byte{{'A', 'T'}, {'C', 'G'}}
	for _, p := range pairs {
		a, b := alphabet.DNA.Code(p[0]), alphabet.DNA.Code(p[1])
		if alphabet.DNA.Complement(a) != b || alphabet.DNA.Complement(b) != a {
			t.Errorf("complement of %q/%q wrong", p[0], p[1])
		}
	}
}

func TestIUPACBijection(t *testing.T) {
	seen := map[byte]bool{}
	for code := 0; code < alphabet.IUPAC.Size(); code++ {
		sym := alphabet.IUPAC.Symbol(uint8(code))
		if seen[sym] {
			t.Fatalf("symbol %q decoded from two codes", sym)
		}
		seen[sym] = true
		if got := alphabet.IUPAC.Code(sym); got != uint8(code) {
			t.Errorf("Code(Symbol(%d)) = %d", code, got)
		}
	}
}

func TestIUPACComplement(t *testing.T) {
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'R': 'Y', 'K': 'M', 'B': 'V', 'D': 'H',
		'S': 'S', 'W': 'W', 'N': 'N', '=': '=',
	}
	for from, to := range pairs {
		c := alphabet.IUPAC.Complement(alphabet.IUPAC.Code(from))
		if got := alphabet.IUPAC.Symbol(c); got != to {
			t.Errorf("complement(%q) = %q, want %q", from, got, to)
		}
	}
}

func TestComplementInvolution(t *testing.T) {
	for _, ab := range []*alphabet.Alphabet{alphabet.DNA, alphabet.IUPAC} {
		for code := 0; code < ab.Size(); code++ {
			if got := ab.Complement(ab.Complement(uint8(code))); got != uint8(code) {
				t.Errorf("%s: complement not an involution at code %d", ab.Name(), code)
			}
		}
	}
}

// Complementing is pointwise and reversal is order-only, so applying the
// byte-wide table twice must give back the original byte.
func TestRevCompTableInvolution(t *testing.T) {
	for _, ab := range []*alphabet.Alphabet{alphabet.DNA, alphabet.IUPAC} {
		table := ab.RevCompTable()
		for v := 0; v < 256; v++ {
			if got := table[table[v]]; got != byte(v) {
				t.Errorf("%s: table not an involution at %#x", ab.Name(), v)
			}
		}
	}
}

func TestRevCompTableDNA(t *testing.T) {
	table := alphabet.DNA.RevCompTable()
	// "ACGT" packed most-significant-first is 0b00011011; its
	// complemented reversal is "ACGT" again (a palindrome).
	if got := table[0b00011011]; got != 0b00011011 {
		t.Errorf("table[ACGT] = %#b", got)
	}
	// "AAAA" -> complement "TTTT", reversal keeps it: 0xFF.
	if got := table[0x00]; got != 0xff {
		t.Errorf("table[AAAA] = %#x, want 0xff", got)
	}
	// "AACG" (0b00000110) -> complement "TTGC", reversed "CGTT" = 0b01101111.
	if got := table[0b00000110]; got != 0b01101111 {
		t.Errorf("table[AACG] = %#b", got)
	}
}
