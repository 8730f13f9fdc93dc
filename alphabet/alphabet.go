// Package alphabet defines the nucleotide codecs used by packed k-mers: the
// bijective mapping between ASCII symbols and fixed-width codes, the
// per-code complement, and the byte-wide lookup tables that the
// reverse-complement engine composes into full-word shuffles.
//
// Alphabets are immutable package-level values, built once at init and never
// mutated afterwards.
package alphabet

import (
	"fmt"

	"github.com/grailbio/base/log"
)

// InvalidCode is the sentinel returned by Code for symbols outside the
// alphabet.
const InvalidCode = uint8(0xff)

// Alphabet is a codec mapping symbols to codes of a fixed width.  The
// symbol<->code mapping is a bijection over the supported symbols;
// encoding is case-insensitive.
type Alphabet struct {
	name string
	bits uint
	// code maps ASCII to codes, with InvalidCode for unsupported symbols.
	code [256]uint8
	// symbol maps each code in [0, 1<<bits) to its canonical ASCII form.
	symbol []byte
	// comp maps each code to its complement code.
	comp []uint8
	// revComp maps a byte holding 8/bits packed codes to the byte holding
	// the complemented codes in reversed order.  Applying it to every byte
	// of a word and then reversing the word's bytes reverse-complements
	// the whole word.
	revComp [256]byte
}

// Name returns the alphabet's name.
func (a *Alphabet) Name() string { return a.name }

// Bits returns the number of bits per symbol code.
func (a *Alphabet) Bits() uint { return a.bits }

// Size returns the number of distinct codes, 1<<Bits().
func (a *Alphabet) Size() int { return len(a.symbol) }

// Code returns the code for sym, or InvalidCode if sym is not in the
// alphabet.
func (a *Alphabet) Code(sym byte) uint8 { return a.code[sym] }

// Symbol returns the canonical ASCII symbol for the given code.  It is
// total over [0, Size()).
func (a *Alphabet) Symbol(code uint8) byte {
	if int(code) >= len(a.symbol) {
		log.Panicf("alphabet %s: code %d out of range [0,%d)", a.name, code, len(a.symbol))
	}
	return a.symbol[code]
}

// Complement returns the complement of the given code.
func (a *Alphabet) Complement(code uint8) uint8 {
	if int(code) >= len(a.comp) {
		log.Panicf("alphabet %s: code %d out of range [0,%d)", a.name, code, len(a.comp))
	}
	return a.comp[code]
}

// CodeTable returns the full ASCII->code table for hot loops.
func (a *Alphabet) CodeTable() *[256]uint8 { return &a.code }

// ComplementTable returns the code->complement table for hot loops.
func (a *Alphabet) ComplementTable() []uint8 { return a.comp }

// RevCompTable returns the byte-wide complement-and-reverse table.
func (a *Alphabet) RevCompTable() *[256]byte { return &a.revComp }

// InvalidSymbolError reports a symbol outside the alphabet and its position
// in the input.
type InvalidSymbolError struct {
	Symbol byte
	Pos    int
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at position %d", e.Symbol, e.Pos)
}

func newAlphabet(name string, bits uint, symbols []byte, comp []uint8) *Alphabet {
	if 8%bits != 0 {
		log.Panicf("alphabet %s: bits-per-symbol %d must divide 8", name, bits)
	}
	if len(symbols) != 1<<bits || len(comp) != len(symbols) {
		log.Panicf("alphabet %s: want %d symbols and complements", name, 1<<bits)
	}
	a := &Alphabet{name: name, bits: bits, symbol: symbols, comp: comp}
	for i := range a.code {
		a.code[i] = InvalidCode
	}
	for code, sym := range symbols {
		a.code[sym] = uint8(code)
		if sym >= 'A' && sym <= 'Z' {
			a.code[sym+'a'-'A'] = uint8(code)
		}
	}
	for code, c := range comp {
		if int(comp[c]) != code {
			log.Panicf("alphabet %s: complement of code %d is not an involution", name, code)
		}
	}
	perByte := 8 / bits
	codeMask := byte(1<<bits) - 1
	for v := 0; v < 256; v++ {
		var out byte
		for i := uint(0); i < perByte; i++ {
			c := (byte(v) >> ((perByte - 1 - i) * bits)) & codeMask
			out |= comp[c] << (i * bits)
		}
		a.revComp[v] = out
	}
	return a
}

// iupacComp reverses the four mask bits, swapping A(bit 0) with T(bit 3)
// and C(bit 1) with G(bit 2).  This is exactly the IUPAC complement:
// R<->Y, K<->M, B<->V, D<->H, and S, W, N map to themselves.
func iupacComp(m uint8) uint8 {
	return (m&1)<<3 | (m&2)<<1 | (m&4)>>1 | (m&8)>>3
}

var (
	// DNA is the plain 2-bit nucleotide alphabet: A=00, C=01, G=10, T=11.
	// The complement is code^3 (A<->T, C<->G).
	DNA *Alphabet

	// IUPAC is the 4-bit nibble alphabet used by SAM/BAM sequence records.
	// Each code is a bitmask of compatible bases (bit 0=A, 1=C, 2=G, 3=T),
	// covering the IUPAC ambiguity symbols; code 0 renders as '='.
	IUPAC *Alphabet
)

func init() {
	DNA = newAlphabet("dna", 2, []byte("ACGT"), []uint8{3, 2, 1, 0})

	nibble := []byte("=ACMGRSVTWYHKDBN")
	comp := make([]uint8, 16)
	for c := range comp {
		comp[c] = iupacComp(uint8(c))
	}
	IUPAC = newAlphabet("iupac", 4, nibble, comp)
}
