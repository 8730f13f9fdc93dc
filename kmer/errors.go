package kmer

import "fmt"

// TooLargeError reports a (k, alphabet, width) combination whose packed
// form cannot fit the backing word.  It is a configuration error: no value
// of the offending Type is ever constructed.
type TooLargeError struct {
	K     int
	Bits  uint
	Width uint
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("kmer: k=%d at %d bits/symbol needs %d bits, backing width is %d",
		e.K, e.Bits, uint(e.K)*e.Bits, e.Width)
}

// LengthMismatchError reports direct construction from a source whose
// length is not K.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("kmer: got %d symbols, want %d", e.Actual, e.Expected)
}
