package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when the cell size is not prime.
	ErrInvalidParameter = errors.New("grid: invalid cell size")
	// ErrLengthMismatch is returned when a pattern does not fit the grid.
	ErrLengthMismatch = errors.New("grid: pattern length mismatch")
	// ErrInvalidSymbol is returned when a pattern contains anything other
	// than '0' or '1'.
	ErrInvalidSymbol = errors.New("grid: invalid pattern symbol")
	// ErrInvalidDimensions is returned for a negative width or height, or
	// one whose area does not fit in an int.
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")
	// ErrRaggedRows is returned when rows passed to FromRows differ in length.
	ErrRaggedRows = errors.New("grid: rows differ in length")
)

// InvalidParameterError records a cell size that is not prime.
type InvalidParameterError struct {
	Size int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("grid: %d is not a prime number", e.Size)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// LengthMismatchError records a pattern whose length disagrees with the
// number of cells.
type LengthMismatchError struct {
	Got  int
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("grid: pattern length %d does not match expected %d", e.Got, e.Want)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// SymbolError records the first unexpected byte in a pattern.
type SymbolError struct {
	Offset int
	Symbol byte
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("grid: invalid symbol %q at offset %d", e.Symbol, e.Offset)
}

func (e *SymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// RaggedRowError records the first row whose length differs from the first.
type RaggedRowError struct {
	Row  int
	Got  int
	Want int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("grid: row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
}

func (e *RaggedRowError) Is(target error) bool {
	return target == ErrRaggedRows
}
