// Package generator declares the contract every catalog entry (LCG, MT)
// obeys, plus the error kinds shared across recovery algorithms.
package generator

import (
	"errors"

	"github.com/vrypan/derandom/internal/numseq"
)

// Error kinds shared by every generator implementation (spec §7).
var (
	ErrInvalidArgument = errors.New("generator: invalid argument")
	ErrOutOfMemory     = errors.New("generator: out of memory")
)

// Generator is the abstract contract every catalog entry (LCG, MT)
// obeys. Implementations guard next/findSequence/reset/setState with an
// exclusive-access discipline, per spec §5.
type Generator interface {
	// Name returns the catalog entry's display name, e.g. "LCG: Java".
	Name() string

	// WordSize returns the number of meaningful bits in one generator word.
	WordSize() int

	// Active reports whether the generator is still a candidate for
	// detection and prediction.
	Active() bool

	// SetActive flips the active flag (used by the manager and by
	// recovery algorithms that detect incompatibility).
	SetActive(active bool)

	// ParameterNames and ParameterValues expose the generator's static
	// parameters and current internal state for introspection, in
	// matching order.
	ParameterNames() []string
	ParameterValues() []int64

	// PeekNext returns n raw words without advancing internal state.
	PeekNext(n int) []uint64

	// Next advances by one raw word, returning it.
	Next() uint64

	// NextN advances by n raw words, returning them.
	NextN(n int) []uint64

	// NextOutputs advances the generator by n numbers of the given type,
	// building a typed NumberSequence.
	NextOutputs(n int, t numseq.NumberType) *numseq.NumberSequence

	// PeekNextOutputs is the non-mutating counterpart of NextOutputs.
	PeekNextOutputs(n int, t numseq.NumberType) *numseq.NumberSequence

	// FindSequence reconstructs state from observed numbers (using
	// history for context) and returns the retrospective prediction
	// aligned to incoming. It may set Active(false) on incompatible
	// input (e.g. truncated LCG output).
	FindSequence(incoming *numseq.NumberSequence, history []uint64) *numseq.NumberSequence

	// Reset restores the initial seed, clears any recovery-solver state
	// and sets Active(true).
	Reset()

	// GetState and SetState persist/restore the generator's mutable
	// state as a flat uint64 vector whose length is GetStateLength().
	GetState() []uint64
	SetState(state []uint64) error
	GetStateLength() int
}
