// Package lcg implements LinearCongruentialGenerator: the recurrence
// s ← (M·s + C) mod N, with output taken from a configurable bit window
// [a..b] of the state.
package lcg

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/vrypan/derandom/internal/generator"
	"github.com/vrypan/derandom/internal/numseq"
)

// Generator is a parameterized linear congruential generator.
type Generator struct {
	mu sync.Mutex

	name string

	m, c, n uint64
	a, b    int // observed bit window [a..b], 0 ≤ a ≤ b ≤ 63
	seed0   uint64

	s      uint64
	active bool

	modulusBitStop int
}

var _ generator.Generator = (*Generator)(nil)

// New builds a catalog LCG. N must be non-zero and 0 ≤ a ≤ b ≤ 63.
func New(name string, m, c, n, seed uint64, a, b int) (*Generator, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: modulus N must be non-zero", generator.ErrInvalidArgument)
	}
	if a < 0 || b < a || b > 63 {
		return nil, fmt.Errorf("%w: bit window [%d..%d] out of range", generator.ErrInvalidArgument, a, b)
	}
	g := &Generator{
		name: name, m: m, c: c, n: n, seed0: seed, a: a, b: b,
		s: seed, active: true, modulusBitStop: modulusBitStop(n),
	}
	return g, nil
}

func modulusBitStop(n uint64) int {
	if n == 0 {
		return 0
	}
	return bits.Len64(n) - 1
}

// mulmod computes (a*b) mod n using a 128-bit intermediate product.
func mulmod(a, b, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	hi %= n
	_, rem := bits.Div64(hi, lo, n)
	return rem
}

func addmod(a, b, n uint64) uint64 {
	sum := a + b
	if sum < a || sum >= n {
		sum -= n
	}
	return sum
}

func (g *Generator) advanceFrom(s uint64) uint64 {
	return addmod(mulmod(g.m, s, g.n), g.c%g.n, g.n)
}

func (g *Generator) outputMask() uint64 {
	width := g.b - g.a + 1
	var mask uint64
	if width >= 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << uint(width)) - 1
	}
	return mask << uint(g.a)
}

func (g *Generator) output(s uint64) uint64 {
	return (s & g.outputMask()) >> uint(g.a)
}

// WordSize implements generator.Generator.
func (g *Generator) WordSize() int { return g.b - g.a + 1 }

// Name implements generator.Generator.
func (g *Generator) Name() string { return g.name }

// Active implements generator.Generator.
func (g *Generator) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// SetActive implements generator.Generator.
func (g *Generator) SetActive(active bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = active
}

// ParameterNames implements generator.Generator.
func (g *Generator) ParameterNames() []string {
	return []string{"M", "C", "N", "a", "b", "state", "seed0"}
}

// ParameterValues implements generator.Generator.
func (g *Generator) ParameterValues() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return []int64{int64(g.m), int64(g.c), int64(g.n), int64(g.a), int64(g.b), int64(g.s), int64(g.seed0)}
}

// PeekNext implements generator.Generator: iterate n times from a local
// copy of s, producing outputs without mutating s.
func (g *Generator) PeekNext(n int) []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]uint64, n)
	s := g.s
	for i := 0; i < n; i++ {
		s = g.advanceFrom(s)
		out[i] = g.output(s)
	}
	return out
}

// Next implements generator.Generator.
func (g *Generator) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.s = g.advanceFrom(g.s)
	return g.output(g.s)
}

// NextN implements generator.Generator.
func (g *Generator) NextN(n int) []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		g.s = g.advanceFrom(g.s)
		out[i] = g.output(g.s)
	}
	return out
}

// NextOutputs implements generator.Generator.
func (g *Generator) NextOutputs(n int, t numseq.NumberType) *numseq.NumberSequence {
	count := n * numseq.WordsPerNumber(t, g.WordSize())
	raw := g.NextN(count)
	return numseq.FromWords(numseq.RAW, raw).FormatNumbers(t, g.WordSize())
}

// PeekNextOutputs implements generator.Generator.
func (g *Generator) PeekNextOutputs(n int, t numseq.NumberType) *numseq.NumberSequence {
	count := n * numseq.WordsPerNumber(t, g.WordSize())
	raw := g.PeekNext(count)
	return numseq.FromWords(numseq.RAW, raw).FormatNumbers(t, g.WordSize())
}

// Reset implements generator.Generator.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.s = g.seed0
	g.active = true
}

// GetStateLength implements generator.Generator.
func (g *Generator) GetStateLength() int { return 1 }

// GetState implements generator.Generator.
func (g *Generator) GetState() []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return []uint64{g.s}
}

// SetState implements generator.Generator.
func (g *Generator) SetState(state []uint64) error {
	if len(state) != 1 {
		return fmt.Errorf("%w: LCG state must have length 1, got %d", generator.ErrInvalidArgument, len(state))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.s = state[0]
	return nil
}
