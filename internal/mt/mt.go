// Package mt implements a parameterized Mersenne-Twister-style twisted
// generalized feedback shift register, generalized from the fixed
// 32-bit/624-word MT19937 form so that the same code also instantiates
// MT19937-64 (see catalog.go).
package mt

import (
	"fmt"
	"sync"

	"github.com/vrypan/derandom/internal/generator"
	"github.com/vrypan/derandom/internal/numseq"
)

// Tempering holds the seven tempering parameters applied to a raw state
// word on emission: three shift/mask shears (U,D), (S,B), (T,C) and a
// final unmasked right shift L.
type Tempering struct {
	U uint
	D uint64
	S uint
	B uint64
	T uint
	C uint64
	L uint
}

// Generator is a parameterized Mersenne Twister.
type Generator struct {
	mu sync.Mutex

	name string

	w          int // word size, 1..64
	n          int // state size
	m          int // shift
	r          int // maskBits
	a          uint64
	temper     Tempering
	f          uint64
	seed0      uint64

	wordMask  uint64
	lowerMask uint64
	upperMask uint64

	state  []uint64
	index  int
	active bool

	finder *StateFinder
}

var _ generator.Generator = (*Generator)(nil)

// New builds a catalog MT instance.
func New(name string, w, n, m, r int, a uint64, temper Tempering, f, seed uint64) (*Generator, error) {
	if w < 1 || w > 64 {
		return nil, fmt.Errorf("%w: word size %d out of range", generator.ErrInvalidArgument, w)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: state size must be positive", generator.ErrInvalidArgument)
	}
	if r < 0 || r > w {
		return nil, fmt.Errorf("%w: maskBits %d out of range", generator.ErrInvalidArgument, r)
	}

	g := &Generator{
		name: name, w: w, n: n, m: m, r: r, a: a, temper: temper, f: f, seed0: seed,
	}
	g.wordMask = mask64(w)
	g.lowerMask = mask64(r)
	g.upperMask = g.wordMask &^ g.lowerMask
	g.active = true
	g.seedState(seed)
	return g, nil
}

func mask64(bits int) uint64 {
	if bits <= 0 {
		return 0
	}
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// seedState runs the spec §4.5 initialization: state[0]=seed; for
// i=1..n-1, state[i] = (f·(state[i-1] ⊕ (state[i-1] ≫ (w−2))) + i) & wordMask.
func (g *Generator) seedState(seed uint64) {
	g.state = make([]uint64, g.n)
	g.state[0] = seed & g.wordMask
	for i := 1; i < g.n; i++ {
		prev := g.state[i-1]
		g.state[i] = (g.f*(prev^(prev>>uint(g.w-2))) + uint64(i)) & g.wordMask
	}
	g.index = g.n
	g.finder = nil
}

// Name implements generator.Generator.
func (g *Generator) Name() string { return g.name }

// WordSize implements generator.Generator.
func (g *Generator) WordSize() int { return g.w }

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
	return []string{"w", "n", "m", "r", "A", "f", "seed0", "index"}
}

// ParameterValues implements generator.Generator.
func (g *Generator) ParameterValues() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return []int64{int64(g.w), int64(g.n), int64(g.m), int64(g.r), int64(g.a), int64(g.f), int64(g.seed0), int64(g.index)}
}

// temperVal applies the tempering shear to a raw state word.
func (g *Generator) temperVal(y uint64) uint64 {
	t := g.temper
	y ^= (y >> t.U) & t.D
	y ^= (y << t.S) & t.B
	y ^= (y << t.T) & t.C
	y ^= y >> t.L
	return y & g.wordMask
}

// twistOne advances state[i] in place using the element at (i+1)%n and
// (i+m)%n, per spec §4.5.
func (g *Generator) twistOne(i int) {
	x := (g.state[i] & g.upperMask) | (g.state[(i+1)%g.n] & g.lowerMask)
	xA := x >> 1
	if x&1 != 0 {
		xA ^= g.a
	}
	g.state[i] = g.state[(i+g.m)%g.n] ^ xA
}

func (g *Generator) twistAll() {
	for i := 0; i < g.n; i++ {
		g.twistOne(i)
	}
}

// Reset implements generator.Generator.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seedState(g.seed0)
	g.active = true
}

// GetStateLength implements generator.Generator: n state words + index.
func (g *Generator) GetStateLength() int { return g.n + 1 }

// GetState implements generator.Generator.
func (g *Generator) GetState() []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]uint64, g.n+1)
	copy(out, g.state)
	out[g.n] = uint64(g.index)
	return out
}

// SetState implements generator.Generator.
func (g *Generator) SetState(state []uint64) error {
	if len(state) != g.n+1 {
		return fmt.Errorf("%w: MT state must have length %d, got %d", generator.ErrInvalidArgument, g.n+1, len(state))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	copy(g.state, state[:g.n])
	g.index = int(state[g.n])
	g.finder = nil
	return nil
}

// NextOutputs implements generator.Generator.
func (g *Generator) NextOutputs(n int, t numseq.NumberType) *numseq.NumberSequence {
	count := n * numseq.WordsPerNumber(t, g.w)
	raw := g.NextN(count)
	return numseq.FromWords(numseq.RAW, raw).FormatNumbers(t, g.w)
}

// PeekNextOutputs implements generator.Generator.
func (g *Generator) PeekNextOutputs(n int, t numseq.NumberType) *numseq.NumberSequence {
	count := n * numseq.WordsPerNumber(t, g.w)
	raw := g.PeekNext(count)
	return numseq.FromWords(numseq.RAW, raw).FormatNumbers(t, g.w)
}
