package mt

import "github.com/vrypan/derandom/internal/numseq"

// FindSequence implements generator.Generator. Non-truncated output (the
// generator's native integer width) is recovered exactly by running the
// tempering shears backward, word by word. Truncated output (FLOAT and
// DOUBLE, where only the top bits of each word survive) instead feeds a
// StateFinder that accumulates GF(2) equations across calls until the
// full n·w-bit state is determined.
func (g *Generator) FindSequence(incoming *numseq.NumberSequence, history []uint64) *numseq.NumberSequence {
	if incoming.Len() == 0 {
		return numseq.Empty(incoming.Type())
	}

	if incoming.HasTruncatedOutput() {
		return g.findSequenceTruncated(incoming)
	}

	attempt := g.PeekNextOutputs(incoming.Len(), incoming.Type())
	if attempt.Equal(incoming) {
		g.NextOutputs(incoming.Len(), incoming.Type())
		return attempt
	}

	return g.findSequenceFull(incoming)
}

// findSequenceFull overwrites the live state word by word with
// reverseTemper(observed), advancing through twists exactly like Next
// would. Only the injected state words are replaced: once n consecutive
// words have been injected the whole state is the one that produced
// incoming, while with fewer the remaining words keep their old values.
// The retrospective prediction returned is incoming itself.
func (g *Generator) findSequenceFull(incoming *numseq.NumberSequence) *numseq.NumberSequence {
	words := incoming.GetSequenceWords(g.w)

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, w := range words {
		if g.index == g.n {
			g.twistAllIn(g.state)
			g.index = 0
		}
		g.state[g.index] = g.reverseTemper(w)
		g.index++
	}
	g.finder = nil

	return incoming
}

// findSequenceTruncated delegates to the GF(2) solver. The solver
// persists across calls (g.finder) since a single call's worth of
// samples is rarely enough to pin down the whole state.
func (g *Generator) findSequenceTruncated(incoming *numseq.NumberSequence) *numseq.NumberSequence {
	attempt := g.PeekNextOutputs(incoming.Len(), incoming.Type())
	if attempt.Equal(incoming) {
		g.NextOutputs(incoming.Len(), incoming.Type())
		return attempt
	}

	wordSize := g.w
	values := incoming.GetSequenceWords(wordSize)
	observedBits := incoming.GetObservedWordBits(wordSize)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finder == nil {
		g.finder = NewStateFinder(g)
	}

	for i, v := range values {
		solved, err := g.finder.AddObservedWord(v, observedBits[i])
		if err != nil {
			g.finder = nil
			g.active = false
			return attempt
		}
		if solved {
			g.installSolvedState(g.finder.SolvedState(), g.finder.SequenceCounter())
			g.finder = nil
			break
		}
	}

	return attempt
}

// installSolvedState replaces the live state with the solver's recovered
// initial state, fast-forwarded by whole twists so the generator resumes
// exactly where the solver left off.
func (g *Generator) installSolvedState(initial []uint64, consumed int) {
	scratch := make([]uint64, g.n)
	copy(scratch, initial)

	gens := consumed / g.n
	rem := consumed % g.n
	for i := 0; i < gens; i++ {
		g.twistAllIn(scratch)
	}

	g.state = scratch
	g.index = rem
}

// invertShearRight inverts y = x ^ ((x>>shift)&mask) for x, a fixed-point
// iteration that converges within ceil(w/shift) rounds since each round
// shifts one more block of known high bits into place.
func invertShearRight(y uint64, shift uint, mask uint64, w int) uint64 {
	if shift == 0 {
		return y
	}
	x := y
	rounds := w/int(shift) + 2
	for i := 0; i < rounds; i++ {
		x = y ^ ((x >> shift) & mask)
	}
	return x
}

// invertShearLeft inverts y = x ^ ((x<<shift)&mask), the left-shifting
// counterpart of invertShearRight.
func invertShearLeft(y uint64, shift uint, mask uint64, w int) uint64 {
	if shift == 0 {
		return y
	}
	x := y
	rounds := w/int(shift) + 2
	for i := 0; i < rounds; i++ {
		x = y ^ ((x << shift) & mask)
	}
	return x
}

// reverseTemper inverts temperVal, undoing the four shears in reverse
// order.
func (g *Generator) reverseTemper(y uint64) uint64 {
	t := g.temper
	y3 := invertShearRight(y, t.L, g.wordMask, g.w)
	y2 := invertShearLeft(y3, t.T, t.C, g.w)
	y1 := invertShearLeft(y2, t.S, t.B, g.w)
	x := invertShearRight(y1, t.U, t.D, g.w)
	return x & g.wordMask
}
