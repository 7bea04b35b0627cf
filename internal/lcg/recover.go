package lcg

import "github.com/vrypan/derandom/internal/numseq"

// FindSequence implements generator.Generator. See spec §4.4: truncated
// LCG output is deferred (the generator deactivates itself instead of
// running a lattice attack); non-truncated output is corrected
// word-by-word via findState, a bounded brute-force search over the
// hidden leading and low bits of the predecessor state.
func (g *Generator) FindSequence(incoming *numseq.NumberSequence, history []uint64) *numseq.NumberSequence {
	if incoming.Len() == 0 {
		return numseq.Empty(incoming.Type())
	}

	if incoming.HasTruncatedOutput() {
		return g.findSequenceTruncated(incoming)
	}

	return g.findSequenceFull(incoming, history)
}

func (g *Generator) findSequenceTruncated(incoming *numseq.NumberSequence) *numseq.NumberSequence {
	attempt := g.PeekNextOutputs(incoming.Len(), incoming.Type())
	if attempt.Equal(incoming) {
		g.NextOutputs(incoming.Len(), incoming.Type())
		return attempt
	}
	g.SetActive(false)
	return attempt
}

func (g *Generator) findSequenceFull(incoming *numseq.NumberSequence, history []uint64) *numseq.NumberSequence {
	wordSize := g.WordSize()
	observed := incoming.GetSequenceWords(wordSize)

	g.mu.Lock()
	defer g.mu.Unlock()

	predicted := make([]uint64, len(observed))
	s := g.s

	for i, obs := range observed {
		next := g.advanceFrom(s)
		predicted[i] = g.output(next)

		if predicted[i] == obs {
			s = next
			continue
		}

		var prev uint64
		havePrev := false
		if i > 0 {
			prev, havePrev = observed[i-1], true
		} else if len(history) > 0 {
			prev, havePrev = history[len(history)-1], true
		}

		if !havePrev {
			s = obs // history empty at the first mismatch: set s = first observed word directly.
			continue
		}

		if candidateNext, found := g.findState(prev, obs); found {
			s = candidateNext
		} else {
			s = obs // degraded heuristic: no candidate matched, fall back to the successor.
		}
	}

	g.s = s

	return numseq.FromWords(numseq.RAW, predicted).FormatNumbers(incoming.Type(), wordSize)
}

// findState brute-forces the hidden leading bits (above the observed
// window) and hidden low bits (below it) of the predecessor state whose
// observed window equals prevOutput, returning the successor state
// (after one recurrence step) whose output equals successor. Runs under
// g's exclusive lock (called only from findSequenceFull, which already
// holds it).
func (g *Generator) findState(prevOutput, successor uint64) (uint64, bool) {
	leadingBits := g.modulusBitStop - g.b
	if leadingBits < 0 {
		leadingBits = 0
	}
	lowBits := g.a

	base := prevOutput << uint(g.a)

	leadCount := uint64(1) << uint(leadingBits)
	lowCount := uint64(1) << uint(lowBits)

	for lead := uint64(0); lead < leadCount; lead++ {
		leadPart := lead << uint(g.b+1)
		for low := uint64(0); low < lowCount; low++ {
			candidate := leadPart | base | low
			next := g.advanceFrom(candidate)
			if g.output(next) == successor {
				return next, true
			}
		}
	}
	return 0, false
}
