package mt

import (
	"fmt"

	"github.com/vrypan/derandom/internal/generator"
)

// StateFinder recovers the n·w-bit initial state of a Mersenne Twister
// from truncated output (the FLOAT/DOUBLE case, where only the top bits
// of each tempered word are observed) by treating the whole twist+temper
// pipeline as a GF(2)-linear map and solving it with online Gaussian
// elimination, one observed bit at a time.
//
// Every output bit, at every position in the stream, is itself a linear
// (XOR) combination of the n·w initial-state bits. stateBitVector derives
// that combination recursively from the twist recurrence; outputBitVector
// composes it with the tempering matrix. insert folds each new equation
// into the running row-echelon set; once n·w independent equations have
// accumulated, trySolve back-substitutes the initial state.
//
// A real run of this solver can allocate on the order of the generator's
// state size squared in equation storage. AddObservedWord recovers from
// an allocation panic and reports it as generator.ErrOutOfMemory so the
// caller can discard the solver and deactivate the generator instead of
// crashing.
type StateFinder struct {
	w, n, m, r int
	a          uint64

	totalBits       int
	temperingVector []uint64
	memo            map[int]bitset

	equations []bitset
	rhs       []bool
	count     int

	sequenceCounter int
	solved          bool
	solvedState     []uint64
}

// NewStateFinder builds a solver for g's current parameters. It does not
// read or mutate g's state.
func NewStateFinder(g *Generator) *StateFinder {
	totalBits := g.n * g.w
	sf := &StateFinder{
		w: g.w, n: g.n, m: g.m, r: g.r, a: g.a,
		totalBits: totalBits,
		memo:      make(map[int]bitset),
		equations: make([]bitset, totalBits),
		rhs:       make([]bool, totalBits),
	}
	sf.buildTemperingVector(g.temper, g.wordMask)

	// The low r bits of the first state word never resolve uniquely;
	// pre-seed them as identities fixed to zero so elimination treats
	// them as already known instead of leaving the system underdetermined.
	for k := 0; k < g.r; k++ {
		eq := newBitset(totalBits)
		eq.set(k)
		sf.equations[k] = eq
		sf.rhs[k] = false
		sf.count++
	}
	return sf
}

func temperPure(y uint64, t Tempering, wordMask uint64) uint64 {
	y ^= (y >> t.U) & t.D
	y ^= (y << t.S) & t.B
	y ^= (y << t.T) & t.C
	y ^= y >> t.L
	return y & wordMask
}

// buildTemperingVector stores, for each output bit i, the mask of raw
// state-word bits j whose XOR produces it: column j of the tempering
// matrix is temper(2^j), transposed into row i.
func (sf *StateFinder) buildTemperingVector(t Tempering, wordMask uint64) {
	sf.temperingVector = make([]uint64, sf.w)
	for j := 0; j < sf.w; j++ {
		out := temperPure(uint64(1)<<uint(j), t, wordMask)
		for i := 0; i < sf.w; i++ {
			if (out>>uint(i))&1 != 0 {
				sf.temperingVector[i] |= uint64(1) << uint(j)
			}
		}
	}
}

// stateBitVector returns, as a vector over the n·w initial-state bits,
// the GF(2) expansion of bit j of the raw (untempered) word generated at
// sequence position s. s<n is the base case: the initial state itself.
// s>=n expands through the twist recurrence one generation back; results
// are memoized since the same (s,j) pair recurs across many output bits.
func (sf *StateFinder) stateBitVector(s, j int) bitset {
	key := s<<6 | j
	if v, ok := sf.memo[key]; ok {
		return v
	}

	var result bitset
	if s < sf.n {
		result = newBitset(sf.totalBits)
		result.set(s*sf.w + j)
	} else {
		term1 := sf.stateBitVector(s-sf.n+sf.m, j)
		result = term1.clone()

		if j+1 < sf.w {
			if j+1 < sf.r {
				result.xorInto(sf.stateBitVector(s-sf.n+1, j+1))
			} else {
				result.xorInto(sf.stateBitVector(s-sf.n, j+1))
			}
		}

		if (sf.a>>uint(j))&1 != 0 {
			if sf.r >= 1 {
				result.xorInto(sf.stateBitVector(s-sf.n+1, 0))
			} else {
				result.xorInto(sf.stateBitVector(s-sf.n, 0))
			}
		}
	}

	sf.memo[key] = result
	return result
}

func (sf *StateFinder) outputBitVector(s, i int) bitset {
	acc := newBitset(sf.totalBits)
	tv := sf.temperingVector[i]
	for j := 0; j < sf.w; j++ {
		if (tv>>uint(j))&1 != 0 {
			acc.xorInto(sf.stateBitVector(s, j))
		}
	}
	return acc
}

// insert folds one new GF(2) equation (coeffs·x = rhsBit) into the
// row-echelon set, reducing it against already-pivoted rows along the
// way. A fully-reduced all-zero row is either redundant (rhs false) or
// contradictory (rhs true, ignored: truthful observations never produce
// this, so it is treated the same as redundant).
func (sf *StateFinder) insert(coeffs bitset, rhsBit bool) {
	cur := coeffs.clone()
	curRHS := rhsBit
	for {
		p := cur.lowestSetBit()
		if p < 0 {
			return
		}
		if sf.equations[p] == nil {
			sf.equations[p] = cur
			sf.rhs[p] = curRHS
			sf.count++
			return
		}
		cur.xorInto(sf.equations[p])
		curRHS = curRHS != sf.rhs[p]
	}
}

// AddObservedWord feeds the observed bits of one tempered output word
// (value, masked by observedBits) into the solver and reports whether
// the full state is now determined.
func (sf *StateFinder) AddObservedWord(value, observedBits uint64) (solved bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", generator.ErrOutOfMemory, p)
		}
	}()

	s := sf.sequenceCounter
	sf.sequenceCounter++

	if sf.solved {
		return true, nil
	}

	for i := 0; i < sf.w; i++ {
		if (observedBits>>uint(i))&1 == 0 {
			continue
		}
		bitVal := (value>>uint(i))&1 != 0
		sf.insert(sf.outputBitVector(s, i), bitVal)
	}

	if sf.count >= sf.totalBits {
		sf.solved = sf.trySolve()
	}
	return sf.solved, nil
}

// Solved reports whether the system has been fully determined.
func (sf *StateFinder) Solved() bool { return sf.solved }

// SequenceCounter returns the number of words fed to the solver so far.
func (sf *StateFinder) SequenceCounter() int { return sf.sequenceCounter }

// SolvedState returns the recovered n raw state words. Valid only once
// Solved reports true.
func (sf *StateFinder) SolvedState() []uint64 { return sf.solvedState }

func (sf *StateFinder) trySolve() bool {
	if sf.count < sf.totalBits {
		return false
	}

	solution := make([]bool, sf.totalBits)
	for p := sf.totalBits - 1; p >= 0; p-- {
		eq := sf.equations[p]
		if eq == nil {
			return false
		}
		val := sf.rhs[p]
		for q := sf.totalBits - 1; q > p; q-- {
			if eq.test(q) {
				val = val != solution[q]
			}
		}
		solution[p] = val
	}

	state := make([]uint64, sf.n)
	for s := 0; s < sf.n; s++ {
		var word uint64
		for j := 0; j < sf.w; j++ {
			if solution[s*sf.w+j] {
				word |= uint64(1) << uint(j)
			}
		}
		state[s] = word
	}
	sf.solvedState = state
	return true
}
