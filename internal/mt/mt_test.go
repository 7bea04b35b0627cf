package mt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vrypan/derandom/internal/numseq"
)

func TestReverseTemperRoundTrips(t *testing.T) {
	gens, err := NewCatalog()
	require.NoError(t, err)

	for _, g := range gens {
		t.Run(g.Name(), func(t *testing.T) {
			for _, v := range []uint64{0, 1, g.wordMask, 0xDEADBEEF & g.wordMask, g.wordMask >> 1} {
				tempered := g.temperVal(v)
				require.Equal(t, v, g.reverseTemper(tempered), "value %#x", v)
			}
		})
	}
}

func TestPeekAdvanceConsistency(t *testing.T) {
	gens, err := NewCatalog()
	require.NoError(t, err)

	for _, g := range gens {
		t.Run(g.Name(), func(t *testing.T) {
			before := g.GetState()
			peeked := g.PeekNext(g.n + 5)
			require.Equal(t, before, g.GetState())

			advanced := g.NextN(g.n + 5)
			require.Equal(t, peeked, advanced)
		})
	}
}

func TestFindSequenceFullOutputRecoversState(t *testing.T) {
	truth, err := NewMT19937()
	require.NoError(t, err)
	groundTruth := truth.NextN(truth.n + 4)

	fresh, err := NewMT19937()
	require.NoError(t, err)
	// Scramble the seed so fresh starts from an unrelated state.
	fresh.seedState(1)

	incoming := numseq.FromWords(numseq.UNSIGNED_INTEGER, groundTruth[:fresh.n])
	fresh.FindSequence(incoming, nil)

	next := fresh.NextN(4)
	require.Equal(t, groundTruth[fresh.n:], next)
}

func TestFindSequenceAlreadySynchronizedCommitsPeekedWords(t *testing.T) {
	g, err := NewMT19937()
	require.NoError(t, err)

	incoming := g.PeekNextOutputs(3, numseq.UNSIGNED_INTEGER)
	pred := g.FindSequence(incoming, nil)
	require.True(t, pred.Equal(incoming))

	// FindSequence should have consumed exactly the peeked words, so the
	// next call continues right after them.
	rest := g.PeekNextOutputs(2, numseq.UNSIGNED_INTEGER)
	g2, err := NewMT19937()
	require.NoError(t, err)
	all := g2.PeekNextOutputs(5, numseq.UNSIGNED_INTEGER)
	require.Equal(t, all.Words()[3:], rest.Words())
}

func TestGetStateLengthIncludesIndex(t *testing.T) {
	g, err := NewMT19937()
	require.NoError(t, err)
	require.Equal(t, g.n+1, g.GetStateLength())
	require.Len(t, g.GetState(), g.GetStateLength())
}

func TestSetStateDiscardsPendingSolver(t *testing.T) {
	g, err := NewMT19937()
	require.NoError(t, err)

	g.finder = NewStateFinder(g)
	require.NoError(t, g.SetState(g.GetState()))
	require.Nil(t, g.finder)
}
