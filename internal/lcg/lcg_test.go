package lcg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vrypan/derandom/internal/numseq"
)

func TestBitExactness(t *testing.T) {
	gens, err := NewCatalog()
	require.NoError(t, err)

	for _, g := range gens {
		t.Run(g.Name(), func(t *testing.T) {
			outs := g.NextN(5)

			s := g.seed0
			for i, want := range outs {
				s = g.advanceFrom(s)
				got := g.output(s)
				require.Equalf(t, want, got, "output %d", i)
			}
		})
	}
}

func TestPeekAdvanceConsistency(t *testing.T) {
	gens, err := NewCatalog()
	require.NoError(t, err)

	for _, g := range gens {
		stateBefore := g.GetState()
		peeked := g.PeekNext(4)
		require.Equal(t, stateBefore, g.GetState(), g.Name())

		advanced := g.NextN(4)
		require.Equal(t, peeked, advanced, g.Name())
	}
}

func TestNumericalRecipesGroundTruth(t *testing.T) {
	// S4: LCG Numerical Recipes with default seed 0.
	g, err := New("LCG: Numerical Recipes", 1664525, 1013904223, 1<<32, 0, 0, 31)
	require.NoError(t, err)

	want := []uint64{1013904223, 1196435762, 3519870697, 2868466484, 1649599747}
	got := g.NextN(5)
	require.Equal(t, want, got)
}

func TestFindSequenceRecoversAfterFirstCorrection(t *testing.T) {
	truth, err := New("LCG: Numerical Recipes", 1664525, 1013904223, 1<<32, 0, 0, 31)
	require.NoError(t, err)
	groundTruth := truth.NextN(5)

	fresh, err := New("LCG: Numerical Recipes", 1664525, 1013904223, 1<<32, 999, 0, 31)
	require.NoError(t, err)

	incoming := numseq.FromWords(numseq.UNSIGNED_INTEGER, groundTruth[:3])
	pred := fresh.FindSequence(incoming, nil)
	require.Equal(t, numseq.UNSIGNED_INTEGER, pred.Type())

	next := fresh.NextN(2)
	require.Equal(t, groundTruth[3:], next)
}

func TestTruncatedOutputDeactivates(t *testing.T) {
	g, err := New("LCG: ANSI C", 1103515245, 12345, 1<<31, 12345, 16, 30)
	require.NoError(t, err)

	bogus := numseq.FromWords(numseq.FLOAT, []uint64{0x3f000000, 0x3f000000})
	g.FindSequence(bogus, nil)
	require.False(t, g.Active())

	g.Reset()
	require.True(t, g.Active())
}
