package manager

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vrypan/derandom/internal/generator"
	"github.com/vrypan/derandom/internal/lcg"
	"github.com/vrypan/derandom/internal/numseq"
)

func javaCatalog(t *testing.T) []*lcg.Generator {
	t.Helper()
	gens, err := lcg.NewCatalog()
	require.NoError(t, err)
	return gens
}

func asGenerators(gens []*lcg.Generator) []generator.Generator {
	out := make([]generator.Generator, len(gens))
	for i, g := range gens {
		out[i] = g
	}
	return out
}

func TestDetectionPicksJavaScenario(t *testing.T) {
	gens := javaCatalog(t)
	m, err := New(asGenerators(gens))
	require.NoError(t, err)

	inputs := []int64{1412437139, 1552322984, 168467398, 1111755060, -928874005}

	javaIdx := -1
	for i, g := range gens {
		if g.Name() == "LCG: Java" {
			javaIdx = i
		}
	}
	require.GreaterOrEqual(t, javaIdx, 0)

	var words []uint64
	for _, v := range inputs {
		words = append(words, uint64(int64(int32(v)))&0xFFFFFFFFFFFFFFFF)
	}

	chosen := -1
	for i := 1; i <= len(words); i++ {
		incoming := numseq.FromWords(numseq.INTEGER, words[:i])
		chosen = m.DetectGenerator(incoming, nil)
		if chosen == javaIdx {
			break
		}
	}
	require.Equal(t, javaIdx, chosen)

	pred := m.Predict(1, numseq.INTEGER)
	require.Equal(t, 1, pred.Len())
	require.Equal(t, []string{"-958682846"}, pred.DecimalStrings())
}

func TestDetectionStableWhenCurrentAlreadyPredicts(t *testing.T) {
	gens := javaCatalog(t)
	m, err := New(asGenerators(gens))
	require.NoError(t, err)

	otherStates := make([][]uint64, len(gens))
	for i, g := range gens {
		otherStates[i] = g.GetState()
	}

	incoming := gens[m.CurrentIndex()].PeekNextOutputs(3, numseq.UNSIGNED_INTEGER)
	idx := m.DetectGenerator(incoming, nil)
	require.Equal(t, m.CurrentIndex(), idx)

	for i, g := range gens {
		if i == idx {
			continue
		}
		require.Equal(t, otherStates[i], g.GetState(), "non-selected generator state should be untouched")
	}
}

func TestResetReenablesDeactivatedGenerators(t *testing.T) {
	gens := javaCatalog(t)
	m, err := New(asGenerators(gens))
	require.NoError(t, err)

	m.DeactivateAll()
	for _, g := range gens {
		require.False(t, g.Active())
	}

	m.Reset()
	for _, g := range gens {
		require.True(t, g.Active())
	}
	require.Equal(t, 0, m.CurrentIndex())
}

func TestSaveStateLoadStateRoundTrips(t *testing.T) {
	gens := javaCatalog(t)
	m, err := New(asGenerators(gens))
	require.NoError(t, err)
	_ = m.generators[0].NextN(3)
	m.SetCurrentIndex(2)

	vec, err := m.SaveState()
	require.NoError(t, err)

	fresh, err := New(asGenerators(javaCatalog(t)))
	require.NoError(t, err)
	require.NoError(t, fresh.LoadState(vec))

	require.Equal(t, m.CurrentIndex(), fresh.CurrentIndex())
	for i := range m.generators {
		require.Equal(t, m.generators[i].GetState(), fresh.generators[i].GetState())
	}
}
