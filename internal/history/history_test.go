package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutAndToArrayRespectsCapacity(t *testing.T) {
	h, err := New(3)
	require.NoError(t, err)

	h.Put([]uint64{1, 2, 3, 4, 5})
	require.Equal(t, 3, h.Length())
	require.Equal(t, []uint64{3, 4, 5}, h.ToArray())
}

func TestPutOneAtATimeWraps(t *testing.T) {
	h, err := New(3)
	require.NoError(t, err)

	for _, w := range []uint64{1, 2, 3, 4, 5} {
		h.Put([]uint64{w})
	}
	require.Equal(t, []uint64{3, 4, 5}, h.ToArray())

	last, err := h.Last()
	require.NoError(t, err)
	require.Equal(t, uint64(5), last)
}

func TestSetCapacityGrowPreservesOrder(t *testing.T) {
	h, err := New(2)
	require.NoError(t, err)
	h.Put([]uint64{1, 2})

	require.NoError(t, h.SetCapacity(5))
	h.Put([]uint64{3})
	require.Equal(t, []uint64{1, 2, 3}, h.ToArray())
}

func TestSetCapacityShrinkKeepsNewest(t *testing.T) {
	h, err := New(5)
	require.NoError(t, err)
	h.Put([]uint64{1, 2, 3, 4, 5})

	require.NoError(t, h.SetCapacity(2))
	require.Equal(t, []uint64{4, 5}, h.ToArray())
}

func TestNegativeCapacityIsInvalidArgument(t *testing.T) {
	_, err := New(-1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	h, err := New(1)
	require.NoError(t, err)
	require.ErrorIs(t, h.SetCapacity(-1), ErrInvalidArgument)
}

func TestLastOnEmptyIsUnderflow(t *testing.T) {
	h, err := New(3)
	require.NoError(t, err)
	_, err = h.Last()
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestClear(t *testing.T) {
	h, err := New(3)
	require.NoError(t, err)
	h.Put([]uint64{1, 2, 3})
	h.Clear()
	require.Equal(t, 0, h.Length())
	_, err = h.Last()
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestPutLongerThanCapacityKeepsTail(t *testing.T) {
	h, err := New(2)
	require.NoError(t, err)
	h.Put([]uint64{1, 2, 3, 4})
	require.Equal(t, []uint64{3, 4}, h.ToArray())
}
