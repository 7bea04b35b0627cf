package numseq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestParseWidensToUnsignedInteger(t *testing.T) {
	seq, err := Parse([]string{"3000000000"}, RAW)
	require.NoError(t, err)
	require.Equal(t, UNSIGNED_INTEGER, seq.Type())
	require.Equal(t, []uint64{3000000000}, seq.Words())
}

func TestParseUnsignedLongRejectsLaterNegative(t *testing.T) {
	_, err := Parse([]string{"3000000000", "18446744073709551615", "-1"}, RAW)
	require.ErrorIs(t, err, ErrNumberFormat)
}

// TestParseUnsignedIntegerRejectsLaterNegative is scenario S6: a value
// that can only widen the sequence to UNSIGNED_INTEGER (never
// UNSIGNED_LONG), followed by a negative literal, must still fail.
func TestParseUnsignedIntegerRejectsLaterNegative(t *testing.T) {
	seq, err := Parse([]string{"3000000000"}, RAW)
	require.NoError(t, err)
	require.Equal(t, UNSIGNED_INTEGER, seq.Type())
	require.Equal(t, []uint64{3000000000}, seq.Words())

	_, err = Parse([]string{"3000000000", "-1"}, RAW)
	require.ErrorIs(t, err, ErrNumberFormat)
}

func TestParseNeverDowngradesTier(t *testing.T) {
	seq, err := Parse([]string{"18446744073709551615", "1"}, RAW)
	require.NoError(t, err)
	require.Equal(t, UNSIGNED_LONG, seq.Type())
}

func TestParseFloatVsDouble(t *testing.T) {
	seq, err := Parse([]string{"0.5"}, RAW)
	require.NoError(t, err)
	require.Equal(t, FLOAT, seq.Type())

	seq, err = Parse([]string{"0.1"}, RAW)
	require.NoError(t, err)
	// 0.1 does not round-trip through float32, so it must widen to DOUBLE.
	require.Equal(t, DOUBLE, seq.Type())
}

func TestParseRejectsMixedFamilies(t *testing.T) {
	_, err := Parse([]string{"1", "2.5"}, RAW)
	require.ErrorIs(t, err, ErrNumberFormat)
}

func TestIntegerRoundTripThroughRaw(t *testing.T) {
	negFive := int32(-5)
	original := FromWords(INTEGER, []uint64{uint64(int64(negFive)), 42})
	raw := original.GetSequenceWords(32)
	back := FromWords(RAW, raw).FormatNumbers(INTEGER, 32)

	if diff := cmp.Diff(original.Words(), back.Words(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsignedLongNarrowWordSplitsWords(t *testing.T) {
	seq := FromWords(UNSIGNED_LONG, []uint64{0x1122334455667788})
	raw := seq.GetSequenceWords(32)
	require.Equal(t, []uint64{0x11223344, 0x55667788}, raw)

	back := FromWords(RAW, raw).FormatNumbers(UNSIGNED_LONG, 32)
	require.True(t, seq.Equal(back))
}

func TestFloatObservedBitsIsTop24(t *testing.T) {
	seq := FromWords(RAW, []uint64{0xABCDEF12}).FormatNumbers(FLOAT, 32)
	mask := seq.GetObservedWordBits(32)
	require.Len(t, mask, 1)
	require.Equal(t, uint64(0xFFFFFF00), mask[0])
}

func TestCountMatchesWith(t *testing.T) {
	a := FromWords(INTEGER, []uint64{1, 2, 3})
	b := FromWords(INTEGER, []uint64{1, 9, 3})
	require.Equal(t, 2, a.CountMatchesWith(b))
}

func TestConcatRejectsTypeMismatch(t *testing.T) {
	a := FromWords(INTEGER, []uint64{1})
	b := FromWords(LONG, []uint64{2})
	_, err := a.Concat(b)
	require.Error(t, err)
}
