// Package numseq implements the NumberSequence abstraction: the mapping
// between externally reported numeric representations (raw/int/uint/long/
// ulong/float/double) and the underlying PRNG word stream.
package numseq

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberType tags how a NumberSequence's internal words map onto reported
// values.
type NumberType int

const (
	RAW NumberType = iota
	INTEGER
	UNSIGNED_INTEGER
	LONG
	UNSIGNED_LONG
	FLOAT
	DOUBLE
)

func (t NumberType) String() string {
	switch t {
	case RAW:
		return "RAW"
	case INTEGER:
		return "INTEGER"
	case UNSIGNED_INTEGER:
		return "UNSIGNED_INTEGER"
	case LONG:
		return "LONG"
	case UNSIGNED_LONG:
		return "UNSIGNED_LONG"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	default:
		return fmt.Sprintf("NumberType(%d)", int(t))
	}
}

// ErrNumberFormat reports a string that cannot be parsed under the
// sequence's current (possibly already-widened) type.
var ErrNumberFormat = errors.New("numseq: invalid number format")

// intTier ranks the integer family types from narrowest to widest so the
// parser can widen but never downgrade within one parse pass.
func intTier(t NumberType) int {
	switch t {
	case INTEGER:
		return 0
	case UNSIGNED_INTEGER:
		return 1
	case LONG:
		return 2
	case UNSIGNED_LONG:
		return 3
	default:
		return -1
	}
}

func isFloatFamily(t NumberType) bool {
	return t == FLOAT || t == DOUBLE
}

func isIntFamily(t NumberType) bool {
	return intTier(t) >= 0
}

// NumberSequence is an immutable-size (type, words[]) pair: words[] holds
// 64-bit bit patterns, interpreted according to the sequence's NumberType.
type NumberSequence struct {
	typ   NumberType
	words []uint64
}

// FromWords builds a sequence directly from already-packed internal words.
func FromWords(typ NumberType, words []uint64) *NumberSequence {
	cp := make([]uint64, len(words))
	copy(cp, words)
	return &NumberSequence{typ: typ, words: cp}
}

// Empty returns a zero-length sequence of the given type.
func Empty(typ NumberType) *NumberSequence {
	return &NumberSequence{typ: typ}
}

// Type returns the sequence's current NumberType.
func (s *NumberSequence) Type() NumberType { return s.typ }

// Len returns the number of reported values held by the sequence.
func (s *NumberSequence) Len() int { return len(s.words) }

// Words returns an owned copy of the internal 64-bit words.
func (s *NumberSequence) Words() []uint64 {
	cp := make([]uint64, len(s.words))
	copy(cp, s.words)
	return cp
}

// DecimalStrings renders each reported value as the decimal string a
// collaborator or wire client should display: signed for INTEGER/LONG,
// the IEEE-754 value (not the bit pattern) for FLOAT/DOUBLE, and plain
// decimal otherwise.
func (s *NumberSequence) DecimalStrings() []string {
	out := make([]string, len(s.words))
	for i, w := range s.words {
		switch s.typ {
		case INTEGER, LONG:
			out[i] = strconv.FormatInt(int64(w), 10)
		case FLOAT:
			out[i] = strconv.FormatFloat(float64(math.Float32frombits(uint32(w))), 'g', -1, 32)
		case DOUBLE:
			out[i] = strconv.FormatFloat(math.Float64frombits(w), 'g', -1, 64)
		default:
			out[i] = strconv.FormatUint(w, 10)
		}
	}
	return out
}

// Parse builds a NumberSequence from textual lines, auto-widening the
// sequence's NumberType as narrower hypotheses are falsified by later
// elements. hint seeds the starting type (use RAW/INTEGER when the caller
// has no better guess).
func Parse(lines []string, hint NumberType) (*NumberSequence, error) {
	seq := &NumberSequence{typ: hint}
	words := make([]uint64, 0, len(lines))

	familyDecided := false
	floatFamily := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		isFloatLiteral := strings.Contains(line, ".")

		if familyDecided && isFloatLiteral != floatFamily {
			return nil, fmt.Errorf("%w: %q mixes number families mid-stream", ErrNumberFormat, line)
		}

		if isFloatLiteral {
			floatFamily = true
			familyDecided = true

			word, t, err := parseFloatLiteral(line)
			if err != nil {
				return nil, err
			}
			if seq.typ == RAW || intTier(seq.typ) >= 0 {
				seq.typ = t
			} else if t == DOUBLE {
				seq.typ = DOUBLE
			}
			words = append(words, word)
			continue
		}

		familyDecided = true
		floatFamily = false

		word, t, err := parseIntLiteral(line, seq.typ)
		if err != nil {
			return nil, err
		}
		if intTier(t) > intTier(seq.typ) || !isIntFamily(seq.typ) {
			seq.typ = t
		}
		words = append(words, word)
	}

	seq.words = words
	return seq, nil
}

func parseFloatLiteral(s string) (word uint64, t NumberType, err error) {
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrNumberFormat, s, err)
	}
	f := float32(d)
	if float64(f) == d {
		return uint64(math.Float32bits(f)), FLOAT, nil
	}
	return math.Float64bits(d), DOUBLE, nil
}

func parseIntLiteral(s string, current NumberType) (word uint64, t NumberType, err error) {
	if strings.HasPrefix(s, "-") {
		v, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			return 0, 0, fmt.Errorf("%w: %q: %v", ErrNumberFormat, s, perr)
		}
		if current == UNSIGNED_INTEGER || current == UNSIGNED_LONG {
			return 0, 0, fmt.Errorf("%w: negative value %q after widening to %s", ErrNumberFormat, s, current)
		}
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return uint64(uint32(int32(v))) | signExtendTo64(uint32(v)), INTEGER, nil
		}
		return uint64(v), LONG, nil
	}

	v, perr := strconv.ParseUint(s, 10, 64)
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrNumberFormat, s, perr)
	}
	switch {
	case v <= math.MaxInt32:
		return v, INTEGER, nil
	case v <= math.MaxUint32:
		return v, UNSIGNED_INTEGER, nil
	case v <= math.MaxInt64:
		return v, LONG, nil
	default:
		return v, UNSIGNED_LONG, nil
	}
}

func signExtendTo64(low32 uint32) uint64 {
	if low32&0x80000000 != 0 {
		return 0xFFFFFFFF00000000
	}
	return 0
}

// HasTruncatedOutput reports whether the sequence's type only ever
// observes a prefix of each underlying generator word (FLOAT/DOUBLE).
func (s *NumberSequence) HasTruncatedOutput() bool {
	return isFloatFamily(s.typ)
}

// Equal reports elementwise equality of type and internal words.
func (s *NumberSequence) Equal(other *NumberSequence) bool {
	if other == nil || s.typ != other.typ || len(s.words) != len(other.words) {
		return false
	}
	for i := range s.words {
		if s.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// CountMatchesWith counts positions where both sequences exist and their
// internal words agree.
func (s *NumberSequence) CountMatchesWith(other *NumberSequence) int {
	if other == nil {
		return 0
	}
	n := len(s.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	count := 0
	for i := 0; i < n; i++ {
		if s.words[i] == other.words[i] {
			count++
		}
	}
	return count
}

// Concat returns a new sequence holding s's words followed by other's.
// Both sequences must share the same NumberType.
func (s *NumberSequence) Concat(other *NumberSequence) (*NumberSequence, error) {
	if other == nil {
		return FromWords(s.typ, s.words), nil
	}
	if s.typ != other.typ {
		return nil, fmt.Errorf("numseq: cannot concatenate %s with %s", s.typ, other.typ)
	}
	words := make([]uint64, 0, len(s.words)+len(other.words))
	words = append(words, s.words...)
	words = append(words, other.words...)
	return FromWords(s.typ, words), nil
}

// WordsPerNumber returns how many raw generator words one reported number
// consumes for the given type at the given generator word size.
func WordsPerNumber(t NumberType, wordSize int) int {
	switch t {
	case DOUBLE:
		if wordSize <= 32 {
			return 2
		}
		return 1
	case LONG, UNSIGNED_LONG:
		if wordSize <= 32 {
			return 2
		}
		return 1
	default:
		return 1
	}
}
