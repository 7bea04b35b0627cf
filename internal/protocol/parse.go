// Package protocol implements the line-based wire parser shared by
// file input and the socket server: each line holds one integer or
// decimal number, parsed into a NumberSequence via the same
// auto-widening rules used everywhere else in the system.
package protocol

import "github.com/vrypan/derandom/internal/numseq"

// ParseSequence parses lines (one number per line; blank lines are
// skipped) into a NumberSequence, starting from hint as the narrowest
// admissible type. It returns numseq.ErrNumberFormat (wrapped) on the
// first line that doesn't parse under the current narrowed type.
func ParseSequence(lines []string, hint numseq.NumberType) (*numseq.NumberSequence, error) {
	return numseq.Parse(lines, hint)
}
