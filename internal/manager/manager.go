// Package manager implements RandomManager: the catalog registry that
// drives detection, scoring, and prediction across every generator in
// play.
package manager

import (
	"fmt"
	"sync"

	"github.com/vrypan/derandom/internal/generator"
	"github.com/vrypan/derandom/internal/numseq"
)

// Manager owns a catalog of generators plus the currently-selected
// index and the retrospective prediction from the last detection pass.
type Manager struct {
	mu sync.Mutex

	generators         []generator.Generator
	currentIndex       int
	incomingPrediction *numseq.NumberSequence
}

// New builds a manager over the given catalog, in the order given.
func New(generators []generator.Generator) (*Manager, error) {
	if len(generators) == 0 {
		return nil, fmt.Errorf("%w: manager requires at least one generator", generator.ErrInvalidArgument)
	}
	return &Manager{generators: generators}, nil
}

// GeneratorNames returns the catalog's display names, in registry order.
func (m *Manager) GeneratorNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.generators))
	for i, g := range m.generators {
		names[i] = g.Name()
	}
	return names
}

// CurrentIndex returns the currently-selected generator's index.
func (m *Manager) CurrentIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentIndex
}

// SetCurrentIndex selects a generator by index; an out-of-range index is
// a no-op.
func (m *Manager) SetCurrentIndex(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.generators) {
		return
	}
	m.currentIndex = i
}

// CurrentWordSize returns the currently-selected generator's word size,
// for callers that need to translate observed numbers into raw words
// (e.g. for the history buffer).
func (m *Manager) CurrentWordSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generators[m.currentIndex].WordSize()
}

// CurrentName returns the currently-selected generator's display name.
func (m *Manager) CurrentName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generators[m.currentIndex].Name()
}

// IncomingPrediction returns the retrospective prediction stored by the
// most recent detectGenerator/findCurrentSequence call.
func (m *Manager) IncomingPrediction() *numseq.NumberSequence {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.incomingPrediction
}

// Predict returns the current generator's forward prediction: n values
// of the given type, without advancing state.
func (m *Manager) Predict(n int, t numseq.NumberType) *numseq.NumberSequence {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generators[m.currentIndex].PeekNextOutputs(n, t)
}

// FindCurrentSequence reconstructs the current generator's state from
// incoming and stores its retrospective prediction, without probing any
// other generator.
func (m *Manager) FindCurrentSequence(incoming *numseq.NumberSequence, history []uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incomingPrediction = m.generators[m.currentIndex].FindSequence(incoming, history)
}

// DetectGenerator runs the full detection pass: if the current
// generator already predicts incoming, it commits and stays selected.
// Otherwise every active generator is probed via FindSequence and
// scored by how many of its retrospective predictions match incoming;
// the best score wins, ties preferring the currently-selected
// generator. Only the winner's state mutation survives — every other
// generator is rolled back to its pre-probe snapshot. The current
// generator's own retrospective prediction (win or lose) is stored for
// UI coloring regardless of which generator ends up selected.
func (m *Manager) DetectGenerator(incoming *numseq.NumberSequence, history []uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.generators[m.currentIndex]
	if cur.Active() {
		peek := cur.PeekNextOutputs(incoming.Len(), incoming.Type())
		if peek.Equal(incoming) {
			cur.NextOutputs(incoming.Len(), incoming.Type())
			m.incomingPrediction = peek
			return m.currentIndex
		}
	}

	snapshots := make([][]uint64, len(m.generators))
	for i, g := range m.generators {
		snapshots[i] = g.GetState()
	}

	bestIdx := -1
	bestScore := -1
	var currentPrediction *numseq.NumberSequence

	for i, g := range m.generators {
		if !g.Active() {
			continue
		}
		pred := g.FindSequence(incoming, history)
		if i == m.currentIndex {
			currentPrediction = pred
		}
		score := pred.CountMatchesWith(incoming)
		if score > bestScore || (score == bestScore && i == m.currentIndex) {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		// No active generator: nothing to commit, roll every probe back.
		for i, g := range m.generators {
			restoreState(g, snapshots[i])
		}
		return m.currentIndex
	}

	for i, g := range m.generators {
		if i != bestIdx {
			restoreState(g, snapshots[i])
		}
	}

	if currentPrediction != nil {
		m.incomingPrediction = currentPrediction
	}

	m.currentIndex = bestIdx
	return bestIdx
}

// restoreState reverts g to a snapshot taken from g itself via
// GetState; the length always matches GetStateLength(), so this cannot
// fail under normal operation.
func restoreState(g generator.Generator, snapshot []uint64) {
	_ = g.SetState(snapshot)
}

// Reset restores every generator to its initial seed and selects
// generator 0.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.generators {
		g.Reset()
	}
	m.currentIndex = 0
	m.incomingPrediction = nil
}

// DeactivateAll marks every generator inactive.
func (m *Manager) DeactivateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.generators {
		g.SetActive(false)
	}
}

// ResetCurrentGenerator resets only the currently-selected generator.
func (m *Manager) ResetCurrentGenerator() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generators[m.currentIndex].Reset()
}

// packedVector builds [currentIndex, gen0.state..., gen1.state..., ...]
// for persistence.
func (m *Manager) packedVector() []uint64 {
	out := []uint64{uint64(m.currentIndex)}
	for _, g := range m.generators {
		out = append(out, g.GetState()...)
	}
	return out
}

// restoreFromPacked applies a packed vector built by packedVector,
// validating that every generator's segment has the expected length.
func (m *Manager) restoreFromPacked(vec []uint64) error {
	if len(vec) == 0 {
		return fmt.Errorf("%w: empty packed state vector", generator.ErrInvalidArgument)
	}
	currentIndex := int(vec[0])
	if currentIndex < 0 || currentIndex >= len(m.generators) {
		return fmt.Errorf("%w: currentIndex %d out of range", generator.ErrInvalidArgument, currentIndex)
	}

	pos := 1
	for _, g := range m.generators {
		n := g.GetStateLength()
		if pos+n > len(vec) {
			return fmt.Errorf("%w: packed state vector truncated", generator.ErrInvalidArgument)
		}
		if err := g.SetState(vec[pos : pos+n]); err != nil {
			return err
		}
		pos += n
	}
	if pos != len(vec) {
		return fmt.Errorf("%w: packed state vector has trailing data", generator.ErrInvalidArgument)
	}

	m.currentIndex = currentIndex
	return nil
}

// SaveState returns the packed state vector [currentIndex, gen0.state…,
// gen1.state…, …] for internal/persist to encode to disk.
func (m *Manager) SaveState() ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.packedVector(), nil
}

// LoadState installs a packed state vector produced by a prior
// SaveState call (possibly decoded from disk by internal/persist by a
// different process), validating its shape against this manager's
// catalog before committing anything.
func (m *Manager) LoadState(vec []uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restoreFromPacked(vec)
}
