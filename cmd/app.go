package cmd

import (
	"fmt"

	"github.com/vrypan/derandom/internal/config"
	"github.com/vrypan/derandom/internal/generator"
	"github.com/vrypan/derandom/internal/history"
	"github.com/vrypan/derandom/internal/lcg"
	"github.com/vrypan/derandom/internal/manager"
	"github.com/vrypan/derandom/internal/mt"
	"github.com/vrypan/derandom/internal/numseq"
	"github.com/vrypan/derandom/internal/protocol"
)

// App wires together the catalog, the manager, and the history buffer
// shared by every input mode (direct, file, socket).
type App struct {
	Manager *manager.Manager
	History *history.HistoryBuffer
	Config  config.Config
}

// NewApp builds the full catalog (16 LCG variants + 2 MT variants) and
// wraps it in a Manager/HistoryBuffer pair configured per cfg.
func NewApp(cfg config.Config) (*App, error) {
	lcgGens, err := lcg.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("building LCG catalog: %w", err)
	}
	mtGens, err := mt.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("building MT catalog: %w", err)
	}

	all := make([]generator.Generator, 0, len(lcgGens)+len(mtGens))
	for _, g := range lcgGens {
		all = append(all, g)
	}
	for _, g := range mtGens {
		all = append(all, g)
	}

	mgr, err := manager.New(all)
	if err != nil {
		return nil, err
	}
	mgr.SetCurrentIndex(cfg.GeneratorIndex)

	hb, err := history.New(cfg.HistoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("building history buffer: %w", err)
	}

	return &App{Manager: mgr, History: hb, Config: cfg}, nil
}

// Observation is the result of feeding one line of input through the
// shared pipeline: parse, detect-or-extend, predict, record history.
type Observation struct {
	GeneratorName string
	Retrospective *numseq.NumberSequence
	Forward       *numseq.NumberSequence
}

// Observe parses one line of text and runs it through detection (or
// direct extension, when auto-detect is off), returning the
// retrospective prediction for coloring and the forward prediction for
// display. A blank line yields a zero Observation and no error.
func (a *App) Observe(line string) (Observation, error) {
	incoming, err := protocol.ParseSequence([]string{line}, numseq.INTEGER)
	if err != nil {
		return Observation{}, err
	}
	if incoming.Len() == 0 {
		return Observation{}, nil
	}

	hist := a.History.ToArray()
	if a.Config.AutoDetect {
		a.Manager.DetectGenerator(incoming, hist)
	} else {
		a.Manager.FindCurrentSequence(incoming, hist)
	}

	retro := a.Manager.IncomingPrediction()
	forward := a.Manager.Predict(a.Config.PredictionLength, incoming.Type())

	a.History.Put(incoming.GetSequenceWords(a.Manager.CurrentWordSize()))

	return Observation{
		GeneratorName: a.Manager.CurrentName(),
		Retrospective: retro,
		Forward:       forward,
	}, nil
}
