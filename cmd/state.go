package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/vrypan/derandom/internal/persist"
)

// loadState loads a packed manager state vector from path and installs
// it into app.Manager. A missing file is not an error: a fresh manager
// keeps its just-built initial state.
func loadState(app *App, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	vec, err := persist.Load(path)
	if err != nil {
		return err
	}
	return app.Manager.LoadState(vec)
}

// saveState captures app.Manager's current state and writes it to path.
func saveState(app *App, path string) error {
	vec, err := app.Manager.SaveState()
	if err != nil {
		return fmt.Errorf("capturing manager state: %w", err)
	}
	return persist.Save(path, vec)
}
