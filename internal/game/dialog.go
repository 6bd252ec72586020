package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/neural-mesh/internal/config"
)

func (g *Game) openConfigDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Mesh Config"),
		zenity.FileFilters{{
			Name:     "Mesh config",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("config dialog: %w", err)
	}

	log.Printf("game: loading config %s", filename)
	cfg, err := config.Load(filename)
	if err != nil {
		return err
	}
	return g.applyConfig(cfg)
}

// ShowError reports a fatal error in a dialog. It is best effort: without a
// dialog backend the message only reaches stderr.
func ShowError(err error) {
	if dlgErr := zenity.Error(err.Error(), zenity.Title("neural-mesh"), zenity.ErrorIcon); dlgErr != nil {
		log.Printf("error dialog unavailable: %v", dlgErr)
	}
}
