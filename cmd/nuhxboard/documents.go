package nuhxboard

import (
	"fmt"
	"os"
	"time"

	"github.com/justDeeevin/NuhxBoard/layout"
	"github.com/justDeeevin/NuhxBoard/settings"
	"github.com/justDeeevin/NuhxBoard/style"
)

var nowFunc = time.Now

func loadLayout(path string) (*layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open layout file: %w", err)
	}
	defer f.Close()

	lay, err := layout.Load(f)
	if err != nil {
		return nil, fmt.Errorf("could not load layout %s: %w", path, err)
	}

	return lay, nil
}

// loadStyle returns the built-in default style for an empty path.
func loadStyle(path string) (*style.Style, error) {
	if path == "" {
		return style.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open style file: %w", err)
	}
	defer f.Close()

	sty, err := style.Load(f)
	if err != nil {
		return nil, fmt.Errorf("could not load style %s: %w", path, err)
	}

	return sty, nil
}

// loadSettings returns defaults for an empty path and for a missing file.
func loadSettings(path string) (*settings.Settings, error) {
	if path == "" {
		return settings.Default(), nil
	}

	cfg, err := settings.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not load settings %s: %w", path, err)
	}

	return cfg, nil
}
