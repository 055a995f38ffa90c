// Package settings holds the runtime configuration surface consumed by the
// tracker, the mouse dynamics engine and the projector. The JSON shape
// matches the NuhxBoard.json settings file.
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Capitalization selects how logical caps state is derived for keys with
// ChangeOnCaps set.
type Capitalization string

const (
	// CapitalizationFollow tracks the hardware caps-lock toggle.
	CapitalizationFollow Capitalization = "Follow"
	// CapitalizationUpper forces logical caps on, ignoring the hardware
	// toggle.
	CapitalizationUpper Capitalization = "Upper"
	// CapitalizationLower forces logical caps off.
	CapitalizationLower Capitalization = "Lower"
)

func (c Capitalization) valid() bool {
	switch c {
	case CapitalizationFollow, CapitalizationUpper, CapitalizationLower:
		return true
	}

	return false
}

type Settings struct {
	Capitalization Capitalization `json:"capitalization"`
	// FollowForCapsSensitive keeps Shift effective for caps-sensitive keys
	// even when capitalization is forced Upper or Lower.
	FollowForCapsSensitive bool `json:"follow_for_caps_sensitive"`
	// FollowForCapsInsensitive keeps Shift effective for caps-insensitive
	// keys even when capitalization is forced Upper or Lower.
	FollowForCapsInsensitive bool `json:"follow_for_caps_insensitive"`
	// MouseFromCenter derives cursor velocity from the offset to the screen
	// center instead of frame-to-frame deltas.
	MouseFromCenter  bool    `json:"mouse_from_center"`
	MouseSensitivity float64 `json:"mouse_sensitivity"`
	// MinPressTimeMs is the minimum number of milliseconds an element stays
	// highlighted after its chord breaks.
	MinPressTimeMs   int64  `json:"min_press_time"`
	ScrollHoldTimeMs int64  `json:"scroll_hold_time"`
	WindowTitle      string `json:"window_title"`
	// UpdateTextPosition moves an element's text anchor along with the
	// element in the graphical editor.
	UpdateTextPosition bool `json:"update_text_position"`
}

func Default() *Settings {
	return &Settings{
		Capitalization:     CapitalizationFollow,
		MouseSensitivity:   50,
		MinPressTimeMs:     50,
		ScrollHoldTimeMs:   100,
		WindowTitle:        "NuhxBoard",
		UpdateTextPosition: true,
	}
}

func (s *Settings) MinPressTime() time.Duration {
	return time.Duration(s.MinPressTimeMs) * time.Millisecond
}

func (s *Settings) ScrollHoldTime() time.Duration {
	return time.Duration(s.ScrollHoldTimeMs) * time.Millisecond
}

func (s *Settings) Validate() error {
	if !s.Capitalization.valid() {
		return fmt.Errorf("unknown capitalization mode %q", s.Capitalization)
	}

	if s.MinPressTimeMs < 0 {
		return fmt.Errorf("min_press_time must not be negative, got %d", s.MinPressTimeMs)
	}

	if s.ScrollHoldTimeMs < 0 {
		return fmt.Errorf("scroll_hold_time must not be negative, got %d", s.ScrollHoldTimeMs)
	}

	return nil
}

func Load(r io.Reader) (*Settings, error) {
	var s Settings

	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("could not decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &s, nil
}

// LoadFile reads settings from path, falling back to defaults when the file
// does not exist yet.
func LoadFile(path string) (*Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}

		return nil, fmt.Errorf("could not open settings file %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}

func Save(w io.Writer, s *Settings) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode settings: %w", err)
	}

	return nil
}
