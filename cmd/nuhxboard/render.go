package nuhxboard

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/justDeeevin/NuhxBoard/export"
	"github.com/justDeeevin/NuhxBoard/input"
	"github.com/justDeeevin/NuhxBoard/session"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Rasterize a layout to a PNG snapshot",
	Long: `Projects one frame of a layout and writes it as PNG. Keyboard keycodes
listed in --pressed are treated as held, so a style's pressed state can be
previewed without a live feed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lay, err := loadLayout(renderLayoutPath)
		if err != nil {
			return err
		}

		sty, err := loadStyle(renderStylePath)
		if err != nil {
			return err
		}

		cfg, err := loadSettings(renderSettingsPath)
		if err != nil {
			return err
		}

		s := session.New(lay, sty, cfg)
		now := nowFunc()

		for _, field := range strings.Split(pressedCodes, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			code, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return fmt.Errorf("could not parse pressed code %q: %w", field, err)
			}

			s.Handle(&input.Event{Kind: input.KindKey, Code: uint32(code), Pressed: true}, now)
		}

		instructions := s.Frame(now)

		if err := export.RenderPNG(instructions, int(lay.Width), int(lay.Height), renderOutPath); err != nil {
			return err
		}

		log.Printf("Wrote %s (%d instructions)", renderOutPath, len(instructions))

		return nil
	},
}

var (
	renderLayoutPath   string
	renderStylePath    string
	renderSettingsPath string
	renderOutPath      string
	pressedCodes       string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderLayoutPath, "layout", "l", "", "layout file (required)")
	renderCmd.Flags().StringVarP(&renderStylePath, "style", "s", "", "style file (default: built-in style)")
	renderCmd.Flags().StringVar(&renderSettingsPath, "settings", "", "settings file (default: built-in defaults)")
	renderCmd.Flags().StringVarP(&renderOutPath, "out", "o", "board.png", "output PNG path")
	renderCmd.Flags().StringVar(&pressedCodes, "pressed", "", "comma-separated keycodes to draw as held")
}
