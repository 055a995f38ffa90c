package nuhxboard

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate layout, style and settings files",
	Long: `Loads each given document and reports the first schema violation with its
field path. Exits non-zero when any document is invalid, so layouts can be
checked in CI before they ship.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkLayoutPath == "" && checkStylePath == "" && checkSettingsPath == "" {
			return fmt.Errorf("nothing to check: give at least one of --layout, --style, --settings")
		}

		if checkLayoutPath != "" {
			lay, err := loadLayout(checkLayoutPath)
			if err != nil {
				return err
			}

			log.Printf("layout %s: ok (%d elements, %gx%g)",
				checkLayoutPath, len(lay.Elements), lay.Width, lay.Height)
		}

		if checkStylePath != "" {
			sty, err := loadStyle(checkStylePath)
			if err != nil {
				return err
			}

			log.Printf("style %s: ok (%d element overrides)", checkStylePath, len(sty.ElementStyles))
		}

		if checkSettingsPath != "" {
			cfg, err := loadSettings(checkSettingsPath)
			if err != nil {
				return err
			}

			log.Printf("settings %s: ok (capitalization %s)", checkSettingsPath, cfg.Capitalization)
		}

		return nil
	},
}

var (
	checkLayoutPath   string
	checkStylePath    string
	checkSettingsPath string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkLayoutPath, "layout", "l", "", "layout file to validate")
	checkCmd.Flags().StringVarP(&checkStylePath, "style", "s", "", "style file to validate")
	checkCmd.Flags().StringVar(&checkSettingsPath, "settings", "", "settings file to validate")
}
