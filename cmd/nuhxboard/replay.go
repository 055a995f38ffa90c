package nuhxboard

import (
	"fmt"
	"log"

	"github.com/justDeeevin/NuhxBoard/db"
	"github.com/justDeeevin/NuhxBoard/export"
	"github.com/justDeeevin/NuhxBoard/session"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// replayCmd represents the replay command.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-run a recorded event stream against a layout",
	Long: `Feeds a sqlite recording made with 'run --record' back through the engine,
using the original capture timestamps. The final frame can be written as a
PNG, which makes recordings reproducible test fixtures for layouts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lay, err := loadLayout(replayLayoutPath)
		if err != nil {
			return err
		}

		sty, err := loadStyle(replayStylePath)
		if err != nil {
			return err
		}

		cfg, err := loadSettings(replaySettingsPath)
		if err != nil {
			return err
		}

		storage, err := db.ConnectDB(replayDBPath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", replayDBPath, err)
		}
		defer storage.Close()

		events, err := storage.All()
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return fmt.Errorf("recording %s holds no events", replayDBPath)
		}

		s := session.New(lay, sty, cfg)

		bar := progressbar.Default(int64(len(events)), "replaying")
		for i := range events {
			s.Handle(&events[i].Event, events[i].At)
			_ = bar.Add(1)
		}

		last := events[len(events)-1].At
		instructions := s.Frame(last)
		log.Printf("Replayed %d events, final frame has %d instructions", len(events), len(instructions))

		if replayOutPath != "" {
			if err := export.RenderPNG(instructions, int(lay.Width), int(lay.Height), replayOutPath); err != nil {
				return err
			}

			log.Printf("Final frame written to %s", replayOutPath)
		}

		return nil
	},
}

var (
	replayDBPath       string
	replayLayoutPath   string
	replayStylePath    string
	replaySettingsPath string
	replayOutPath      string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&replayDBPath, "db", "", "sqlite recording to replay (required)")
	replayCmd.Flags().StringVarP(&replayLayoutPath, "layout", "l", "", "layout file (required)")
	replayCmd.Flags().StringVarP(&replayStylePath, "style", "s", "", "style file (default: built-in style)")
	replayCmd.Flags().StringVar(&replaySettingsPath, "settings", "", "settings file (default: built-in defaults)")
	replayCmd.Flags().StringVarP(&replayOutPath, "out", "o", "", "write the final frame as PNG")

	cobra.CheckErr(replayCmd.MarkFlagRequired("db"))
	cobra.CheckErr(replayCmd.MarkFlagRequired("layout"))
}
