package nuhxboard

import (
	"fmt"
	"log"
	"os"

	"github.com/justDeeevin/NuhxBoard/db"
	"github.com/justDeeevin/NuhxBoard/export"
	"github.com/justDeeevin/NuhxBoard/input"
	"github.com/justDeeevin/NuhxBoard/session"
	"github.com/spf13/cobra"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Consume a live event feed and maintain board state",
	Long: `Reads the normalized event protocol from a serial capture device, or from
stdin when no device is given. Events drive the press tracker until the feed
closes. With --record, every event lands in a sqlite file for later replay;
with --out, the final frame is rasterized to PNG on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lay, err := loadLayout(runLayoutPath)
		if err != nil {
			return err
		}

		sty, err := loadStyle(runStylePath)
		if err != nil {
			return err
		}

		cfg, err := loadSettings(runSettingsPath)
		if err != nil {
			return err
		}

		s := session.New(lay, sty, cfg)

		if recordPath != "" {
			storage, err := db.ConnectDB(recordPath)
			if err != nil {
				return fmt.Errorf("could not open %s as sqlite file: %w", recordPath, err)
			}
			defer storage.Close()

			s.SetRecorder(storage)
		}

		var ch <-chan string
		var done <-chan bool

		if devicePath == "" {
			names, err := input.AvailableDevices()
			if err == nil && len(names) > 0 {
				log.Printf("Available devices: %+v", names)
			}
			log.Print("No device given, reading from stdin...")

			ch, done = input.ReadLines(os.Stdin)
		} else {
			r, closer, err := input.OpenDevice(devicePath, baudRate)
			if err != nil {
				return err
			}
			defer closer()

			ch, done = input.ReadLines(r)
		}

		s.Loop(ch, done)

		if runOutPath != "" {
			instructions := s.Frame(nowFunc())

			lay := s.Layout()
			if err := export.RenderPNG(instructions, int(lay.Width), int(lay.Height), runOutPath); err != nil {
				return err
			}

			log.Printf("Final frame written to %s", runOutPath)
		}

		return nil
	},
}

var (
	runLayoutPath   string
	runStylePath    string
	runSettingsPath string
	devicePath      string
	baudRate        int
	recordPath      string
	runOutPath      string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runLayoutPath, "layout", "l", "", "layout file (required)")
	runCmd.Flags().StringVarP(&runStylePath, "style", "s", "", "style file (default: built-in style)")
	runCmd.Flags().StringVar(&runSettingsPath, "settings", "", "settings file (default: built-in defaults)")
	runCmd.Flags().StringVarP(&devicePath, "device", "d", "", "serial capture device (default: stdin)")
	runCmd.Flags().IntVar(&baudRate, "baud", 9600, "serial baud rate")
	runCmd.Flags().StringVar(&recordPath, "record", "", "sqlite file to record events to")
	runCmd.Flags().StringVarP(&runOutPath, "out", "o", "", "write the final frame as PNG on exit")

	cobra.CheckErr(runCmd.MarkFlagRequired("layout"))
}
