package main

import (
	"log/slog"
	"os"

	"github.com/justDeeevin/NuhxBoard/cmd/nuhxboard"
	"github.com/justDeeevin/NuhxBoard/logging"
)

func main() {
	logging.Setup(os.Stderr, slog.LevelInfo)
	nuhxboard.Execute()
}
