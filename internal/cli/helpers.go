package cli

import (
	"log/slog"
	"os"

	"github.com/sautiflow/sauti/internal/logging"
	"golang.org/x/term"
)

// CreateLogger builds the CLI logger. Debug mode lowers the level.
func CreateLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// IsInteractive reports whether stdin is a terminal. The simulator
// suppresses the banner and prompts when piped.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
