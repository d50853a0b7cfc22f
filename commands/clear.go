package commands

import (
	"github.com/josephlewis42/serialshell/core/shell"
)

// Clear homes the cursor and erases the screen, assuming the terminal is
// VT100 compatible.
func Clear(s *shell.Shell, argv []string) int {
	s.Print("\033[H\033[2J")
	return shell.ExitSuccess
}

var _ shell.CommandFunc = Clear
