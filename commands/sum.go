package commands

import (
	"strconv"

	"github.com/josephlewis42/serialshell/core/shell"
)

// Sum adds its arguments and returns the total as its status, so the
// shell reports it. Flags aren't parsed because negative numbers look like
// them.
func Sum(s *shell.Shell, argv []string) int {
	total := 0
	for _, arg := range argv[1:] {
		n, err := strconv.Atoi(arg)
		if err != nil {
			s.Println(argv[0], ": not a number: ", strconv.Quote(arg))
			return shell.ExitFailure
		}
		total += n
	}
	return total
}

var _ shell.CommandFunc = Sum
