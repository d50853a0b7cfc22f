package commands

import (
	"github.com/josephlewis42/serialshell/core/shell"
)

// Errno prints the status of the line executed before it.
func Errno(s *shell.Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "errno",
		Short: "Print the status of the previous command.",
	}

	return cmd.Run(s, argv, func() int {
		if len(cmd.Flags().Args()) > 0 {
			return badArgCount(s, argv[0])
		}
		s.Println(s.LastErrNo())
		return shell.ExitSuccess
	})
}

var _ shell.CommandFunc = Errno
