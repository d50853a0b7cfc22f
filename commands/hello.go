package commands

import (
	"github.com/josephlewis42/serialshell/core/shell"
)

// Hello greets the world, or whoever is named.
func Hello(s *shell.Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "hello [NAME]",
		Short: "Say hello.",
	}

	return cmd.Run(s, argv, func() int {
		args := cmd.Flags().Args()
		switch len(args) {
		case 0:
			s.Println("Hello, world!")
		case 1:
			s.Println("Hello, ", args[0], "!")
		default:
			return badArgCount(s, argv[0])
		}
		return shell.ExitSuccess
	})
}

var _ shell.CommandFunc = Hello
