package commands

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/josephlewis42/serialshell/core/shell"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-7][0-7]?[0-7]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\r\n", // newline, serial terminals need the carriage return
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 8, 16)
		if err != nil || out > 0x7f {
			return arg
		}
		return string(rune(out))
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 16, 16)
		if err != nil || out > 0x7f {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// Echo prints its arguments separated by spaces.
func Echo(s *shell.Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "echo [-e] [ARG] ...",
		Short: "Display a line of text.",
	}

	opt := cmd.Flags()
	escaped := opt.Bool('e', "interpret backslash escapes")

	return cmd.Run(s, argv, func() int {
		for i, arg := range opt.Args() {
			if i > 0 {
				s.Print(" ")
			}

			if *escaped {
				arg = unescape(arg)
			}

			s.Print(arg)
		}

		s.Println()

		return shell.ExitSuccess
	})
}

var _ shell.CommandFunc = Echo
