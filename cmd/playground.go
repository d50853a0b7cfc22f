package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/josephlewis42/serialshell/core"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/shell"
	"github.com/josephlewis42/serialshell/core/stream"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playgroundCmd runs a shell on the local terminal for testing
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run a shell on the local terminal without starting a server.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		cfg, err := loadConfigOrDefault(playgroundLogger)
		if err != nil {
			return err
		}

		logFd, err := cfg.OpenAppLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		events := logger.NewJsonLinesLogRecorder(logFd).NewSession("playground")

		// Put the terminal in raw mode so keys arrive one at a time like they
		// would on a serial line.
		if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
			oldState, err := term.MakeRaw(int(in.Fd()))
			if err != nil {
				return err
			}
			defer term.Restore(int(in.Fd()), oldState)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		conn := stream.NewPollStream(cmd.InOrStdin(), cmd.OutOrStdout())
		defer conn.Flush()

		sh := core.NewShell(cfg, conn, events, playgroundLogger)
		sh.AddCommand(
			"exit"+string(sh.DocDelimiter())+"leave the playground",
			func(s *shell.Shell, argv []string) int {
				cancel()
				return shell.ExitSuccess
			},
		)

		playgroundLogger.Println(strings.Repeat("=", 80))
		sh.Print("Type help for a list of commands or exit to quit.\r\n")
		sh.Flush()

		err = sh.Run(ctx, cfg.Serve.PollInterval())
		if errors.Is(err, context.Canceled) {
			err = nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Last status: %d\r\n", sh.LastErrNo())
		return err
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
