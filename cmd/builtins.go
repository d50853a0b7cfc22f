package cmd

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/josephlewis42/serialshell/core"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/stream"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the registered commands
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands every shell starts with.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfigOrDefault(log.New(ioutil.Discard, "", 0))
		if err != nil {
			return err
		}

		sh := core.NewShell(cfg, stream.Null, logger.NopRecorder{}, log.New(cmd.ErrOrStderr(), "", 0))
		for _, builtin := range sh.Registry().Commands() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", builtin.Name(), builtin.Docs())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
