package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"log"
	"strings"

	"github.com/josephlewis42/serialshell/core"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/shell"
	"github.com/josephlewis42/serialshell/core/stream"
	"github.com/spf13/cobra"
)

var showStatus bool

// execCmd runs a single command line
var execCmd = &cobra.Command{
	Use:   "exec LINE...",
	Short: "Execute one command line and exit.",
	Long: `Joins the arguments with spaces and executes them as a single line,
exactly as if they had been typed followed by a carriage return.`,
	Example: `  serialshell exec echo hello world
  serialshell exec --status sum 5 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfigOrDefault(log.New(cmd.ErrOrStderr(), "", 0))
		if err != nil {
			return err
		}

		conn := stream.NewPollStream(bytes.NewReader(nil), cmd.OutOrStdout())
		sh := core.NewShell(cfg, conn, logger.NopRecorder{}, log.New(ioutil.Discard, "", 0))

		status := sh.Execute(strings.Join(args, " "))
		if err := conn.Flush(); err != nil {
			return err
		}

		if showStatus {
			fmt.Fprintf(cmd.OutOrStdout(), "status: %d\n", status)
		}
		if status != shell.ExitSuccess && !showStatus {
			return fmt.Errorf("exit status %d", status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	// Flags after the first argument belong to the command line.
	execCmd.Flags().SetInterspersed(false)
	execCmd.Flags().BoolVar(&showStatus, "status", false, "Print the status and exit successfully.")
}
