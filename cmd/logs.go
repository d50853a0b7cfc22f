package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephlewis42/serialshell/core/config"
	"github.com/josephlewis42/serialshell/core/ttylog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	idleTimeLimit time.Duration
	showInput     bool
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore recorded shell sessions.",
}

// lsCommand lists the recorded sessions
var lsCommand = &cobra.Command{
	Use:   "ls",
	Short: "List recorded sessions.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logs, err := cfg.ListSessionLogs()
		if err != nil {
			return err
		}
		for _, info := range logs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", info.ModTime().Format(time.RFC3339), info.Size(), info.Name())
		}
		return nil
	},
}

// playCommand replays a session in real time
var playCommand = &cobra.Command{
	Use:   "play LOG",
	Short: "Replay a recorded session in the terminal.",
	Long:  `Plays a recorded session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := openLog(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source := createLogSource(args[0], fd)
		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(source, sink)
	},
}

// catCommand prints a whole session at once
var catCommand = &cobra.Command{
	Use:   "cat LOG",
	Short: "Print full output of recorded log to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := openLog(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source := createLogSource(args[0], fd)
		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		if showInput {
			sink = ttylog.NewClientInput(cmd.OutOrStdout())
		}

		return ttylog.Replay(source, sink)
	},
}

// asciicastCmd converts a log to the asciicast format
var asciicastCmd = &cobra.Command{
	Use:   "asciicast INPUT.log > OUTPUT.cast",
	Short: "Convert a log to asciicast (asciinema) format.",
	Long:  `Convert a recorded terminal log to asciicast (asciinema) format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := openLog(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source := ttylog.NewUMLLogSource(fd)
		sink := ttylog.NewAsciicastLogSink(cmd.OutOrStdout())

		return ttylog.Replay(source, sink)
	},
}

// openLog opens a log by path, or by name within the configured session log
// directory.
func openLog(name string) (afero.File, error) {
	fd, err := afero.NewOsFs().Open(name)
	if !errors.Is(err, fs.ErrNotExist) {
		return fd, err
	}

	cfg, cfgErr := config.Load(cfgPath)
	if cfgErr != nil {
		return nil, err
	}
	return cfg.OpenSessionLog(name)
}

func createLogSource(name string, r io.Reader) ttylog.LogSource {
	switch strings.TrimPrefix(filepath.Ext(name), ".") {
	case ttylog.AsciicastFileExt:
		return ttylog.NewAsciicastLogSource(r)
	default:
		return ttylog.NewUMLLogSource(r)
	}
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(lsCommand)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(asciicastCmd)
	logsCmd.AddCommand(catCommand)

	// cat doesn't allow idle time
	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
	catCommand.Flags().BoolVar(&showInput, "input", false, "Print the keys that were typed rather than the output.")
}

