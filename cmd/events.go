package cmd

import (
	"fmt"

	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the event log of dispatched commands.",
}

// reportOn reads the application log into update, then prints report as
// YAML.
func reportOn(cmd *cobra.Command, update func(*logger.LogEntry), report interface{}) error {
	cmd.SilenceUsage = true

	config, err := loadConfig()
	if err != nil {
		return err
	}

	fd, err := config.ReadAppLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	if err := logger.ReadJSONLinesLog(fd, update); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		var report logger.Report
		return reportOn(cmd, report.Update, &report)
	},
}

var failuresCommand = &cobra.Command{
	Use:   "failures",
	Short: "Count the lines that failed, grouped by cause.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		report := logger.NewFailureReport()
		return reportOn(cmd, report.Update, report)
	},
}

var sessionsCommand = &cobra.Command{
	Use:   "sessions",
	Short: "Show the lines entered in each session.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		var report logger.InteractionReport
		return reportOn(cmd, report.Update, &report)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(failuresCommand)
	eventsCmd.AddCommand(sessionsCommand)
}
