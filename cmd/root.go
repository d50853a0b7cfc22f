package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/serialshell/core/config"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the built-in configuration when no
// configuration was initialized.
func loadConfigOrDefault(logger *log.Logger) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Println("No configuration found, using the defaults.")
		return config.Default(), nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialshell",
	Short: "Line oriented command shell for serial terminals",
	Long: `A small command interpreter for byte streams such as serial lines.

Commands are typed one line at a time with minimal editing (backspace,
Ctrl-R to retype, Ctrl-U to kill the line) and dispatched to registered
handlers. Shells can be run on the local terminal or served over SSH.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
