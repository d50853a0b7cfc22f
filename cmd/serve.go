package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/serialshell/core"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve shells over SSH on a local port.",
	Long: `Starts an SSH server that gives every session its own shell. Output is
throttled to the configured baud rate and sessions are recorded to the
session log directory.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true
		serverLog := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
		serverLog.Println("Initializing server...")

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		server, err := core.NewServer(configuration, serverLog)
		if err != nil {
			return err
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
				serverLog.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		serverLog.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		sig := <-sigs
		serverLog.Printf("Got signal %q, terminating...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			serverLog.Fatalf("Server shutdown failed: %s", err)
		}
		serverLog.Print("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
