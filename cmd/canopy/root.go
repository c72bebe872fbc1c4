package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/canopy/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy validates documents against declarative schemas",
	Long: `Canopy checks YAML and JSON documents against small schema descriptions
and reports every invalid field with its path.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", os.Getenv("CANOPY_LOG_LEVEL"), "Log level: debug, info, warn or error (env CANOPY_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}
