// Package cmd holds the netcafe command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/deppfellow/netcafe/internal/config"
	"github.com/deppfellow/netcafe/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "netcafe",
	Short: "Internet café seat, session and food order service",
	Long: `netcafe serves the seat, session and food order API of an internet café.

Configuration is read from NETCAFE_* environment variables and an optional
.env file in the working directory.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads configuration and builds the loggers shared by every command.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		printError("loading configuration", err)
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, &log, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
