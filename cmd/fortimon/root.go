package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"fortimon/pkg/config"
)

// cli holds what every subcommand needs once the root has loaded it.
type cli struct {
	configDir string
	logLevel  string
	logFormat string

	conf *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "fortimon",
		Short: "FortiGate identity and firmware update checks",
		Long: `fortimon turns the JSON sections collected from a FortiGate REST API into
monitoring results: the system identity service and the firmware update
service, each with a state, a summary, details and metrics.

Tasks are read from stdin as a JSON array and results are written to stdout,
or served over HTTP with "fortimon serve".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configDir, "config", ".", "directory holding fortimon.yaml and .env")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log.level", "", "log level override (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log.format", "", "log format override (json|text)")

	rootCmd.AddCommand(newCheckCmd(c))
	rootCmd.AddCommand(newAgentArgsCmd(c))
	rootCmd.AddCommand(newEncryptKeyCmd(c))
	rootCmd.AddCommand(newServeCmd(c))
	return rootCmd
}

func (c *cli) setup(logOut io.Writer) error {
	conf, err := config.LoadConfig(c.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		conf.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		conf.LogFormat = c.logFormat
	}

	logger, err := buildLogger(logOut, conf.LogLevel, conf.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	c.conf = conf
	return nil
}

// buildLogger never writes to stdout, which carries plugin results.
func buildLogger(out io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json|text)", format)
	}

	return slog.New(handler), nil
}
