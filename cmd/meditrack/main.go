package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/airtribe/meditrack/internal/clinic"
	"github.com/airtribe/meditrack/internal/config"
	"github.com/airtribe/meditrack/internal/console"
	"github.com/airtribe/meditrack/internal/demo"
)

const version = "1.0.0"

func main() {
	var withDemo bool

	rootCmd := &cobra.Command{
		Use:   "meditrack",
		Short: "Healthcare practice record keeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(withDemo)
		},
	}
	rootCmd.Flags().BoolVar(&withDemo, "demo", false, "preload demo records before opening the menu")
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("meditrack %s\n", version)
		},
	}
}

func runConsole(withDemo bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)
	c := clinic.New(cfg, logger)

	if withDemo {
		if err := demo.Seed(c, logger); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	return console.New(c, os.Stdin, os.Stdout, logger).Run()
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return logger.Level(level)
}
