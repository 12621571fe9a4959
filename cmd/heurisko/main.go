// Command heurisko is the search engine's CLI entry point: convert
// transcripts into .hsk files, search interactively, or host the HTTP
// API — grounded on the source system's main.go/cli.rs/host.rs trio.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mooss/heurisko/cli"
	"github.com/mooss/heurisko/config"
	"github.com/mooss/heurisko/httpapi"
	"github.com/mooss/heurisko/ingest"
	"github.com/mooss/heurisko/searcher"
)

func main() {
	root := &cobra.Command{
		Use:   "heurisko",
		Short: "heuriskó — a local transcript search engine",
	}

	root.AddCommand(convertCmd(), cliCmd(), hostCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	var destination string
	var flatten bool

	cmd := &cobra.Command{
		Use:   "convert <source>",
		Short: "convert a transcript file or directory into .hsk files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return convertPath(args[0], destination, flatten, cfg)
		},
	}
	cmd.Flags().StringVar(&destination, "destination", "", "destination subdirectory under the data directory")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "flatten directory structure when converting a directory")
	return cmd
}

func cliCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cli",
		Short: "interactive search REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(false)
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			idx, err := loadIndex(cfg, logger)
			if err != nil {
				return err
			}
			cli.Run(idx, cfg.ContextSize.Value)
			return nil
		},
	}
}

func hostCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "host",
		Short: "serve the HTTP search API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(true)
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Port = port
			}
			idx, err := loadIndex(cfg, logger)
			if err != nil {
				return err
			}
			engine := httpapi.New(idx, cfg)
			return engine.Run(fmt.Sprintf(":%d", cfg.Port))
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override the configured port")
	return cmd
}

func loadIndex(cfg *config.Config, logger zerolog.Logger) (*searcher.Index, error) {
	return searcher.Load(searcher.Config{
		DataDir:       cfg.DataDir,
		FileExt:       "hsk",
		StopWordsFile: cfg.StopWordsFile,
	}, logger)
}

func newLogger(jsonOutput bool) zerolog.Logger {
	if jsonOutput {
		return log.Logger
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
