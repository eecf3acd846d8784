package main

import (
	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger/console"

	"github.com/spf13/cobra"
)

var (
	debugLogs bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "wikigraph",
	Short: "Build and rank Wikidata concept graphs",
	Long: `wikigraph crawls Wikidata from a set of seed concepts, builds a graph
bounded by hop distance and ranks its nodes by centrality.

Settings are read from the environment (and a .env file) and can be
overridden by flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		util.LoadEnv()
		if !cmd.Flags().Changed("debug") {
			debugLogs = util.GetEnvBool("DEBUG", false)
		}
		if !cmd.Flags().Changed("log-format") {
			logFormat = util.GetEnvString("LOG_FORMAT", string(console.FormatText))
		}
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug:  debugLogs,
			Format: console.Format(logFormat),
			Output: cmd.ErrOrStderr(),
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(console.FormatText), "Log format: text, json or logfmt")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(algorithmsCmd)
}
