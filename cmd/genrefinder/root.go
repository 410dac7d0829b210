package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevelFlag string

	rootCmd := &cobra.Command{
		Use:           "genrefinder",
		Short:         "Rank ePub genres and tags by keyword frequency",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCommand(&logLevelFlag))
	rootCmd.AddCommand(newInfoCommand(&logLevelFlag))

	return rootCmd
}
