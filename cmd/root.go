package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lexiconlab/readers/logs"
)

var rootCmd = &cobra.Command{
	Use:   "readers",
	Short: "Extract structured documents from datasets of source files.",
}

func Execute() {
	logs.InitializeFileLogger()
	defer logs.CloseLogger()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
