package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lexiconlab/readers/config"
	"github.com/lexiconlab/readers/output/table"
)

var previewLimit int

var previewCmd = &cobra.Command{
	Use:   "preview <dataset.yaml>",
	Short: "Print the first documents of a dataset as a table.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, err := config.Read(args[0])
		if err != nil {
			return err
		}
		reader, err := buildReader(dataset)
		if err != nil {
			return err
		}
		stream, err := reader.Documents()
		if err != nil {
			return err
		}
		defer stream.Close()
		return table.Write(cmd.OutOrStdout(), stream, reader.FieldNames(), previewLimit)
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewLimit, "limit", 10, "maximum number of documents to print")
	rootCmd.AddCommand(previewCmd)
}
