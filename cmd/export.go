package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lexiconlab/readers/config"
)

var exportCmd = &cobra.Command{
	Use:   "export <dataset.yaml> <out.csv>",
	Short: "Extract a dataset and write it out as CSV.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, err := config.Read(args[0])
		if err != nil {
			return err
		}
		reader, err := buildReader(dataset)
		if err != nil {
			return err
		}
		if err := reader.ExportCSV(args[1]); err != nil {
			return errors.Wrap(err, "couldn't export dataset")
		}
		fmt.Printf("wrote %s\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
