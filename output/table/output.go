// Package table renders a document stream as a text table, for previewing
// datasets on the command line.
package table

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/readers"
	"github.com/lexiconlab/readers/record"
)

// Write drains up to limit documents from the stream into a table with the
// given field names as header. A limit of 0 drains the whole stream.
func Write(w io.Writer, stream readers.DocumentStream, fieldNames []string, limit int) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(fieldNames)
	table.SetAutoFormatHeaders(false)

	count := 0
	for limit == 0 || count < limit {
		doc, err := stream.Next()
		if err == readers.ErrEndOfStream {
			break
		}
		if err != nil {
			return errors.Wrap(err, "couldn't read document stream")
		}
		row := make([]string, len(fieldNames))
		for i, name := range fieldNames {
			row[i] = record.Render(doc[name])
		}
		table.Append(row)
		count++
	}

	table.Render()
	return nil
}
