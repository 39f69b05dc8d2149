package readers

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"

	"github.com/lexiconlab/readers/record"
)

// ExportCSV extracts documents from the given sources (or the definition's
// own enumeration) and writes them to a CSV file at path. The header row
// holds the reader's field names in declared order; absent and nil values
// render as empty cells.
func (r *Reader) ExportCSV(path string, sources ...Source) error {
	stream, err := r.Documents(sources...)
	if err != nil {
		return err
	}
	defer stream.Close()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't create output file %s", path)
	}
	defer f.Close()

	out := csv.NewWriter(f)
	names := r.FieldNames()
	if err := out.Write(names); err != nil {
		return errors.Wrap(err, "couldn't write header row")
	}

	row := make([]string, len(names))
	for {
		doc, err := stream.Next()
		if err == ErrEndOfStream {
			break
		}
		if err != nil {
			return errors.Wrap(err, "couldn't read document stream")
		}
		for i, name := range names {
			row[i] = record.Render(doc[name])
		}
		if err := out.Write(row); err != nil {
			return errors.Wrap(err, "couldn't write row")
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return errors.Wrap(err, "couldn't flush output")
	}
	return errors.Wrapf(f.Close(), "couldn't close output file %s", path)
}
