package extract

// CSVSpec configures a CSV extractor.
type CSVSpec struct {
	// Column is the header name of the column to extract.
	Column string
	// Multiple extracts the column value of every row of the document. By
	// default only the first row's value is extracted.
	Multiple bool
	// ConvertToNil lists cell values treated as missing. When left nil, the
	// empty string is converted; pass an empty slice to disable conversion.
	ConvertToNil []string
}

// CSV extracts values from the rows of one tabular document. It should be
// used in readers based on the CSV reader base.
type CSV struct {
	spec CSVSpec
	options
}

func NewCSV(spec CSVSpec, opts ...Option) *CSV {
	if spec.ConvertToNil == nil {
		spec.ConvertToNil = []string{""}
	}
	return &CSV{spec: spec, options: getOptions(opts...)}
}

func (e *CSV) Kind() Kind { return KindCSV }

func (e *CSV) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		if len(ctx.Rows) == 0 {
			return nil, nil
		}
		if _, ok := ctx.Rows[0][e.spec.Column]; !ok {
			return nil, nil
		}
		if e.spec.Multiple {
			out := make([]interface{}, len(ctx.Rows))
			for i, row := range ctx.Rows {
				out[i] = e.cell(row[e.spec.Column])
			}
			return out, nil
		}
		return e.cell(ctx.Rows[0][e.spec.Column]), nil
	})
}

func (e *CSV) cell(value string) interface{} {
	for _, missing := range e.spec.ConvertToNil {
		if value == missing {
			return nil
		}
	}
	return value
}
