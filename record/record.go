package record

import (
	"fmt"
	"strings"
)

// Document is one extracted record: a mapping from field name to extracted
// value. Values may be nil when an extractor found nothing.
type Document map[string]interface{}

// Metadata holds side information attached to a source before decoding,
// such as data derived from the file path or a sidecar file. It is available
// to every extractor invocation for that source's records.
type Metadata map[string]interface{}

// Value returns the value stored under name, or nil.
func (d Document) Value(name string) interface{} {
	return d[name]
}

// Render produces the canonical string rendering of an extracted value, as
// used by tabular outputs. Nil renders as the empty string, multiple values
// are joined with "; ".
func Render(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, "; ")
	case []interface{}:
		parts := make([]string, len(v))
		for i := range v {
			parts[i] = Render(v[i])
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(v)
	}
}
