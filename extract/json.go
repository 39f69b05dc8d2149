package extract

import (
	"math"

	"github.com/valyala/fastjson"
)

// JSON extracts a value from the parsed JSON document by walking the given
// key path. It should be used in readers based on the JSON reader base.
type JSON struct {
	keys []string
	options
}

func NewJSON(keys []string, opts ...Option) *JSON {
	return &JSON{keys: keys, options: getOptions(opts...)}
}

func (e *JSON) Kind() Kind { return KindJSON }

func (e *JSON) Apply(ctx *Context) (interface{}, error) {
	return run(e.options, ctx, func(ctx *Context) (interface{}, error) {
		value := ctx.Value
		if value == nil {
			return nil, nil
		}
		value = value.Get(e.keys...)
		if value == nil {
			return nil, nil
		}
		return goValue(value), nil
	})
}

// goValue converts a parsed JSON value into its plain Go representation.
// Whole numbers come back as int, other numbers as float64.
func goValue(value *fastjson.Value) interface{} {
	switch value.Type() {
	case fastjson.TypeString:
		b, _ := value.StringBytes()
		return string(b)
	case fastjson.TypeNumber:
		f, _ := value.Float64()
		if f == math.Trunc(f) {
			return int(f)
		}
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeArray:
		items, _ := value.Array()
		out := make([]interface{}, len(items))
		for i := range items {
			out[i] = goValue(items[i])
		}
		return out
	case fastjson.TypeObject:
		obj, _ := value.Object()
		out := make(map[string]interface{})
		obj.Visit(func(key []byte, v *fastjson.Value) {
			out[string(key)] = goValue(v)
		})
		return out
	default:
		return nil
	}
}
