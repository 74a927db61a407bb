package jsonfmt

import (
	"bytes"
	"sort"

	gojson "github.com/goccy/go-json"
)

// Member is one key/value pair of an ordered JSON object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object whose member order is significant. Go maps do not
// carry an order, so canonicalized objects are rebuilt as Object; marshaling
// emits members in slice order.
type Object []Member

// MarshalJSON implements json.Marshaler, preserving member order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := gojson.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := gojson.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Sort returns a copy of v with all object keys in lexicographic order,
// recursively. Arrays keep their element order, scalars pass through
// unchanged. Objects come back as Object so the ordering survives
// serialization; Sort accepts its own output, so Sort(Sort(v)) == Sort(v).
func Sort(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := make(Object, 0, len(t))
		for _, k := range keys {
			obj = append(obj, Member{Key: k, Value: Sort(t[k])})
		}
		return obj
	case Object:
		obj := make(Object, 0, len(t))
		for _, m := range t {
			obj = append(obj, Member{Key: m.Key, Value: Sort(m.Value)})
		}
		sort.SliceStable(obj, func(i, j int) bool { return obj[i].Key < obj[j].Key })
		return obj
	case []any:
		arr := make([]any, len(t))
		for i, e := range t {
			arr[i] = Sort(e)
		}
		return arr
	default:
		return v
	}
}

// Unordered converts a value tree back to engine-native shape: Object
// becomes map[string]any, recursively. Validation engines take plain maps;
// key order is irrelevant to them.
func Unordered(v any) any {
	switch t := v.(type) {
	case Object:
		m := make(map[string]any, len(t))
		for _, member := range t {
			m[member.Key] = Unordered(member.Value)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = Unordered(e)
		}
		return m
	case []any:
		arr := make([]any, len(t))
		for i, e := range t {
			arr[i] = Unordered(e)
		}
		return arr
	default:
		return v
	}
}
