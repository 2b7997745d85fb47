package cache

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// defaultKeySerializer implements KeySerializer with reflection-based
// serialization tuned for request descriptors. url.Values and http.Header
// get canonical sorted encodings so that two deep-equal parameter sets always
// produce the same key, regardless of construction order.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a cache key from a method name and args. Deep-equal
// args yield identical keys across runs.
func (s *defaultKeySerializer) SerializeKey(method string, args ...any) string {
	if len(args) == 0 {
		return method
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, method)

	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}

	return strings.Join(parts, KeySeparator)
}

// serializeValue handles individual argument serialization based on type.
func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	// Request-shaped values first: these dominate key construction and need
	// canonical ordering independent of how the caller built them.
	switch tv := v.(type) {
	case url.Values:
		return "query:{" + canonicalPairs(tv) + "}"
	case http.Header:
		return "header:{" + canonicalPairs(url.Values(tv)) + "}"
	case []string:
		return fmt.Sprintf("strs[%d]:{%s}", len(tv), strings.Join(tv, ","))
	case string:
		return tv
	}

	rv := reflect.ValueOf(v)
	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.Func:
		// Stable only within a single process lifetime.
		return fmt.Sprintf("func:%p", v)

	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}

		return s.serializeValue(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}

		return s.serializeSeq("slice", rv)

	case reflect.Array:
		return s.serializeSeq("array", rv)

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}

		return s.serializeMap(rv)

	case reflect.Struct:
		return s.serializeStruct(rv, rt)

	case reflect.Chan:
		return fmt.Sprintf("chan:%p", v)

	case reflect.Interface:
		if rv.IsNil() {
			return "interface:nil"
		}

		return s.serializeValue(rv.Elem().Interface())
	}

	if isBasicKind(rt.Kind()) {
		return fmt.Sprintf("%v", v)
	}

	return s.jsonFallback(v)
}

// canonicalPairs renders multi-value string maps as sorted key=value pairs.
// Values for one key keep their original order, matching url.Values.Encode
// semantics.
func canonicalPairs(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range values[k] {
			pairs = append(pairs, k+"="+v)
		}
	}

	return strings.Join(pairs, "&")
}

func (s *defaultKeySerializer) serializeSeq(label string, rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)

	for i := 0; i < length; i++ {
		parts[i] = s.serializeValue(rv.Index(i).Interface())
	}

	return fmt.Sprintf("%s[%d]:{%s}", label, length, strings.Join(parts, ","))
}

// serializeMap renders maps with sorted keys for determinism.
func (s *defaultKeySerializer) serializeMap(rv reflect.Value) string {
	keys := rv.MapKeys()

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		keyStr := s.serializeValue(k.Interface())
		valStr := s.serializeValue(rv.MapIndex(k).Interface())
		pairs = append(pairs, keyStr+"="+valStr)
	}

	sort.Strings(pairs)

	return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
}

// serializeStruct renders exported fields as name:value pairs in declaration
// order.
func (s *defaultKeySerializer) serializeStruct(rv reflect.Value, rt reflect.Type) string {
	numFields := rv.NumField()
	parts := make([]string, 0, numFields)

	for i := 0; i < numFields; i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldValue := rv.Field(i)
		if !fieldValue.CanInterface() {
			continue
		}

		parts = append(parts, field.Name+":"+s.serializeValue(fieldValue.Interface()))
	}

	return "struct:{" + strings.Join(parts, ",") + "}"
}

func isBasicKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// jsonFallback provides JSON serialization as a last resort.
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}

	return "json:" + string(data)
}
