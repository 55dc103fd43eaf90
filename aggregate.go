package datatable

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Flatten converts a two-level aggregation matrix into table rows.
//
// The document looks like
//
//	{"matrix": {
//	  "x": {"group_by": "<col>", "buckets": [{"key": ...}, ...]},
//	  "y": {"group_by": ["<cat>", "<sub>"],
//	        "<cat>": {"buckets": [{"key": ...,
//	          "<sub>": {"buckets": [{"key": ..., "<col>": [v, ...]}]}}]}}}}
//
// where the names in angle brackets are read from group_by. The result is a
// header row (a blank cell, then one header per x bucket), and for every
// category a single-cell header row with [CategoryMergeSpan] followed by
// one row per sub-category: its key as a header, then its values.
//
// A field that is absent fails with [ErrMissingField].
func Flatten(data []byte) ([]Row, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	doc := gjson.ParseBytes(data)

	matrix, err := child(doc, "", "matrix")
	if err != nil {
		return nil, err
	}
	x, err := child(matrix, "matrix", "x")
	if err != nil {
		return nil, err
	}
	y, err := child(matrix, "matrix", "y")
	if err != nil {
		return nil, err
	}

	colName, err := groupName(x, "matrix.x.group_by")
	if err != nil {
		return nil, err
	}
	catName, err := groupName(y, "matrix.y.group_by.0", "0")
	if err != nil {
		return nil, err
	}
	subName, err := groupName(y, "matrix.y.group_by.1", "1")
	if err != nil {
		return nil, err
	}

	colBuckets, err := buckets(x, "matrix.x")
	if err != nil {
		return nil, err
	}
	header := Cells{V(" ")}
	for i, b := range colBuckets {
		key, err := bucketKey(b, fmt.Sprintf("matrix.x.buckets.%d", i))
		if err != nil {
			return nil, err
		}
		header = append(header, H(key))
	}
	rows := []Row{header}

	cat, err := child(y, "matrix.y", catName)
	if err != nil {
		return nil, err
	}
	catPath := "matrix.y." + catName
	catBuckets, err := buckets(cat, catPath)
	if err != nil {
		return nil, err
	}
	for i, cb := range catBuckets {
		path := fmt.Sprintf("%s.buckets.%d", catPath, i)
		key, err := bucketKey(cb, path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Cells{Descriptor{Header: V(key), MergeSpan: CategoryMergeSpan}})

		section, err := flattenCategory(cb, path, subName, colName)
		if err != nil {
			return nil, err
		}
		rows = append(rows, section...)
	}
	return rows, nil
}

// FlattenValue flattens an in-memory aggregation document, such as a
// decoded map[string]any.
func FlattenValue(v any) ([]Row, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return Flatten(data)
}

func flattenCategory(cb gjson.Result, path, subName, colName string) ([]Row, error) {
	sub, err := child(cb, path, subName)
	if err != nil {
		return nil, err
	}
	subPath := path + "." + subName
	subBuckets, err := buckets(sub, subPath)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(subBuckets))
	for i, sb := range subBuckets {
		p := fmt.Sprintf("%s.buckets.%d", subPath, i)
		key, err := bucketKey(sb, p)
		if err != nil {
			return nil, err
		}
		vals, err := child(sb, p, colName)
		if err != nil {
			return nil, err
		}
		if !vals.IsArray() {
			return nil, fmt.Errorf("%w: %s.%s is not a list", ErrMissingField, p, colName)
		}
		row := Cells{H(key)}
		for _, v := range vals.Array() {
			row = append(row, V(resultValue(v)))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// child looks up the literal key below r, which sits at path.
func child(r gjson.Result, path, key string) (gjson.Result, error) {
	c := r.Get(gjson.Escape(key))
	if !c.Exists() {
		if path != "" {
			key = path + "." + key
		}
		return c, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return c, nil
}

// groupName reads a group_by entry. With an index it expects group_by to be
// an array, otherwise a string.
func groupName(r gjson.Result, path string, index ...string) (string, error) {
	g := r.Get("group_by")
	for _, i := range index {
		if !g.IsArray() {
			return "", fmt.Errorf("%w: %s", ErrMissingField, path)
		}
		g = g.Get(i)
	}
	if g.Type != gjson.String || g.Str == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, path)
	}
	return g.Str, nil
}

func buckets(r gjson.Result, path string) ([]gjson.Result, error) {
	b := r.Get("buckets")
	if !b.IsArray() {
		return nil, fmt.Errorf("%w: %s.buckets", ErrMissingField, path)
	}
	return b.Array(), nil
}

func bucketKey(b gjson.Result, path string) (any, error) {
	k := b.Get("key")
	if !k.Exists() {
		return nil, fmt.Errorf("%w: %s.key", ErrMissingField, path)
	}
	return resultValue(k), nil
}

// resultValue converts a gjson result into a plain Go value. Integral
// numbers become int64.
func resultValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return r.Int()
		}
		return r.Num
	case gjson.String:
		return r.Str
	case gjson.JSON:
		if r.IsArray() {
			arr := r.Array()
			out := make([]any, len(arr))
			for i, v := range arr {
				out[i] = resultValue(v)
			}
			return out
		}
		m := r.Map()
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = resultValue(v)
		}
		return out
	default:
		return nil
	}
}
