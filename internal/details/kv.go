// Package details extracts labelled fields from a HAR entry for the
// request detail tabs.
package details

import (
	"github.com/unkn0wn-root/harview/internal/fieldfmt"
	"github.com/unkn0wn-root/harview/internal/har"
)

// KV is an unchecked label/value row. An empty Value means the field is
// absent.
type KV struct {
	Label string
	Value string
}

// SafeKV is a row whose value is known to be present.
type SafeKV struct {
	Label string
	Value string
}

// Reducer folds the extracted rows before filtering. It receives the
// accumulator, the current row, its index and the full list, and returns
// the new accumulator.
type Reducer func(acc []KV, kv KV, index int, all []KV) []KV

// Identity keeps the extracted list untouched. It is the reducer used when
// none is given.
func Identity(_ []KV, _ KV, _ int, all []KV) []KV {
	return all
}

// Reduce runs r over kvs starting from an empty accumulator. A nil r
// means Identity.
func Reduce(kvs []KV, r Reducer) []KV {
	if r == nil {
		r = Identity
	}
	acc := []KV{}
	for i, kv := range kvs {
		acc = r(acc, kv, i, kvs)
	}
	return acc
}

// Safe drops rows without a value.
func Safe(kvs []KV) []SafeKV {
	out := make([]SafeKV, 0, len(kvs))
	for _, kv := range kvs {
		if kv.Value == "" {
			continue
		}
		out = append(out, SafeKV(kv))
	}
	return out
}

func pair(label string, raw any) KV {
	return KV{Label: label, Value: fieldfmt.Text(raw)}
}

func parsed[T any](label string, raw any, parse func(any) (T, bool), format func(T) string) KV {
	v, _ := fieldfmt.ParseAndFormat(raw, parse, format)
	return KV{Label: label, Value: v}
}

func byteSize(label string, raw any) KV {
	return parsed(label, raw, fieldfmt.ParsePositive, fieldfmt.FormatBytes)
}

func count(label string, raw any) KV {
	return parsed(label, raw, fieldfmt.ParsePositive, nil)
}

// headerRows expands every occurrence of name into its own row, labelled
// with the display label so casing stays consistent across HTTP/1 and
// HTTP/2 captures.
func headerRows(headers har.Headers, label, name string) []KV {
	values := headers.Values(name)
	rows := make([]KV, 0, len(values))
	for _, v := range values {
		rows = append(rows, KV{Label: label, Value: v})
	}
	return rows
}

func headerRow(headers har.Headers, name string) []KV {
	return headerRows(headers, name, name)
}

func headerKVs(headers har.Headers) []SafeKV {
	rows := make([]KV, 0, len(headers))
	for _, h := range headers {
		rows = append(rows, KV{Label: h.Name, Value: h.Text()})
	}
	return Safe(rows)
}
