package model

// RawResult is one tool-specific record as decoded from a scanner's JSON
// output (or produced by the heuristic secret engine). It is opaque to the
// pipeline until a processor normalizes it; the accessors below resolve
// nested keys with graceful defaults so a missing or oddly-typed field never
// fails a batch.
type RawResult map[string]any

func (r RawResult) lookup(keys ...string) (any, bool) {
	var cur any = map[string]any(r)
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (r RawResult) Str(keys ...string) string {
	v, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int tolerates the float64 that encoding/json produces for all numbers.
func (r RawResult) Int(keys ...string) int {
	v, ok := r.lookup(keys...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func (r RawResult) Float(keys ...string) float64 {
	v, ok := r.lookup(keys...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func (r RawResult) Bool(keys ...string) bool {
	v, ok := r.lookup(keys...)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (r RawResult) List(keys ...string) []any {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	l, _ := v.([]any)
	return l
}

func (r RawResult) Map(keys ...string) map[string]any {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// Batch is the unit a per-tool processor consumes: the raw records plus
// whether the external tool could be invoked at all.
type Batch struct {
	Records     []RawResult
	Unavailable bool
}
