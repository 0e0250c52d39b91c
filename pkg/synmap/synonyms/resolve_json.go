package synonyms

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/cognicore/synmap/pkg/synmap/internalerr"
	"github.com/cognicore/synmap/pkg/synmap/metrics"
)

// ResolveJSON is Resolve over raw JSON entity objects, for callers that
// must not lose attributes Entity does not model (role, group,
// additional_info, ...). A missed entity keeps its exact bytes. A hit
// rewrites "value" and appends to "processors"; every other member keeps
// its position and bytes.
func (m *Mapper) ResolveJSON(entities []json.RawMessage) (int, error) {
	hits := 0
	for i, raw := range entities {
		if !gjson.ValidBytes(raw) {
			return hits, fmt.Errorf("entity %d is not valid JSON: %w", i, internalerr.ErrInvalidInput)
		}
		doc := gjson.ParseBytes(raw)
		if !doc.IsObject() {
			return hits, fmt.Errorf("entity %d is not a JSON object: %w", i, internalerr.ErrInvalidInput)
		}

		canonical, ok := m.Lookup(jsonValue(doc.Get("value")))
		if !ok {
			metrics.Resolutions.WithLabelValues(metrics.ResolveMiss).Inc()
			continue
		}

		rewritten, err := rewriteEntity(doc, canonical)
		if err != nil {
			return hits, fmt.Errorf("entity %d: %w", i, err)
		}
		entities[i] = rewritten
		hits++
		metrics.Resolutions.WithLabelValues(metrics.ResolveHit).Inc()
	}
	return hits, nil
}

// jsonValue converts a member to the value Lookup coerces. Numbers stay
// json.Number so 3 and 3.0 remain distinct keys.
func jsonValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		return r.Str
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	}
	return r.Value()
}

func rewriteEntity(doc gjson.Result, canonical string) (json.RawMessage, error) {
	value, err := json.Marshal(canonical)
	if err != nil {
		return nil, err
	}
	processors := appendProcessor(doc.Get("processors"))

	var buf bytes.Buffer
	seenProcessors := false
	var keyErr error
	buf.WriteByte('{')
	doc.ForEach(func(key, member gjson.Result) bool {
		k, err := json.Marshal(key.Str)
		if err != nil {
			keyErr = err
			return false
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		switch key.Str {
		case "value":
			buf.Write(value)
		case "processors":
			buf.WriteString(processors)
			seenProcessors = true
		default:
			buf.WriteString(member.Raw)
		}
		return true
	})
	if keyErr != nil {
		return nil, keyErr
	}
	if !seenProcessors {
		buf.WriteString(`,"processors":`)
		buf.WriteString(processors)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// appendProcessor returns the processors array with ProcessorName added,
// keeping existing elements as written. A missing or null member starts
// a new array.
func appendProcessor(existing gjson.Result) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	if existing.IsArray() {
		for _, p := range existing.Array() {
			buf.WriteString(p.Raw)
			buf.WriteByte(',')
		}
	}
	buf.WriteString(`"` + ProcessorName + `"`)
	buf.WriteByte(']')
	return buf.String()
}
