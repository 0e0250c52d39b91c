package synonyms

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/metrics"
)

// Mapper learns one canonical value per surface-form variant and rewrites
// extracted entities to it.
//
// Design principles:
//   - Case-insensitive: keys are lowercased on insert and on lookup;
//     canonical values keep their original casing
//   - Last write wins: a conflicting registration overwrites the old target
//     and is reported, never rejected
//   - Exact match only: no fuzzy or partial lookup
//
// A Mapper is built sequentially during training. Once built it is only
// read, so Resolve and Lookup may be called from many goroutines.
type Mapper struct {
	// normalized variant -> canonical
	// Example: "nyc" -> "New York City", "the big apple" -> "New York City"
	table map[string]string

	conflicts []Conflict
	log       logrus.FieldLogger
	codec     artifact.Codec
	runID     string
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger that receives conflict and load warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.log = l
		}
	}
}

// WithCodec sets the document format used by Persist.
func WithCodec(c artifact.Codec) Option {
	return func(m *Mapper) {
		if c != nil {
			m.codec = c
		}
	}
}

// New creates an empty mapper.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		table: make(map[string]string),
		log:   logrus.StandardLogger(),
		codec: artifact.JSON,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register maps variant to canonical and reports whether the table changed.
//
// Rules:
//   - nil canonical (or variant) is ignored; an empty string is a valid variant
//   - a value is never mapped to itself, before or after lowercasing the variant
//   - an existing key with the same target is left alone
//   - an existing key with a different target is overwritten and a
//     conflict is logged
func (m *Mapper) Register(variant, canonical any) bool {
	replacement, ok := toString(canonical)
	if !ok {
		metrics.Registrations.WithLabelValues(metrics.RegisterSkipped).Inc()
		return false
	}
	original, ok := toString(variant)
	if !ok || original == replacement {
		metrics.Registrations.WithLabelValues(metrics.RegisterSkipped).Inc()
		return false
	}

	key := normalize(original)
	if key == replacement {
		metrics.Registrations.WithLabelValues(metrics.RegisterSkipped).Inc()
		return false
	}

	previous, exists := m.table[key]
	switch {
	case !exists:
		metrics.Registrations.WithLabelValues(metrics.RegisterInserted).Inc()
	case previous == replacement:
		metrics.Registrations.WithLabelValues(metrics.RegisterUnchanged).Inc()
		return false
	default:
		m.reportConflict(Conflict{Variant: key, Previous: previous, Replacement: replacement})
		metrics.Registrations.WithLabelValues(metrics.RegisterOverwritten).Inc()
	}

	m.table[key] = replacement
	return true
}

func (m *Mapper) reportConflict(c Conflict) {
	m.conflicts = append(m.conflicts, c)
	metrics.Conflicts.Inc()

	entry := m.log.WithFields(logrus.Fields{
		"variant":     c.Variant,
		"previous":    c.Previous,
		"replacement": c.Replacement,
	})
	if m.runID != "" {
		entry = entry.WithField("run_id", m.runID)
	}
	entry.Warnf("Found conflicting synonym definitions for %q. Overwriting target %q with %q. "+
		"Check your training data and remove conflicting synonym definitions.",
		c.Variant, c.Previous, c.Replacement)
}

// Lookup returns the canonical value for v, if any.
func (m *Mapper) Lookup(v any) (string, bool) {
	s, ok := toString(v)
	if !ok {
		return "", false
	}
	canonical, ok := m.table[normalize(s)]
	return canonical, ok
}

// Len returns the number of variants in the table.
func (m *Mapper) Len() int {
	return len(m.table)
}

// Snapshot returns a copy of the table.
func (m *Mapper) Snapshot() map[string]string {
	out := make(map[string]string, len(m.table))
	for k, v := range m.table {
		out[k] = v
	}
	return out
}

// Conflicts returns the conflicts reported since the mapper was created.
func (m *Mapper) Conflicts() []Conflict {
	return append([]Conflict(nil), m.conflicts...)
}

// Variants returns all variants that map to canonical, sorted.
// The comparison on canonical is exact.
func (m *Mapper) Variants(canonical string) []string {
	var out []string
	for k, v := range m.table {
		if v == canonical {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Stats returns statistics about the table contents.
func (m *Mapper) Stats() Stats {
	canonicals := make(map[string]struct{})
	for _, v := range m.table {
		canonicals[v] = struct{}{}
	}
	return Stats{
		Variants:   len(m.table),
		Canonicals: len(canonicals),
		Conflicts:  len(m.conflicts),
	}
}

// Stats holds statistics about a mapper.
type Stats struct {
	Variants   int // Number of distinct normalized variants
	Canonicals int // Number of distinct canonical values
	Conflicts  int // Conflicts reported while building
}
