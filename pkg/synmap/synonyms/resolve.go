package synonyms

import "github.com/cognicore/synmap/pkg/synmap/metrics"

// Resolve rewrites, in place, every entity whose value is a known variant
// and tags it with ProcessorName. Entities that miss are left untouched.
// Order and length of entities never change. Returns the number of rewrites.
func (m *Mapper) Resolve(entities []Entity) int {
	hits := 0
	for i := range entities {
		e := &entities[i]
		canonical, ok := m.Lookup(e.Value)
		if !ok {
			metrics.Resolutions.WithLabelValues(metrics.ResolveMiss).Inc()
			continue
		}
		e.Value = canonical
		e.Processors = append(e.Processors, ProcessorName)
		hits++
		metrics.Resolutions.WithLabelValues(metrics.ResolveHit).Inc()
	}
	return hits
}
