package synonyms

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
	"github.com/cognicore/synmap/pkg/synmap/metrics"
)

// ArtifactRef names a persisted synonym table within a store.
// A nil *ArtifactRef means nothing was persisted.
type ArtifactRef struct {
	File string
}

// Meta is the component metadata written next to a model: {"file": name}
// or {"file": null} when the table was empty.
type Meta struct {
	File *string `json:"file" yaml:"file"`
}

// Meta converts a reference to its metadata form.
func (r *ArtifactRef) Meta() Meta {
	if r == nil || r.File == "" {
		return Meta{}
	}
	file := r.File
	return Meta{File: &file}
}

// Ref converts metadata back to a reference; nil when absent.
func (m Meta) Ref() *ArtifactRef {
	if m.File == nil || *m.File == "" {
		return nil
	}
	return &ArtifactRef{File: *m.File}
}

// Persist writes the table to st as name plus the codec's extension.
// An empty table writes nothing and returns a nil reference.
func (m *Mapper) Persist(ctx context.Context, st artifact.Store, name string) (*ArtifactRef, error) {
	if len(m.table) == 0 {
		return nil, nil
	}
	if st == nil {
		return nil, fmt.Errorf("persist synonyms: no store: %w", internalerr.ErrInvalidInput)
	}

	file := name + m.codec.Ext()
	data, err := m.codec.Encode(m.table)
	if err != nil {
		return nil, fmt.Errorf("encode synonyms: %w", err)
	}
	if err := st.Write(ctx, file, data); err != nil {
		return nil, fmt.Errorf("persist synonyms to %s: %w", file, err)
	}

	m.log.WithFields(logrus.Fields{
		"file":    file,
		"entries": len(m.table),
	}).Debug("synonyms persisted")
	return &ArtifactRef{File: file}, nil
}

// Load restores a mapper persisted by Persist.
//
// A nil reference yields an empty mapper without touching st. A reference
// to a document that is missing, unreadable or undecodable also yields an
// empty mapper, after logging a warning: resolution then never matches
// instead of failing the pipeline. Keys are taken verbatim.
func Load(ctx context.Context, st artifact.Store, ref *ArtifactRef, opts ...Option) *Mapper {
	m := New(opts...)
	if ref == nil || ref.File == "" {
		metrics.TableEntries.Set(0)
		return m
	}

	table, err := readTable(ctx, st, ref.File)
	if err != nil {
		metrics.ArtifactLoadFailures.Inc()
		m.log.WithFields(logrus.Fields{
			"file":  ref.File,
			"error": err.Error(),
		}).Warnf("Failed to load synonyms file from %q.", ref.File)
		metrics.TableEntries.Set(0)
		return m
	}

	for k, v := range table {
		m.table[k] = v
	}
	metrics.TableEntries.Set(float64(len(m.table)))
	return m
}

func readTable(ctx context.Context, st artifact.Store, file string) (map[string]string, error) {
	if st == nil {
		return nil, fmt.Errorf("no store configured for %s: %w", file, internalerr.ErrInvalidInput)
	}
	codec, err := artifact.CodecFor(file)
	if err != nil {
		return nil, err
	}
	data, err := st.Read(ctx, file)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}
