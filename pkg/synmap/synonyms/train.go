package synonyms

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/synmap/pkg/synmap/metrics"
)

// Corpus supplies training data.
// DeclaredSynonyms covers the whole corpus and must be available even when
// examples are streamed chunk by chunk.
type Corpus interface {
	DeclaredSynonyms() map[string]string
	EachChunk(ctx context.Context, fn func(chunk []Example) error) error
}

// IngestDeclaredSynonyms registers explicit variant -> canonical pairs.
// Calling it again with overlapping pairs is harmless.
func (m *Mapper) IngestDeclaredSynonyms(pairs map[string]string) {
	for variant, canonical := range pairs {
		m.Register(variant, canonical)
	}
}

// IngestLabeledExamples registers the literal text of every annotated span
// as a variant of the span's value. State accumulates across calls.
// Spans that cover no text are skipped.
func (m *Mapper) IngestLabeledExamples(examples []Example) {
	for _, ex := range examples {
		for _, sp := range ex.Entities {
			surface := ex.SurfaceText(sp)
			if surface == "" {
				continue
			}
			m.Register(surface, sp.Value)
		}
	}
}

// PreparePartialTraining is the first phase of chunked training: it folds in
// the corpus-wide declared synonyms before any chunk is seen.
func (m *Mapper) PreparePartialTraining(pairs map[string]string) {
	m.IngestDeclaredSynonyms(pairs)
}

// TrainChunk folds one chunk of labeled examples into the table.
func (m *Mapper) TrainChunk(examples []Example) {
	m.IngestLabeledExamples(examples)
}

// Train builds the table from a corpus: declared synonyms first, then every
// chunk in the order the corpus yields them. Conflicting chunks resolve by
// last write wins, so chunk order decides the winner.
func (m *Mapper) Train(ctx context.Context, corpus Corpus) error {
	m.runID = ulid.Make().String()
	defer func() { m.runID = "" }()

	log := m.log.WithField("run_id", m.runID)
	log.WithField("entries", m.Len()).Debug("synonym training started")

	m.PreparePartialTraining(corpus.DeclaredSynonyms())

	chunks := 0
	err := corpus.EachChunk(ctx, func(chunk []Example) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.TrainChunk(chunk)
		chunks++
		return nil
	})
	if err != nil {
		return fmt.Errorf("train synonyms after %d chunks: %w", chunks, err)
	}

	metrics.TableEntries.Set(float64(m.Len()))
	log.WithFields(logrus.Fields{
		"entries":   m.Len(),
		"chunks":    chunks,
		"conflicts": len(m.conflicts),
	}).Info("synonym training finished")
	return nil
}
