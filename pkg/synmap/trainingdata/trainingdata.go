package trainingdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/synmap/pkg/synmap/internalerr"
	"github.com/cognicore/synmap/pkg/synmap/synonyms"
)

// File is the on-disk training data layout.
//
// Expected format:
//
//	synonyms:
//	  - canonical: New York City
//	    variants: [NYC, the big apple]
//	examples:
//	  - text: I flew to NYC
//	    entities:
//	      - {start: 10, end: 13, entity: city, value: New York City}
//
// JSON files use the same keys.
type File struct {
	Synonyms []SynonymGroup     `json:"synonyms" yaml:"synonyms"`
	Examples []synonyms.Example `json:"examples" yaml:"examples"`
}

// SynonymGroup declares several variants of one canonical value.
type SynonymGroup struct {
	Canonical string   `json:"canonical" yaml:"canonical"`
	Variants  []string `json:"variants" yaml:"variants"`
}

// Corpus is an in-memory training corpus split into chunks.
// It implements synonyms.Corpus.
type Corpus struct {
	declared  map[string]string
	source    map[string]string // variant -> file that declared it last
	conflicts []synonyms.Conflict
	chunks    [][]synonyms.Example
}

// Options controls corpus loading.
type Options struct {
	ChunkSize int // examples per chunk; 0 keeps each file as one chunk
	Logger    logrus.FieldLogger
}

// LoadFiles reads one or more training files. Declared synonyms from all
// files are merged up front, later files winning; a variant redeclared
// under a different canonical value is logged as a conflict. Examples are
// chunked file by file so no chunk spans two files.
func LoadFiles(paths []string, opts Options) (*Corpus, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no training files: %w", internalerr.ErrInvalidInput)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	c := &Corpus{
		declared: make(map[string]string),
		source:   make(map[string]string),
	}
	for _, path := range paths {
		f, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		for _, conflict := range f.Conflicts() {
			c.conflicts = append(c.conflicts, conflict)
			log.WithFields(logrus.Fields{
				"file":        path,
				"variant":     conflict.Variant,
				"previous":    conflict.Previous,
				"replacement": conflict.Replacement,
			}).Warn("variant declared under more than one canonical value")
		}
		for variant, canonical := range f.DeclaredPairs() {
			if prev, ok := c.declared[variant]; ok && prev != canonical {
				conflict := synonyms.Conflict{Variant: variant, Previous: prev, Replacement: canonical}
				c.conflicts = append(c.conflicts, conflict)
				log.WithFields(logrus.Fields{
					"file":          path,
					"previous_file": c.source[variant],
					"variant":       variant,
					"previous":      prev,
					"replacement":   canonical,
				}).Warn("variant declared under different canonical values in two files")
			}
			c.declared[variant] = canonical
			c.source[variant] = path
		}
		examples := validExamples(f.Examples, log.WithField("file", path))
		c.chunks = append(c.chunks, Split(examples, opts.ChunkSize)...)
	}
	return c, nil
}

// ReadFile parses a single YAML or JSON training file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf("training data %s: %w", path, internalerr.ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// DeclaredPairs flattens synonym groups into variant -> canonical pairs.
// Later groups win for a repeated variant. Such repeats never reach the
// mapper as conflicts; use Conflicts to report them.
func (f *File) DeclaredPairs() map[string]string {
	pairs := make(map[string]string)
	for _, g := range f.Synonyms {
		for _, v := range g.Variants {
			pairs[v] = g.Canonical
		}
	}
	return pairs
}

// Conflicts lists variants declared under more than one canonical value.
func (f *File) Conflicts() []synonyms.Conflict {
	seen := make(map[string]string)
	var out []synonyms.Conflict
	for _, g := range f.Synonyms {
		for _, v := range g.Variants {
			if prev, ok := seen[v]; ok && prev != g.Canonical {
				out = append(out, synonyms.Conflict{Variant: v, Previous: prev, Replacement: g.Canonical})
			}
			seen[v] = g.Canonical
		}
	}
	return out
}

// DeclaredSynonyms implements synonyms.Corpus.
func (c *Corpus) DeclaredSynonyms() map[string]string {
	return c.declared
}

// Conflicts lists declared variants that were overwritten while merging,
// inside one file or across files, in load order.
func (c *Corpus) Conflicts() []synonyms.Conflict {
	return c.conflicts
}

// EachChunk implements synonyms.Corpus.
func (c *Corpus) EachChunk(ctx context.Context, fn func([]synonyms.Example) error) error {
	for _, chunk := range c.chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// NumChunks returns the number of chunks.
func (c *Corpus) NumChunks() int {
	return len(c.chunks)
}

// NumExamples returns the number of examples across all chunks.
func (c *Corpus) NumExamples() int {
	n := 0
	for _, chunk := range c.chunks {
		n += len(chunk)
	}
	return n
}

// Split partitions examples into chunks of at most size.
// size <= 0 yields a single chunk; no examples yields no chunks.
func Split(examples []synonyms.Example, size int) [][]synonyms.Example {
	if len(examples) == 0 {
		return nil
	}
	if size <= 0 || size >= len(examples) {
		return [][]synonyms.Example{examples}
	}
	chunks := make([][]synonyms.Example, 0, (len(examples)+size-1)/size)
	for start := 0; start < len(examples); start += size {
		end := start + size
		if end > len(examples) {
			end = len(examples)
		}
		chunks = append(chunks, examples[start:end])
	}
	return chunks
}

// validExamples drops spans whose offsets do not fit their text.
// The example itself is kept so other spans still train.
func validExamples(examples []synonyms.Example, log logrus.FieldLogger) []synonyms.Example {
	out := make([]synonyms.Example, 0, len(examples))
	for i, ex := range examples {
		n := utf8.RuneCountInString(ex.Text)
		kept := ex.Entities[:0:0]
		for _, sp := range ex.Entities {
			if sp.Start < 0 || sp.End > n || sp.Start >= sp.End {
				log.WithFields(logrus.Fields{
					"example": i,
					"start":   sp.Start,
					"end":     sp.End,
					"length":  n,
				}).Warn("dropping entity span with invalid offsets")
				continue
			}
			kept = append(kept, sp)
		}
		ex.Entities = kept
		out = append(out, ex)
	}
	return out
}

var _ synonyms.Corpus = (*Corpus)(nil)
