// Package yaml reads seed knowledge files.
package yaml

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/aivi"
	"gopkg.in/yaml.v3"
)

// DefaultConfidence is used for seed records that do not set one.
const DefaultConfidence = 0.9

//go:embed default.yaml
var defaultSeed []byte

// Seed is the content of a seed file.
type Seed struct {
	Records []SeedRecord `yaml:"records"`
}

// SeedRecord is one knowledge record in a seed file.
type SeedRecord struct {
	Category   string   `yaml:"category"`
	Question   string   `yaml:"question"`
	Answer     string   `yaml:"answer"`
	Keywords   []string `yaml:"keywords"`
	Source     string   `yaml:"source"`
	Confidence *float64 `yaml:"confidence"`
}

// Record converts r into a knowledge record, applying defaults.
func (r SeedRecord) Record() *aivi.KnowledgeRecord {
	rec := &aivi.KnowledgeRecord{
		Category:   r.Category,
		Question:   r.Question,
		Answer:     r.Answer,
		Keywords:   r.Keywords,
		Source:     r.Source,
		Confidence: DefaultConfidence,
	}
	if rec.Source == "" {
		rec.Source = aivi.RecordSourceBuiltin
	}
	if r.Confidence != nil {
		rec.Confidence = *r.Confidence
	}
	return rec
}

// ParseSeed decodes a seed document. Unknown fields and invalid records are
// rejected with EINVALID.
func ParseSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}
		return nil, aivi.Errorf(aivi.EINVALID, "invalid seed file: %v", err)
	}
	for i, r := range seed.Records {
		if err := r.Record().Validate(); err != nil {
			return nil, aivi.Errorf(aivi.EINVALID, "seed record %d: %s", i+1, aivi.ErrorMessage(err))
		}
	}
	return &seed, nil
}

// LoadSeed reads and decodes the seed file at path.
func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, aivi.Errorf(aivi.ENOTFOUND, "seed file not found: %s", path)
		}
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// DefaultSeed returns the built-in seed.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(bytes.NewReader(defaultSeed))
}

// Import stores the records of seed that are not in knowledge yet. A record
// is present when a record with the same category and question exists.
// Returns the number of records created.
func Import(ctx context.Context, knowledge aivi.KnowledgeService, seed *Seed) (int, error) {
	existing, err := knowledge.FindRecords(ctx, aivi.RecordFilter{})
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seen[key(rec)] = true
	}

	var created int
	for _, r := range seed.Records {
		rec := r.Record()
		k := key(rec)
		if seen[k] {
			continue
		}
		if err := knowledge.CreateRecord(ctx, rec); err != nil {
			return created, fmt.Errorf("create record %q: %w", rec.Question, err)
		}
		seen[k] = true
		created++
	}
	return created, nil
}

func key(rec *aivi.KnowledgeRecord) string {
	return aivi.NormalizeQuery(rec.Category) + "\x00" + aivi.NormalizeQuery(rec.Question)
}
