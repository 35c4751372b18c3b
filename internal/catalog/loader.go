package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"alcyxob/workout-planner/internal/domain"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// file is the on-disk layout of a catalog document.
type file struct {
	Exercises []domain.Exercise `yaml:"exercises"`
}

// Load parses a YAML catalog document and validates it. Unknown keys are rejected so that a
// misspelled field does not silently drop data.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc file
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Exercises)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(bytes.NewReader(defaultCatalogYAML))
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for callers that cannot recover from a broken build.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Marshal renders exercises back into the catalog document format.
func Marshal(w io.Writer, exercises []domain.Exercise) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file{Exercises: exercises}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// Lister is a stored copy of the catalog, such as the exercises collection.
type Lister interface {
	List(ctx context.Context) ([]domain.Exercise, error)
}

// FromLister builds a catalog from a stored copy.
func FromLister(ctx context.Context, l Lister) (*Catalog, error) {
	exercises, err := l.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("%w: no stored exercises", ErrInvalidCatalog)
	}
	return New(exercises)
}
