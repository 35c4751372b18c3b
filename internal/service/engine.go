package service

import (
	"sync/atomic"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/generator"
)

// Engine holds the live generator. Reseeding the catalog swaps it while requests keep running
// against the previous one.
type Engine struct {
	current atomic.Pointer[generator.Generator]
	opts    []generator.Option
}

func NewEngine(cat *catalog.Catalog, opts ...generator.Option) *Engine {
	e := &Engine{opts: opts}
	e.SetCatalog(cat)
	return e
}

func (e *Engine) Generator() *generator.Generator {
	return e.current.Load()
}

// SetCatalog replaces the generator with one built on cat and the same options.
func (e *Engine) SetCatalog(cat *catalog.Catalog) {
	e.current.Store(generator.New(cat, e.opts...))
}
