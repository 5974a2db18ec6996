// Package models declares the kanban board's persisted types and the
// registry the schema tools drop and create tables from.
package models

import (
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
)

// Registry is an ordered set of model values. Order matters: a model must be
// registered after every model it references.
type Registry struct {
	mu     sync.RWMutex
	models []any
	seen   map[reflect.Type]struct{}
}

// NewRegistry returns a registry holding models in the given order.
func NewRegistry(models ...any) *Registry {
	r := &Registry{seen: make(map[reflect.Type]struct{})}
	r.Register(models...)
	return r
}

// Register appends models that are not yet known. A model is identified by
// its struct type, so &Task{} and Task{} are the same entry.
func (r *Registry) Register(models ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range models {
		t := reflect.TypeOf(m)
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil {
			continue
		}
		if _, ok := r.seen[t]; ok {
			continue
		}
		r.seen[t] = struct{}{}
		r.models = append(r.models, m)
	}
}

// Models returns the registered models, parents first.
func (r *Registry) Models() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]any, len(r.models))
	copy(out, r.models)
	return out
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// TableNames resolves each model to its table name using db's naming strategy.
func (r *Registry) TableNames(db *gorm.DB) ([]string, error) {
	models := r.Models()
	names := make([]string, 0, len(models))
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", m, err)
		}
		names = append(names, stmt.Schema.Table)
	}
	return names, nil
}
