package compiler

import (
	"slices"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/ident"
)

// Registry assigns every distinct tag key a stable slot. Keys are sorted, so
// the same rule set always yields the same slots.
type Registry struct {
	fields []domain.Field
	slots  map[string]int
}

// NewRegistry collects the keys of every atom in entries.
func NewRegistry(entries []domain.Entry) *Registry {
	seen := make(map[string]struct{})
	var keys []string
	for _, e := range entries {
		for _, combo := range e.Combinations {
			for _, atom := range combo {
				atom, ok := normalizeAtom(atom)
				if !ok {
					continue
				}
				if _, ok := seen[atom.Key]; ok {
					continue
				}
				seen[atom.Key] = struct{}{}
				keys = append(keys, atom.Key)
			}
		}
	}
	slices.Sort(keys)

	r := &Registry{
		fields: make([]domain.Field, len(keys)),
		slots:  make(map[string]int, len(keys)),
	}
	idents := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		r.fields[i] = domain.Field{
			Slot:  i,
			Key:   k,
			Ident: ident.Disambiguate(ident.FieldIdent(k), idents),
		}
		r.slots[k] = i
	}
	return r
}

// Slot returns the slot of key.
func (r *Registry) Slot(key string) (int, bool) {
	s, ok := r.slots[key]
	return s, ok
}

// Fields returns the registered fields ordered by slot.
func (r *Registry) Fields() []domain.Field {
	return slices.Clone(r.fields)
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.fields)
}
