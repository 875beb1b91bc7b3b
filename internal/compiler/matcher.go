package compiler

import (
	"iter"
	"maps"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

// Matcher evaluates an Artifact against a tag collection the same way the
// generated classifier does: one extraction pass, then conditions in order.
type Matcher struct {
	art   *domain.Artifact
	slots map[string]int
}

// NewMatcher prepares art for evaluation. art must not be modified afterwards.
func NewMatcher(art *domain.Artifact) *Matcher {
	slots := make(map[string]int, len(art.Fields))
	for _, f := range art.Fields {
		slots[f.Key] = f.Slot
	}
	return &Matcher{art: art, slots: slots}
}

// Extract reads tags once and returns the value of every registered field by
// slot. Unregistered keys are ignored; a repeated key keeps its last value.
func (m *Matcher) Extract(tags iter.Seq2[string, string]) []string {
	values := make([]string, len(m.art.Fields))
	for k, v := range tags {
		if slot, ok := m.slots[k]; ok {
			values[slot] = v
		}
	}
	return values
}

// Classify returns the index and category of the first matching condition,
// or none when no condition matches.
func (m *Matcher) Classify(tags iter.Seq2[string, string]) (int, domain.Category) {
	values := m.Extract(tags)
	for i, cond := range m.art.Conditions {
		if matchCondition(cond, values) {
			return i + 1, m.art.Categories[i+1]
		}
	}
	return 0, m.art.Categories[0]
}

// ClassifyMap is Classify over a plain map.
func (m *Matcher) ClassifyMap(tags map[string]string) (int, domain.Category) {
	return m.Classify(maps.All(tags))
}

func matchCondition(cond domain.Condition, values []string) bool {
	for _, term := range cond.Terms {
		if matchTerm(term, values) {
			return true
		}
	}
	return false
}

func matchTerm(term domain.Term, values []string) bool {
	for _, p := range term {
		v := values[p.Slot]
		switch p.Op {
		case domain.OpPresent:
			if v == "" {
				return false
			}
		case domain.OpEquals:
			if v != p.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}
