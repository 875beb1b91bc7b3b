// Package compiler turns parsed table entries into the renderer-neutral
// domain.Artifact: the category enumeration, the field registry and the
// ordered match conditions.
package compiler

import (
	"errors"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/ident"
)

// Report describes what compilation kept and what it dropped.
type Report struct {
	Entries int
	Rules   int
	Fields  int
	Dropped []*domain.DropError
}

// DroppedBy counts drops of the given kind.
func (r Report) DroppedBy(kind error) int {
	n := 0
	for _, d := range r.Dropped {
		if errors.Is(d, kind) {
			n++
		}
	}
	return n
}

// DeriveRule attaches identifiers to an entry.
func DeriveRule(e domain.Entry) domain.Rule {
	src := e.NameSource()
	return domain.Rule{
		NameSource:   src,
		EnumName:     ident.Symbol(src),
		StringName:   ident.Slug(src),
		Combinations: e.Combinations,
	}
}

// Compile builds the artifact for entries given in table order.
//
// Table order is match priority. A rule whose enum name was already taken by
// an earlier rule or by one of the synthetic categories is dropped whole; so is a rule none of whose combinations
// compile to a condition. Neither case is an error: both are listed in the
// returned Report.
func Compile(entries []domain.Entry) (*domain.Artifact, Report) {
	reg := NewRegistry(entries)
	report := Report{Entries: len(entries), Fields: reg.Len()}

	art := &domain.Artifact{
		Categories: []domain.Category{{EnumName: domain.NoneEnumName, StringName: domain.NoneStringName}},
		Fields:     reg.Fields(),
	}

	seen := make(map[string]struct{}, len(entries)+2)
	seen[domain.NoneEnumName] = struct{}{}
	seen[domain.ExtraEnumName] = struct{}{}
	for _, e := range entries {
		rule := DeriveRule(e)

		if _, dup := seen[rule.EnumName]; dup {
			report.Dropped = append(report.Dropped,
				domain.NewDropError(domain.ErrIdentifierCollision, rule.NameSource, rule.EnumName+" already declared"))
			continue
		}
		seen[rule.EnumName] = struct{}{}

		cond, drops := compileRule(rule, reg)
		report.Dropped = append(report.Dropped, drops...)
		if len(cond.Terms) == 0 {
			report.Dropped = append(report.Dropped,
				domain.NewDropError(domain.ErrEmptyRule, rule.NameSource, "no combination compiled to a condition"))
			continue
		}

		art.Categories = append(art.Categories, domain.Category{
			EnumName:   rule.EnumName,
			StringName: rule.StringName,
			NameSource: rule.NameSource,
		})
		art.Conditions = append(art.Conditions, cond)
	}

	art.Categories = append(art.Categories, domain.Category{EnumName: domain.ExtraEnumName, StringName: domain.ExtraStringName})
	report.Rules = len(art.Conditions)

	return art, report
}

func compileRule(rule domain.Rule, reg *Registry) (domain.Condition, []*domain.DropError) {
	cond := domain.Condition{EnumName: rule.EnumName, NameSource: rule.NameSource}
	var drops []*domain.DropError

	for _, combo := range rule.Combinations {
		term := compileCombination(combo, reg)
		if len(term) == 0 {
			drops = append(drops, domain.NewDropError(domain.ErrEmptyCombination, rule.NameSource, combo.String()))
			continue
		}
		cond.Terms = append(cond.Terms, term)
	}
	return cond, drops
}

func compileCombination(combo domain.Combination, reg *Registry) domain.Term {
	var term domain.Term
	for _, atom := range combo {
		atom, ok := normalizeAtom(atom)
		if !ok {
			continue
		}
		slot, ok := reg.Slot(atom.Key)
		if !ok {
			continue
		}
		if atom.Wildcard {
			term = append(term, domain.Predicate{Slot: slot, Key: atom.Key, Op: domain.OpPresent})
			continue
		}
		term = append(term, domain.Predicate{Slot: slot, Key: atom.Key, Op: domain.OpEquals, Value: atom.Value})
	}
	return term
}

// normalizeAtom re-applies the wildcard rules to atoms that did not come
// from the table parser.
func normalizeAtom(a domain.TagAtom) (domain.TagAtom, bool) {
	if a.Wildcard {
		return domain.TagAtom{Key: a.Key, Wildcard: true}, a.Key != ""
	}
	return domain.NewTagAtom(a.Key, a.Value)
}
