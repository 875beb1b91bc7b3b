package domain

import (
	"fmt"
	"strings"
)

// Synthetic categories surrounding the generated rules.
const (
	NoneEnumName    = "kNone"
	NoneStringName  = "none"
	ExtraEnumName   = "kExtra"
	ExtraStringName = "extra"
)

// TagAtom is a single key/value condition taken from one tag token.
// Wildcard atoms match any non-empty value; Value is empty for them.
type TagAtom struct {
	Key      string `json:"key"                yaml:"key"`
	Value    string `json:"value,omitempty"    yaml:"value,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
}

// WildcardMarker marks "any value" in a tag value.
const WildcardMarker = "*"

// NewTagAtom builds an atom from a trimmed key and value. A value of "*", or
// one starting or ending with "*", yields a wildcard; "*" inside a literal
// is removed. ok is false when key or the resulting literal is empty.
func NewTagAtom(key, value string) (TagAtom, bool) {
	if key == "" || value == "" {
		return TagAtom{}, false
	}
	if strings.HasPrefix(value, WildcardMarker) || strings.HasSuffix(value, WildcardMarker) {
		return TagAtom{Key: key, Wildcard: true}, true
	}
	value = strings.ReplaceAll(value, WildcardMarker, "")
	if value == "" {
		return TagAtom{}, false
	}
	return TagAtom{Key: key, Value: value}, true
}

// String renders the atom in the table's own key=value notation.
func (a TagAtom) String() string {
	if a.Wildcard {
		return a.Key + "=*"
	}
	return a.Key + "=" + a.Value
}

// Combination is an AND-group of atoms.
type Combination []TagAtom

func (c Combination) String() string {
	parts := make([]string, len(c))
	for i, a := range c {
		parts[i] = a.String()
	}
	return strings.Join(parts, " + ")
}

// Entry is one table row after its tag cell has been parsed.
// Combinations are OR-ed; the slice order is table order.
type Entry struct {
	IconRef      string
	Description  string
	Combinations []Combination
}

// NameSource returns the string identifiers are derived from:
// the icon reference when present, the description otherwise.
func (e Entry) NameSource() string {
	if e.IconRef != "" {
		return e.IconRef
	}
	return e.Description
}

// HasAtoms reports whether any combination carries at least one atom.
func (e Entry) HasAtoms() bool {
	for _, c := range e.Combinations {
		if len(c) > 0 {
			return true
		}
	}
	return false
}

// Rule is an Entry with derived identifiers attached.
type Rule struct {
	NameSource   string
	EnumName     string
	StringName   string
	Combinations []Combination
}

// Category is one member of the generated enumeration.
type Category struct {
	EnumName   string `json:"enum_name"             yaml:"enum_name"`
	StringName string `json:"string_name"           yaml:"string_name"`
	NameSource string `json:"name_source,omitempty" yaml:"name_source,omitempty"`
}

// Field is a tag key registered for one-pass extraction.
type Field struct {
	Slot  int    `json:"slot"  yaml:"slot"`
	Key   string `json:"key"   yaml:"key"`
	Ident string `json:"ident" yaml:"ident"`
}

// PredOp is the comparison a Predicate performs on an extracted field.
type PredOp uint8

const (
	OpPresent PredOp = iota + 1
	OpEquals
)

func (o PredOp) String() string {
	switch o {
	case OpPresent:
		return "present"
	case OpEquals:
		return "equals"
	default:
		return fmt.Sprintf("PredOp(%d)", uint8(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o PredOp) MarshalText() ([]byte, error) {
	switch o {
	case OpPresent, OpEquals:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("unknown predicate op %d", uint8(o))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *PredOp) UnmarshalText(b []byte) error {
	switch string(b) {
	case "present":
		*o = OpPresent
	case "equals":
		*o = OpEquals
	default:
		return fmt.Errorf("unknown predicate op %q", string(b))
	}
	return nil
}

// Predicate tests a single extracted field.
type Predicate struct {
	Slot  int    `json:"slot"            yaml:"slot"`
	Key   string `json:"key"             yaml:"key"`
	Op    PredOp `json:"op"              yaml:"op"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Term is a conjunction of predicates compiled from one Combination.
type Term []Predicate

// Condition is the compiled OR of a rule's terms.
type Condition struct {
	EnumName   string `json:"enum_name"   yaml:"enum_name"`
	NameSource string `json:"name_source" yaml:"name_source"`
	Terms      []Term `json:"terms"       yaml:"terms"`
}

// Artifact is the renderer-neutral output of rule compilation.
//
// Categories[0] is always none and the last category is always extra;
// Conditions[i] belongs to Categories[i+1]. Condition order is match priority.
type Artifact struct {
	Categories []Category  `json:"categories" yaml:"categories"`
	Fields     []Field     `json:"fields"     yaml:"fields"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
}

// RuleCount returns the number of generated (non-synthetic) categories.
func (a *Artifact) RuleCount() int {
	return len(a.Conditions)
}

// CategoryByString looks a category up by its string name.
func (a *Artifact) CategoryByString(name string) (int, Category, bool) {
	for i, c := range a.Categories {
		if c.StringName == name {
			return i, c, true
		}
	}
	return 0, Category{}, false
}
