package wikitable

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

// ParseStats counts tokens skipped while parsing one tag cell.
type ParseStats struct {
	MalformedTokens int
}

type separator uint8

const (
	sepNone separator = iota
	sepAnd
	sepOr
)

// comboBuilder accumulates AND-groups. A pending OR makes the next atom
// start a new group; any flush clears it.
type comboBuilder struct {
	combos  []domain.Combination
	current domain.Combination
	pending separator
}

func (b *comboBuilder) flush() {
	if len(b.current) > 0 {
		b.combos = append(b.combos, b.current)
	}
	b.current = nil
	b.pending = sepNone
}

func (b *comboBuilder) add(atoms []domain.TagAtom) {
	if b.pending == sepOr {
		b.flush()
	}
	b.current = append(b.current, atoms...)
	b.pending = sepNone
}

// ParseTagCell turns the inline markup of a tag cell into OR-ed
// combinations of AND-ed atoms.
//
// Only direct children of the cell are inspected: text containing "/" marks
// an OR before the next atom, "+" is an explicit AND, <br> always ends the
// current combination, <code> holds one token, and any other element
// contributes its first direct <code> child. Tokens nested deeper than one
// wrapper are not searched.
func ParseTagCell(cell *html.Node) ([]domain.Combination, ParseStats) {
	var (
		b     comboBuilder
		stats ParseStats
	)
	if cell == nil {
		return nil, stats
	}

	token := func(code *html.Node) {
		text := nodeText(code)
		if text == "" {
			return
		}
		atoms, err := ParseToken(text)
		if err != nil {
			stats.MalformedTokens++
			return
		}
		b.add(atoms)
	}

	for n := cell.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			switch {
			case text == "":
			case strings.Contains(text, "/"):
				b.pending = sepOr
			case strings.Contains(text, "+"):
				b.pending = sepAnd
			}
		case html.ElementNode:
			switch n.Data {
			case "br":
				b.flush()
			case "code":
				token(n)
			default:
				if inner := FirstChild(n, IsElement("code")); inner != nil {
					token(inner)
				}
			}
		}
	}
	b.flush()

	return b.combos, stats
}

// ParseToken parses the text of one tag token. "+"-joined parts become
// separate atoms. A token from which no atom can be read yields an error
// wrapping domain.ErrMalformedTagToken.
func ParseToken(text string) ([]domain.TagAtom, error) {
	if !strings.Contains(text, "=") {
		return nil, fmt.Errorf("%w: %q has no '='", domain.ErrMalformedTagToken, text)
	}

	var atoms []domain.TagAtom
	for part := range strings.SplitSeq(text, "+") {
		if atom, ok := ParseAtom(part); ok {
			atoms = append(atoms, atom)
		}
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%w: %q has no key/value pair", domain.ErrMalformedTagToken, text)
	}
	return atoms, nil
}

// ParseAtom parses a single "key=value" pair. A value of "*" or one that
// starts or ends with "*" is a wildcard; "*" inside a literal is dropped.
func ParseAtom(s string) (domain.TagAtom, bool) {
	key, value, found := strings.Cut(s, "=")
	if !found {
		return domain.TagAtom{}, false
	}
	return domain.NewTagAtom(strings.TrimSpace(key), strings.TrimSpace(value))
}
