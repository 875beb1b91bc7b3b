// Package ident derives stable identifiers from icon references and
// descriptions. Every function is pure and total: bad input degrades to the
// most sanitized string available instead of failing.
package ident

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SymbolPrefix is prepended to every symbol produced by Symbol.
const SymbolPrefix = "k"

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	sizePrefixRe = regexp.MustCompile(`^\d+px-`)
	extensionRe  = regexp.MustCompile(`(?i)\.(svg|png|gif)$`)
	sizeSuffixRe = regexp.MustCompile(`[-_.\s](\d+)(px)?$`)
	svgTailRe    = regexp.MustCompile(`(_svg)+$`)
	pxSuffixRe   = regexp.MustCompile(`_(\d+)px$`)
)

// cleanup lowercases text and folds every run of non-alphanumerics into a
// single underscore, trimming underscores at both ends.
func cleanup(text string) string {
	s := strings.ToLower(text)
	s = nonAlnumRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Slug maps text to a lowercase snake_case identifier.
// If nothing alphanumeric survives, the lowercased input is returned as is.
func Slug(text string) string {
	if s := cleanup(text); s != "" {
		return s
	}
	return strings.ToLower(text)
}

// Symbol maps text to a prefixed CamelCase name, e.g. "fire_hydrant" to
// "kFireHydrant". Text without ASCII alphanumerics yields "kUnnamed"; if it
// still has letters or digits of another script, the hex of its slug is
// appended so distinct names stay distinct ("Кафе" to "kUnnamedD0BAD0B0D184D0B5").
func Symbol(text string) string {
	s := cleanup(text)
	if s == "" {
		if !hasWordRune(text) {
			return SymbolPrefix + unnamed
		}
		return SymbolPrefix + unnamed + strings.ToUpper(hex.EncodeToString([]byte(Slug(text))))
	}

	var b strings.Builder
	b.Grow(len(SymbolPrefix) + len(s))
	b.WriteString(SymbolPrefix)
	for _, word := range strings.Split(s, "_") {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

const unnamed = "Unnamed"

func hasWordRune(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// IconName normalizes a wiki icon reference (file page link or image URL)
// to a bare name without path, query, "NNpx-" size prefix, "File:" prefix,
// image extensions or trailing size suffixes.
func IconName(raw string) string {
	if raw == "" {
		return ""
	}

	name := raw[strings.LastIndex(raw, "/")+1:]
	name, _, _ = strings.Cut(name, "?")

	name = sizePrefixRe.ReplaceAllString(name, "")
	name = strings.TrimPrefix(name, "File:")

	// "Foo.svg.png" thumbnails carry two extensions.
	name = stripRepeated(name, extensionRe)
	name = stripRepeated(name, sizeSuffixRe)

	return name
}

func stripRepeated(s string, re *regexp.Regexp) string {
	for {
		stripped := re.ReplaceAllString(s, "")
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// CleanupBasename strips "_svg" markers and "px" size units from a slug
// used as an icon file name. An empty result falls back to name.
func CleanupBasename(name string) string {
	cleaned := svgTailRe.ReplaceAllString(name, "")
	cleaned = strings.ReplaceAll(cleaned, "_svg_", "_")
	cleaned = pxSuffixRe.ReplaceAllString(cleaned, "_$1")
	cleaned = strings.TrimRight(cleaned, "_")
	if cleaned == "" {
		return name
	}
	return cleaned
}

// FieldIdent maps a tag key such as "addr:street" or "sport-type" to a
// name usable as a struct member or variable ("addr_street", "sport_type").
func FieldIdent(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}

	s := b.String()
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}

// Disambiguate returns base unless it is already in seen, in which case a
// numeric suffix is appended. The chosen name is added to seen.
func Disambiguate(base string, seen map[string]struct{}) string {
	name := base
	for n := 2; ; n++ {
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			return name
		}
		name = base + "_" + strconv.Itoa(n)
	}
}
