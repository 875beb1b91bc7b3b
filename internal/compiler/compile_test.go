package compiler

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/wikitable"
)

func eq(k, v string) domain.TagAtom { return domain.TagAtom{Key: k, Value: v} }
func wild(k string) domain.TagAtom  { return domain.TagAtom{Key: k, Wildcard: true} }

func combos(cs ...domain.Combination) []domain.Combination { return cs }

func enumNames(a *domain.Artifact) []string {
	out := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		out[i] = c.EnumName
	}
	return out
}

func fixtureEntries(t *testing.T) []domain.Entry {
	t.Helper()
	f, err := os.Open("../wikitable/testdata/categories.html")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	entries, _, err := wikitable.ExtractEntries(f)
	require.NoError(t, err)
	return entries
}

func TestCompile_Fixture(t *testing.T) {
	t.Parallel()

	art, report := Compile(fixtureEntries(t))

	assert.Equal(t, []string{
		"kNone",
		"kRestaurant",
		"kFireHydrant",
		"kVendingParking",
		"kShopAny",
		"kExtra",
	}, enumNames(art))

	assert.Equal(t, 5, report.Entries)
	assert.Equal(t, 4, report.Rules)
	require.Len(t, report.Dropped, 1)
	assert.ErrorIs(t, report.Dropped[0], domain.ErrIdentifierCollision)
	assert.Equal(t, "Fire-hydrant", report.Dropped[0].NameSource)

	// The first declaration wins.
	fire := art.Conditions[1]
	assert.Equal(t, "Fire_hydrant", fire.NameSource)
	require.Len(t, fire.Terms, 2)
	assert.Equal(t, "fire_hydrant", fire.Terms[0][0].Value)
}

func TestCompile_SyntheticCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []domain.Entry
	}{
		{name: "no entries", entries: nil},
		{name: "one entry", entries: []domain.Entry{
			{IconRef: "Bench", Combinations: combos(domain.Combination{eq("amenity", "bench")})},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			art, _ := Compile(tt.entries)
			require.GreaterOrEqual(t, len(art.Categories), 2)

			first, last := art.Categories[0], art.Categories[len(art.Categories)-1]
			assert.Equal(t, domain.Category{EnumName: "kNone", StringName: "none"}, first)
			assert.Equal(t, domain.Category{EnumName: "kExtra", StringName: "extra"}, last)
			assert.Len(t, art.Conditions, len(art.Categories)-2)
		})
	}
}

func TestCompile_Predicates(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		{
			IconRef: "Shop",
			Combinations: combos(
				domain.Combination{wild("shop")},
				domain.Combination{eq("amenity", "vending_machine"), eq("vending", "parking_tickets")},
			),
		},
	}

	art, report := Compile(entries)
	require.Empty(t, report.Dropped)

	wantFields := []domain.Field{
		{Slot: 0, Key: "amenity", Ident: "amenity"},
		{Slot: 1, Key: "shop", Ident: "shop"},
		{Slot: 2, Key: "vending", Ident: "vending"},
	}
	if diff := cmp.Diff(wantFields, art.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	want := []domain.Condition{{
		EnumName:   "kShop",
		NameSource: "Shop",
		Terms: []domain.Term{
			{{Slot: 1, Key: "shop", Op: domain.OpPresent}},
			{
				{Slot: 0, Key: "amenity", Op: domain.OpEquals, Value: "vending_machine"},
				{Slot: 2, Key: "vending", Op: domain.OpEquals, Value: "parking_tickets"},
			},
		},
	}}
	if diff := cmp.Diff(want, art.Conditions); diff != "" {
		t.Errorf("conditions mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_NoLiteralWildcard(t *testing.T) {
	t.Parallel()

	// Atoms built by hand may still carry raw markers.
	entries := []domain.Entry{
		{IconRef: "A", Combinations: combos(domain.Combination{eq("shop", "*")})},
		{IconRef: "B", Combinations: combos(domain.Combination{eq("name", "foo*bar")})},
	}

	art, report := Compile(entries)
	require.Empty(t, report.Dropped)
	require.Len(t, art.Conditions, 2)

	assert.Equal(t, domain.OpPresent, art.Conditions[0].Terms[0][0].Op)
	assert.Empty(t, art.Conditions[0].Terms[0][0].Value)
	assert.Equal(t, "foobar", art.Conditions[1].Terms[0][0].Value)

	for _, cond := range art.Conditions {
		for _, term := range cond.Terms {
			for _, p := range term {
				assert.NotContains(t, p.Value, "*")
			}
		}
	}
}

func TestCompile_Drops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		entries   []domain.Entry
		wantEnums []string
		wantKinds map[error]int
	}{
		{
			name: "empty combination dropped, rule kept",
			entries: []domain.Entry{{
				IconRef: "Bench",
				Combinations: combos(
					domain.Combination{eq("leisure", "")},
					domain.Combination{eq("amenity", "bench")},
				),
			}},
			wantEnums: []string{"kNone", "kBench", "kExtra"},
			wantKinds: map[error]int{domain.ErrEmptyCombination: 1, domain.ErrEmptyRule: 0},
		},
		{
			name: "rule without conditions dropped",
			entries: []domain.Entry{{
				IconRef:      "Ghost",
				Combinations: combos(domain.Combination{eq("", "x")}, domain.Combination{}),
			}},
			wantEnums: []string{"kNone", "kExtra"},
			wantKinds: map[error]int{domain.ErrEmptyCombination: 2, domain.ErrEmptyRule: 1},
		},
		{
			name: "collision keeps the first",
			entries: []domain.Entry{
				{IconRef: "Fire_hydrant", Combinations: combos(domain.Combination{eq("emergency", "fire_hydrant")})},
				{IconRef: "fire hydrant", Combinations: combos(domain.Combination{eq("emergency", "suction_point")})},
			},
			wantEnums: []string{"kNone", "kFireHydrant", "kExtra"},
			wantKinds: map[error]int{domain.ErrIdentifierCollision: 1},
		},
		{
			name: "synthetic names are reserved",
			entries: []domain.Entry{
				{Description: "None", Combinations: combos(domain.Combination{eq("amenity", "none")})},
				{IconRef: "Extra", Combinations: combos(domain.Combination{eq("amenity", "extra")})},
				{IconRef: "Bench", Combinations: combos(domain.Combination{eq("amenity", "bench")})},
			},
			wantEnums: []string{"kNone", "kBench", "kExtra"},
			wantKinds: map[error]int{domain.ErrIdentifierCollision: 2},
		},
		{
			name: "non-latin names stay apart",
			entries: []domain.Entry{
				{Description: "Кафе", Combinations: combos(domain.Combination{eq("amenity", "cafe")})},
				{Description: "Бар", Combinations: combos(domain.Combination{eq("amenity", "bar")})},
			},
			wantEnums: []string{"kNone", "kUnnamedD0BAD0B0D184D0B5", "kUnnamedD0B1D0B0D180", "kExtra"},
			wantKinds: map[error]int{domain.ErrIdentifierCollision: 0},
		},
		{
			name: "entry without name falls back to kUnnamed",
			entries: []domain.Entry{
				{Description: "***", Combinations: combos(domain.Combination{eq("a", "b")})},
				{Description: "()", Combinations: combos(domain.Combination{eq("c", "d")})},
			},
			wantEnums: []string{"kNone", "kUnnamed", "kExtra"},
			wantKinds: map[error]int{domain.ErrIdentifierCollision: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			art, report := Compile(tt.entries)
			assert.Equal(t, tt.wantEnums, enumNames(art))
			for kind, n := range tt.wantKinds {
				assert.Equal(t, n, report.DroppedBy(kind), "drops of %v", kind)
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	entries := fixtureEntries(t)
	first, _ := Compile(entries)
	second, _ := Compile(entries)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("compile not deterministic:\n%s", diff)
	}
}

func TestCompile_UniqueEnumNames(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		{IconRef: "A-b", Combinations: combos(domain.Combination{eq("k", "1")})},
		{IconRef: "a_b", Combinations: combos(domain.Combination{eq("k", "2")})},
		{IconRef: "A B", Combinations: combos(domain.Combination{eq("k", "3")})},
		{IconRef: "C", Combinations: combos(domain.Combination{eq("k", "4")})},
		{Description: "none", Combinations: combos(domain.Combination{eq("k", "5")})},
		{Description: "EXTRA", Combinations: combos(domain.Combination{eq("k", "6")})},
	}

	art, report := Compile(entries)
	seenEnum := make(map[string]bool)
	seenString := make(map[string]bool)
	for _, c := range art.Categories {
		assert.False(t, seenEnum[c.EnumName], "duplicate %s", c.EnumName)
		assert.False(t, seenString[c.StringName], "duplicate %s", c.StringName)
		seenEnum[c.EnumName] = true
		seenString[c.StringName] = true
	}
	assert.Equal(t, 4, report.DroppedBy(domain.ErrIdentifierCollision))
}

func TestDeriveRule(t *testing.T) {
	t.Parallel()

	rule := DeriveRule(domain.Entry{Description: "Shop (any)"})
	assert.Equal(t, "Shop (any)", rule.NameSource)
	assert.Equal(t, "kShopAny", rule.EnumName)
	assert.Equal(t, "shop_any", rule.StringName)

	rule = DeriveRule(domain.Entry{IconRef: "Fire_hydrant", Description: "ignored"})
	assert.Equal(t, "kFireHydrant", rule.EnumName)
	assert.Equal(t, "fire_hydrant", rule.StringName)
}
