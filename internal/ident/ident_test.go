package ident

import (
	"testing"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already slug", in: "fire_hydrant", want: "fire_hydrant"},
		{name: "mixed case with spaces", in: "Fire Hydrant", want: "fire_hydrant"},
		{name: "punctuation runs collapse", in: "Fire -- Hydrant!!", want: "fire_hydrant"},
		{name: "leading and trailing separators", in: "__Bench__", want: "bench"},
		{name: "digits kept", in: "Recycling 24h", want: "recycling_24h"},
		{name: "non-ascii letters fold to separators", in: "Café Crème", want: "caf_cr_me"},
		{name: "nothing alphanumeric falls back", in: "!!", want: "!!"},
		{name: "fallback lowercases", in: "ÉÉ", want: "éé"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlug_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", " ", "Fire hydrant", "fire_hydrant", "ÉÉ", "!!", "__a__b__",
		"Amenity_toilets", "16px-Foo.svg", "İstanbul", "a\tb\nc", "日本",
		"x-y-z", "UPPER lower 123", "_", "a__", "ﬀ ligature",
	}

	for _, in := range inputs {
		once := Slug(in)
		if twice := Slug(once); twice != once {
			t.Errorf("Slug not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSymbol_NonLatinStayDistinct(t *testing.T) {
	t.Parallel()

	names := []string{"Кафе", "Бар", "Аптека", "喫茶店", "レストラン"}
	seen := make(map[string]string, len(names))
	for _, n := range names {
		sym := Symbol(n)
		if prev, dup := seen[sym]; dup {
			t.Errorf("Symbol(%q) = Symbol(%q) = %q", n, prev, sym)
		}
		seen[sym] = n
	}
}

func TestSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "fire_hydrant", want: "kFireHydrant"},
		{in: "Fire Hydrant", want: "kFireHydrant"},
		{in: "Fire-Hydrant", want: "kFireHydrant"},
		{in: "Golf-icon", want: "kGolfIcon"},
		{in: "bbq", want: "kBbq"},
		{in: "24h shop", want: "k24hShop"},
		{in: "Restaurant", want: "kRestaurant"},
		{in: "!!", want: "kUnnamed"},
		{in: "", want: "kUnnamed"},
		{in: "Кафе", want: "kUnnamedD0BAD0B0D184D0B5"},
		{in: "КАФЕ", want: "kUnnamedD0BAD0B0D184D0B5"},
		{in: "Бар", want: "kUnnamedD0B1D0B0D180"},
		{in: "«»", want: "kUnnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Symbol(tt.in); got != tt.want {
				t.Errorf("Symbol(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIconName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "file page link", in: "/wiki/File:Fire_hydrant.svg", want: "Fire_hydrant"},
		{
			name: "thumbnail url",
			in:   "//wiki.openstreetmap.org/w/images/thumb/a/ab/Amenity_toilets.svg/16px-Amenity_toilets.svg.png",
			want: "Amenity_toilets",
		},
		{name: "query string dropped", in: "/w/images/Bench.svg?1234", want: "Bench"},
		{name: "size suffix", in: "Recycling-14.svg", want: "Recycling"},
		{name: "px size suffix", in: "Parking_24px.png", want: "Parking"},
		{name: "repeated suffixes", in: "Shelter-14-16.svg", want: "Shelter"},
		{name: "uppercase extension", in: "File:Cafe.SVG", want: "Cafe"},
		{name: "no extension", in: "File:Golf-icon", want: "Golf-icon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IconName(tt.in); got != tt.want {
				t.Errorf("IconName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanupBasename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "amenity_toilets_svg", want: "amenity_toilets"},
		{in: "amenity_svg_svg", want: "amenity"},
		{in: "bench_svg_14", want: "bench_14"},
		{in: "parking_24px", want: "parking_24"},
		{in: "cafe__", want: "cafe"},
		{in: "_svg", want: "_svg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := CleanupBasename(tt.in); got != tt.want {
				t.Errorf("CleanupBasename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "amenity", want: "amenity"},
		{in: "addr:street", want: "addr_street"},
		{in: "sport-type", want: "sport_type"},
		{in: "4wd_only", want: "_4wd_only"},
		{in: "name:ß", want: "name__"},
		{in: "", want: "_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := FieldIdent(tt.in); got != tt.want {
				t.Errorf("FieldIdent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisambiguate(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	got := []string{
		Disambiguate("a_b", seen),
		Disambiguate("a_b", seen),
		Disambiguate("a_b", seen),
		Disambiguate("c", seen),
	}
	want := []string{"a_b", "a_b_2", "a_b_3", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Disambiguate #%d = %q, want %q", i, got[i], want[i])
		}
	}
}
