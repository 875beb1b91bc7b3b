// Package icons resolves the SVG asset behind every icon in the category
// table and downloads them into a local directory.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/heartmarshall/amenitygen/internal/ident"
	"github.com/heartmarshall/amenitygen/internal/wikitable"
)

// DefaultBaseURL resolves relative icon links.
const DefaultBaseURL = "https://wiki.openstreetmap.org"

// ErrNoIcons is returned by Collect when no row yields a downloadable icon.
var ErrNoIcons = errors.New("no icons found")

var iconExtensions = []string{"", ".svg", ".png", ".SVG", ".PNG"}

// PickImageURL returns the srcset candidate with the highest density or
// width descriptor, falling back to src. Ties keep the earliest candidate.
func PickImageURL(img *html.Node) string {
	if srcset, ok := wikitable.Attr(img, "srcset"); ok {
		best, bestWeight := "", 0.0
		for part := range strings.SplitSeq(srcset, ",") {
			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}
			weight := 1.0
			if len(fields) > 1 {
				weight = descriptorWeight(fields[1])
			}
			if best == "" || weight > bestWeight {
				best, bestWeight = fields[0], weight
			}
		}
		if best != "" {
			return best
		}
	}
	src, _ := wikitable.Attr(img, "src")
	return src
}

// descriptorWeight reads "2x" or "640w"; anything else counts as 1.
func descriptorWeight(d string) float64 {
	num, ok := strings.CutSuffix(d, "x")
	if !ok {
		num, ok = strings.CutSuffix(d, "w")
	}
	if !ok {
		return 1
	}
	w, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 1
	}
	return w
}

// DeriveSVGURL maps a candidate image URL, usually a PNG thumbnail, to the
// SVG it was rendered from. When the candidate does not lead to an SVG, a
// nameSource ending in ".svg" is resolved through Special:FilePath.
func DeriveSVGURL(candidate, baseURL, nameSource string) (string, bool) {
	if candidate == "" {
		return "", false
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	u.RawQuery, u.Fragment, u.RawFragment = "", "", ""

	p := u.Path
	if strings.HasSuffix(p, ".svg") {
		return u.String(), true
	}

	if strings.HasSuffix(p, ".svg.png") {
		p = strings.TrimSuffix(p, ".png")
	}
	if strings.Contains(p, "/thumb/") {
		p = dropThumb(p)
	}
	if strings.HasSuffix(p, ".svg") {
		u.Path, u.RawPath = p, ""
		return u.String(), true
	}

	file := nameSource[strings.LastIndex(nameSource, "/")+1:]
	file, _, _ = strings.Cut(file, "?")
	file = strings.TrimPrefix(file, "File:")
	if strings.HasSuffix(file, ".svg") {
		special := &url.URL{Path: "/wiki/Special:FilePath/" + file}
		return base.ResolveReference(special).String(), true
	}
	return "", false
}

// dropThumb turns /a/thumb/b/c/File.svg/16px-File.svg.png into
// /a/b/c/File.svg by removing the "thumb" segment and the last segment.
func dropThumb(p string) string {
	parts := strings.Split(p, "/")
	idx := -1
	for i, s := range parts {
		if s == "thumb" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p
	}
	kept := append([]string{}, parts[:idx]...)
	kept = append(kept, parts[idx+1:len(parts)-1]...)
	if len(kept) == 0 || kept[0] != "" {
		kept = append([]string{""}, kept...)
	}
	return strings.Join(kept, "/")
}

// Collect maps destination file names ("<slug>.svg") to SVG URLs for every
// icon row of the category table. The first row claiming a name wins.
func Collect(doc []byte, baseURL string) (map[string]string, error) {
	entries, _, err := wikitable.ExtractEntries(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	claim := func(key, slug string) {
		if _, ok := names[key]; !ok {
			names[key] = slug
		}
	}
	for _, e := range entries {
		slug := ident.Slug(e.NameSource())
		claim(strings.TrimSpace(e.NameSource()), slug)
		if icon := strings.TrimSpace(e.IconRef); icon != "" {
			for _, ext := range iconExtensions {
				claim(icon+ext, slug)
			}
		}
	}

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("icons: parse html: %w", err)
	}
	table, err := wikitable.FindTable(root)
	if err != nil {
		return nil, err
	}

	icons := make(map[string]string)
	for _, tr := range wikitable.FindAll(table, wikitable.IsElement("tr")) {
		cells := wikitable.Cells(tr)
		if len(cells) == 0 {
			continue
		}
		img := wikitable.FindFirst(cells[0], wikitable.IsElement("img"))
		if img == nil {
			continue
		}

		nameSource := wikitable.IconSource(cells[0])
		svgURL, ok := DeriveSVGURL(PickImageURL(img), baseURL, nameSource)
		if !ok {
			continue
		}

		dest := ident.CleanupBasename(baseName(nameSource, svgURL, names)) + ".svg"
		if _, taken := icons[dest]; !taken {
			icons[dest] = svgURL
		}
	}

	if len(icons) == 0 {
		return nil, ErrNoIcons
	}
	return icons, nil
}

func baseName(nameSource, svgURL string, names map[string]string) string {
	key := nameSource[strings.LastIndex(nameSource, "/")+1:]
	key = strings.TrimPrefix(key, "File:")
	if slug, ok := names[key]; ok {
		return slug
	}
	if slug := ident.Slug(key); slug != "" {
		return slug
	}

	stem := "icon"
	if u, err := url.Parse(svgURL); err == nil {
		if s := strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path)); s != "" && s != "." && s != "/" {
			stem = s
		}
	}
	return ident.Slug(stem)
}
