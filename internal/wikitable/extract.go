// Package wikitable extracts amenity category rows from a rendered wiki
// table and parses their tag-combination cells.
package wikitable

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/ident"
)

// TableClass is the class attribute that marks the source table.
const TableClass = "wikitable"

// Row is one raw table entry. TagCell is kept as parsed markup until
// ParseTagCell turns it into combinations.
type Row struct {
	IconRef     string
	Description string
	TagCell     *html.Node
}

// Stats summarizes one extraction run.
type Stats struct {
	Rows            int // table rows with at least three cells
	Entries         int // rows that produced at least one tag atom
	NoTagRows       int
	MalformedTokens int
}

// Extract parses an HTML document and returns one Row per table row that
// has at least three cells, in document order. A document without a
// wikitable yields an error wrapping domain.ErrStructural.
func Extract(r io.Reader) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("wikitable: parse html: %w", err)
	}

	table, err := FindTable(doc)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, tr := range FindAll(table, IsElement("tr")) {
		cells := Cells(tr)
		if len(cells) < 3 {
			continue
		}
		rows = append(rows, Row{
			IconRef:     ident.IconName(IconSource(cells[0])),
			Description: nodeText(cells[1]),
			TagCell:     cells[2],
		})
	}
	return rows, nil
}

// ExtractEntries runs Extract and parses every tag cell. Rows whose tag cell
// yields no atom are left out; they are counted in Stats.NoTagRows.
func ExtractEntries(r io.Reader) ([]domain.Entry, Stats, error) {
	rows, err := Extract(r)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Rows: len(rows)}
	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		combos, ps := ParseTagCell(row.TagCell)
		stats.MalformedTokens += ps.MalformedTokens

		entry := domain.Entry{
			IconRef:      row.IconRef,
			Description:  row.Description,
			Combinations: combos,
		}
		if !entry.HasAtoms() {
			stats.NoTagRows++
			continue
		}
		entries = append(entries, entry)
	}
	stats.Entries = len(entries)
	return entries, stats, nil
}

// IconSource returns the raw icon reference of an icon cell: the target of
// the file-description link when present, else the first image's src.
func IconSource(cell *html.Node) string {
	link := FindFirst(cell, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a" && HasClass(n, "mw-file-description")
	})
	if link != nil {
		if href, ok := Attr(link, "href"); ok {
			return href
		}
	}

	if img := FindFirst(cell, IsElement("img")); img != nil {
		if src, ok := Attr(img, "src"); ok {
			return src
		}
	}
	return ""
}

// FindTable returns the first table carrying TableClass.
func FindTable(doc *html.Node) (*html.Node, error) {
	table := FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" && HasClass(n, TableClass)
	})
	if table == nil {
		return nil, fmt.Errorf("wikitable: no table with class %q: %w", TableClass, domain.ErrStructural)
	}
	return table, nil
}

// Cells returns the direct <td> children of a row. Header cells are not
// data and are skipped.
func Cells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, c)
		}
	}
	return cells
}
