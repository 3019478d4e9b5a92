// Package extractor pulls plain text out of statement PDFs, one string per
// page. It is the assembler's only window into the PDF binary format.
package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Extractor reads PDF files with the ledongthuc/pdf library. Different bank
// PDFs respond to different extraction paths, so each page is tried by row,
// then by raw content coordinates, then by plain text, keeping the first
// result that looks like readable statement text.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the text of each page of the PDF at path, in page
// order. Pages with no extractable text come back as empty strings so page
// numbering survives for the caller.
func (e *Extractor) ExtractPages(path string) (pages []string, err error) {
	// the pdf library panics on some malformed files; a corrupt input must
	// stay a per-file error, not a crash
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library failure: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages = make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages[i-1] = extractPage(page)
	}

	if !Readable(pages) {
		return nil, fmt.Errorf("no readable text in pdf; the file may be image-based or use undecodable font encodings")
	}
	return pages, nil
}

// extractPage tries the extraction methods in decreasing order of layout
// fidelity.
func extractPage(page pdf.Page) string {
	if text := pageByRow(page); Readable([]string{text}) {
		return text
	}
	if text := pageByContent(page); Readable([]string{text}) {
		return text
	}
	return pageByPlainText(page)
}

// pageByRow uses GetTextByRow, the best path for well-structured PDFs.
func pageByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pageByContent reads raw text objects and rebuilds rows from coordinates:
// group by Y, sort by X. PDF Y runs bottom-to-top, so rows sort descending.
func pageByContent(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type item struct {
		x float64
		s string
	}
	rows := make(map[int][]item)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], item{x: t.X, s: t.S})
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var lines []string
	for _, y := range ys {
		items := rows[y]
		sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

		var sb strings.Builder
		var prevX float64
		for j, it := range items {
			if j > 0 && it.x-prevX > 15 {
				// wide horizontal gap marks a column boundary
				sb.WriteString("  ")
			}
			sb.WriteString(it.s)
			prevX = it.x
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pageByPlainText is the last-resort path through the page's font maps.
func pageByPlainText(page pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// Readable reports whether pages hold enough plausible statement text:
// more than 50 characters, over 60% of them basic ASCII. Identity-encoded
// fonts decode into accented garbage that unicode.IsLetter would accept, so
// the check is deliberately strict ASCII.
func Readable(pages []string) bool {
	total, ok := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"$%&@#!?+=*`, r) {
				ok++
			}
		}
	}
	if total <= 50 {
		return false
	}
	return float64(ok)/float64(total) > 0.6
}
