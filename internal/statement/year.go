package statement

import "regexp"

// yearPattern matches a strict 4-digit year in the 2000-2099 range.
var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// resolveYear scans lines in order and returns the first year-like token.
// Statement PDFs usually print the year once near the top of the first page;
// the assembler caches the result for the later pages of the document.
func resolveYear(lines []string) (string, bool) {
	for _, line := range lines {
		if m := yearPattern.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}
