// Package segment splits concatenated text into plausible words.
//
// PDF text extraction frequently collapses the whitespace between words in
// merchant descriptions ("POSGroceryMart"). Split recovers word boundaries
// with a minimum-cost dynamic program over a frequency-ranked wordlist:
// each candidate word costs log((rank+1) * log(N)) following Zipf's law, and
// the segmentation with the lowest total cost wins. Ties prefer fewer,
// longer words.
package segment

import (
	_ "embed"
	"math"
	"strings"
	"unicode"
)

//go:embed wordlist.txt
var wordlistData string

// maxChunk caps how much of a single whitespace-free run is segmented in one
// DP pass. Longer runs are processed in slices of this size.
const maxChunk = 1000

// Segmenter holds the word-cost table. Construct once, share freely; all
// methods are read-only after New.
type Segmenter struct {
	cost    map[string]float64
	maxWord int
	// cost assigned to a lone character that is not a dictionary word;
	// higher than any real word so dictionary splits always win
	strayCost float64
}

// New builds a Segmenter from the embedded wordlist.
func New() *Segmenter {
	words := strings.Fields(wordlistData)
	return newFromWords(words)
}

func newFromWords(words []string) *Segmenter {
	s := &Segmenter{cost: make(map[string]float64, len(words))}
	logN := math.Log(float64(len(words)) + 1)
	var worst float64
	for rank, w := range words {
		w = strings.ToLower(w)
		if _, seen := s.cost[w]; seen {
			continue
		}
		c := math.Log(float64(rank+1) * logN)
		s.cost[w] = c
		if c > worst {
			worst = c
		}
		if len(w) > s.maxWord {
			s.maxWord = len(w)
		}
	}
	s.strayCost = worst + 10
	return s
}

// Text segments every whitespace-free run in text and rejoins the result
// with single spaces.
func (s *Segmenter) Text(text string) string {
	return strings.Join(s.Split(text), " ")
}

// Split returns the ordered word sequence recovered from text. Existing
// whitespace is respected as a hard boundary. Empty input yields nil.
func (s *Segmenter) Split(text string) []string {
	var out []string
	for _, run := range strings.Fields(text) {
		for len(run) > maxChunk {
			out = append(out, s.splitRun(run[:maxChunk])...)
			run = run[maxChunk:]
		}
		out = append(out, s.splitRun(run)...)
	}
	return out
}

// splitRun segments one whitespace-free run.
func (s *Segmenter) splitRun(run string) []string {
	if run == "" {
		return nil
	}
	lower := strings.ToLower(run)
	n := len(lower)

	best := make([]float64, n+1)
	back := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best[i] = math.Inf(1)
		start := i - s.maxWord
		if start < 0 {
			start = 0
		}
		// scan longest candidate first so ties keep the longer word
		for j := start; j < i; j++ {
			c := best[j] + s.pieceCost(lower[j:i])
			if c < best[i] {
				best[i] = c
				back[i] = j
			}
		}
	}

	var pieces []string
	for i := n; i > 0; i = back[i] {
		pieces = append(pieces, run[back[i]:i])
	}
	for l, r := 0, len(pieces)-1; l < r; l, r = l+1, r-1 {
		pieces[l], pieces[r] = pieces[r], pieces[l]
	}
	return mergeStrays(pieces)
}

// pieceCost returns the segmentation cost of one candidate piece.
func (s *Segmenter) pieceCost(piece string) float64 {
	if c, ok := s.cost[piece]; ok {
		return c
	}
	if !hasLetter(piece) {
		// numbers and punctuation runs are kept whole at a flat cost
		return s.strayCost - 5
	}
	if len(piece) == 1 {
		return s.strayCost
	}
	return math.Inf(1)
}

// mergeStrays glues runs of consecutive single characters back into one
// token so unknown merchant names survive intact instead of shattering
// into letters.
func mergeStrays(pieces []string) []string {
	var out []string
	var stray strings.Builder
	flush := func() {
		if stray.Len() > 0 {
			out = append(out, stray.String())
			stray.Reset()
		}
	}
	for _, p := range pieces {
		if len(p) == 1 && hasLetter(p) {
			stray.WriteString(p)
			continue
		}
		flush()
		out = append(out, p)
	}
	flush()
	return out
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
