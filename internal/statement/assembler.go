package statement

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// PageExtractor produces the per-page text of one PDF document. The PDF
// library behind it is the only collaborator the assembler has a contract
// with: an ordered sequence of pages, each a newline-separated text block.
type PageExtractor interface {
	ExtractPages(path string) ([]string, error)
}

// Assembler walks a directory of statement PDFs and consolidates every
// file's raw transaction tuples into one table.
//
// Files are independent, so they are extracted by a bounded worker pool.
// Page order inside a file is preserved, a failing file never cancels its
// siblings, and the consolidated table is concatenated in sorted-filename
// order so output is deterministic regardless of completion order.
type Assembler struct {
	extractor  PageExtractor
	classifier *LineClassifier
	log        zerolog.Logger
	workers    int
}

// NewAssembler builds an Assembler with a worker per CPU, capped at 8.
func NewAssembler(extractor PageExtractor, classifier *LineClassifier, log zerolog.Logger) *Assembler {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	return &Assembler{
		extractor:  extractor,
		classifier: classifier,
		log:        log,
		workers:    workers,
	}
}

type fileResult struct {
	transactions []ledger.RawTransaction
	skipped      int
	err          error
}

// ExtractDir extracts every *.pdf in dir (non-recursive). Finding no PDF
// files at all is the one fatal condition; individual file failures are
// logged and skipped.
func (a *Assembler) ExtractDir(ctx context.Context, dir string) ([]ledger.RawTransaction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read statement directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}

	a.log.Info().Int("files", len(files)).Str("dir", dir).Msg("extracting statements")

	results := make([]fileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := a.workers
	if workers > len(files) {
		workers = len(files)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.extractFile(filepath.Join(dir, files[i]))
			}
		}()
	}

	for i := range files {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []ledger.RawTransaction
	for i, res := range results {
		if res.err != nil {
			a.log.Warn().Err(res.err).Str("file", files[i]).Msg("skipping unreadable statement")
			continue
		}
		if res.skipped > 0 {
			a.log.Warn().Int("dropped_lines", res.skipped).Str("file", files[i]).Msg("some transaction lines could not be parsed")
		}
		a.log.Info().Int("transactions", len(res.transactions)).Str("file", files[i]).Msg("extracted")
		all = append(all, res.transactions...)
	}

	return all, nil
}

// extractFile runs the year resolver and line classifier over every page of
// one document. The year resolved on an early page carries forward to the
// pages after it.
func (a *Assembler) extractFile(path string) fileResult {
	pages, err := a.extractor.ExtractPages(path)
	if err != nil {
		return fileResult{err: err}
	}

	name := filepath.Base(path)
	var res fileResult
	year := ""

	for pageNum, page := range pages {
		if strings.TrimSpace(page) == "" {
			a.log.Debug().Str("file", name).Int("page", pageNum+1).Msg("page yielded no text, skipping")
			continue
		}
		lines := strings.Split(page, "\n")

		if year == "" {
			if y, ok := resolveYear(lines); ok {
				year = y
			}
		}

		pageRes := a.classifier.ParsePage(lines, year)
		res.skipped += pageRes.Skipped
		for i := range pageRes.Transactions {
			pageRes.Transactions[i].SourceFile = name
		}
		res.transactions = append(res.transactions, pageRes.Transactions...)
	}

	return res
}
