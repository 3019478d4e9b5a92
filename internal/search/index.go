// Package search is the semantic-retrieval collaborator: a bleve full-text
// index over natural-language renderings of ledger rows. The query engine
// handles aggregations; this handles "find me that coffee shop charge".
package search

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// document is one searchable transaction rendering.
type document struct {
	Content     string  `json:"content"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
}

// Index wraps a bleve index over the ledger.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
}

// NewIndex creates an index. An empty path means in-memory; otherwise the
// index persists at path and reopens across runs.
func NewIndex(path string) (*Index, error) {
	m := buildMapping()

	var (
		idx bleve.Index
		err error
	)
	if path == "" {
		idx, err = bleve.NewMemOnly(m)
	} else if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		idx, err = bleve.New(path, m)
	} else {
		idx, err = bleve.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = simple.Name

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("content", textField)
	doc.AddFieldMappingsAt("description", textField)
	doc.AddFieldMappingsAt("category", keywordField)
	doc.AddFieldMappingsAt("type", keywordField)
	doc.AddFieldMappingsAt("date", keywordField)
	doc.AddFieldMappingsAt("amount", bleve.NewNumericFieldMapping())

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = simple.Name
	return m
}

// IndexTransactions (re)indexes the given rows in one batch.
func (i *Index) IndexTransactions(txns []ledger.Transaction) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.index.NewBatch()
	for _, tx := range txns {
		if err := batch.Index(tx.ID, renderDocument(tx)); err != nil {
			return fmt.Errorf("index transaction %s: %w", tx.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}
	return nil
}

// renderDocument produces the natural-language form that gets indexed and
// echoed back in results.
func renderDocument(tx ledger.Transaction) document {
	verb := "received"
	amount := tx.Deposits
	if tx.Withdrawals.IsPositive() {
		verb = "spent"
		amount = tx.Withdrawals
	}
	amt, _ := amount.Float64()
	bal, _ := tx.Balance.Float64()

	content := fmt.Sprintf(
		"Transaction on %s (%s):\nYou %s $%.2f at %s.\nCategory: %s\nTransaction Type: %s\nBalance after transaction: $%.2f",
		tx.Date.Format("January 02, 2006"), tx.DayOfWeek,
		verb, amt, tx.Description,
		tx.Category, tx.Type, bal,
	)
	return document{
		Content:     content,
		Description: tx.Description,
		Category:    tx.Category,
		Type:        string(tx.Type),
		Date:        tx.Date.Format("2006-01-02"),
		Amount:      amt,
	}
}

// Search returns the k most relevant transaction renderings as one
// formatted block.
func (i *Index) Search(q string, k int) (string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if k <= 0 {
		k = 5
	}
	match := bleve.NewMatchQuery(q)
	req := bleve.NewSearchRequestOptions(match, k, 0, false)
	req.Fields = []string{"content"}

	result, err := i.index.Search(req)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if len(result.Hits) == 0 {
		return "No matching transactions found.", nil
	}

	var b strings.Builder
	b.WriteString("**Relevant transactions:**\n\n")
	for _, hit := range result.Hits {
		if content, ok := hit.Fields["content"].(string); ok {
			b.WriteString(content)
			b.WriteString("\n\n")
		}
	}
	return b.String(), nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	return i.index.Close()
}
