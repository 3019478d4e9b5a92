// Package store persists the normalized ledger as a CSV artifact.
//
// Column names, including the "($)" suffixes, are a compatibility contract
// with ledgers written by earlier runs; do not rename them.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// Save writes the table to path, creating parent directories as needed.
func Save(path string, txns []ledger.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger file %q: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&txns, f); err != nil {
		return fmt.Errorf("write ledger csv: %w", err)
	}
	return nil
}

// Load reads a previously saved ledger. Callers should re-run the
// normalizer over the result so derived columns stay consistent with the
// current configuration.
func Load(path string) ([]ledger.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file %q: %w", path, err)
	}
	defer f.Close()

	var txns []ledger.Transaction
	if err := gocsv.UnmarshalFile(f, &txns); err != nil {
		return nil, fmt.Errorf("read ledger csv: %w", err)
	}
	return txns, nil
}

// Exists reports whether a ledger file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
