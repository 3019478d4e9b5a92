package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-insights/internal/api"
	"github.com/insightdelivered/statement-insights/internal/categorize"
	"github.com/insightdelivered/statement-insights/internal/config"
	"github.com/insightdelivered/statement-insights/internal/extractor"
	"github.com/insightdelivered/statement-insights/internal/ledger"
	"github.com/insightdelivered/statement-insights/internal/logging"
	"github.com/insightdelivered/statement-insights/internal/process"
	"github.com/insightdelivered/statement-insights/internal/query"
	"github.com/insightdelivered/statement-insights/internal/search"
	"github.com/insightdelivered/statement-insights/internal/segment"
	"github.com/insightdelivered/statement-insights/internal/statement"
	"github.com/insightdelivered/statement-insights/internal/store"
)

const version = "1.0.0"

func main() {
	configFlag := flag.String("config", "", "Path to YAML config file (defaults to ./config.yaml)")
	refreshFlag := flag.Bool("refresh", false, "Re-extract PDFs and rebuild the ledger even if one exists")
	askFlag := flag.String("ask", "", "Answer one question against the ledger and exit")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Insights
by Insight Delivered

Reconstructs a transaction ledger from bank statement PDFs and answers
questions against it.

Usage:
  statement-insights [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Extract statements from the configured data directory
  statement-insights -refresh

  # Ask a question against the existing ledger
  statement-insights -ask "how much did I spend on groceries last month"

  # Serve the HTTP API
  statement-insights -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-insights v%s\n", version)
		return
	}

	log := logging.New()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}

	classifier := categorize.New(cfg.Categories)
	normalizer := process.NewNormalizer(classifier)

	txns, err := loadLedger(cfg, normalizer, *refreshFlag, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building ledger failed")
	}
	log.Info().Int("transactions", len(txns)).Msg("ledger ready")

	if *askFlag != "" {
		engine := query.NewEngine(classifier)
		fmt.Println(engine.Answer(*askFlag, txns))
		return
	}

	if *serveFlag {
		if err := serve(cfg, classifier, txns, log); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	printSummary(txns)
}

// loadLedger returns the normalized table, extracting from PDFs when asked
// to refresh or when no saved ledger exists yet.
func loadLedger(cfg config.Config, normalizer *process.Normalizer, refresh bool, log zerolog.Logger) ([]ledger.Transaction, error) {
	if !refresh && store.Exists(cfg.Paths.LedgerCSV) {
		log.Info().Str("path", cfg.Paths.LedgerCSV).Msg("loading existing ledger")
		loaded, err := store.Load(cfg.Paths.LedgerCSV)
		if err != nil {
			return nil, err
		}
		return normalizer.Renormalize(loaded), nil
	}

	log.Info().Str("dir", cfg.Paths.DataDir).Msg("extracting statements from PDFs")

	seg := segment.New()
	lineClassifier := statement.NewLineClassifier(seg, cfg.DepositTriggers)
	assembler := statement.NewAssembler(extractor.New(), lineClassifier, log)

	raw, err := assembler.ExtractDir(context.Background(), cfg.Paths.DataDir)
	if err != nil {
		return nil, err
	}

	txns, dropped := normalizer.Normalize(raw)
	if dropped > 0 {
		log.Warn().Int("dropped_rows", dropped).Msg("rows with unparseable dates were dropped")
	}

	if err := store.Save(cfg.Paths.LedgerCSV, txns); err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.Paths.LedgerCSV).Msg("ledger saved")
	return txns, nil
}

func serve(cfg config.Config, classifier *categorize.Classifier, txns []ledger.Transaction, log zerolog.Logger) error {
	index, err := search.NewIndex(cfg.Paths.IndexDir)
	if err != nil {
		return err
	}
	defer index.Close()

	if err := index.IndexTransactions(txns); err != nil {
		return err
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler := &api.Handler{
		Engine:       query.NewEngine(classifier),
		Index:        index,
		Transactions: txns,
		Version:      version,
	}
	handler.Register(app)

	log.Info().Str("addr", cfg.Server.Addr).Msg("serving HTTP API")
	return app.Listen(cfg.Server.Addr)
}

func printSummary(txns []ledger.Transaction) {
	s := process.Summarize(txns)
	fmt.Printf("Transactions: %d\n", s.TotalTransactions)
	fmt.Printf("Total spent: $%s\n", s.TotalSpent.StringFixed(2))
	fmt.Printf("Total received: $%s\n", s.TotalReceived.StringFixed(2))
	fmt.Printf("Net: $%s\n", s.Net.StringFixed(2))
	fmt.Printf("Date range: %s\n", s.DateRange)
}
