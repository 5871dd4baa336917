// Command linguanote ingests note files into a per-language learning log.
// It extracts raw text from each file, asks the classifier to pull out
// vocabulary and grammar items, and reconciles them against the log:
// new items are inserted, known ones are merged, ambiguous ones land in
// the review queue.
//
// Usage:
//
//	linguanote --lang Japanese notes/day1.txt notes/day2.md notes/week3.docx
//
// Flags:
//
//	--lang     language the notes belong to (required)
//	--timeout  overall batch deadline (default 30m)
//
// Exit codes: 0 = batch fully processed, 1 = partial or failed batch.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/linguanote/linguanote/internal/adapter/postgres"
	entryrepo "github.com/linguanote/linguanote/internal/adapter/postgres/entry"
	languagerepo "github.com/linguanote/linguanote/internal/adapter/postgres/language"
	reviewrepo "github.com/linguanote/linguanote/internal/adapter/postgres/review"
	sourcenoterepo "github.com/linguanote/linguanote/internal/adapter/postgres/sourcenote"
	"github.com/linguanote/linguanote/internal/app"
	"github.com/linguanote/linguanote/internal/classifier"
	"github.com/linguanote/linguanote/internal/config"
	"github.com/linguanote/linguanote/internal/extract"
	"github.com/linguanote/linguanote/internal/ingest"
	"github.com/linguanote/linguanote/migrations"
)

func main() {
	lang := flag.String("lang", "", "language the notes belong to")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall batch deadline")
	flag.Parse()

	if *lang == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s --lang <language> <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "supported formats: %v\n", extract.SupportedExtensions())
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := applyMigrations(ctx, cfg.Database.DSN); err != nil {
		logger.Error("apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	keys := classifier.NewKeyProvider(cfg.Classifier)
	svc := ingest.NewService(
		cfg.Ingest,
		logger,
		entryrepo.New(pool),
		reviewrepo.New(pool),
		sourcenoterepo.New(pool),
		languagerepo.New(pool),
		postgres.NewTxManager(pool),
		classifier.New(cfg.Classifier, keys, logger),
		extract.Text,
	)

	report, err := svc.ProcessNoteFiles(ctx, *lang, flag.Args())
	if err != nil {
		logger.Error("batch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(report.Message)
	for _, msg := range report.Errors {
		fmt.Fprintln(os.Stderr, "error:", msg)
	}

	if !report.Success {
		os.Exit(1)
	}
}

// applyMigrations brings the database schema up to date from the embedded
// migration files. goose needs database/sql, so this uses a short-lived
// stdlib connection separate from the pgx pool.
func applyMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
