// Command seedhsn loads an HSN/SAC rate workbook into the hsn_codes table.
//
// Usage: seedhsn [-dry-run] hsn_rates.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"billbook/internal/config"
	"billbook/internal/hsnimport"
	"billbook/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dryRun := flag.Bool("dry-run", false, "parse the workbook and report without writing")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: seedhsn [-dry-run] <workbook.xlsx>")
	}
	path := flag.Arg(0)

	res, err := hsnimport.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, s := range res.Skipped {
		log.Printf("seedhsn: row %d skipped: %s", s.Row, s.Reason)
	}
	log.Printf("seedhsn: parsed %d entries (%d rows skipped)", len(res.Entries), len(res.Skipped))
	if *dryRun || len(res.Entries) == 0 {
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	n, err := postgres.NewHSNRepo(db).Import(ctx, res.Entries)
	if err != nil {
		return err
	}
	log.Printf("seedhsn: imported %d rows into hsn_codes", n)
	log.Printf("seedhsn: call POST /api/v1/reference/invalidate to refresh cached snapshots")
	return nil
}
