package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/fiobank"
	"github.com/dvloznov/fiobank/internal/config"
	"github.com/dvloznov/fiobank/internal/logger"
	"github.com/dvloznov/fiobank/internal/notionsync"
)

func main() {
	log := logger.NewConsole()

	startDateStr := flag.String("start-date", "", "Start date in YYYY-MM-DD format (required)")
	endDateStr := flag.String("end-date", "", "End date in YYYY-MM-DD format (required)")
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to Notion")
	flag.Parse()

	if *startDateStr == "" {
		log.Fatal().Msg("Error: --start-date is required")
	}
	if *endDateStr == "" {
		log.Fatal().Msg("Error: --end-date is required")
	}

	startDate, err := civil.ParseDate(*startDateStr)
	if err != nil {
		log.Fatal().Err(err).Str("start_date", *startDateStr).Msg("Error: invalid start-date format, expected YYYY-MM-DD")
	}
	endDate, err := civil.ParseDate(*endDateStr)
	if err != nil {
		log.Fatal().Err(err).Str("end_date", *endDateStr).Msg("Error: invalid end-date format, expected YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		log.Fatal().
			Str("start_date", startDate.String()).
			Str("end_date", endDate.String()).
			Msg("Error: end-date must be after start-date")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}
	if cfg.NotionToken == "" || cfg.NotionDatabaseID == "" {
		log.Fatal().Msg("Error: NOTION_TOKEN and NOTION_DB_ID are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	opts := []fiobank.Option{}
	if cfg.FioBaseURL != "" {
		opts = append(opts, fiobank.WithBaseURL(cfg.FioBaseURL))
	}
	account := fiobank.New(cfg.FioToken, opts...)
	notion := notionsync.NewNotionClient(cfg.NotionToken)

	result, err := notionsync.SyncPeriod(ctx, account, notion, cfg.NotionDatabaseID, startDate, endDate, *dryRun)
	if err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Printf("Sync completed: %d created, %d updated, %d skipped.\n",
		result.Created, result.Updated, result.Skipped)
}
