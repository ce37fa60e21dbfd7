package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/fiobank"
	"github.com/dvloznov/fiobank/internal/config"
	"github.com/dvloznov/fiobank/internal/logger"
)

func main() {
	log := logger.NewConsole()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		runInfo(log)
	case "period":
		runPeriod(log)
	case "statement":
		runStatement(log)
	case "last":
		runLast(log)
	case "latest":
		runLatest(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Fio transaction-export CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  fiobank <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  info       Show account information")
	fmt.Println("  period     List transactions between two dates")
	fmt.Println("  statement  List transactions of one numbered statement")
	fmt.Println("  last       List transactions since the token checkpoint")
	fmt.Println("  latest     Show the most recent transaction of the last 30 days")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nConfiguration comes from FIOBANK_TOKEN and FIOBANK_BASE_URL")
	fmt.Println("(environment or .env file).")
}

func newAccount(log zerolog.Logger) *fiobank.Client {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	opts := []fiobank.Option{}
	if cfg.FioBaseURL != "" {
		opts = append(opts, fiobank.WithBaseURL(cfg.FioBaseURL))
	}
	return fiobank.New(cfg.FioToken, opts...)
}

func newContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	return logger.WithContext(ctx, log), cancel
}

func printJSON(log zerolog.Logger, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode output")
	}
	fmt.Println(string(out))
}

func runInfo(log zerolog.Logger) {
	account := newAccount(log)
	ctx, cancel := newContext(log)
	defer cancel()

	info, err := account.Info(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetching account info failed")
	}
	printJSON(log, info)
}

func runPeriod(log zerolog.Logger) {
	fs := flag.NewFlagSet("period", flag.ExitOnError)
	from := fs.String("from", "", "Start date, YYYY-MM-DD (required)")
	to := fs.String("to", "", "End date, YYYY-MM-DD (required)")
	fs.Parse(os.Args[2:])

	if *from == "" || *to == "" {
		log.Fatal().Msg("Usage: fiobank period -from YYYY-MM-DD -to YYYY-MM-DD")
	}

	account := newAccount(log)
	ctx, cancel := newContext(log)
	defer cancel()

	transactions, err := account.Period(ctx, *from, *to)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetching period failed")
	}
	printJSON(log, transactions)
}

func runStatement(log zerolog.Logger) {
	fs := flag.NewFlagSet("statement", flag.ExitOnError)
	year := fs.Int("year", 0, "Statement year (required)")
	number := fs.Int("number", 0, "Statement number within the year (required)")
	fs.Parse(os.Args[2:])

	if *year == 0 || *number == 0 {
		log.Fatal().Msg("Usage: fiobank statement -year YYYY -number N")
	}

	account := newAccount(log)
	ctx, cancel := newContext(log)
	defer cancel()

	transactions, err := account.Statement(ctx, *year, *number)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetching statement failed")
	}
	printJSON(log, transactions)
}

func runLast(log zerolog.Logger) {
	fs := flag.NewFlagSet("last", flag.ExitOnError)
	fromID := fs.String("from-id", "", "Move the checkpoint to this transaction id first")
	fromDate := fs.String("from-date", "", "Move the checkpoint to this date first, YYYY-MM-DD")
	fs.Parse(os.Args[2:])

	opts := fiobank.LastOptions{FromID: *fromID}
	if *fromDate != "" {
		opts.FromDate = *fromDate
	}

	account := newAccount(log)
	ctx, cancel := newContext(log)
	defer cancel()

	transactions, err := account.Last(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetching last transactions failed")
	}
	printJSON(log, transactions)
}

func runLatest(log zerolog.Logger) {
	account := newAccount(log)
	ctx, cancel := newContext(log)
	defer cancel()

	tx, err := account.Transactions.Latest(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Fetching latest transaction failed")
	}
	if tx == nil {
		fmt.Println("No transactions in the last 30 days.")
		return
	}
	printJSON(log, tx)
}
