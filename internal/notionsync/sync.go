package notionsync

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/jomei/notionapi"

	"github.com/dvloznov/fiobank"
	"github.com/dvloznov/fiobank/internal/logger"
)

// pageSize is the Notion query page size used when listing existing pages.
const pageSize = 100

// Result summarizes one sync run.
type Result struct {
	Created int
	Updated int
	Skipped int
}

// SyncPeriod fetches the transactions recorded between from and to and
// mirrors them into the Notion database. Existing pages are matched by the
// "Transaction ID" title property and updated in place; rows without a
// transaction id are skipped. With dryRun set, intended changes are logged
// and counted but nothing is written.
func SyncPeriod(ctx context.Context, account *fiobank.Client, notion NotionService, databaseID string, from, to civil.Date, dryRun bool) (*Result, error) {
	log := logger.FromContext(ctx)

	log.Info().
		Str("from", from.String()).
		Str("to", to.String()).
		Bool("dry_run", dryRun).
		Msg("Starting transaction sync to Notion")

	transactions, err := account.Period(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("SyncPeriod: fetching transactions: %w", err)
	}
	log.Info().Int("transaction_count", len(transactions)).Msg("Fetched transactions")

	pages, err := queryAllPages(ctx, notion, databaseID)
	if err != nil {
		return nil, fmt.Errorf("SyncPeriod: %w", err)
	}
	log.Info().Int("notion_page_count", len(pages)).Msg("Retrieved existing Notion pages")

	// Map of transaction id -> existing page id.
	existing := make(map[string]string, len(pages))
	for _, page := range pages {
		if txID := extractTransactionID(page); txID != "" {
			existing[txID] = string(page.ID)
		}
	}

	result := &Result{}
	for _, tx := range transactions {
		if tx.TransactionID == nil {
			result.Skipped++
			continue
		}
		txID := *tx.TransactionID
		props := TransactionToProperties(tx)

		pageID, known := existing[txID]
		if dryRun {
			log.Info().
				Str("transaction_id", txID).
				Bool("exists", known).
				Msg("[DRY RUN] Would sync transaction")
			if known {
				result.Updated++
			} else {
				result.Created++
			}
			continue
		}

		if known {
			if _, err := notion.UpdatePage(ctx, pageID, props); err != nil {
				log.Warn().Err(err).Str("transaction_id", txID).Msg("Failed to update Notion page")
				result.Skipped++
				continue
			}
			result.Updated++
		} else {
			page, err := notion.CreatePage(ctx, databaseID, props)
			if err != nil {
				log.Warn().Err(err).Str("transaction_id", txID).Msg("Failed to create Notion page")
				result.Skipped++
				continue
			}
			existing[txID] = string(page.ID)
			result.Created++
		}
	}

	log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("total", len(transactions)).
		Msg("Transaction sync completed")

	return result, nil
}

// queryAllPages lists every page of a Notion database, following pagination.
func queryAllPages(ctx context.Context, notion NotionService, databaseID string) ([]notionapi.Page, error) {
	var all []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: pageSize,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notion.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllPages: %w", err)
		}

		all = append(all, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return all, nil
}

// extractTransactionID reads the "Transaction ID" title property off a page.
// Returns empty string if not found.
func extractTransactionID(page notionapi.Page) string {
	prop, ok := page.Properties["Transaction ID"]
	if !ok {
		return ""
	}
	title, ok := prop.(*notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 {
		return ""
	}
	return title.Title[0].PlainText
}
