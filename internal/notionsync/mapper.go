package notionsync

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/fiobank"
)

// TransactionToProperties converts one transaction record into the Notion
// database columns. "Transaction ID" is the title property and doubles as
// the idempotency key; optional record fields map to a property only when
// present.
func TransactionToProperties(tx *fiobank.Transaction) notionapi.Properties {
	props := notionapi.Properties{}

	if tx.TransactionID != nil {
		props["Transaction ID"] = notionapi.TitleProperty{
			Title: richText(*tx.TransactionID),
		}
	}

	if tx.Date != nil {
		start := notionapi.Date(tx.Date.In(time.UTC))
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &start,
			},
		}
	}

	if tx.Amount != nil {
		props["Amount"] = notionapi.NumberProperty{
			Number: *tx.Amount,
		}
	}

	if tx.Currency != nil {
		props["Currency"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: *tx.Currency,
			},
		}
	}

	if tx.Type != nil {
		props["Type"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: *tx.Type,
			},
		}
	}

	if tx.AccountNumberFull != nil {
		props["Counterparty Account"] = notionapi.RichTextProperty{
			RichText: richText(*tx.AccountNumberFull),
		}
	}

	if tx.AccountName != nil {
		props["Counterparty Name"] = notionapi.RichTextProperty{
			RichText: richText(*tx.AccountName),
		}
	}

	if tx.VariableSymbol != nil {
		props["Variable Symbol"] = notionapi.RichTextProperty{
			RichText: richText(*tx.VariableSymbol),
		}
	}

	if description := transactionDescription(tx); description != "" {
		props["Description"] = notionapi.RichTextProperty{
			RichText: richText(description),
		}
	}

	return props
}

// transactionDescription picks the most useful free-text field the row
// carries. Card payments usually fill the comment, transfers the recipient
// message.
func transactionDescription(tx *fiobank.Transaction) string {
	switch {
	case tx.Comment != nil:
		return *tx.Comment
	case tx.RecipientMessage != nil:
		return *tx.RecipientMessage
	case tx.UserIdentification != nil:
		return *tx.UserIdentification
	}
	return ""
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{
				Content: content,
			},
		},
	}
}
