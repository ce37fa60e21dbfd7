package fiobank

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// originalAmountPattern recognizes specifications of the exact form
// "<amount> <ISO currency>", e.g. "123.45 USD".
var originalAmountPattern = regexp.MustCompile(`^-?\d+(\.\d+)? [A-Z]{3}$`)

// parseTransactions converts a decoded statement document into transaction
// records, preserving the input order. Statements with zero transactions
// omit the nested list entirely, so a missing or malformed nesting parses to
// an empty slice rather than an error.
func parseTransactions(doc map[string]any) ([]*Transaction, error) {
	entries := transactionEntries(doc)
	transactions := make([]*Transaction, 0, len(entries))

	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parseTransactions: entry %d is %T, want object", i, item)
		}

		t := &Transaction{}
		for code, cell := range entry {
			column, ok := transactionSchema[strings.ToLower(code)]
			if !ok {
				continue
			}
			value := cellValue(cell)
			if value == nil {
				continue
			}
			if err := column.set(t, value); err != nil {
				return nil, fmt.Errorf("parseTransactions: entry %d, %s (%s): %w", i, code, column.name, err)
			}
		}

		refineTransaction(t)
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// transactionEntries digs out accountStatement.transactionList.transaction.
func transactionEntries(doc map[string]any) []any {
	statement, ok := doc["accountStatement"].(map[string]any)
	if !ok {
		return nil
	}
	list, ok := statement["transactionList"].(map[string]any)
	if !ok {
		return nil
	}
	entries, _ := list["transaction"].([]any)
	return entries
}

// cellValue unwraps the API's {"value": ...} column wrapper. A null column,
// a missing wrapper or a null value all mean the column is absent.
func cellValue(cell any) any {
	wrapper, ok := cell.(map[string]any)
	if !ok {
		return nil
	}
	return wrapper["value"]
}

// refineTransaction computes the derived fields defined on Transaction.
func refineTransaction(t *Transaction) {
	t.AccountNumberFull = accountNumberFull(t.AccountNumber, t.BankCode)

	if t.Specification == nil || !originalAmountPattern.MatchString(*t.Specification) {
		return
	}
	parts := strings.SplitN(*t.Specification, " ", 2)
	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return
	}
	currency := parts[1]
	t.OriginalAmount = &amount
	t.OriginalCurrency = &currency
}

// parseAccountInfo converts a decoded statement document into the account
// header record. Raw keys are matched lower-cased against the info schema;
// keys outside the schema are ignored.
func parseAccountInfo(doc map[string]any) (*AccountInfo, error) {
	statement, ok := doc["accountStatement"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parseAccountInfo: document has no accountStatement")
	}
	raw, ok := statement["info"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parseAccountInfo: accountStatement has no info block")
	}

	info := &AccountInfo{}
	for key, value := range raw {
		field, ok := infoSchema[strings.ToLower(key)]
		if !ok {
			continue
		}
		if err := field.set(info, value); err != nil {
			return nil, fmt.Errorf("parseAccountInfo: %s (%s): %w", key, field.name, err)
		}
	}

	info.AccountNumberFull = accountNumberFull(info.AccountNumber, info.BankCode)
	return info, nil
}
