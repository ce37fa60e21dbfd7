package fiobank

import (
	"context"
	"time"
)

// Query bundles the statement lookups most callers reach for. It is
// available on Client.Transactions.
type Query struct {
	client *Client
}

// All returns the transactions of the trailing three years.
func (q *Query) All(ctx context.Context) ([]*Transaction, error) {
	today := time.Now()
	from := today.AddDate(0, 0, -3*365)
	return q.client.Period(ctx, from, today)
}

// Latest moves the checkpoint thirty days back and returns the most recent
// transaction since then, or nil when there is none.
func (q *Query) Latest(ctx context.Context) (*Transaction, error) {
	transactions, err := q.client.Last(ctx, LastOptions{
		FromDate: time.Now().AddDate(0, 0, -30),
	})
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, nil
	}
	return transactions[len(transactions)-1], nil
}
