package lib

import (
	"context"
	"time"
)

// Stats returns the statistics of the task collection.
func (c *Client) Stats(ctx context.Context) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fromInternalSummary(c.engine.Summary())
}

// ExportMonth returns the work finished in a calendar month. When nothing was
// finished it returns an error wrapping [ErrNoResults].
func (c *Client) ExportMonth(ctx context.Context, year int, month time.Month) (*MonthReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, err := c.engine.ExportMonth(year, month)
	if err != nil {
		return nil, err
	}

	return fromInternalMonthReport(*r), nil
}
