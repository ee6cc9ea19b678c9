package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"bittrader/internal/models"
)

const MaxCandles = 1000

// FetchCandles — последние limit свечей, newest-last.
// Строка klines: [openTime, open, high, low, close, volume, closeTime, ...]
func (c *Client) FetchCandles(ctx context.Context, pair, timeframe string, limit int) ([]models.PricePoint, error) {
	if limit <= 0 || limit > MaxCandles {
		limit = MaxCandles
	}
	params := url.Values{}
	params.Set("symbol", symbol(pair))
	params.Set("interval", timeframe)
	params.Set("limit", strconv.Itoa(limit))

	var rows [][]any
	if err := c.public(ctx, "/api/v3/klines", params, &rows); err != nil {
		return nil, fetchErr(err, "klines %s %s", pair, timeframe)
	}

	var num numbers
	out := make([]models.PricePoint, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			return nil, fetchErr(errors.Errorf("short kline row: %d fields", len(row)), "klines %s %s", pair, timeframe)
		}
		ts, ok := row[0].(float64)
		if !ok {
			return nil, fetchErr(errors.Errorf("bad open time %v", row[0]), "klines %s %s", pair, timeframe)
		}
		out = append(out, models.PricePoint{
			Time:   time.UnixMilli(int64(ts)),
			Open:   num.any(row[1]),
			High:   num.any(row[2]),
			Low:    num.any(row[3]),
			Close:  num.any(row[4]),
			Volume: num.any(row[5]),
		})
	}
	if num.err != nil {
		return nil, fetchErr(num.err, "klines %s %s", pair, timeframe)
	}
	return out, nil
}
