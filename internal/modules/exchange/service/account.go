package service

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"bittrader/internal/models"
)

type accountResponse struct {
	Balances []struct {
		Asset  string `json:"asset"`
		Free   string `json:"free"`
		Locked string `json:"locked"`
	} `json:"balances"`
}

func (c *Client) FetchBalances(ctx context.Context) ([]models.RawBalance, error) {
	params := url.Values{}
	params.Set("omitZeroBalances", "true")

	var resp accountResponse
	if err := c.signed(ctx, http.MethodGet, "/api/v3/account", params, &resp); err != nil {
		return nil, fetchErr(err, "account")
	}

	var num numbers
	out := make([]models.RawBalance, 0, len(resp.Balances))
	for _, b := range resp.Balances {
		out = append(out, models.RawBalance{
			Asset:  b.Asset,
			Free:   num.parse(b.Free),
			Locked: num.parse(b.Locked),
		})
	}
	if num.err != nil {
		return nil, fetchErr(num.err, "account")
	}
	return out, nil
}

type myTrade struct {
	Symbol          string `json:"symbol"`
	ID              int64  `json:"id"`
	OrderID         int64  `json:"orderId"`
	Price           string `json:"price"`
	Qty             string `json:"qty"`
	QuoteQty        string `json:"quoteQty"`
	Commission      string `json:"commission"`
	CommissionAsset string `json:"commissionAsset"`
	Time            int64  `json:"time"`
	IsBuyer         bool   `json:"isBuyer"`
}

// FetchTrades — история сделок по парам, по одному запросу на пару.
func (c *Client) FetchTrades(ctx context.Context, pairs []string) ([]models.TradeRecord, error) {
	var (
		out []models.TradeRecord
		num numbers
	)
	for _, pair := range pairs {
		params := url.Values{}
		params.Set("symbol", symbol(pair))

		var trades []myTrade
		if err := c.signed(ctx, http.MethodGet, "/api/v3/myTrades", params, &trades); err != nil {
			return nil, fetchErr(err, "myTrades %s", pair)
		}
		for _, t := range trades {
			side := models.SideSell
			if t.IsBuyer {
				side = models.SideBuy
			}
			out = append(out, models.TradeRecord{
				ID:              t.ID,
				OrderID:         t.OrderID,
				Pair:            pair,
				Side:            side,
				Price:           num.parse(t.Price),
				Qty:             num.parse(t.Qty),
				QuoteQty:        num.parse(t.QuoteQty),
				Commission:      num.parse(t.Commission),
				CommissionAsset: t.CommissionAsset,
				Time:            time.UnixMilli(t.Time),
			})
		}
		if num.err != nil {
			return nil, fetchErr(num.err, "myTrades %s", pair)
		}
	}
	return out, nil
}
