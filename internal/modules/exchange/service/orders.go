package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"bittrader/internal/models"
)

type orderResponse struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	Status        string `json:"status"`
	ExecutedQty   string `json:"executedQty"`
	CumulativeQty string `json:"cummulativeQuoteQty"`
}

type exchangeInfo struct {
	Symbols []struct {
		Symbol  string `json:"symbol"`
		Filters []struct {
			FilterType string `json:"filterType"`
			MinQty     string `json:"minQty"`
			StepSize   string `json:"stepSize"`
		} `json:"filters"`
	} `json:"symbols"`
}

type lotSize struct {
	minQty decimal.Decimal
	step   decimal.Decimal
}

// ExecuteBuy — рыночная покупка на фиксированную сумму в котируемой валюте.
func (c *Client) ExecuteBuy(ctx context.Context, pair string, quoteAmount float64) error {
	amount := decimal.NewFromFloat(quoteAmount)
	if !amount.IsPositive() {
		return tradeErr(errors.Errorf("non-positive amount %s", amount), "buy %s", pair)
	}

	params := url.Values{}
	params.Set("symbol", symbol(pair))
	params.Set("side", string(models.SideBuy))
	params.Set("type", "MARKET")
	params.Set("quoteOrderQty", amount.String())

	var resp orderResponse
	if err := c.signed(ctx, http.MethodPost, "/api/v3/order", params, &resp); err != nil {
		return tradeErr(err, "buy %s", pair)
	}
	return nil
}

// ExecuteSell продаёт весь свободный остаток базовой валюты, округлённый вниз до шага лота.
func (c *Client) ExecuteSell(ctx context.Context, pair string) error {
	base, _, ok := models.SplitPair(pair)
	if !ok {
		return tradeErr(errors.Errorf("bad pair %q", pair), "sell")
	}

	balances, err := c.FetchBalances(ctx)
	if err != nil {
		return tradeErr(err, "sell %s", pair)
	}
	free := decimal.Zero
	for _, b := range balances {
		if b.Asset == base {
			free = decimal.NewFromFloat(b.Free)
			break
		}
	}

	lot, err := c.lotSize(ctx, pair)
	if err != nil {
		return tradeErr(err, "sell %s", pair)
	}
	qty := roundToStep(free, lot.step)
	if !qty.IsPositive() || qty.LessThan(lot.minQty) {
		return tradeErr(models.ErrNothingToSell, "sell %s free=%s", pair, free)
	}

	params := url.Values{}
	params.Set("symbol", symbol(pair))
	params.Set("side", string(models.SideSell))
	params.Set("type", "MARKET")
	params.Set("quantity", qty.String())

	var resp orderResponse
	if err := c.signed(ctx, http.MethodPost, "/api/v3/order", params, &resp); err != nil {
		return tradeErr(err, "sell %s", pair)
	}
	return nil
}

func (c *Client) lotSize(ctx context.Context, pair string) (lotSize, error) {
	params := url.Values{}
	params.Set("symbol", symbol(pair))

	var info exchangeInfo
	if err := c.public(ctx, "/api/v3/exchangeInfo", params, &info); err != nil {
		return lotSize{}, errors.Wrap(err, "exchangeInfo")
	}
	for _, s := range info.Symbols {
		if s.Symbol != symbol(pair) {
			continue
		}
		for _, f := range s.Filters {
			if f.FilterType != "LOT_SIZE" {
				continue
			}
			step, err := decimal.NewFromString(f.StepSize)
			if err != nil {
				return lotSize{}, errors.Wrapf(err, "stepSize %q", f.StepSize)
			}
			minQty, err := decimal.NewFromString(f.MinQty)
			if err != nil {
				return lotSize{}, errors.Wrapf(err, "minQty %q", f.MinQty)
			}
			return lotSize{minQty: minQty, step: step}, nil
		}
	}
	return lotSize{}, errors.Errorf("no LOT_SIZE filter for %s", symbol(pair))
}

func roundToStep(qty, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return qty
	}
	return qty.Div(step).Floor().Mul(step)
}
