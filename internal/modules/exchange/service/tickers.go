package service

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"bittrader/internal/models"
)

type wsRequest struct {
	ID     string         `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type wsResponse struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Result []struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	} `json:"result"`
	Error *apiError `json:"error"`
}

// FetchTickers берёт последние цены через WebSocket API (ticker.price), один запрос на все пары.
func (c *Client) FetchTickers(ctx context.Context, pairs []string) ([]models.Ticker, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	bySymbol := make(map[string]string, len(pairs))
	symbols := make([]string, 0, len(pairs))
	for _, p := range pairs {
		s := symbol(p)
		bySymbol[s] = p
		symbols = append(symbols, s)
	}

	conn, _, err := c.wsDialer.DialContext(ctx, c.cfg.WSURL, nil)
	if err != nil {
		return nil, fetchErr(err, "ws dial")
	}
	defer func() {
		_ = conn.Close()
	}()

	// дедлайн сокета по настоящим часам, c.now только для меток данных
	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	id := strconv.FormatInt(c.now().UnixNano(), 10)
	req := wsRequest{ID: id, Method: "ticker.price", Params: map[string]any{"symbols": symbols}}
	if err := conn.WriteJSON(req); err != nil {
		return nil, fetchErr(err, "ws write")
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, fetchErr(err, "ws read")
		}
		var resp wsResponse
		if err := sonic.Unmarshal(msg, &resp); err != nil {
			return nil, fetchErr(err, "ws decode")
		}
		if resp.ID != id {
			continue
		}
		if resp.Status != 200 {
			if resp.Error != nil {
				return nil, fetchErr(*resp.Error, "ticker.price")
			}
			return nil, fetchErr(errors.Errorf("status %d", resp.Status), "ticker.price")
		}

		var num numbers
		now := c.now()
		out := make([]models.Ticker, 0, len(resp.Result))
		for _, r := range resp.Result {
			pair, ok := bySymbol[r.Symbol]
			if !ok {
				continue
			}
			out = append(out, models.Ticker{Pair: pair, Price: num.parse(r.Price), UpdatedAt: now})
		}
		if num.err != nil {
			return nil, fetchErr(num.err, "ticker.price")
		}
		return out, nil
	}
}
