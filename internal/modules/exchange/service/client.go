package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"bittrader/internal/models"
)

type Config struct {
	BaseURL    string
	WSURL      string
	APIKey     string
	APISecret  string
	RecvWindow int
	Timeout    time.Duration
}

// Client — шлюз к Binance spot. Создаётся один раз при старте и не меняется.
type Client struct {
	cfg      Config
	http     *http.Client
	wsDialer *websocket.Dialer
	now      func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		wsDialer: &websocket.Dialer{HandshakeTimeout: cfg.Timeout},
		now:      time.Now,
	}
}

// apiError — тело ошибки Binance.
type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e apiError) Error() string { return fmt.Sprintf("binance error: code=%d msg=%s", e.Code, e.Msg) }

// symbol: "BTC/USDT" -> "BTCUSDT"
func symbol(pair string) string {
	return strings.ToUpper(strings.ReplaceAll(pair, "/", ""))
}

func (c *Client) sign(query string) string {
	h := hmac.New(sha256.New, []byte(c.cfg.APISecret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Client) public(ctx context.Context, path string, params url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.do(req, out)
}

func (c *Client) signed(ctx context.Context, method, path string, params url.Values, out any) error {
	if c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return errors.New("api creds empty")
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
	if c.cfg.RecvWindow > 0 {
		params.Set("recvWindow", strconv.Itoa(c.cfg.RecvWindow))
	}
	query := params.Encode()
	query += "&signature=" + c.sign(query)

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path+"?"+query, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("X-MBX-APIKEY", c.cfg.APIKey)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if resp.StatusCode/100 != 2 {
		var ae apiError
		if sonic.Unmarshal(rb, &ae) == nil && ae.Code != 0 {
			return errors.WithStack(ae)
		}
		return errors.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(rb, out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}

func fetchErr(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", models.ErrTransientFetch, errors.Wrapf(err, format, args...))
}

func tradeErr(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", models.ErrTradeExecution, errors.Wrapf(err, format, args...))
}

// numbers разбирает числовые поля ответа биржи и запоминает первую ошибку.
type numbers struct {
	err error
}

func (n *numbers) parse(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && n.err == nil {
		n.err = errors.Wrapf(err, "bad number %q", s)
	}
	return v
}

// any — для klines, где числа приходят строками, а время числом.
func (n *numbers) any(v any) float64 {
	switch x := v.(type) {
	case string:
		return n.parse(x)
	case float64:
		return x
	}
	if n.err == nil {
		n.err = errors.Errorf("bad number %v", v)
	}
	return 0
}
