package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bittrader/internal/models"
)

func writeSettings(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trading.yaml")
	writeSettings(t, path, `
denominator: usdt
numerators: [btc, ETH, " link ", BTC]
allowbuy: true
allowsell: false
amount: 20
`)

	cfg, err := NewStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USDT", cfg.Denominator)
	assert.Equal(t, []string{"BTC", "ETH", "LINK"}, cfg.Numerators)
	assert.True(t, cfg.AllowBuy)
	assert.False(t, cfg.AllowSell)
	assert.Equal(t, 20.0, cfg.Amount)
	assert.Equal(t, "3m", cfg.Timeframe)
}

func TestStore_LoadRereadsEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trading.yaml")
	writeSettings(t, path, "denominator: USDT\nnumerators: BTC,ETH\nallowbuy: false\nallowsell: false\namount: 10\n")

	store := NewStore(path)
	cfg, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.AllowBuy)
	assert.Equal(t, []string{"BTC", "ETH"}, cfg.Numerators)

	writeSettings(t, path, "denominator: USDT\nnumerators: BTC\nallowbuy: true\nallowsell: false\namount: 10\ntimeframe: 1h\n")
	cfg, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.AllowBuy)
	assert.Equal(t, "1h", cfg.Timeframe)
}

func TestStore_LoadMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trading.yaml")
	writeSettings(t, path, "denominator: USDT\nnumerators: [BTC]\nallowbuy: true\namount: 10\n")

	_, err := NewStore(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConfigMissing))
	assert.Contains(t, err.Error(), KeyAllowSell)
}

func TestStore_LoadMissingFile(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "absent.yaml")).Load(context.Background())
	assert.True(t, errors.Is(err, models.ErrConfigMissing))
}
