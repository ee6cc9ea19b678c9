// Package settings — хранилище торговых настроек. Читается заново на каждом тике.
package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"bittrader/internal/models"
)

const (
	KeyDenominator = "denominator"
	KeyNumerators  = "numerators"
	KeyAllowBuy    = "allowbuy"
	KeyAllowSell   = "allowsell"
	KeyAmount      = "amount"
	KeyTimeframe   = "timeframe"
)

var requiredKeys = []string{KeyDenominator, KeyNumerators, KeyAllowBuy, KeyAllowSell, KeyAmount}

// Store отдаёт TradeConfig из yaml-файла через viper.
type Store struct {
	mu sync.Mutex
	v  *viper.Viper
}

func NewStore(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("BITTRADER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyTimeframe, "3m")
	return &Store{v: v}
}

// Load перечитывает файл и собирает TradeConfig.
func (s *Store) Load(_ context.Context) (models.TradeConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		return models.TradeConfig{}, errors.Wrapf(models.ErrConfigMissing, "read settings: %v", err)
	}
	for _, key := range requiredKeys {
		if !s.v.IsSet(key) {
			return models.TradeConfig{}, errors.Wrap(models.ErrConfigMissing, key)
		}
	}

	cfg := models.TradeConfig{
		Denominator: strings.ToUpper(strings.TrimSpace(s.v.GetString(KeyDenominator))),
		Numerators:  normalize(s.v.GetStringSlice(KeyNumerators)),
		AllowBuy:    s.v.GetBool(KeyAllowBuy),
		AllowSell:   s.v.GetBool(KeyAllowSell),
		Amount:      s.v.GetFloat64(KeyAmount),
		Timeframe:   s.v.GetString(KeyTimeframe),
	}
	if cfg.Denominator == "" {
		return models.TradeConfig{}, errors.Wrap(models.ErrConfigMissing, KeyDenominator)
	}
	if len(cfg.Numerators) == 0 {
		return models.TradeConfig{}, errors.Wrap(models.ErrConfigMissing, KeyNumerators)
	}
	return cfg, nil
}

// numerators можно задать списком или строкой "BTC,ETH".
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			n := strings.ToUpper(strings.TrimSpace(part))
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
