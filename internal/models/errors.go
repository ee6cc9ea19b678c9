package models

import "errors"

var (
	ErrTransientFetch = errors.New("exchange fetch failed")
	ErrTradeExecution = errors.New("trade execution failed")
	ErrConfigMissing  = errors.New("config key missing")
	ErrUnknownProfile = errors.New("unknown timeframe profile")
	ErrNothingToSell  = errors.New("nothing to sell")
)
