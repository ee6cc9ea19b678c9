package models

import "time"

// MinLiquidatableValue — ниже этой оценки в деноминаторе позицию не продать (min notional).
const MinLiquidatableValue = 10.0

// RawBalance — строка баланса как её отдаёт биржа.
type RawBalance struct {
	Asset  string
	Free   float64
	Locked float64
}

// Balance — оценённый снимок, целиком заменяется при каждом обновлении.
type Balance struct {
	Asset        string  `json:"asset"`
	Pair         string  `json:"pair"`
	Free         float64 `json:"free"`
	Valued       float64 `json:"valued"`
	Purchasable  bool    `json:"purchasable"`
	Liquidatable bool    `json:"liquidatable"`
}

type TradeRecord struct {
	ID              int64     `json:"id"`
	OrderID         int64     `json:"order_id"`
	Pair            string    `json:"pair"`
	Side            Side      `json:"side"`
	Price           float64   `json:"price"`
	Qty             float64   `json:"qty"`
	QuoteQty        float64   `json:"quote_qty"`
	Commission      float64   `json:"commission"`
	CommissionAsset string    `json:"commission_asset"`
	Time            time.Time `json:"time"`
}
