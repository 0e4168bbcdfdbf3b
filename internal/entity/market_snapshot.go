package entity

import "time"

// MarketSnapshot is the per-symbol market data used for screening.
// Numeric fields are already coerced to their documented defaults.
type MarketSnapshot struct {
	Symbol                 string     `json:"symbol"`
	Name                   string     `json:"name"`
	Price                  float64    `json:"price"`
	ChangePercent          float64    `json:"change_percent"`
	Volume                 int64      `json:"volume"`
	AverageVolume          float64    `json:"average_volume"`
	DayHigh                float64    `json:"day_high"`
	DayLow                 float64    `json:"day_low"`
	Open                   float64    `json:"open"`
	FiftyTwoWeekHigh       float64    `json:"fifty_two_week_high"`
	FiftyTwoWeekLow        float64    `json:"fifty_two_week_low"`
	MarketCap              float64    `json:"market_cap"`
	PERatio                float64    `json:"pe_ratio"`
	PriceToBook            float64    `json:"price_to_book"`
	DividendYield          float64    `json:"dividend_yield"`
	ForeignNetBuy          float64    `json:"foreign_net_buy"`
	InstitutionalOwnership float64    `json:"institutional_ownership"`
	EarningsDate           *time.Time `json:"earnings_date,omitempty"`
	DividendDate           *time.Time `json:"dividend_date,omitempty"`
}
