package dto

import (
	"math"
	"strings"
	"time"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/pkg/utils"
)

// MarketDataResponse is the success envelope returned by the market data API.
type MarketDataResponse struct {
	Success bool              `json:"success"`
	Data    MarketDataPayload `json:"data"`
}

// volumeInt converts a parsed volume to int64. Negative and NaN values become 0 and values
// beyond the int64 range are clamped.
func volumeInt(v float64) int64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(v)
	}
}

// MarketDataPayload keeps the raw, loosely typed fields of one stock.
// Values are coerced to typed defaults by ToSnapshot.
type MarketDataPayload map[string]interface{}

// ToSnapshot parses the payload into a MarketSnapshot, applying the documented defaults:
// missing or unparsable numbers become 0, a non-positive averageVolume falls back to volume and
// institutional ownership given as a fraction is scaled to percent.
func (p MarketDataPayload) ToSnapshot(fallbackSymbol string) entity.MarketSnapshot {
	full, _ := p["fullData"].(map[string]interface{})

	symbol := strings.ToUpper(strings.TrimSpace(stringValue(p["symbol"])))
	if symbol == "" {
		symbol = strings.ToUpper(strings.TrimSpace(fallbackSymbol))
	}
	name := stringValue(p["name"])
	if name == "" {
		name = stringValue(full["longName"])
	}

	volume := p.number(full, 0, "volume", "regularMarketVolume")
	averageVolume := p.number(full, volume, "averageVolume", "averageDailyVolume3Month")
	if averageVolume <= 0 {
		averageVolume = volume
	}

	dividendYield := p.number(full, 0, "dividendYield")
	if dividendYield == 0 && p.number(full, 0, "trailingAnnualDividendRate") > 0 {
		price := p.number(full, 0, "price", "regularMarketPrice")
		if price > 0 {
			dividendYield = p.number(full, 0, "trailingAnnualDividendRate") / price * 100
		}
	}

	institutional := p.number(full, 0, "institutionalOwnership", "heldPercentInstitutions")
	if institutional > 0 && institutional <= 1 {
		institutional *= 100
	}

	return entity.MarketSnapshot{
		Symbol:                 symbol,
		Name:                   name,
		Price:                  p.number(full, 0, "price", "regularMarketPrice"),
		ChangePercent:          p.number(full, 0, "changePercent", "regularMarketChangePercent"),
		Volume:                 volumeInt(volume),
		AverageVolume:          averageVolume,
		DayHigh:                p.number(full, 0, "dayHigh", "regularMarketDayHigh"),
		DayLow:                 p.number(full, 0, "dayLow", "regularMarketDayLow"),
		Open:                   p.number(full, 0, "open", "regularMarketOpen"),
		FiftyTwoWeekHigh:       p.number(full, 0, "fiftyTwoWeekHigh"),
		FiftyTwoWeekLow:        p.number(full, 0, "fiftyTwoWeekLow"),
		MarketCap:              p.number(full, 0, "marketCap"),
		PERatio:                p.number(full, 0, "peRatio", "trailingPE"),
		PriceToBook:            p.number(full, 0, "priceToBook"),
		DividendYield:          dividendYield,
		ForeignNetBuy:          p.number(full, 0, "foreignNetBuy"),
		InstitutionalOwnership: institutional,
		EarningsDate:           p.timestamp(full, "earningsDate", "earningsTimestampStart", "earningsTimestamp"),
		DividendDate:           p.timestamp(full, "dividendDate", "exDividendDate"),
	}
}

// number returns the first parsable value among keys, looked up in the payload and then in fullData.
func (p MarketDataPayload) number(full map[string]interface{}, def float64, keys ...string) float64 {
	for _, src := range []map[string]interface{}{p, full} {
		for _, key := range keys {
			if f, ok := utils.ParseFloat(src[key]); ok {
				return f
			}
		}
	}
	return def
}

func (p MarketDataPayload) timestamp(full map[string]interface{}, keys ...string) *time.Time {
	for _, src := range []map[string]interface{}{p, full} {
		for _, key := range keys {
			raw, exists := src[key]
			if !exists || raw == nil {
				continue
			}
			if s, ok := raw.(string); ok {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					return &t
				}
			}
			f, ok := utils.ParseFloat(raw)
			if !ok || f <= 0 {
				continue
			}
			// values above 1e12 are epoch milliseconds
			if f > 1e12 {
				t := time.UnixMilli(int64(f))
				return &t
			}
			t := time.Unix(int64(f), 0)
			return &t
		}
	}
	return nil
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
