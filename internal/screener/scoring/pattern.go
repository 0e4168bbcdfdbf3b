package scoring

import (
	"fmt"
	"math"

	"golang-bandar-screener/internal/entity"
)

type pattern struct {
	name       string
	confidence float64
	match      func(s entity.MarketSnapshot, tier capTier, ratio float64) bool
}

var patterns = []pattern{
	{
		name:       "POCKET_PIVOT",
		confidence: 0.70,
		match: func(s entity.MarketSnapshot, _ capTier, ratio float64) bool {
			return ratio >= 2 && s.ChangePercent > 2 && s.ChangePercent <= 6
		},
	},
	{
		name:       "BLUECHIP_ROTATION",
		confidence: 0.60,
		match: func(s entity.MarketSnapshot, tier capTier, ratio float64) bool {
			return tier == tierLarge && ratio >= 1.3 && s.ChangePercent > 0 && s.ChangePercent <= 3
		},
	},
	{
		name:       "DIVIDEND_PLAY",
		confidence: 0.50,
		match: func(s entity.MarketSnapshot, _ capTier, _ float64) bool {
			return s.DividendYield >= 4 && s.ChangePercent >= 0
		},
	},
	{
		name:       "PENNY_MARKUP",
		confidence: 0.40,
		match: func(s entity.MarketSnapshot, _ capTier, ratio float64) bool {
			return s.Price < 500 && ratio >= 3 && s.ChangePercent > 5
		},
	},
	{
		name:       "REVERSAL_BOUNCE",
		confidence: 0.55,
		match: func(s entity.MarketSnapshot, _ capTier, ratio float64) bool {
			return s.FiftyTwoWeekLow > 0 && s.Price <= s.FiftyTwoWeekLow*1.1 && s.ChangePercent > 0 && ratio >= 1.2
		},
	},
}

func (e *Engine) applyPatterns(st *state) {
	for _, p := range patterns {
		if !p.match(st.snap, st.tier, st.out.VolumeRatio) {
			continue
		}
		contribution := int(math.Round(p.confidence * e.cfg.PatternWeight))
		st.out.Patterns = append(st.out.Patterns, entity.PatternSignal{
			Name:         p.name,
			Confidence:   p.confidence,
			Contribution: contribution,
		})
		st.add(contribution, "PATTERN: "+p.name, fmt.Sprintf("Pola %s terdeteksi (keyakinan %.0f%%)", p.name, p.confidence*100))
	}
}
