package entity

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskPumpDump RiskLevel = "PUMP_DUMP"
)

type BandarType string

const (
	BandarInstitutional BandarType = "INSTITUTIONAL"
	BandarSmartMoney    BandarType = "SMART_MONEY"
	BandarSpeculative   BandarType = "SPECULATIVE"
	BandarNone          BandarType = "NONE"
)

type Category string

const (
	CategoryBluechip Category = "BLUECHIP"
	CategoryMidcap   Category = "MIDCAP"
	CategorySmallcap Category = "SMALLCAP"
)

type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentNeutral Sentiment = "NEUTRAL"
	SentimentBearish Sentiment = "BEARISH"
)

// PatternSignal is a named price/volume pattern detected on a snapshot.
type PatternSignal struct {
	Name         string  `json:"name"`
	Confidence   float64 `json:"confidence"`
	Contribution int     `json:"contribution"`
}

// ScoredSnapshot is a MarketSnapshot enriched by the scoring engine.
type ScoredSnapshot struct {
	MarketSnapshot

	Score             int        `json:"score"`
	VolumeRatio       float64    `json:"volume_ratio"`
	Signals           []string   `json:"signals"`
	Reasons           []string   `json:"reasons"`
	BandarType        BandarType `json:"bandar_type"`
	Category          Category   `json:"category"`
	AccumulationScore int        `json:"accumulation_score"`
	RiskLevel         RiskLevel  `json:"risk_level"`
	Sentiment         Sentiment  `json:"sentiment"`
	SentimentScore    int        `json:"sentiment_score"`

	CorporateActions []CorporateActionSignal `json:"corporate_actions"`
	Patterns         []PatternSignal         `json:"patterns"`

	EarlyEntryPrice  *float64   `json:"early_entry_price,omitempty"`
	EntryPrice       float64    `json:"entry_price"`
	StopLoss         float64    `json:"stop_loss"`
	PriceTargets     [3]float64 `json:"price_targets"`
	RiskRewardRatio  *float64   `json:"risk_reward_ratio,omitempty"`
	ExitSignal       string     `json:"exit_signal"`
	DistanceFromHigh *float64   `json:"distance_from_high,omitempty"`
	PositionInRange  *float64   `json:"position_in_range,omitempty"`

	Filtered        bool `json:"filtered"`
	FallbackNominal bool `json:"fallback_nominal,omitempty"`
}

// CorporateImpact sums the impact of all detected corporate actions.
func (s *ScoredSnapshot) CorporateImpact() int {
	total := 0
	for _, a := range s.CorporateActions {
		total += a.ImpactScore
	}
	return total
}

// DominantAction returns the corporate action with the highest impact, or nil.
// Ties keep the earliest detected action.
func (s *ScoredSnapshot) DominantAction() *CorporateActionSignal {
	var dominant *CorporateActionSignal
	for i := range s.CorporateActions {
		if dominant == nil || s.CorporateActions[i].ImpactScore > dominant.ImpactScore {
			dominant = &s.CorporateActions[i]
		}
	}
	return dominant
}
