package entity

type CorporateActionKind string

const (
	ActionCashDividend      CorporateActionKind = "CASH_DIVIDEND"
	ActionStockDividend     CorporateActionKind = "STOCK_DIVIDEND"
	ActionStockSplit        CorporateActionKind = "STOCK_SPLIT"
	ActionBonusShare        CorporateActionKind = "BONUS_SHARE"
	ActionRightsIssue       CorporateActionKind = "RIGHTS_ISSUE"
	ActionWarrant           CorporateActionKind = "WARRANT"
	ActionMergerAcquisition CorporateActionKind = "MERGER_ACQUISITION"
	ActionSpinOff           CorporateActionKind = "SPIN_OFF"
	ActionEarningsReport    CorporateActionKind = "EARNINGS_REPORT"
)

// CorporateActionSignal is a corporate action inferred from snapshot fields.
// Estimated is true when DaysToEvent is a fixed horizon rather than a sourced date.
type CorporateActionSignal struct {
	Kind        CorporateActionKind `json:"kind"`
	ImpactScore int                 `json:"impact_score"`
	DaysToEvent int                 `json:"days_to_event"`
	Confidence  float64             `json:"confidence"`
	Detail      string              `json:"detail"`
	Estimated   bool                `json:"estimated"`
}
