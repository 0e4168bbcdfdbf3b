package scoring

import (
	"fmt"
	"math"
	"time"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/pkg/utils"
)

const estimatedSuffix = " (estimasi, belum terverifikasi)"

// actionProfile is the static description of a corporate action kind.
type actionProfile struct {
	impact      int
	confidence  float64
	horizonDays int
	label       string
}

var actionProfiles = map[entity.CorporateActionKind]actionProfile{
	entity.ActionEarningsReport:    {impact: 12, confidence: 0.9, horizonDays: 0, label: "Laporan keuangan"},
	entity.ActionCashDividend:      {impact: 15, confidence: 0.8, horizonDays: 30, label: "Dividen tunai"},
	entity.ActionStockDividend:     {impact: 6, confidence: 0.5, horizonDays: 45, label: "Dividen saham"},
	entity.ActionStockSplit:        {impact: 10, confidence: 0.4, horizonDays: 60, label: "Stock split"},
	entity.ActionBonusShare:        {impact: 8, confidence: 0.4, horizonDays: 60, label: "Saham bonus"},
	entity.ActionRightsIssue:       {impact: 5, confidence: 0.4, horizonDays: 45, label: "Rights issue"},
	entity.ActionWarrant:           {impact: 5, confidence: 0.3, horizonDays: 30, label: "Waran"},
	entity.ActionMergerAcquisition: {impact: 18, confidence: 0.5, horizonDays: 90, label: "Merger/akuisisi"},
	entity.ActionSpinOff:           {impact: 8, confidence: 0.3, horizonDays: 90, label: "Spin-off"},
}

// targetFactor scales price targets by the dominant corporate action.
func targetFactor(kind entity.CorporateActionKind) float64 {
	switch kind {
	case entity.ActionMergerAcquisition:
		return 1.05
	case entity.ActionStockSplit:
		return 1.04
	case entity.ActionEarningsReport:
		return 1.03
	case entity.ActionCashDividend:
		return 1.02
	case "":
		return 1.0
	default:
		return 1.01
	}
}

func newAction(kind entity.CorporateActionKind, impact int, detail string, date *time.Time, now time.Time) entity.CorporateActionSignal {
	p := actionProfiles[kind]
	if date != nil && date.After(now) {
		return entity.CorporateActionSignal{
			Kind:        kind,
			ImpactScore: impact,
			DaysToEvent: utils.DaysUntil(now, *date),
			Confidence:  p.confidence,
			Detail:      detail,
		}
	}
	return entity.CorporateActionSignal{
		Kind:        kind,
		ImpactScore: impact,
		DaysToEvent: p.horizonDays,
		Confidence:  p.confidence / 2,
		Detail:      detail + estimatedSuffix,
		Estimated:   true,
	}
}

// detectCorporateActions derives the likely corporate actions from snapshot fields.
func (e *Engine) detectCorporateActions(s entity.MarketSnapshot, tier capTier, ratio float64, now time.Time) []entity.CorporateActionSignal {
	var actions []entity.CorporateActionSignal

	if s.EarningsDate != nil && s.EarningsDate.After(now) {
		horizon := now.Add(time.Duration(e.cfg.EarningsHorizonDays) * 24 * time.Hour)
		if !s.EarningsDate.After(horizon) {
			actions = append(actions, newAction(entity.ActionEarningsReport, actionProfiles[entity.ActionEarningsReport].impact,
				fmt.Sprintf("Laporan keuangan dirilis %s", utils.PrettyDate(*s.EarningsDate)), s.EarningsDate, now))
		}
	}

	if s.DividendYield >= 3 {
		impact := actionProfiles[entity.ActionCashDividend].impact
		if s.DividendYield >= 6 {
			impact = 20
		}
		actions = append(actions, newAction(entity.ActionCashDividend, impact,
			fmt.Sprintf("Dividen tunai dengan yield %.2f%%", s.DividendYield), s.DividendDate, now))
	}

	if s.DividendYield > 0 && s.PriceToBook >= 2 && tier != tierSmall && s.ChangePercent >= 0 {
		actions = append(actions, newAction(entity.ActionStockDividend, actionProfiles[entity.ActionStockDividend].impact,
			fmt.Sprintf("Potensi dividen saham, PBV %.2f", s.PriceToBook), nil, now))
	}

	if s.Price >= 10000 && ratio >= 1.5 {
		actions = append(actions, newAction(entity.ActionStockSplit, actionProfiles[entity.ActionStockSplit].impact,
			fmt.Sprintf("Potensi stock split, harga Rp %.0f", s.Price), nil, now))
	}

	if s.PriceToBook >= 3 && s.DividendYield > 0 && s.PERatio > 0 && s.PERatio < 25 {
		actions = append(actions, newAction(entity.ActionBonusShare, actionProfiles[entity.ActionBonusShare].impact,
			fmt.Sprintf("Potensi saham bonus, PBV %.2f PER %.2f", s.PriceToBook, s.PERatio), nil, now))
	}

	if s.MarketCap < e.cfg.MidCapThreshold && s.PriceToBook > 0 && s.PriceToBook < 1 && s.PERatio <= 0 {
		actions = append(actions, newAction(entity.ActionRightsIssue, actionProfiles[entity.ActionRightsIssue].impact,
			"Potensi rights issue untuk memperbaiki permodalan", nil, now))
	}

	if tier == tierSmall && s.Price < 200 && ratio >= 2 {
		actions = append(actions, newAction(entity.ActionWarrant, actionProfiles[entity.ActionWarrant].impact,
			fmt.Sprintf("Potensi penerbitan waran, volume %.1fx", ratio), nil, now))
	}

	if ratio >= 4 && math.Abs(s.ChangePercent) <= 2 {
		actions = append(actions, newAction(entity.ActionMergerAcquisition, actionProfiles[entity.ActionMergerAcquisition].impact,
			fmt.Sprintf("Volume %.1fx dengan harga tertahan, indikasi merger/akuisisi", ratio), nil, now))
	}

	if tier == tierLarge && s.PriceToBook > 0 && s.PriceToBook < 1 && ratio >= 1.5 {
		actions = append(actions, newAction(entity.ActionSpinOff, actionProfiles[entity.ActionSpinOff].impact,
			"Potensi spin-off anak usaha", nil, now))
	}

	return actions
}

func (e *Engine) applyCorporateActions(st *state) {
	actions := e.detectCorporateActions(st.snap, st.tier, st.out.VolumeRatio, st.now)
	for _, a := range actions {
		st.add(a.ImpactScore,
			fmt.Sprintf("CORP ACTION: %s", a.Kind),
			fmt.Sprintf("%s: %s (%d hari, keyakinan %.0f%%)", actionProfiles[a.Kind].label, a.Detail, a.DaysToEvent, a.Confidence*100))
	}
	st.out.CorporateActions = append(st.out.CorporateActions, actions...)
}
