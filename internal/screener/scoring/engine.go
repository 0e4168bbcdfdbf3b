package scoring

import (
	"fmt"
	"time"

	"golang-bandar-screener/internal/entity"
)

// Engine scores market snapshots. It has no side effects and is safe for concurrent use.
type Engine struct {
	cfg   Config
	rules []rule
}

type rule struct {
	name  string
	apply func(st *state)
}

type state struct {
	snap entity.MarketSnapshot
	out  *entity.ScoredSnapshot
	now  time.Time
	tier capTier
}

func (st *state) add(points int, signal, reason string) {
	st.out.Score += points
	if signal != "" {
		st.out.Signals = append(st.out.Signals, signal)
	}
	if reason != "" {
		st.out.Reasons = append(st.out.Reasons, reason)
	}
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.rules = []rule{
		{name: "capitalization_tier", apply: e.applyCapTier},
		{name: "corporate_action", apply: e.applyCorporateActions},
		{name: "sentiment", apply: e.applySentiment},
		{name: "pattern", apply: e.applyPatterns},
		{name: "subtle_accumulation", apply: e.applySubtleAccumulation},
		{name: "flow_bonus", apply: e.applyFlowBonus},
		{name: "technical", apply: e.applyTechnical},
		{name: "exit_signal", apply: e.applyExitSignal},
		{name: "trade_plan", apply: e.applyTradePlan},
		{name: "risk_escalation", apply: e.applyRiskEscalation},
	}
	return e
}

// Config returns the thresholds the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score evaluates every rule family in order and returns the scored snapshot.
// now is used for day counts so identical input and now give identical output.
func (e *Engine) Score(snap entity.MarketSnapshot, now time.Time) entity.ScoredSnapshot {
	out := entity.ScoredSnapshot{
		MarketSnapshot:   snap,
		VolumeRatio:      volumeRatio(snap),
		Signals:          []string{},
		Reasons:          []string{},
		BandarType:       entity.BandarNone,
		RiskLevel:        entity.RiskMedium,
		Sentiment:        entity.SentimentNeutral,
		CorporateActions: []entity.CorporateActionSignal{},
		Patterns:         []entity.PatternSignal{},
		EntryPrice:       snap.Price,
	}

	if snap.Price < e.cfg.MinPrice || snap.Price > e.cfg.MaxPrice {
		out.Filtered = true
		out.Reasons = append(out.Reasons, fmt.Sprintf("Harga Rp %.0f di luar rentang Rp %.0f - Rp %.0f", snap.Price, e.cfg.MinPrice, e.cfg.MaxPrice))
		return out
	}

	if snap.ChangePercent > e.cfg.PumpChangePercent && out.VolumeRatio > e.cfg.PumpVolumeRatio {
		out.Filtered = true
		out.RiskLevel = entity.RiskPumpDump
		out.Signals = append(out.Signals, "PUMP & DUMP ⚠️")
		out.Reasons = append(out.Reasons, fmt.Sprintf("Indikasi pump & dump: naik %.2f%% dengan volume %.1fx", snap.ChangePercent, out.VolumeRatio))
		return out
	}

	st := &state{snap: snap, out: &out, now: now}
	for _, r := range e.rules {
		r.apply(st)
	}

	if out.Score < 0 {
		out.Score = 0
	}
	return out
}

// ScoreAll scores every snapshot with the same clock.
func (e *Engine) ScoreAll(snaps []entity.MarketSnapshot, now time.Time) []entity.ScoredSnapshot {
	scored := make([]entity.ScoredSnapshot, 0, len(snaps))
	for _, s := range snaps {
		scored = append(scored, e.Score(s, now))
	}
	return scored
}

func volumeRatio(s entity.MarketSnapshot) float64 {
	if s.Volume <= 0 {
		return 0
	}
	if s.AverageVolume <= 0 {
		return 1
	}
	return float64(s.Volume) / s.AverageVolume
}
