package scoring

import (
	"strings"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/pkg/utils"
)

const noExitSignal = "Belum ada sinyal exit"

var targetMultipliers = map[capTier][3]float64{
	tierLarge: {1.05, 1.10, 1.15},
	tierMid:   {1.08, 1.15, 1.20},
	tierSmall: {1.10, 1.20, 1.30},
}

func (e *Engine) applyExitSignal(st *state) {
	s := st.snap
	var exits []string
	if st.out.VolumeRatio > 5 && s.ChangePercent > 10 {
		exits = append(exits, "Volume ekstrem dengan kenaikan tajam, waspadai distribusi")
	}
	if s.ChangePercent > 15 {
		exits = append(exits, "Kenaikan di atas 15%, pertimbangkan ambil untung")
	}
	if s.ForeignNetBuy < -1e9 {
		exits = append(exits, "Net sell asing besar")
	}
	if len(exits) == 0 {
		st.out.ExitSignal = noExitSignal
		return
	}
	st.out.ExitSignal = strings.Join(exits, " | ")
}

// applyTradePlan fills entry, price targets, stop loss and risk/reward.
func (e *Engine) applyTradePlan(st *state) {
	entry := st.snap.Price
	if st.out.EarlyEntryPrice != nil {
		entry = *st.out.EarlyEntryPrice
	}
	st.out.EntryPrice = entry

	factor := 1.0
	if dominant := st.out.DominantAction(); dominant != nil {
		factor = targetFactor(dominant.Kind)
	}
	multipliers := targetMultipliers[st.tier]
	for i, m := range multipliers {
		st.out.PriceTargets[i] = utils.Round(entry*m*factor, 2)
	}

	st.out.StopLoss = utils.Round(entry*(1-e.cfg.StopLossPercent), 2)

	if st.out.EarlyEntryPrice != nil && entry > st.out.StopLoss {
		rr := (st.out.PriceTargets[0] - entry) / (entry - st.out.StopLoss)
		st.out.RiskRewardRatio = utils.ToPointer(utils.Round(rr, 2))
	}
}

func (e *Engine) applyRiskEscalation(st *state) {
	change := st.snap.ChangePercent
	if change > 15 || (st.out.VolumeRatio > 4 && change > 10) {
		st.out.RiskLevel = entity.RiskHigh
	}
}
